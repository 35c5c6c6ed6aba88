// Package app provides the core business service that wires the match
// source, the rating calculators, and the table store behind the HTTP
// API.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/ripper/internal/adapters/repository"
	"github.com/okian/ripper/internal/domain/model"
	"github.com/okian/ripper/internal/domain/rating"
	"github.com/okian/ripper/internal/domain/rating/colley"
	"github.com/okian/ripper/internal/domain/rating/elo"
	"github.com/okian/ripper/internal/domain/rating/rpi"
	"github.com/okian/ripper/internal/domain/rating/record"
	"github.com/okian/ripper/pkg/logger"
	"github.com/okian/ripper/pkg/metrics"
)

// MatchSource supplies the full match sequence for one competition.
// Implementations live in the adapters (scoreboard walk, CSV file).
type MatchSource interface {
	Matches(ctx context.Context) ([]model.Match, error)
}

// SourceFunc adapts a plain function to the MatchSource interface.
type SourceFunc func(ctx context.Context) ([]model.Match, error)

// Matches calls f.
func (f SourceFunc) Matches(ctx context.Context) ([]model.Match, error) {
	return f(ctx)
}

// Service runs rating computations and exposes read access to the
// resulting tables.
type Service struct {
	mu sync.RWMutex

	source MatchSource
	store  repository.Store

	// Engine parameters, fixed at Start.
	drawsAllowed     bool
	rpiWeights       [3]float64
	eloKFactor       float64
	eloHomeAdvantage float64
	eloInitialRating float64
	colleyDrawWeight float64
	refreshInterval  time.Duration

	calculators []rating.Calculator

	// Last-run bookkeeping for /stats.
	lastRunID     string
	lastRunAt     time.Time
	lastMatches   int
	lastTeams     int
	lastRunErrors int

	started bool
	stopCh  chan struct{}

	log logger.Logger
}

// New constructs a Service with default engine parameters.
func New(opts ...Option) *Service {
	s := &Service{
		drawsAllowed:     true,
		rpiWeights:       [3]float64{0.25, 0.50, 0.25},
		eloKFactor:       32,
		eloInitialRating: 1500,
		colleyDrawWeight: 0.5,
		stopCh:           make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the calculators, runs the first computation, and kicks
// off the periodic refresh loop when configured.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	if s.log == nil {
		s.log = logger.Get().Named("app")
	}
	if s.source == nil {
		s.mu.Unlock()
		return ErrNoSource
	}
	if s.store == nil {
		s.store = repository.NewTableStore(ctx)
	}

	s.calculators = []rating.Calculator{
		record.New(record.WithDrawsAllowed(s.drawsAllowed)),
		rpi.New(
			rpi.WithWeights(s.rpiWeights[0], s.rpiWeights[1], s.rpiWeights[2]),
			rpi.WithDrawsAllowed(s.drawsAllowed),
		),
		elo.New(
			elo.WithKFactor(s.eloKFactor),
			elo.WithHomeAdvantage(s.eloHomeAdvantage),
			elo.WithInitialRating(s.eloInitialRating),
			elo.WithDrawsAllowed(s.drawsAllowed),
		),
		colley.New(
			colley.WithDrawWeight(s.colleyDrawWeight),
			colley.WithDrawsAllowed(s.drawsAllowed),
		),
	}
	s.started = true
	s.mu.Unlock()

	if err := s.Refresh(ctx); err != nil {
		s.log.Error(ctx, "initial rating run failed", logger.Error(err))
		return err
	}

	if s.refreshInterval > 0 {
		go s.refreshLoop(ctx)
	}
	return nil
}

// Stop halts the refresh loop. Safe to call more than once.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	close(s.stopCh)
}

func (s *Service) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.log.Error(ctx, "scheduled rating run failed", logger.Error(err))
			}
		}
	}
}

// Refresh loads the match sequence, validates it once, and runs every
// calculator over it in parallel. Calculators are independent and
// read-only over the shared slice, so one goroutine per calculator
// needs no synchronization beyond collecting results. A failing
// calculator is fatal for its own table only; the others still
// publish.
func (s *Service) Refresh(ctx context.Context) error {
	runID := uuid.NewString()
	log := s.log.Named("run")

	matches, err := s.source.Matches(ctx)
	if err != nil {
		return fmt.Errorf("load matches: %w", err)
	}
	final := model.Finished(matches)
	if err := model.ValidateAll(final, s.drawsAllowed); err != nil {
		return fmt.Errorf("validate matches: %w", err)
	}

	log.Info(ctx, "starting rating run",
		logger.String("run_id", runID),
		logger.Int("matches", len(final)))

	type outcome struct {
		algorithm string
		entries   []rating.Entry
		err       error
	}
	results := make([]outcome, len(s.calculators))

	var wg sync.WaitGroup
	for i, calc := range s.calculators {
		wg.Add(1)
		go func(i int, calc rating.Calculator) {
			defer wg.Done()
			start := time.Now()
			entries, err := calc.Calculate(ctx, final)
			metrics.ObserveComputation(calc.Name(), float64(time.Since(start).Milliseconds()))
			results[i] = outcome{algorithm: calc.Name(), entries: entries, err: err}
		}(i, calc)
	}
	wg.Wait()

	computedAt := time.Now().UTC()
	var (
		teams    int
		runErrs  []error
		failures int
	)
	for _, res := range results {
		if res.err != nil {
			failures++
			metrics.RecordComputationError(res.algorithm)
			runErrs = append(runErrs, fmt.Errorf("%s: %w", res.algorithm, res.err))
			continue
		}
		table := repository.Table{
			Algorithm:  res.algorithm,
			RunID:      runID,
			ComputedAt: computedAt,
			Entries:    rating.Rank(res.entries),
		}
		if err := s.store.PutTable(ctx, table); err != nil {
			runErrs = append(runErrs, fmt.Errorf("store %s: %w", res.algorithm, err))
			continue
		}
		if len(table.Entries) > teams {
			teams = len(table.Entries)
		}
	}

	s.mu.Lock()
	s.lastRunID = runID
	s.lastRunAt = computedAt
	s.lastMatches = len(final)
	s.lastTeams = teams
	s.lastRunErrors = failures
	s.mu.Unlock()

	log.Info(ctx, "rating run complete",
		logger.String("run_id", runID),
		logger.Int("teams", teams),
		logger.Int("failures", failures))
	return errors.Join(runErrs...)
}

// TopN returns the first n entries of an algorithm's ranked table.
func (s *Service) TopN(ctx context.Context, algorithm string, n int) ([]rating.Entry, error) {
	return s.store.Table(ctx, algorithm, n)
}

// Rank returns one team's entry within an algorithm's table.
func (s *Service) Rank(ctx context.Context, algorithm, team string) (rating.Entry, error) {
	return s.store.Rank(ctx, algorithm, team)
}

// Algorithms lists algorithms with stored tables.
func (s *Service) Algorithms(ctx context.Context) []string {
	return s.store.Algorithms(ctx)
}

// GetStats snapshots run bookkeeping for the stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"last_run_id":     s.lastRunID,
		"last_run_at":     s.lastRunAt,
		"matches":         s.lastMatches,
		"teams":           s.lastTeams,
		"last_run_errors": s.lastRunErrors,
		"started":         s.started,
	}
}
