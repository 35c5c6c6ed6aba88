package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/okian/ripper/pkg/metrics"
)

// TableStore implements Store in memory. Rating tables arrive already
// ranked and are replaced wholesale per computation run, so the store
// only needs a read-write lock around snapshot maps; there is no
// incremental update path.
type TableStore struct {
	mu     sync.RWMutex
	tables map[string]Table
	// byTeam indexes each table's entries for O(1) Rank lookups.
	byTeam map[string]map[string]Entry

	metricsEnabled bool
}

// Option applies a configuration option to the TableStore.
type Option func(*TableStore)

// WithMetricsEnabled toggles gauge updates on writes.
func WithMetricsEnabled(enabled bool) Option {
	return func(s *TableStore) {
		s.metricsEnabled = enabled
	}
}

// NewTableStore creates an empty in-memory table store.
func NewTableStore(_ context.Context, opts ...Option) *TableStore {
	s := &TableStore{
		tables:         make(map[string]Table),
		byTeam:         make(map[string]map[string]Entry),
		metricsEnabled: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PutTable replaces the stored table for t.Algorithm.
func (s *TableStore) PutTable(_ context.Context, t Table) error {
	if t.Algorithm == "" {
		return ErrEmptyAlgorithm
	}

	index := make(map[string]Entry, len(t.Entries))
	for _, e := range t.Entries {
		index[e.Team] = e
	}

	s.mu.Lock()
	s.tables[t.Algorithm] = t
	s.byTeam[t.Algorithm] = index
	s.mu.Unlock()

	if s.metricsEnabled {
		metrics.RecordTableStored(t.Algorithm)
		metrics.UpdateTeamCount(t.Algorithm, len(t.Entries))
	}
	return nil
}

// Table returns up to limit ranked entries for an algorithm.
func (s *TableStore) Table(_ context.Context, algorithm string, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[algorithm]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
	entries := t.Entries
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out, nil
}

// Rank returns one team's entry within an algorithm's table.
func (s *TableStore) Rank(_ context.Context, algorithm, team string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index, ok := s.byTeam[algorithm]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
	e, ok := index[team]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q in %q table", ErrTeamNotFound, team, algorithm)
	}
	return e, nil
}

// Algorithms lists the algorithms with stored tables, sorted.
func (s *TableStore) Algorithms(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of teams in an algorithm's table.
func (s *TableStore) Count(_ context.Context, algorithm string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables[algorithm].Entries)
}
