// Package elo replays matches in chronological order, maintaining one
// running rating per team and updating both sides after every match
// from expected versus actual outcome.
package elo

import (
	"context"
	"math"
	"sort"

	"github.com/okian/ripper/internal/domain/model"
	"github.com/okian/ripper/internal/domain/rating"
)

// Name identifies this algorithm in tables and metrics.
const Name = "elo"

// Standard chess-derived defaults.
const (
	defaultKFactor       = 32.0
	defaultInitialRating = 1500.0
	logisticScale        = 400.0
)

// Calculator replays one competition's matches. The running state is
// local to a single Calculate call, so concurrent computations over
// different competitions never share anything.
type Calculator struct {
	kFactor       float64
	homeAdvantage float64
	initialRating float64
	drawsAllowed  bool
}

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithKFactor sets the update step size.
func WithKFactor(k float64) Option {
	return func(c *Calculator) {
		if k > 0 {
			c.kFactor = k
		}
	}
}

// WithHomeAdvantage sets the rating bonus applied to the home side's
// expected score. It is ignored for neutral-site matches.
func WithHomeAdvantage(advantage float64) Option {
	return func(c *Calculator) {
		if advantage >= 0 {
			c.homeAdvantage = advantage
		}
	}
}

// WithInitialRating sets the baseline assigned to a team on first
// appearance.
func WithInitialRating(initial float64) Option {
	return func(c *Calculator) {
		if initial > 0 {
			c.initialRating = initial
		}
	}
}

// WithDrawsAllowed controls whether level scores count as draws.
func WithDrawsAllowed(allowed bool) Option {
	return func(c *Calculator) {
		c.drawsAllowed = allowed
	}
}

// New creates a Calculator with K=32, no home advantage, and a 1500
// baseline.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		kFactor:       defaultKFactor,
		initialRating: defaultInitialRating,
		drawsAllowed:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the algorithm identifier.
func (c *Calculator) Name() string { return Name }

// Change snapshots the state after a single update, for diagnostics.
type Change struct {
	Match      model.Match
	HomeRating float64
	AwayRating float64
	// HomeDelta is the home side's rating change; the away side's
	// change is exactly -HomeDelta.
	HomeDelta float64
}

// Calculate replays the matches and snapshots final ratings as entries.
func (c *Calculator) Calculate(ctx context.Context, matches []model.Match) ([]rating.Entry, error) {
	ratings, _, err := c.replay(ctx, matches, false)
	if err != nil {
		return nil, err
	}
	entries := make([]rating.Entry, 0, len(ratings))
	for _, team := range rating.TeamNames(matches) {
		entries = append(entries, rating.Entry{Team: team, Value: ratings[team]})
	}
	return entries, nil
}

// History replays the matches keeping one immutable snapshot per
// update.
func (c *Calculator) History(ctx context.Context, matches []model.Match) ([]Change, error) {
	_, history, err := c.replay(ctx, matches, true)
	if err != nil {
		return nil, err
	}
	return history, nil
}

// replay runs the single sequential pass. Matches are ordered by date;
// same-date matches keep their input order, because the replay is
// path-dependent and must happen in exactly one deterministic order.
func (c *Calculator) replay(_ context.Context, matches []model.Match, keepHistory bool) (map[string]float64, []Change, error) {
	if err := model.ValidateAll(matches, c.drawsAllowed); err != nil {
		return nil, nil, err
	}

	ordered := make([]model.Match, 0, len(matches))
	for _, m := range matches {
		if m.IsFinal() {
			ordered = append(ordered, m)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	ratings := make(map[string]float64)
	lookup := func(team string) float64 {
		r, ok := ratings[team]
		if !ok {
			r = c.initialRating
			ratings[team] = r
		}
		return r
	}

	var history []Change
	if keepHistory {
		history = make([]Change, 0, len(ordered))
	}
	for _, m := range ordered {
		home, away := lookup(m.HomeTeam), lookup(m.AwayTeam)

		advantage := c.homeAdvantage
		if m.NeutralSite {
			advantage = 0
		}
		expectedHome := 1 / (1 + math.Pow(10, (away-home-advantage)/logisticScale))

		var actualHome float64
		switch m.Winner() {
		case m.HomeTeam:
			actualHome = 1
		case m.AwayTeam:
			actualHome = 0
		default:
			actualHome = 0.5
		}

		// Zero-sum by construction: the away delta is the exact
		// negation of the home delta.
		delta := c.kFactor * (actualHome - expectedHome)
		ratings[m.HomeTeam] = home + delta
		ratings[m.AwayTeam] = away - delta

		if keepHistory {
			history = append(history, Change{
				Match:      m,
				HomeRating: ratings[m.HomeTeam],
				AwayRating: ratings[m.AwayTeam],
				HomeDelta:  delta,
			})
		}
	}
	return ratings, history, nil
}
