// Package record aggregates plain win/loss/draw records into a win
// percentage rating. It is the baseline the weighted algorithms are
// compared against.
package record

import (
	"context"

	"github.com/okian/ripper/internal/domain/model"
	"github.com/okian/ripper/internal/domain/rating"
)

// Name identifies this algorithm in tables and metrics.
const Name = "record"

// Aggregator computes per-team records. Zero-game teams never appear in
// the output; omission is how division by zero is avoided.
type Aggregator struct {
	drawsAllowed bool
}

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithDrawsAllowed controls whether level scores count as draws. When
// false, a level-score match fails validation before any counting.
func WithDrawsAllowed(allowed bool) Option {
	return func(a *Aggregator) {
		a.drawsAllowed = allowed
	}
}

// New creates an Aggregator. Draws are allowed by default, matching
// regular-season soccer.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{drawsAllowed: true}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the algorithm identifier.
func (a *Aggregator) Name() string { return Name }

// Calculate returns one entry per team with value = (wins + draws/2) /
// games and the raw counts exposed as components.
func (a *Aggregator) Calculate(_ context.Context, matches []model.Match) ([]rating.Entry, error) {
	if err := model.ValidateAll(matches, a.drawsAllowed); err != nil {
		return nil, err
	}

	tallies := rating.Tallies(matches)
	entries := make([]rating.Entry, 0, len(tallies))
	for _, team := range rating.TeamNames(matches) {
		t := tallies[team]
		if t.Games() == 0 {
			continue
		}
		entries = append(entries, rating.Entry{
			Team:  team,
			Value: t.WinPercentage(),
			Components: map[string]float64{
				"wins":   float64(t.Wins),
				"losses": float64(t.Losses),
				"draws":  float64(t.Draws),
				"games":  float64(t.Games()),
			},
		})
	}
	return entries, nil
}
