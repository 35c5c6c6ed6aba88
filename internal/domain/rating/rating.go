// Package rating defines the shared contract for rating calculators:
// the entry type they produce, the tallies they aggregate over, and the
// formatter that turns raw entries into a ranked table.
package rating

import (
	"context"

	"github.com/okian/ripper/internal/domain/model"
)

// Entry is one team's computed rating under a single algorithm.
// Entries are created fresh per computation and never mutated after
// the formatter assigns ranks.
type Entry struct {
	Team       string             `json:"team"`
	Value      float64            `json:"value"`
	Rank       int                `json:"rank"`
	Components map[string]float64 `json:"components,omitempty"`
}

// Calculator transforms an immutable match sequence into unranked
// rating entries. Implementations are pure over their input: the same
// matches always produce the same entries, and concurrent calls share
// no state.
type Calculator interface {
	// Name identifies the algorithm, e.g. "rpi".
	Name() string

	// Calculate returns one entry per team with at least one
	// completed game. Matches must already satisfy model.Validate.
	Calculate(ctx context.Context, matches []model.Match) ([]Entry, error)
}
