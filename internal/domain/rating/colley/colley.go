// Package colley produces bias-reduced ratings by solving the Colley
// linear system C·r = b, where the matrix couples every pair of teams
// through their head-to-head game counts. The +2 diagonal term keeps
// the system diagonally dominant, so it is non-singular whenever every
// team in the matrix has played at least one game.
package colley

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/okian/ripper/internal/domain/model"
	"github.com/okian/ripper/internal/domain/rating"
)

// Name identifies this algorithm in tables and metrics.
const Name = "colley"

// defaultDrawWeight credits half a win to each side of a draw.
const defaultDrawWeight = 0.5

// Calculator assembles and solves the Colley system for one
// competition. Team counts are small (tens to low hundreds), so a
// direct dense solve is used; no iterative approximation.
type Calculator struct {
	drawWeight   float64
	drawsAllowed bool
}

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithDrawWeight sets the effective win credit each side earns from a
// draw, in [0,1]. The complementary share counts as a loss.
func WithDrawWeight(weight float64) Option {
	return func(c *Calculator) {
		if weight >= 0 && weight <= 1 {
			c.drawWeight = weight
		}
	}
}

// WithDrawsAllowed controls whether level scores count as draws.
func WithDrawsAllowed(allowed bool) Option {
	return func(c *Calculator) {
		c.drawsAllowed = allowed
	}
}

// New creates a Calculator with the 0.5 draw convention.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		drawWeight:   defaultDrawWeight,
		drawsAllowed: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the algorithm identifier.
func (c *Calculator) Name() string { return Name }

// Calculate assembles the system in one linear pass over matches and
// solves it. Teams are taken from completed matches only, so every row
// is backed by at least one game; b row sums make sum(r) come out to
// n/2 exactly.
func (c *Calculator) Calculate(_ context.Context, matches []model.Match) ([]rating.Entry, error) {
	if err := model.ValidateAll(matches, c.drawsAllowed); err != nil {
		return nil, err
	}

	teams := rating.TeamNames(matches)
	n := len(teams)
	if n == 0 {
		return nil, nil
	}

	index := make(map[string]int, n)
	for i, team := range teams {
		index[team] = i
	}

	coeffs := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		coeffs.Set(i, i, 2)
	}
	b := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		b.SetVec(i, 1)
	}

	for _, m := range matches {
		if !m.IsFinal() {
			continue
		}
		hi, ai := index[m.HomeTeam], index[m.AwayTeam]
		coeffs.Set(hi, hi, coeffs.At(hi, hi)+1)
		coeffs.Set(ai, ai, coeffs.At(ai, ai)+1)
		coeffs.Set(hi, ai, coeffs.At(hi, ai)-1)
		coeffs.Set(ai, hi, coeffs.At(ai, hi)-1)

		homeWins, awayWins := c.winCredit(m)
		b.SetVec(hi, b.AtVec(hi)+(homeWins-(1-homeWins))/2)
		b.SetVec(ai, b.AtVec(ai)+(awayWins-(1-awayWins))/2)
	}

	var r mat.VecDense
	if err := r.SolveVec(coeffs, b); err != nil {
		return nil, fmt.Errorf("%w: %d teams: %w", rating.ErrSingularSystem, n, err)
	}

	entries := make([]rating.Entry, n)
	for i, team := range teams {
		entries[i] = rating.Entry{Team: team, Value: r.AtVec(i)}
	}
	return entries, nil
}

// For computes the rating for a single explicitly requested team. A
// team with no completed games cannot enter the matrix (its row would
// be structurally meaningless), so it surfaces rating.ErrZeroGames.
func (c *Calculator) For(ctx context.Context, matches []model.Match, team string) (rating.Entry, error) {
	entries, err := c.Calculate(ctx, matches)
	if err != nil {
		return rating.Entry{}, err
	}
	for _, e := range entries {
		if e.Team == team {
			return e, nil
		}
	}
	return rating.Entry{}, fmt.Errorf("%w: %q", rating.ErrZeroGames, team)
}

// winCredit returns each side's effective win share for one match.
func (c *Calculator) winCredit(m model.Match) (home, away float64) {
	switch m.Winner() {
	case m.HomeTeam:
		return 1, 0
	case m.AwayTeam:
		return 0, 1
	default:
		return c.drawWeight, c.drawWeight
	}
}
