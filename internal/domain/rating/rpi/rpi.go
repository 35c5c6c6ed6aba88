// Package rpi computes the Rating Percentage Index: a weighted blend of
// a team's own win percentage (WP), its opponents' win percentage
// excluding games against the team (OWP), and its opponents' opponents'
// win percentage (OOWP).
//
// OWP and OOWP average over distinct opponents rather than over games.
// Weighting by meeting count would let a repeated matchup double-count
// one opponent's schedule, which materially changes rankings. OOWP
// recurses exactly one level; the conventional formula is fixed-depth,
// not a general graph traversal.
package rpi

import (
	"context"
	"fmt"

	"github.com/okian/ripper/internal/domain/model"
	"github.com/okian/ripper/internal/domain/rating"
)

// Name identifies this algorithm in tables and metrics.
const Name = "rpi"

// Conventional NCAA weights.
const (
	defaultOwnWeight      = 0.25
	defaultOpponentWeight = 0.50
	defaultIndirectWeight = 0.25
)

// Calculator computes RPI entries for one competition's match set.
type Calculator struct {
	ownWeight      float64
	opponentWeight float64
	indirectWeight float64
	drawsAllowed   bool
}

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithWeights sets the WP/OWP/OOWP blend. Weights must be non-negative
// with a positive sum; they are normalized so the blend stays a convex
// combination. Invalid weights leave the defaults in place.
func WithWeights(own, opponent, indirect float64) Option {
	return func(c *Calculator) {
		sum := own + opponent + indirect
		if own < 0 || opponent < 0 || indirect < 0 || sum <= 0 {
			return
		}
		c.ownWeight = own / sum
		c.opponentWeight = opponent / sum
		c.indirectWeight = indirect / sum
	}
}

// WithDrawsAllowed controls whether level scores count as draws.
func WithDrawsAllowed(allowed bool) Option {
	return func(c *Calculator) {
		c.drawsAllowed = allowed
	}
}

// New creates a Calculator with the conventional 0.25/0.50/0.25 blend.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		ownWeight:      defaultOwnWeight,
		opponentWeight: defaultOpponentWeight,
		indirectWeight: defaultIndirectWeight,
		drawsAllowed:   true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the algorithm identifier.
func (c *Calculator) Name() string { return Name }

// Calculate returns one entry per team with the WP/OWP/OOWP components
// exposed alongside the blended value.
func (c *Calculator) Calculate(_ context.Context, matches []model.Match) ([]rating.Entry, error) {
	if err := model.ValidateAll(matches, c.drawsAllowed); err != nil {
		return nil, err
	}

	s := newSchedule(matches)
	entries := make([]rating.Entry, 0, len(s.teams))
	for _, team := range s.teams {
		entry, err := c.entryFor(s, team)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// For computes the entry for a single explicitly requested team. A team
// with no completed games surfaces rating.ErrZeroGames rather than a
// silent default.
func (c *Calculator) For(_ context.Context, matches []model.Match, team string) (rating.Entry, error) {
	if err := model.ValidateAll(matches, c.drawsAllowed); err != nil {
		return rating.Entry{}, err
	}

	s := newSchedule(matches)
	if len(s.logs[team]) == 0 {
		return rating.Entry{}, fmt.Errorf("%w: %q", rating.ErrZeroGames, team)
	}
	return c.entryFor(s, team)
}

func (c *Calculator) entryFor(s *schedule, team string) (rating.Entry, error) {
	wp := s.winPercentage(team, "")
	owp, err := s.opponentsWinPercentage(team)
	if err != nil {
		return rating.Entry{}, err
	}
	oowp, err := s.opponentsOpponentsWinPercentage(team)
	if err != nil {
		return rating.Entry{}, err
	}
	return rating.Entry{
		Team:  team,
		Value: c.ownWeight*wp + c.opponentWeight*owp + c.indirectWeight*oowp,
		Components: map[string]float64{
			"wp":   wp,
			"owp":  owp,
			"oowp": oowp,
		},
	}, nil
}

// schedule indexes one competition's completed matches for the
// transitive win-percentage lookups.
type schedule struct {
	teams     []string
	logs      map[string][]model.Match
	opponents map[string][]string
}

func newSchedule(matches []model.Match) *schedule {
	return &schedule{
		teams:     rating.TeamNames(matches),
		logs:      rating.MatchesByTeam(matches),
		opponents: rating.Opponents(matches),
	}
}

// winPercentage tallies team's games, skipping any game involving
// exclude. A team left with no qualifying games reports -1 so callers
// can distinguish "undefined" from a genuine 0.
func (s *schedule) winPercentage(team, exclude string) float64 {
	var t rating.Tally
	for _, m := range s.logs[team] {
		if exclude != "" && m.Contains(exclude) {
			continue
		}
		switch m.Winner() {
		case team:
			t.Wins++
		case "":
			t.Draws++
		default:
			t.Losses++
		}
	}
	if t.Games() == 0 {
		return -1
	}
	return t.WinPercentage()
}

// opponentsWinPercentage averages, over team's distinct opponents, each
// opponent's win percentage with games against team removed.
func (s *schedule) opponentsWinPercentage(team string) (float64, error) {
	var sum float64
	var counted int
	for _, opponent := range s.opponents[team] {
		wp := s.winPercentage(opponent, team)
		if wp < 0 {
			// Opponent played nobody but team; nothing to average.
			continue
		}
		sum += wp
		counted++
	}
	if counted == 0 {
		return 0, fmt.Errorf("%w: %q has no opponents with outside results", rating.ErrIsolatedTeam, team)
	}
	return sum / float64(counted), nil
}

// opponentsOpponentsWinPercentage averages each opponent's OWP over
// team's distinct opponents. One level only.
func (s *schedule) opponentsOpponentsWinPercentage(team string) (float64, error) {
	var sum float64
	var counted int
	for _, opponent := range s.opponents[team] {
		owp, err := s.opponentsWinPercentage(opponent)
		if err != nil {
			return 0, err
		}
		sum += owp
		counted++
	}
	if counted == 0 {
		return 0, fmt.Errorf("%w: %q has no opponents", rating.ErrIsolatedTeam, team)
	}
	return sum / float64(counted), nil
}
