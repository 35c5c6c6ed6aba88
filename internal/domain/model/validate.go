package model

import "fmt"

// Validate checks one completed match record against the input
// invariants. drawsAllowed decides whether level scores are a draw or an
// unresolved result that must be settled upstream (e.g. a shootout
// winner folded into the score line).
func Validate(m Match, drawsAllowed bool) error {
	if m.HomeTeam == m.AwayTeam {
		return fmt.Errorf("%w: %q", ErrSelfMatch, m.HomeTeam)
	}
	if m.HomeScore < 0 || m.AwayScore < 0 {
		return fmt.Errorf("%w: %s vs %s (%d-%d)", ErrNegativeScore, m.HomeTeam, m.AwayTeam, m.HomeScore, m.AwayScore)
	}
	if m.Date.IsZero() {
		return fmt.Errorf("%w: %s vs %s", ErrMissingDate, m.HomeTeam, m.AwayTeam)
	}
	if !drawsAllowed && m.IsDraw() {
		return fmt.Errorf("%w: %s vs %s on %s", ErrUnresolvedResult, m.HomeTeam, m.AwayTeam, m.Date.Format("2006-01-02"))
	}
	return nil
}

// ValidateAll checks every match and fails on the first bad record.
// Validation always runs before computation so a bad record is never
// partially applied.
func ValidateAll(matches []Match, drawsAllowed bool) error {
	for i, m := range matches {
		if err := Validate(m, drawsAllowed); err != nil {
			return fmt.Errorf("match %d: %w", i, err)
		}
	}
	return nil
}
