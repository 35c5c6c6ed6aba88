// Package model contains domain models passed between layers.
package model

import "time"

// State tracks the lifecycle of a scheduled match.
type State string

// Match states as reported by scoreboard feeds.
const (
	StatePre   State = "pre"
	StateLive  State = "live"
	StateFinal State = "final"
)

// Match represents one two-sided match between distinct teams.
// Scores are only meaningful once State is StateFinal; the result
// (win/loss/draw) is always derived, never stored.
type Match struct {
	Date        time.Time
	HomeTeam    string
	AwayTeam    string
	HomeScore   int
	AwayScore   int
	NeutralSite bool
	State       State
}

// IsFinal reports whether the match has completed.
func (m Match) IsFinal() bool {
	return m.State == StateFinal
}

// IsDraw reports whether the match finished with level scores.
func (m Match) IsDraw() bool {
	return m.IsFinal() && m.HomeScore == m.AwayScore
}

// Winner returns the winning team name, or "" for a draw or an
// unfinished match.
func (m Match) Winner() string {
	if !m.IsFinal() {
		return ""
	}
	switch {
	case m.HomeScore > m.AwayScore:
		return m.HomeTeam
	case m.AwayScore > m.HomeScore:
		return m.AwayTeam
	default:
		return ""
	}
}

// Loser returns the losing team name, or "" for a draw or an
// unfinished match.
func (m Match) Loser() string {
	if !m.IsFinal() {
		return ""
	}
	switch {
	case m.HomeScore < m.AwayScore:
		return m.HomeTeam
	case m.AwayScore < m.HomeScore:
		return m.AwayTeam
	default:
		return ""
	}
}

// Contains reports whether team played in this match.
func (m Match) Contains(team string) bool {
	return team == m.HomeTeam || team == m.AwayTeam
}

// Opponent returns the other side of the match, or "" when team did
// not play in it.
func (m Match) Opponent(team string) string {
	switch team {
	case m.HomeTeam:
		return m.AwayTeam
	case m.AwayTeam:
		return m.HomeTeam
	default:
		return ""
	}
}

// Key identifies a match for deduplication across overlapping fetch
// windows: same two teams on the same calendar day.
func (m Match) Key() string {
	return m.Date.Format("2006-01-02") + "|" + m.HomeTeam + "|" + m.AwayTeam
}

// Finished filters matches down to completed ones, preserving order.
func Finished(matches []Match) []Match {
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.IsFinal() {
			out = append(out, m)
		}
	}
	return out
}
