package rating

import (
	"sort"

	"github.com/okian/ripper/internal/domain/model"
)

// Tally counts one team's completed results.
type Tally struct {
	Wins   int
	Losses int
	Draws  int
}

// Games returns the number of completed games behind the tally.
func (t Tally) Games() int {
	return t.Wins + t.Losses + t.Draws
}

// WinPercentage returns (wins + draws/2) / games. Callers must exclude
// zero-game teams before asking; a zero-game tally reports 0.
func (t Tally) WinPercentage() float64 {
	games := t.Games()
	if games == 0 {
		return 0
	}
	return (float64(t.Wins) + float64(t.Draws)/2) / float64(games)
}

// Tallies aggregates completed matches into per-team tallies.
func Tallies(matches []model.Match) map[string]Tally {
	tallies := make(map[string]Tally)
	for _, m := range matches {
		if !m.IsFinal() {
			continue
		}
		home, away := tallies[m.HomeTeam], tallies[m.AwayTeam]
		switch m.Winner() {
		case m.HomeTeam:
			home.Wins++
			away.Losses++
		case m.AwayTeam:
			away.Wins++
			home.Losses++
		default:
			home.Draws++
			away.Draws++
		}
		tallies[m.HomeTeam] = home
		tallies[m.AwayTeam] = away
	}
	return tallies
}

// TeamNames lists every team appearing in a completed match, sorted so
// enumeration order is deterministic.
func TeamNames(matches []model.Match) []string {
	seen := make(map[string]struct{})
	for _, m := range matches {
		if !m.IsFinal() {
			continue
		}
		seen[m.HomeTeam] = struct{}{}
		seen[m.AwayTeam] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Opponents maps each team to its distinct opponents, sorted. Repeated
// matchups contribute a single opponent.
func Opponents(matches []model.Match) map[string][]string {
	sets := make(map[string]map[string]struct{})
	add := func(team, opponent string) {
		if sets[team] == nil {
			sets[team] = make(map[string]struct{})
		}
		sets[team][opponent] = struct{}{}
	}
	for _, m := range matches {
		if !m.IsFinal() {
			continue
		}
		add(m.HomeTeam, m.AwayTeam)
		add(m.AwayTeam, m.HomeTeam)
	}
	out := make(map[string][]string, len(sets))
	for team, set := range sets {
		opponents := make([]string, 0, len(set))
		for opponent := range set {
			opponents = append(opponents, opponent)
		}
		sort.Strings(opponents)
		out[team] = opponents
	}
	return out
}

// MatchesByTeam indexes completed matches by participant, preserving
// input order.
func MatchesByTeam(matches []model.Match) map[string][]model.Match {
	logs := make(map[string][]model.Match)
	for _, m := range matches {
		if !m.IsFinal() {
			continue
		}
		logs[m.HomeTeam] = append(logs[m.HomeTeam], m)
		logs[m.AwayTeam] = append(logs[m.AwayTeam], m)
	}
	return logs
}
