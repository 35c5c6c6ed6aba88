package rating

import "sort"

// Rank produces a stably ranked table from unranked entries: descending
// by value, ties broken by ascending team name. Ranks are 1-based and
// distinct; tied values keep deterministic order by name rather than
// sharing a rank. The input slice is not modified.
func Rank(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Team < out[j].Team
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
