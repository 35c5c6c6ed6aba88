package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/okian/ripper/internal/domain/rating"
)

// valuePrecision formats rating values with enough digits that ranked
// neighbors stay distinguishable.
const valuePrecision = 6

// WriteTable writes one ranked rating table. Component columns are the
// union of component names across entries, sorted, after the fixed
// rank/team/value columns.
func WriteTable(w io.Writer, entries []rating.Entry) error {
	components := componentNames(entries)
	header := append([]string{"rank", "team", "value"}, components...)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write table header: %w", err)
	}
	for _, e := range entries {
		row := []string{
			strconv.Itoa(e.Rank),
			e.Team,
			formatValue(e.Value),
		}
		for _, name := range components {
			row = append(row, formatValue(e.Components[name]))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write table row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteStatistics writes the combined sheet joining the record and RPI
// tables by team: team,wins,losses,draws,wp,owp,oowp,rpi. Row order
// follows the RPI ranking.
func WriteStatistics(w io.Writer, recordEntries, rpiEntries []rating.Entry) error {
	records := make(map[string]rating.Entry, len(recordEntries))
	for _, e := range recordEntries {
		records[e.Team] = e
	}

	cw := csv.NewWriter(w)
	header := []string{"team", "wins", "losses", "draws", "wp", "owp", "oowp", "rpi"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write statistics header: %w", err)
	}
	for _, e := range rpiEntries {
		rec := records[e.Team]
		row := []string{
			e.Team,
			formatCount(rec.Components["wins"]),
			formatCount(rec.Components["losses"]),
			formatCount(rec.Components["draws"]),
			formatValue(e.Components["wp"]),
			formatValue(e.Components["owp"]),
			formatValue(e.Components["oowp"]),
			formatValue(e.Value),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write statistics row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func componentNames(entries []rating.Entry) []string {
	seen := make(map[string]struct{})
	for _, e := range entries {
		for name := range e.Components {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', valuePrecision, 64)
}

func formatCount(v float64) string {
	return strconv.Itoa(int(v))
}
