// Package csvio reads and writes the flat CSV artifacts the service
// exchanges with the outside world: match logs, per-algorithm rating
// tables, and the combined statistics sheet.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/okian/ripper/internal/domain/model"
)

// dateLayout is the date column format in match CSVs.
const dateLayout = "2006-01-02"

var matchHeader = []string{"home_team", "away_team", "home_score", "away_score", "date", "neutral_site"}

// WriteMatches writes completed matches as CSV.
func WriteMatches(w io.Writer, matches []model.Match) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(matchHeader); err != nil {
		return fmt.Errorf("write match header: %w", err)
	}
	for _, m := range matches {
		row := []string{
			m.HomeTeam,
			m.AwayTeam,
			strconv.Itoa(m.HomeScore),
			strconv.Itoa(m.AwayScore),
			m.Date.Format(dateLayout),
			strconv.FormatBool(m.NeutralSite),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write match row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadMatches parses a match CSV produced by WriteMatches. Every row is
// a completed match.
func ReadMatches(r io.Reader) ([]model.Match, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(matchHeader)

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrParse)
	}

	matches := make([]model.Match, 0, len(rows)-1)
	for i, row := range rows[1:] {
		m, err := parseMatchRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrParse, i+2, err)
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func parseMatchRow(row []string) (model.Match, error) {
	homeScore, err := strconv.Atoi(row[2])
	if err != nil {
		return model.Match{}, fmt.Errorf("home score %q: %w", row[2], err)
	}
	awayScore, err := strconv.Atoi(row[3])
	if err != nil {
		return model.Match{}, fmt.Errorf("away score %q: %w", row[3], err)
	}
	date, err := time.Parse(dateLayout, row[4])
	if err != nil {
		return model.Match{}, fmt.Errorf("date %q: %w", row[4], err)
	}
	neutral, err := strconv.ParseBool(row[5])
	if err != nil {
		return model.Match{}, fmt.Errorf("neutral_site %q: %w", row[5], err)
	}
	return model.Match{
		Date:        date,
		HomeTeam:    row[0],
		AwayTeam:    row[1],
		HomeScore:   homeScore,
		AwayScore:   awayScore,
		NeutralSite: neutral,
		State:       model.StateFinal,
	}, nil
}
