package scoreboard

import (
	"strconv"
	"time"

	"github.com/okian/ripper/internal/domain/model"
)

// payload mirrors the scoreboard JSON document for one day.
type payload struct {
	Games []gameWrapper `json:"games"`
}

type gameWrapper struct {
	Game game `json:"game"`
}

type game struct {
	GameID         string `json:"gameID"`
	Home           side   `json:"home"`
	Away           side   `json:"away"`
	GameState      string `json:"gameState"`
	StartDate      string `json:"startDate"`
	StartTimeEpoch string `json:"startTimeEpoch"`
}

type side struct {
	Score string    `json:"score"`
	Names teamNames `json:"names"`
}

type teamNames struct {
	Full  string `json:"full"`
	Short string `json:"short"`
	Seo   string `json:"seo"`
}

// startDateLayout is the feed's MM/DD/YYYY date format.
const startDateLayout = "01/02/2006"

// match converts one feed game into a Match. day is the requested
// scoreboard date, used when the payload carries no parseable date.
// Scores arrive as strings and are empty before kickoff.
func (g game) match(day time.Time) model.Match {
	return model.Match{
		Date:      g.date(day),
		HomeTeam:  g.Home.Names.Full,
		AwayTeam:  g.Away.Names.Full,
		HomeScore: parseScore(g.Home.Score),
		AwayScore: parseScore(g.Away.Score),
		State:     model.State(g.GameState),
	}
}

func (g game) date(day time.Time) time.Time {
	if g.StartTimeEpoch != "" {
		if epoch, err := strconv.ParseInt(g.StartTimeEpoch, 10, 64); err == nil && epoch > 0 {
			return time.Unix(epoch, 0).UTC()
		}
	}
	if d, err := time.Parse(startDateLayout, g.StartDate); err == nil {
		return d
	}
	return day
}

func parseScore(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
