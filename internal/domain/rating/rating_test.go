package rating_test

import (
	"testing"
	"time"

	model "github.com/okian/ripper/internal/domain/model"
	rating "github.com/okian/ripper/internal/domain/rating"
	. "github.com/smartystreets/goconvey/convey"
)

func final(date, home, away string, hs, as int) model.Match {
	d, _ := time.Parse("2006-01-02", date)
	return model.Match{
		Date:      d,
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: hs,
		AwayScore: as,
		State:     model.StateFinal,
	}
}

func TestTally(t *testing.T) {
	Convey("Given a tally of mixed results", t, func() {
		tally := rating.Tally{Wins: 3, Losses: 1, Draws: 2}

		Convey("Then games and win percentage follow the half-credit rule", func() {
			So(tally.Games(), ShouldEqual, 6)
			So(tally.WinPercentage(), ShouldAlmostEqual, (3.0+1.0)/6.0, 1e-12)
		})
	})

	Convey("Given a zero-game tally", t, func() {
		var tally rating.Tally

		Convey("Then the win percentage reports zero rather than dividing", func() {
			So(tally.WinPercentage(), ShouldEqual, 0)
		})
	})
}

func TestTallies(t *testing.T) {
	Convey("Given a short match sequence", t, func() {
		matches := []model.Match{
			final("2024-09-01", "A", "B", 2, 0),
			final("2024-09-02", "B", "C", 1, 1),
			final("2024-09-03", "C", "A", 0, 3),
			{Date: time.Now(), HomeTeam: "A", AwayTeam: "C", State: model.StateLive},
		}

		Convey("When aggregating", func() {
			tallies := rating.Tallies(matches)

			Convey("Then each side of every final is counted once", func() {
				So(tallies["A"], ShouldResemble, rating.Tally{Wins: 2})
				So(tallies["B"], ShouldResemble, rating.Tally{Losses: 1, Draws: 1})
				So(tallies["C"], ShouldResemble, rating.Tally{Losses: 1, Draws: 1})
			})

			Convey("And unfinished matches contribute nothing", func() {
				total := 0
				for _, tally := range tallies {
					total += tally.Games()
				}
				So(total, ShouldEqual, 6)
			})
		})
	})
}

func TestTeamNamesAndOpponents(t *testing.T) {
	Convey("Given repeated matchups", t, func() {
		matches := []model.Match{
			final("2024-09-01", "B", "A", 1, 0),
			final("2024-09-08", "A", "B", 2, 1),
			final("2024-09-15", "A", "C", 1, 0),
		}

		Convey("Then team names are sorted and distinct", func() {
			So(rating.TeamNames(matches), ShouldResemble, []string{"A", "B", "C"})
		})

		Convey("And opponents are distinct per team", func() {
			opponents := rating.Opponents(matches)
			So(opponents["A"], ShouldResemble, []string{"B", "C"})
			So(opponents["B"], ShouldResemble, []string{"A"})
			So(opponents["C"], ShouldResemble, []string{"A"})
		})

		Convey("And the per-team log keeps input order", func() {
			logs := rating.MatchesByTeam(matches)
			So(logs["A"], ShouldHaveLength, 3)
			So(logs["A"][0].HomeTeam, ShouldEqual, "B")
			So(logs["B"], ShouldHaveLength, 2)
		})
	})
}

func TestRank(t *testing.T) {
	Convey("Given unranked entries with a tie", t, func() {
		entries := []rating.Entry{
			{Team: "Stanford", Value: 0.61},
			{Team: "Duke", Value: 0.75},
			{Team: "Auburn", Value: 0.61},
			{Team: "UCLA", Value: 0.80},
		}

		Convey("When ranking", func() {
			ranked := rating.Rank(entries)

			Convey("Then order is descending by value, ties by team name", func() {
				So(ranked[0].Team, ShouldEqual, "UCLA")
				So(ranked[1].Team, ShouldEqual, "Duke")
				So(ranked[2].Team, ShouldEqual, "Auburn")
				So(ranked[3].Team, ShouldEqual, "Stanford")
			})

			Convey("And ranks are 1-based and distinct", func() {
				for i, e := range ranked {
					So(e.Rank, ShouldEqual, i+1)
				}
			})

			Convey("And the input slice is untouched", func() {
				So(entries[0].Team, ShouldEqual, "Stanford")
				So(entries[0].Rank, ShouldEqual, 0)
			})
		})
	})
}
