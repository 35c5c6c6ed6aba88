package record_test

import (
	"context"
	"errors"
	"testing"
	"time"

	model "github.com/okian/ripper/internal/domain/model"
	record "github.com/okian/ripper/internal/domain/rating/record"
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

func TestAggregator(t *testing.T) {
	Convey("Given an aggregator and a round-robin", t, func() {
		agg := record.New()
		matches := []model.Match{
			final("2024-09-01", "A", "B", 2, 0),
			final("2024-09-02", "B", "C", 1, 1),
			final("2024-09-03", "C", "A", 0, 1),
		}

		Convey("When calculating", func() {
			entries, err := agg.Calculate(context.Background(), matches)
			So(err, ShouldBeNil)

			byTeam := make(map[string]float64)
			for _, e := range entries {
				byTeam[e.Team] = e.Value
			}

			Convey("Then values follow (wins + draws/2) / games", func() {
				So(byTeam["A"], ShouldAlmostEqual, 1.0, 1e-12)
				So(byTeam["B"], ShouldAlmostEqual, 0.25, 1e-12)
				So(byTeam["C"], ShouldAlmostEqual, 0.25, 1e-12)
			})

			Convey("And components reconcile wins+losses+draws to games", func() {
				for _, e := range entries {
					sum := e.Components["wins"] + e.Components["losses"] + e.Components["draws"]
					So(sum, ShouldEqual, e.Components["games"])
					So(e.Components["games"], ShouldBeGreaterThan, 0)
				}
			})
		})

		Convey("When a team only appears in unfinished matches", func() {
			matches = append(matches, model.Match{
				Date:     time.Now(),
				HomeTeam: "D",
				AwayTeam: "A",
				State:    model.StatePre,
			})
			entries, err := agg.Calculate(context.Background(), matches)
			So(err, ShouldBeNil)

			Convey("Then the zero-game team is omitted", func() {
				for _, e := range entries {
					So(e.Team, ShouldNotEqual, "D")
				}
				So(entries, ShouldHaveLength, 3)
			})
		})
	})

	Convey("Given an aggregator that disallows draws", t, func() {
		agg := record.New(record.WithDrawsAllowed(false))
		matches := []model.Match{
			final("2024-09-01", "A", "B", 1, 1),
		}

		Convey("When calculating over a drawn match", func() {
			entries, err := agg.Calculate(context.Background(), matches)

			Convey("Then validation rejects the unresolved result", func() {
				So(entries, ShouldBeNil)
				So(errors.Is(err, model.ErrUnresolvedResult), ShouldBeTrue)
			})
		})
	})
}
