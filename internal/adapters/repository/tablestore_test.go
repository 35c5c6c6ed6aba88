package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	repository "github.com/okian/ripper/internal/adapters/repository"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleTable(algorithm, runID string) repository.Table {
	return repository.Table{
		Algorithm:  algorithm,
		RunID:      runID,
		ComputedAt: time.Now().UTC(),
		Entries: []repository.Entry{
			{Team: "UCLA", Value: 0.80, Rank: 1},
			{Team: "Duke", Value: 0.75, Rank: 2},
			{Team: "Stanford", Value: 0.61, Rank: 3},
		},
	}
}

func TestTableStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		store := repository.NewTableStore(ctx, repository.WithMetricsEnabled(false))

		Convey("Then reads report unknown algorithms", func() {
			_, err := store.Table(ctx, "rpi", 10)
			So(errors.Is(err, repository.ErrUnknownAlgorithm), ShouldBeTrue)

			_, err = store.Rank(ctx, "rpi", "Duke")
			So(errors.Is(err, repository.ErrUnknownAlgorithm), ShouldBeTrue)

			So(store.Algorithms(ctx), ShouldBeEmpty)
			So(store.Count(ctx, "rpi"), ShouldEqual, 0)
		})

		Convey("When storing a table", func() {
			So(store.PutTable(ctx, sampleTable("rpi", "run-1")), ShouldBeNil)

			Convey("Then the full table reads back in rank order", func() {
				entries, err := store.Table(ctx, "rpi", 0)
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 3)
				So(entries[0].Team, ShouldEqual, "UCLA")
				So(entries[2].Team, ShouldEqual, "Stanford")
			})

			Convey("And a limit truncates from the top", func() {
				entries, err := store.Table(ctx, "rpi", 2)
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 2)
				So(entries[1].Team, ShouldEqual, "Duke")
			})

			Convey("And team lookup returns the ranked entry", func() {
				entry, err := store.Rank(ctx, "rpi", "Duke")
				So(err, ShouldBeNil)
				So(entry.Rank, ShouldEqual, 2)
				So(entry.Value, ShouldAlmostEqual, 0.75, 1e-12)
			})

			Convey("And an absent team reports not found", func() {
				_, err := store.Rank(ctx, "rpi", "Auburn")
				So(errors.Is(err, repository.ErrTeamNotFound), ShouldBeTrue)
			})

			Convey("And bookkeeping reflects the snapshot", func() {
				So(store.Algorithms(ctx), ShouldResemble, []string{"rpi"})
				So(store.Count(ctx, "rpi"), ShouldEqual, 3)
			})
		})

		Convey("When storing a table with no algorithm name", func() {
			err := store.PutTable(ctx, repository.Table{RunID: "run-1"})

			Convey("Then the write is rejected", func() {
				So(errors.Is(err, repository.ErrEmptyAlgorithm), ShouldBeTrue)
			})
		})

		Convey("When a new run replaces a table", func() {
			So(store.PutTable(ctx, sampleTable("elo", "run-1")), ShouldBeNil)
			replacement := repository.Table{
				Algorithm:  "elo",
				RunID:      "run-2",
				ComputedAt: time.Now().UTC(),
				Entries: []repository.Entry{
					{Team: "Auburn", Value: 1540, Rank: 1},
				},
			}
			So(store.PutTable(ctx, replacement), ShouldBeNil)

			Convey("Then the old snapshot is gone wholesale", func() {
				entries, err := store.Table(ctx, "elo", 0)
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 1)
				So(entries[0].Team, ShouldEqual, "Auburn")

				_, err = store.Rank(ctx, "elo", "UCLA")
				So(errors.Is(err, repository.ErrTeamNotFound), ShouldBeTrue)
			})
		})

		Convey("When tables exist for several algorithms", func() {
			So(store.PutTable(ctx, sampleTable("rpi", "run-1")), ShouldBeNil)
			So(store.PutTable(ctx, sampleTable("elo", "run-1")), ShouldBeNil)
			So(store.PutTable(ctx, sampleTable("colley", "run-1")), ShouldBeNil)

			Convey("Then the algorithm list is sorted", func() {
				So(store.Algorithms(ctx), ShouldResemble, []string{"colley", "elo", "rpi"})
			})
		})
	})

	Convey("Given concurrent readers and writers", t, func() {
		store := repository.NewTableStore(ctx, repository.WithMetricsEnabled(false))
		So(store.PutTable(ctx, sampleTable("rpi", "run-0")), ShouldBeNil)

		Convey("When runs replace the table while readers page it", func() {
			var wg sync.WaitGroup
			for w := 0; w < 4; w++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < 50; i++ {
						_ = store.PutTable(ctx, sampleTable("rpi", "run"))
					}
				}()
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < 50; i++ {
						_, _ = store.Table(ctx, "rpi", 2)
						_, _ = store.Rank(ctx, "rpi", "Duke")
					}
				}()
			}
			wg.Wait()

			Convey("Then the final snapshot is intact", func() {
				So(store.Count(ctx, "rpi"), ShouldEqual, 3)
			})
		})
	})
}
