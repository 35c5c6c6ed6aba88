package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	dedupe "github.com/okian/ripper/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDeduper(t *testing.T) {
	Convey("Given a new deduper", t, func() {
		d := dedupe.New()

		Convey("Then it starts empty", func() {
			So(d.Size(), ShouldEqual, 0)
		})

		Convey("When recording a fresh key", func() {
			seen := d.SeenAndRecord(context.Background(), "2024-09-01|A|B")

			Convey("Then it was not seen before and is recorded", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When recording the same key twice", func() {
			d.SeenAndRecord(context.Background(), "2024-09-01|A|B")
			seen := d.SeenAndRecord(context.Background(), "2024-09-01|A|B")

			Convey("Then the second record reports a duplicate", func() {
				So(seen, ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a deduper with a small bound", t, func() {
		d := dedupe.New(dedupe.WithMaxSize(3))

		Convey("When more keys arrive than the bound holds", func() {
			for i := 0; i < 5; i++ {
				d.SeenAndRecord(context.Background(), fmt.Sprintf("key-%d", i))
			}

			Convey("Then the size stays at the bound", func() {
				So(d.Size(), ShouldEqual, 3)
			})

			Convey("And the oldest keys were evicted first", func() {
				So(d.SeenAndRecord(context.Background(), "key-4"), ShouldBeTrue)
				So(d.SeenAndRecord(context.Background(), "key-0"), ShouldBeFalse)
			})
		})
	})

	Convey("Given concurrent writers", t, func() {
		d := dedupe.New()

		Convey("When many goroutines record overlapping keys", func() {
			var wg sync.WaitGroup
			for w := 0; w < 8; w++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < 100; i++ {
						d.SeenAndRecord(context.Background(), fmt.Sprintf("key-%d", i))
					}
				}()
			}
			wg.Wait()

			Convey("Then each distinct key is recorded exactly once", func() {
				So(d.Size(), ShouldEqual, 100)
			})
		})
	})
}
