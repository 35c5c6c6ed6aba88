package scoreboard

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/okian/ripper/internal/domain/dedupe"
	"github.com/okian/ripper/internal/domain/model"
	"github.com/okian/ripper/pkg/logger"
	"github.com/okian/ripper/pkg/metrics"
)

// MatchesFrom walks every day in [from, to] with a bounded worker pool
// and returns the deduplicated completed and in-progress matches,
// ordered by date then home team so repeated walks produce identical
// sequences. Individual failed days abort the walk; missing days do
// not.
func (c *Client) MatchesFrom(ctx context.Context, from, to time.Time) ([]model.Match, error) {
	if to.Before(from) {
		return nil, nil
	}

	days := make(chan time.Time)
	var (
		mu      sync.Mutex
		matches []model.Match
		errs    []error
	)

	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for day := range days {
				got, err := c.MatchesOn(ctx, day)
				mu.Lock()
				if err != nil {
					errs = append(errs, err)
				} else {
					matches = append(matches, got...)
				}
				mu.Unlock()
			}
		}()
	}

feed:
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		select {
		case <-ctx.Done():
			break feed
		case days <- day:
		}
	}
	close(days)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if !matches[i].Date.Equal(matches[j].Date) {
			return matches[i].Date.Before(matches[j].Date)
		}
		if matches[i].HomeTeam != matches[j].HomeTeam {
			return matches[i].HomeTeam < matches[j].HomeTeam
		}
		return matches[i].AwayTeam < matches[j].AwayTeam
	})

	// The seen-set is scoped to this walk: boundary days overlap between
	// workers within one window, but repeated walks must each return the
	// full season.
	deduper := dedupe.New(dedupe.WithMaxSize(c.dedupeSize))
	deduped := matches[:0:0]
	for _, m := range matches {
		if deduper.SeenAndRecord(ctx, m.Key()) {
			metrics.RecordDuplicateMatch()
			continue
		}
		deduped = append(deduped, m)
	}

	metrics.RecordMatchesFetched(len(deduped))
	c.log.Info(ctx, "season walk complete",
		logger.Time("from", from),
		logger.Time("to", to),
		logger.Int("matches", len(deduped)))
	return deduped, nil
}
