package scoreboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/okian/ripper/internal/domain/model"
	"github.com/okian/ripper/pkg/logger"
	"github.com/okian/ripper/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultBaseURL      = "https://data.ncaa.com/casablanca/scoreboard"
	defaultDirectoryURL = "https://web3.ncaa.org/directory/api/directory/memberList"
	defaultGender       = "women"
	defaultDivision     = "d1"
	defaultRetries      = 3
	defaultRetryWait    = 2 * time.Second
	defaultWorkers      = 8
	defaultRatePerSec   = 5
	defaultHTTPTimeout  = 10 * time.Second
)

// Client fetches daily scoreboards for one competition (gender +
// division) and converts them into match records.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	directoryURL string
	gender       string
	division     string
	limiter      *rate.Limiter
	retries      int
	retryWait    time.Duration
	workers      int
	dedupeSize   int
	// registry holds school metadata keyed by official name; when
	// present, cross-division matches are dropped at ingest.
	registry model.Registry
	log      logger.Logger
}

// New creates a scoreboard client with defaults suitable for the NCAA
// feed.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: defaultHTTPTimeout},
		baseURL:      defaultBaseURL,
		directoryURL: defaultDirectoryURL,
		gender:       defaultGender,
		division:     defaultDivision,
		limiter:      rate.NewLimiter(rate.Limit(defaultRatePerSec), 1),
		retries:      defaultRetries,
		retryWait:    defaultRetryWait,
		workers:      defaultWorkers,
		log:          logger.Get().Named("scoreboard"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// scoreboardURL builds the feed URL for one day.
func (c *Client) scoreboardURL(day time.Time) string {
	return fmt.Sprintf("%s/soccer-%s/%s/%04d/%02d/%02d/scoreboard.json",
		c.baseURL, c.gender, c.division, day.Year(), day.Month(), day.Day())
}

// MatchesOn fetches one day's scoreboard. Days without a published
// scoreboard (404) yield no matches, not an error.
func (c *Client) MatchesOn(ctx context.Context, day time.Time) ([]model.Match, error) {
	var p payload
	ok, err := c.getJSON(ctx, c.scoreboardURL(day), &p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	matches := make([]model.Match, 0, len(p.Games))
	for _, wrapper := range p.Games {
		m := wrapper.Game.match(day)
		if m.HomeTeam == "" || m.AwayTeam == "" {
			continue
		}
		if c.crossDivision(m.HomeTeam, m.AwayTeam) {
			c.log.Debug(ctx, "dropping cross-division match",
				logger.String("home", m.HomeTeam),
				logger.String("away", m.AwayTeam))
			continue
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// getJSON issues a rate-limited GET with fixed-wait retries. Returns
// false without error on 404.
func (c *Client) getJSON(ctx context.Context, url string, v any) (bool, error) {
	var lastErr error
	for attempt := 0; attempt < c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case <-time.After(c.retryWait):
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return false, err
		}

		ok, err := c.getJSONOnce(ctx, url, v)
		if err == nil {
			return ok, nil
		}
		lastErr = err
		c.log.Warn(ctx, "scoreboard request failed",
			logger.String("url", url),
			logger.Int("attempt", attempt+1),
			logger.Error(err))
	}
	metrics.RecordFetchError()
	return false, lastErr
}

func (c *Client) getJSONOnce(ctx context.Context, url string, v any) (bool, error) {
	start := time.Now()
	metrics.RecordFetchRequest()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("scoreboard request: %w", err)
	}
	defer resp.Body.Close()
	metrics.ObserveFetchLatency(float64(time.Since(start).Milliseconds()))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode != http.StatusOK:
		return false, fmt.Errorf("%w: %d for %s", ErrBadStatus, resp.StatusCode, url)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return false, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return true, nil
}

func (c *Client) crossDivision(home, away string) bool {
	if len(c.registry) == 0 {
		return false
	}
	return c.registry.Division(home) != c.registry.Division(away)
}
