package scoreboard

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/okian/ripper/internal/domain/model"
	"github.com/okian/ripper/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the scoreboard base URL, mainly for tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithDirectoryURL overrides the school directory base URL.
func WithDirectoryURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.directoryURL = url
		}
	}
}

// WithGender selects the competition gender segment ("women", "men").
func WithGender(gender string) Option {
	return func(c *Client) {
		if gender != "" {
			c.gender = gender
		}
	}
}

// WithDivision selects the division segment ("d1", "d2", "d3").
func WithDivision(division string) Option {
	return func(c *Client) {
		if division != "" {
			c.division = division
		}
	}
}

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithRetries sets the attempt count per request.
func WithRetries(retries int) Option {
	return func(c *Client) {
		if retries > 0 {
			c.retries = retries
		}
	}
}

// WithRetryWait sets the fixed wait between attempts.
func WithRetryWait(wait time.Duration) Option {
	return func(c *Client) {
		if wait > 0 {
			c.retryWait = wait
		}
	}
}

// WithWorkers sets the day-fetch pool size for season walks.
func WithWorkers(workers int) Option {
	return func(c *Client) {
		if workers > 0 {
			c.workers = workers
		}
	}
}

// WithDedupeSize bounds the duplicate-match cache built for each season
// walk.
func WithDedupeSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.dedupeSize = size
		}
	}
}

// WithRegistry supplies a team registry for cross-division filtering
// without hitting the directory endpoint.
func WithRegistry(registry model.Registry) Option {
	return func(c *Client) {
		c.registry = registry
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}
