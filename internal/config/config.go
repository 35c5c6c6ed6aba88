// Package config defines service configuration structures and loading
// hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Load layers defaults, optional YAML file, then environment.
// - External errors are wrapped via this package's sentinels.
package config

import "context"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Gender and Division select the competition feed segment.
	Gender   string `koanf:"gender"`
	Division string `koanf:"division"`

	// SeasonStart is the first scoreboard day to walk (YYYY-MM-DD).
	SeasonStart string `koanf:"season_start"`

	// MatchesFile, when set, loads matches from a CSV instead of the
	// network feed.
	MatchesFile string `koanf:"matches_file"`

	// RefreshMinutes is the interval between recomputations; 0
	// disables periodic refresh after the initial run.
	RefreshMinutes int `koanf:"refresh_minutes"`

	// FetchWorkers sets the day-fetch pool size for season walks.
	FetchWorkers int `koanf:"fetch_workers"`

	// FetchRatePerSecond caps outgoing scoreboard requests.
	FetchRatePerSecond float64 `koanf:"fetch_rate_per_second"`

	// DedupeSize bounds the duplicate-match cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxTableLimit caps GET /ratings/{algorithm}?limit.
	MaxTableLimit int `koanf:"max_table_limit"`

	// DrawsAllowed decides whether level scores are draws or
	// unresolved results.
	DrawsAllowed bool `koanf:"draws_allowed"`

	// RPIWeights blends WP/OWP/OOWP; must hold three values.
	RPIWeights []float64 `koanf:"rpi_weights"`

	// Elo parameters.
	EloKFactor       float64 `koanf:"elo_k_factor"`
	EloHomeAdvantage float64 `koanf:"elo_home_advantage"`
	EloInitialRating float64 `koanf:"elo_initial_rating"`

	// ColleyDrawWeight is the win credit each side earns from a draw.
	ColleyDrawWeight float64 `koanf:"colley_draw_weight"`
}

// New creates a Config with defaults for a women's D1 season. Context
// is accepted first to satisfy the project-wide convention; it is
// reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		Gender:             "women",
		Division:           "d1",
		SeasonStart:        "2024-08-14",
		RefreshMinutes:     60,
		FetchWorkers:       8,
		FetchRatePerSecond: 5,
		DedupeSize:         100_000,
		MaxTableLimit:      400,
		DrawsAllowed:       true,
		RPIWeights:         []float64{0.25, 0.50, 0.25},
		EloKFactor:         32,
		EloHomeAdvantage:   0,
		EloInitialRating:   1500,
		ColleyDrawWeight:   0.5,
	}
}
