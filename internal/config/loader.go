package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env
// vars. Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if RIPPER_CONFIG is set
//  3. env (prefix RIPPER_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("RIPPER_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: RIPPER_ADDR, RIPPER_SEASON_START, ...
	// Underscores are preserved to match the koanf struct tags.
	envProvider := env.Provider("RIPPER_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "ripper_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Season returns the parsed season start date.
func (c *Config) Season() (time.Time, error) {
	start, err := time.Parse("2006-01-02", c.SeasonStart)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: season_start %q: %w", ErrInvalidConfig, c.SeasonStart, err)
	}
	return start, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if len(c.RPIWeights) != 3 {
		return fmt.Errorf("%w: rpi_weights needs exactly 3 values, got %d", ErrInvalidConfig, len(c.RPIWeights))
	}
	if c.EloKFactor <= 0 {
		return fmt.Errorf("%w: elo_k_factor must be positive", ErrInvalidConfig)
	}
	if c.ColleyDrawWeight < 0 || c.ColleyDrawWeight > 1 {
		return fmt.Errorf("%w: colley_draw_weight must be within [0,1]", ErrInvalidConfig)
	}
	if c.SeasonStart != "" {
		if _, err := c.Season(); err != nil {
			return err
		}
	}
	return nil
}
