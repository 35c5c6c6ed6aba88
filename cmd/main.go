package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/okian/ripper/internal/adapters/csvio"
	"github.com/okian/ripper/internal/adapters/http/api"
	"github.com/okian/ripper/internal/adapters/scoreboard"
	"github.com/okian/ripper/internal/app"
	"github.com/okian/ripper/internal/config"
	"github.com/okian/ripper/internal/domain/model"
	"github.com/okian/ripper/pkg/logger"
	"github.com/okian/ripper/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics.
	// We collect our own system metrics instead.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	source, err := buildSource(ctx, cfg)
	if err != nil {
		os.Stderr.WriteString("failed to build match source: " + err.Error() + "\n")
		return
	}

	svc := app.New(
		app.WithLogger(log.Named("app")),
		app.WithSource(source),
		app.WithRefreshInterval(time.Duration(cfg.RefreshMinutes)*time.Minute),
		app.WithDrawsAllowed(cfg.DrawsAllowed),
		app.WithRPIWeights(cfg.RPIWeights[0], cfg.RPIWeights[1], cfg.RPIWeights[2]),
		app.WithEloParams(cfg.EloKFactor, cfg.EloHomeAdvantage, cfg.EloInitialRating),
		app.WithColleyDrawWeight(cfg.ColleyDrawWeight),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc, cfg.MaxTableLimit)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}

// buildSource wires the configured match source. A matches_file points
// at a CSV of finished matches; otherwise each refresh walks the
// scoreboard feed from the season start to today.
func buildSource(ctx context.Context, cfg *config.Config) (app.MatchSource, error) {
	if cfg.MatchesFile != "" {
		path := cfg.MatchesFile
		return app.SourceFunc(func(ctx context.Context) ([]model.Match, error) {
			f, err := os.Open(path)
			if err != nil {
				return nil, fmt.Errorf("open matches file: %w", err)
			}
			defer f.Close()
			return csvio.ReadMatches(f)
		}), nil
	}

	season, err := cfg.Season()
	if err != nil {
		return nil, err
	}
	client := scoreboard.New(
		scoreboard.WithGender(cfg.Gender),
		scoreboard.WithDivision(cfg.Division),
		scoreboard.WithWorkers(cfg.FetchWorkers),
		scoreboard.WithRateLimit(cfg.FetchRatePerSecond),
		scoreboard.WithDedupeSize(cfg.DedupeSize),
		scoreboard.WithLogger(logger.Named("scoreboard")),
	)
	if err := client.LoadDirectory(ctx); err != nil {
		logger.Named("scoreboard").Warn(ctx, "school directory unavailable", logger.Error(err))
	}
	return app.SourceFunc(func(ctx context.Context) ([]model.Match, error) {
		return client.MatchesFrom(ctx, season, time.Now().UTC())
	}), nil
}

// startSystemMetricsUpdater refreshes system gauges on a fixed cadence.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.UpdateSystemMetrics()
		}
	}
}
