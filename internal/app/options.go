package app

import (
	"time"

	"github.com/okian/ripper/internal/adapters/repository"
	"github.com/okian/ripper/pkg/logger"
)

// Option configures a Service.
type Option func(*Service)

// WithSource sets the match source. Required.
func WithSource(src MatchSource) Option {
	return func(s *Service) {
		s.source = src
	}
}

// WithStore sets the table store. Defaults to an in-memory TableStore.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithLogger sets the service logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// WithRefreshInterval enables periodic recomputation. Zero disables
// the loop; only the initial run at Start happens.
func WithRefreshInterval(interval time.Duration) Option {
	return func(s *Service) {
		s.refreshInterval = interval
	}
}

// WithDrawsAllowed toggles draw acceptance across validation and all
// calculators.
func WithDrawsAllowed(allowed bool) Option {
	return func(s *Service) {
		s.drawsAllowed = allowed
	}
}

// WithRPIWeights sets the three rating percentage index weights in
// own, opponent, indirect order.
func WithRPIWeights(own, opponent, indirect float64) Option {
	return func(s *Service) {
		s.rpiWeights = [3]float64{own, opponent, indirect}
	}
}

// WithEloParams sets the Elo K factor, home advantage, and initial
// rating.
func WithEloParams(kFactor, homeAdvantage, initialRating float64) Option {
	return func(s *Service) {
		s.eloKFactor = kFactor
		s.eloHomeAdvantage = homeAdvantage
		s.eloInitialRating = initialRating
	}
}

// WithColleyDrawWeight sets the draw credit used by the Colley solver.
func WithColleyDrawWeight(weight float64) Option {
	return func(s *Service) {
		s.colleyDrawWeight = weight
	}
}
