package osac

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vcsplib/osac/logger"
	"github.com/vcsplib/osac/lp"
	"github.com/vcsplib/osac/lp/simplex"
)

// Option alters the behavior of Reparameterize and
// ReparameterizeToFixedPoint. See the descriptions of functions returning
// instances of this type for implemented options.
type Option func(*config) error

type config struct {
	solver    lp.Solver
	tolerance float64
	budget    time.Duration
	maxPasses int
	log       zerolog.Logger
}

func newConfig(opts ...Option) (config, error) {
	cfg := config{
		solver:    simplex.New(),
		tolerance: 1e-9,
		budget:    300 * time.Second,
		maxPasses: 16,
		log:       logger.Logger(),
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	return cfg, nil
}

// WithSolver sets the LP solver. The default is the gonum simplex adapter.
func WithSolver(s lp.Solver) Option {
	return func(cfg *config) error {
		if s == nil {
			return fmt.Errorf("osac: nil solver")
		}
		cfg.solver = s
		return nil
	}
}

// WithTolerance sets the absolute tolerance under which the LP objective is
// treated as zero, meaning the model is already OSAC. The default is 1e-9.
func WithTolerance(tol float64) Option {
	return func(cfg *config) error {
		if tol <= 0 {
			return fmt.Errorf("osac: tolerance must be positive, got %v", tol)
		}
		cfg.tolerance = tol
		return nil
	}
}

// WithTimeout sets the time budget of one LP solve. The default is 300
// seconds. A solve exceeding the budget fails with ErrSolverTimeout; no
// partial result is applied.
func WithTimeout(d time.Duration) Option {
	return func(cfg *config) error {
		if d <= 0 {
			return fmt.Errorf("osac: timeout must be positive, got %v", d)
		}
		cfg.budget = d
		return nil
	}
}

// WithMaxPasses caps the number of passes ReparameterizeToFixedPoint may run.
// The default is 16; one pass extracts the maximal provable bound, so the
// fixed point is normally observed on the second.
func WithMaxPasses(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return fmt.Errorf("osac: max passes must be at least 1, got %d", n)
		}
		cfg.maxPasses = n
		return nil
	}
}

// WithLogger overrides the logger used during reparameterization.
func WithLogger(l zerolog.Logger) Option {
	return func(cfg *config) error {
		cfg.log = l
		return nil
	}
}
