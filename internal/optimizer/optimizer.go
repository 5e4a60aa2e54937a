// Package optimizer orchestrates a blend optimization run: configuration
// validation, the LP solve, and the cost comparison against the reference.
package optimizer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Qiqian1999/sement/internal/blend"
	"github.com/Qiqian1999/sement/internal/config"
	"github.com/Qiqian1999/sement/internal/solver"
)

// Runner executes optimization requests against one configuration. Each Run
// is stateless and deterministic for identical configuration.
type Runner struct {
	logger *zap.Logger
	conf   *config.Configuration
}

// Result holds everything a consumer needs to render an optimization:
// the material ordering, both blends, and the cost comparison.
type Result struct {
	Materials  []string
	Prices     []float64
	Reference  blend.Blend
	Optimal    blend.Blend
	Comparison blend.Comparison
	Quality    config.QualityConfig
}

// NewRunner constructs a Runner for the provided configuration.
func NewRunner(logger *zap.Logger, conf *config.Configuration) (*Runner, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, conf: conf}, nil
}

// Run validates the configuration, solves for the least-cost blend, and
// compares it against the reference blend. On blend.ErrInfeasible or
// blend.ErrConfiguration no partial result is returned.
func (r *Runner) Run() (*Result, error) {
	if err := r.conf.Validate(); err != nil {
		return nil, err
	}

	prices := r.conf.Prices()
	solution, err := solver.Solve(prices, r.conf.MinRatios(), r.conf.MaxRatios())
	if err != nil {
		return nil, err
	}

	reference := r.conf.ReferenceBlend()
	comparison, err := blend.Compare(reference, solution.Proportions, prices)
	if err != nil {
		return nil, err
	}

	r.logger.Info("blend optimized",
		zap.String("op", "optimizer.Run"),
		zap.Int("materials", len(r.conf.Materials)),
		zap.Float64("referenceCost", comparison.ReferenceCost),
		zap.Float64("optimalCost", comparison.OptimalCost),
		zap.Float64("savings", comparison.Savings),
	)

	return &Result{
		Materials:  r.conf.Names(),
		Prices:     prices,
		Reference:  reference,
		Optimal:    solution.Proportions,
		Comparison: comparison,
		Quality:    r.conf.Quality,
	}, nil
}
