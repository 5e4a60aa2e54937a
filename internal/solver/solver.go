// Package solver formulates the least-cost blend problem as a linear program
// and solves it with gonum's simplex method.
package solver

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/Qiqian1999/sement/internal/blend"
	"github.com/Qiqian1999/sement/pkg/constants"
	"github.com/Qiqian1999/sement/pkg/mathutil"
)

// Solution is the output of a successful solve.
type Solution struct {
	// Proportions is the optimal blend, same ordering as the input prices.
	Proportions blend.Blend
	// Cost is the minimal total blend cost, sum(price[i] * Proportions[i]).
	Cost float64
}

// Solve minimizes sum(prices[i] * x[i]) over proportion vectors x subject to
// sum(x) = 1 and minRatios[i] <= x[i] <= maxRatios[i].
//
// It returns blend.ErrConfiguration for malformed input,
// blend.ErrInfeasible when the bounds admit no blend, and
// blend.ErrNotConverged when the simplex method fails numerically.
// The optimal cost is deterministic; the vector is deterministic up to ties
// between equal-cost vertices, which Dantzig's rule resolves consistently
// for identical input.
func Solve(prices, minRatios, maxRatios []float64) (Solution, error) {
	if err := validateInputs(prices, minRatios, maxRatios); err != nil {
		return Solution{}, err
	}

	n := len(prices)
	minTotal := mathutil.Sum(minRatios)
	maxTotal := mathutil.Sum(maxRatios)

	// The box constraints cannot meet the blend-sum constraint; report that
	// before asking the solver.
	if minTotal > 1+constants.ProportionTolerance {
		return Solution{}, fmt.Errorf("%w: minimum ratios sum to %.6f (> 1)", blend.ErrInfeasible, minTotal)
	}
	if maxTotal < 1-constants.ProportionTolerance {
		return Solution{}, fmt.Errorf("%w: maximum ratios sum to %.6f (< 1)", blend.ErrInfeasible, maxTotal)
	}

	// Shift to y = x - min so the lower bounds become y >= 0, and turn each
	// upper bound y[i] <= max[i]-min[i] into an equality with a slack
	// variable. The standard-form program is then
	//
	//	minimize  c'z   subject to  Az = b, z >= 0
	//
	// with z = [y; s], one blend-sum row and n bound rows.
	c := make([]float64, 2*n)
	copy(c, prices)

	a := mat.NewDense(n+1, 2*n, nil)
	b := make([]float64, n+1)
	b[0] = 1 - minTotal
	for i := 0; i < n; i++ {
		a.Set(0, i, 1)
		a.Set(i+1, i, 1)
		a.Set(i+1, n+i, 1)
		b[i+1] = maxRatios[i] - minRatios[i]
	}

	_, z, err := lp.Simplex(c, a, b, constants.SimplexTolerance, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			return Solution{}, fmt.Errorf("%w: %v", blend.ErrInfeasible, err)
		}
		return Solution{}, fmt.Errorf("%w: %v", blend.ErrNotConverged, err)
	}

	proportions := make(blend.Blend, n)
	for i := 0; i < n; i++ {
		// Clamp away simplex round-off so callers see exact bound respect.
		proportions[i] = mathutil.Clamp(z[i]+minRatios[i], minRatios[i], maxRatios[i])
	}

	if !mathutil.WithinTolerance(proportions.Sum(), 1, constants.ProportionTolerance) {
		return Solution{}, fmt.Errorf("%w: proportions sum to %.9f", blend.ErrNotConverged, proportions.Sum())
	}

	return Solution{
		Proportions: proportions,
		Cost:        proportions.Cost(prices),
	}, nil
}

func validateInputs(prices, minRatios, maxRatios []float64) error {
	n := len(prices)
	if n == 0 {
		return fmt.Errorf("%w: at least one material is required", blend.ErrConfiguration)
	}
	if len(minRatios) != n || len(maxRatios) != n {
		return fmt.Errorf("%w: %d prices with %d minimum and %d maximum ratios",
			blend.ErrConfiguration, n, len(minRatios), len(maxRatios))
	}

	for i := 0; i < n; i++ {
		if !mathutil.IsFinite(prices[i]) || !mathutil.IsFinite(minRatios[i]) || !mathutil.IsFinite(maxRatios[i]) {
			return fmt.Errorf("%w: material %d has a non-finite price or ratio", blend.ErrConfiguration, i)
		}
		if prices[i] < 0 {
			return fmt.Errorf("%w: material %d has negative price %.2f", blend.ErrConfiguration, i, prices[i])
		}
		if minRatios[i] < 0 || minRatios[i] > 1 {
			return fmt.Errorf("%w: material %d has minimum ratio %.6f outside [0,1]", blend.ErrConfiguration, i, minRatios[i])
		}
		if maxRatios[i] < 0 || maxRatios[i] > 1 {
			return fmt.Errorf("%w: material %d has maximum ratio %.6f outside [0,1]", blend.ErrConfiguration, i, maxRatios[i])
		}
		if minRatios[i] > maxRatios[i] {
			return fmt.Errorf("%w: material %d has minimum ratio %.6f above maximum %.6f",
				blend.ErrConfiguration, i, minRatios[i], maxRatios[i])
		}
	}

	return nil
}
