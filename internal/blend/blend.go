// Package blend defines the core data structures for material blends and
// includes functions for deriving cost metrics from them.
package blend

import (
	"fmt"

	"github.com/Qiqian1999/sement/pkg/mathutil"
)

// Material describes one raw material available to a blend.
type Material struct {
	Name           string
	Price          float64 // currency per tonne
	MinRatio       float64 // fraction in [0,1]
	MaxRatio       float64 // fraction in [0,1], MinRatio <= MaxRatio
	ReferenceRatio float64 // baseline blend share, fraction in [0,1]
}

// Blend is an ordered sequence of proportions, one per material, summing to 1.
// A Blend is never mutated after it is produced.
type Blend []float64

// Sum returns the total of all proportions in the blend.
func (b Blend) Sum() float64 {
	return mathutil.Sum(b)
}

// Cost returns the total cost of the blend at the given unit prices.
func (b Blend) Cost(prices []float64) float64 {
	return mathutil.Dot(b, prices)
}

// Breakdown returns the per-material cost contributions (proportion * price).
// It is derived on demand and never cached.
func (b Blend) Breakdown(prices []float64) []float64 {
	contributions := make([]float64, len(b))
	for i := range b {
		contributions[i] = b[i] * prices[i]
	}
	return contributions
}

// Comparison holds the cost metrics for a reference blend against the
// optimized one over the same material ordering.
type Comparison struct {
	ReferenceCost      float64
	OptimalCost        float64
	Savings            float64 // ReferenceCost - OptimalCost; may be <= 0
	ReferenceBreakdown []float64
	OptimalBreakdown   []float64
}

// Compare computes the cost metrics for a reference and an optimal blend.
// The two blends and the price list must share one material ordering; a
// length mismatch is a configuration error, not a data error.
func Compare(reference, optimal Blend, prices []float64) (Comparison, error) {
	if len(reference) != len(optimal) {
		return Comparison{}, fmt.Errorf("%w: reference blend has %d proportions but optimal blend has %d",
			ErrConfiguration, len(reference), len(optimal))
	}
	if len(prices) != len(reference) {
		return Comparison{}, fmt.Errorf("%w: %d prices for %d proportions",
			ErrConfiguration, len(prices), len(reference))
	}

	referenceCost := reference.Cost(prices)
	optimalCost := optimal.Cost(prices)

	return Comparison{
		ReferenceCost:      referenceCost,
		OptimalCost:        optimalCost,
		Savings:            referenceCost - optimalCost,
		ReferenceBreakdown: reference.Breakdown(prices),
		OptimalBreakdown:   optimal.Breakdown(prices),
	}, nil
}
