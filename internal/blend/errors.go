package blend

import "errors"

// Sentinel errors shared by the blend and solver layers. Callers should test
// for them with errors.Is; wrapped messages carry the specifics.
var (
	// ErrConfiguration indicates malformed caller input: mismatched vector
	// lengths, min > max, negative prices, ratios outside [0,1]. Never
	// retried and never silently corrected.
	ErrConfiguration = errors.New("invalid blend configuration")

	// ErrInfeasible indicates well-formed bounds that no proportion vector
	// summing to 1 can satisfy. A valid outcome, not a bug.
	ErrInfeasible = errors.New("no feasible blend satisfies the proportion bounds")

	// ErrNotConverged indicates the LP method failed within its iteration or
	// numeric limits despite the problem not being provably infeasible.
	ErrNotConverged = errors.New("blend solver did not converge")
)
