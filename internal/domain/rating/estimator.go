package rating

import (
	"math"

	"github.com/jswann/ladder-api/internal/domain"
)

// estimateStrength finds the integer strength value that best satisfies all
// relations simultaneously. Relations accumulated from different historical
// comparisons may be mutually inconsistent, so an exact solution rarely
// exists; instead every integer candidate inside a bounded window is scored
// by total squared residual and the best one wins.
//
// This is a brute-force constrained least-squares fit over a 1-D integer
// domain. It is intentionally simple: the relation count per item is bounded
// by the incubation limit and the search window is narrow, so exhaustive
// search stays cheap and avoids assuming convexity of the mixed
// squared-equality / squared-hinge error function.
func estimateStrength(relations []domain.Relation, params *Params) int {
	lo, hi, ok := searchWindow(relations)
	if !ok {
		return int(params.DefaultStrength)
	}

	best := lo
	bestError := math.Inf(1)
	for candidate := lo; candidate <= hi; candidate++ {
		total := totalSquaredError(relations, candidate)
		// Replace only on strict improvement so that ties keep the lowest
		// candidate seen during the ascending scan. Serialization depends on
		// this deterministic tie-break.
		if total < bestError {
			bestError = total
			best = candidate
		}
	}

	return best
}

// searchWindow computes the integer candidate window for the estimator.
// Bounds are seeded from the first parseable relation's value, lowered by
// Equal/LessThan values and raised by Equal/GreaterThan values, then expanded
// by 1 on each side so the true optimum is never clipped at the boundary.
// Unparseable relations do not affect the window; ok is false when no
// parseable relation exists.
func searchWindow(relations []domain.Relation) (lo, hi int, ok bool) {
	var minBound, maxBound float64
	seeded := false

	for _, r := range relations {
		if !r.Parseable() {
			continue
		}
		if !seeded {
			minBound = r.Value
			maxBound = r.Value
			seeded = true
		}
		switch r.Kind {
		case domain.RelationEqual:
			if r.Value < minBound {
				minBound = r.Value
			}
			if r.Value > maxBound {
				maxBound = r.Value
			}
		case domain.RelationLessThan:
			if r.Value < minBound {
				minBound = r.Value
			}
		case domain.RelationGreaterThan:
			if r.Value > maxBound {
				maxBound = r.Value
			}
		}
	}

	if !seeded {
		return 0, 0, false
	}

	return int(math.Floor(minBound)) - 1, int(math.Ceil(maxBound)) + 1, true
}

// residual computes how badly a single relation is violated by candidate x.
// Equal relations contribute their distance; bound relations contribute only
// when the strict inequality does not hold (hinge terms); unparseable
// relations never contribute.
func residual(r domain.Relation, x int) float64 {
	xf := float64(x)
	switch r.Kind {
	case domain.RelationEqual:
		return math.Abs(r.Value - xf)
	case domain.RelationLessThan:
		return math.Max(0, xf-r.Value+1)
	case domain.RelationGreaterThan:
		return math.Max(0, r.Value-xf+1)
	default:
		return 0
	}
}

// totalSquaredError sums the squared residuals of all relations for one
// candidate strength.
func totalSquaredError(relations []domain.Relation, x int) float64 {
	var total float64
	for _, r := range relations {
		d := residual(r, x)
		total += d * d
	}
	return total
}
