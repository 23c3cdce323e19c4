package rating

import (
	"math"
	"time"

	"github.com/jswann/ladder-api/internal/domain"
)

// winProbability returns the predicted probability that an item with
// strength a beats an item with strength b, per the standard logistic
// pairing curve.
func winProbability(a, b float64, params *Params) float64 {
	return 1.0 / (1.0 + math.Pow(10.0, (b-a)/params.LogisticScale))
}

// applyOutcome creates a new Item reflecting one comparison outcome.
//
// Both paths read only the PRE-update strengths of the pair: callers must
// capture both items before applying either side's update, so that neither
// update observes the other's already-adjusted value.
//
// Settled items (single Equal relation) take a direct rating adjustment per
// the standard two-player formula and keep exactly one Equal relation at the
// full-precision new value. Incubating items instead record an implied bound
// derived from the opponent's resulting value; when the relation count
// exceeds the incubation limit the history collapses to a single Equal
// relation at the fresh estimate and the item settles.
//
// Strength is recomputed through the estimator after every update so that it
// never goes stale relative to the relation set.
func applyOutcome(
	item *domain.Item,
	opponent *domain.Item,
	won bool,
	now time.Time,
	params *Params,
) *domain.Item {
	updated := &domain.Item{
		ID:        item.ID,
		ListID:    item.ListID,
		Title:     item.Title,
		Strength:  item.Strength,
		Relations: item.CloneRelations(),
		Position:  item.Position,
		CreatedAt: item.CreatedAt,
		UpdatedAt: now,
	}

	if item.Settled() {
		p := winProbability(item.Strength, opponent.Strength, params)
		var newStrength float64
		if won {
			newStrength = item.Strength + params.KFactor*(1-p)
		} else {
			newStrength = item.Strength - params.KFactor*p
		}
		updated.Relations = []domain.Relation{domain.NewEqualRelation(newStrength)}
	} else {
		// The implied bound comes from where the opponent would land after
		// this comparison, computed from the opponent's perspective.
		pOpponent := winProbability(opponent.Strength, item.Strength, params)
		var evidence domain.Relation
		if won {
			evidence = domain.NewGreaterThanRelation(
				opponent.Strength - params.KFactor*pOpponent,
			)
		} else {
			evidence = domain.NewLessThanRelation(
				opponent.Strength + params.KFactor*(1-pOpponent),
			)
		}
		updated.Relations = append(updated.Relations, evidence)

		if len(updated.Relations) > params.IncubationLimit {
			collapsed := estimateStrength(updated.Relations, params)
			updated.Relations = []domain.Relation{
				domain.NewEqualRelation(float64(collapsed)),
			}
		}
	}

	updated.Strength = float64(estimateStrength(updated.Relations, params))

	return updated
}
