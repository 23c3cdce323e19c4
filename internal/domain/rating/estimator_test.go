package rating

import (
	"testing"

	"github.com/jswann/ladder-api/internal/domain"
)

func TestEstimateDefaultStrength(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name      string
		relations []domain.Relation
	}{
		{
			name:      "No relations",
			relations: nil,
		},
		{
			name:      "Empty relation slice",
			relations: []domain.Relation{},
		},
		{
			name: "Only unparseable relations",
			relations: []domain.Relation{
				domain.NewUnparseableRelation(),
				domain.NewUnparseableRelation(),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := estimateStrength(tc.relations, params)

			if got != 600 {
				t.Errorf("Expected default strength 600, got %d", got)
			}
		})
	}
}

func TestEstimateSingleEqual(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		value    float64
		expected int
	}{
		{
			name:     "Integral value is returned exactly",
			value:    650,
			expected: 650,
		},
		{
			name:     "Fraction below half rounds down",
			value:    650.4,
			expected: 650,
		},
		{
			name:     "Fraction above half rounds up",
			value:    649.6,
			expected: 650,
		},
		{
			name:     "Exact half ties to the lower candidate",
			value:    664.5,
			expected: 664, // 664 and 665 have equal error; first seen wins
		},
		{
			name:     "Negative value",
			value:    -12.25,
			expected: -12,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := estimateStrength([]domain.Relation{domain.NewEqualRelation(tc.value)}, params)

			if got != tc.expected {
				t.Errorf("Expected estimate %d for Equal(%v), got %d", tc.expected, tc.value, got)
			}
		})
	}
}

func TestEstimateBounds(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name      string
		relations []domain.Relation
		expected  int
	}{
		{
			name: "Single greater-than bound pushes above the value",
			relations: []domain.Relation{
				domain.NewGreaterThanRelation(700),
			},
			expected: 701, // first zero-error candidate in the window
		},
		{
			name: "Single less-than bound pushes below the value",
			relations: []domain.Relation{
				domain.NewLessThanRelation(700),
			},
			expected: 699,
		},
		{
			name: "Equality pulled upward by a conflicting floor",
			relations: []domain.Relation{
				domain.NewEqualRelation(650),
				domain.NewGreaterThanRelation(700),
			},
			expected: 675, // 675 and 676 tie; lowest candidate wins
		},
		{
			name: "Equality pulled downward by a conflicting ceiling",
			relations: []domain.Relation{
				domain.NewEqualRelation(600),
				domain.NewLessThanRelation(590),
			},
			expected: 594, // 594 and 595 tie; lowest candidate wins
		},
		{
			name: "Unparseable relations are ignored",
			relations: []domain.Relation{
				domain.NewUnparseableRelation(),
				domain.NewEqualRelation(610),
				domain.NewUnparseableRelation(),
			},
			expected: 610,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := estimateStrength(tc.relations, params)

			if got != tc.expected {
				t.Errorf("Expected estimate %d, got %d", tc.expected, got)
			}
		})
	}
}

// TestEstimateWindowOptimality exhaustively verifies the local-optimality
// property: no integer inside the search window has a strictly smaller total
// squared error than the returned estimate.
func TestEstimateWindowOptimality(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	relationSets := [][]domain.Relation{
		{
			domain.NewGreaterThanRelation(612.5),
			domain.NewLessThanRelation(640.25),
			domain.NewGreaterThanRelation(618),
		},
		{
			domain.NewEqualRelation(600),
			domain.NewGreaterThanRelation(630),
			domain.NewLessThanRelation(590),
		},
		{
			domain.NewLessThanRelation(500),
			domain.NewLessThanRelation(520.75),
			domain.NewGreaterThanRelation(480.5),
			domain.NewEqualRelation(510),
		},
	}

	for i, relations := range relationSets {
		estimate := estimateStrength(relations, params)
		bestError := totalSquaredError(relations, estimate)

		lo, hi, ok := searchWindow(relations)
		if !ok {
			t.Fatalf("set %d: expected a seeded search window", i)
		}

		for x := lo; x <= hi; x++ {
			if err := totalSquaredError(relations, x); err < bestError {
				t.Errorf("set %d: candidate %d has error %f, below estimate %d's %f",
					i, x, err, estimate, bestError)
			}
		}
	}
}

func TestSearchWindowSeeding(t *testing.T) {
	t.Parallel() // Enable parallel execution

	relations := []domain.Relation{
		domain.NewGreaterThanRelation(700),
		domain.NewGreaterThanRelation(800),
	}

	lo, hi, ok := searchWindow(relations)
	if !ok {
		t.Fatal("expected a seeded window")
	}

	// Seeded from the first value (700), raised to 800, expanded by 1.
	if lo != 699 || hi != 801 {
		t.Errorf("Expected window [699, 801], got [%d, %d]", lo, hi)
	}
}
