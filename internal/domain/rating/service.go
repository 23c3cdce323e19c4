package rating

import (
	"errors"
	"time"

	"github.com/jswann/ladder-api/internal/domain"
)

// Common errors
var (
	ErrNilItem     = errors.New("item cannot be nil")
	ErrNilOpponent = errors.New("opponent cannot be nil")
)

// Service defines the interface for rating engine operations.
type Service interface {
	// Estimate computes the best-fit integer strength for a relation set.
	// An empty (or entirely unparseable) relation set yields the default
	// strength.
	Estimate(relations []domain.Relation) int

	// ApplyWin computes a new Item reflecting a win against opponent.
	// The opponent's strength must be its value from before either item in
	// the pair was updated.
	ApplyWin(item, opponent *domain.Item, now time.Time) (*domain.Item, error)

	// ApplyLoss computes a new Item reflecting a loss against opponent.
	// The opponent's strength must be its value from before either item in
	// the pair was updated.
	ApplyLoss(item, opponent *domain.Item, now time.Time) (*domain.Item, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new rating service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new rating service with custom parameters
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// Estimate implements the Service interface.
func (s *defaultService) Estimate(relations []domain.Relation) int {
	return estimateStrength(relations, s.params)
}

// ApplyWin implements the Service interface.
func (s *defaultService) ApplyWin(
	item, opponent *domain.Item,
	now time.Time,
) (*domain.Item, error) {
	if item == nil {
		return nil, ErrNilItem
	}
	if opponent == nil {
		return nil, ErrNilOpponent
	}

	return applyOutcome(item, opponent, true, now, s.params), nil
}

// ApplyLoss implements the Service interface.
func (s *defaultService) ApplyLoss(
	item, opponent *domain.Item,
	now time.Time,
) (*domain.Item, error) {
	if item == nil {
		return nil, ErrNilItem
	}
	if opponent == nil {
		return nil, ErrNilOpponent
	}

	return applyOutcome(item, opponent, false, now, s.params), nil
}
