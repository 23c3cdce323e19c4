// Package duel implements pairwise comparison rounds: choosing which two
// items to compare next and recording the outcome of a comparison against
// both items' ratings atomically.
package duel

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jswann/ladder-api/internal/domain"
)

// Common error types for DuelService
var (
	// ErrListNotFound indicates that the list does not exist.
	ErrListNotFound = errors.New("list not found")

	// ErrNotEnoughItems indicates that the list has fewer than two items,
	// so no pair can be formed.
	ErrNotEnoughItems = errors.New("not enough items for a duel")

	// ErrItemNotFound indicates that one of the referenced items does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemsNotDistinct indicates that the winner and loser are the same item.
	ErrItemsNotDistinct = errors.New("winner and loser must be distinct items")

	// ErrListMismatch indicates that a referenced item belongs to a different list.
	ErrListMismatch = errors.New("item does not belong to the list")
)

// Result holds the two items after a duel outcome has been applied.
type Result struct {
	Winner *domain.Item `json:"winner"`
	Loser  *domain.Item `json:"loser"`
}

// DuelService chooses comparison pairs and records comparison outcomes.
type DuelService interface {
	// NextPair picks two distinct items from the list, uniformly at random.
	// Returns ErrListNotFound if the list does not exist and
	// ErrNotEnoughItems if it holds fewer than two items.
	NextPair(ctx context.Context, listID uuid.UUID) (*domain.Item, *domain.Item, error)

	// SubmitResult records a duel outcome. In a single transaction it locks
	// both items, snapshots their pre-update strengths, applies the win and
	// loss updates from those snapshots, and persists both items.
	//
	// Returns ErrItemsNotDistinct if winnerID equals loserID,
	// ErrItemNotFound if either item does not exist, and ErrListMismatch if
	// either item belongs to a different list.
	SubmitResult(
		ctx context.Context,
		listID, winnerID, loserID uuid.UUID,
	) (*Result, error)
}
