// Package list implements the list lifecycle service: creating lists from
// text, exporting them back to text, replacing their contents, and deleting
// them. All multi-item writes happen inside a single transaction.
package list

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jswann/ladder-api/internal/domain"
)

// Common error types for ListService
var (
	// ErrListNotFound indicates that the list does not exist.
	ErrListNotFound = errors.New("list not found")

	// ErrListNameTaken indicates that a list with the requested name already exists.
	ErrListNameTaken = errors.New("list name already taken")

	// ErrInvalidList indicates that the list data failed domain validation.
	ErrInvalidList = errors.New("invalid list")
)

// ListService provides methods for managing ranked lists and their items.
type ListService interface {
	// Create creates a new list with the given name. When text is non-empty
	// it is parsed with the list format codec and the resulting items are
	// stored atomically with the list.
	//
	// Returns ErrListNameTaken if the name is already in use and
	// ErrInvalidList if the name fails validation.
	Create(ctx context.Context, name, text string) (*domain.List, []*domain.Item, error)

	// Get retrieves a list and its items in canonical order (descending
	// strength, ties by original position).
	// Returns ErrListNotFound if the list does not exist.
	Get(ctx context.Context, id uuid.UUID) (*domain.List, []*domain.Item, error)

	// ReplaceText re-parses the given text and atomically replaces the
	// list's items with the parsed ones.
	// Returns ErrListNotFound if the list does not exist.
	ReplaceText(ctx context.Context, id uuid.UUID, text string) ([]*domain.Item, error)

	// Export serializes the list's items into the text format, in canonical
	// order. Returns ErrListNotFound if the list does not exist.
	Export(ctx context.Context, id uuid.UUID) (string, error)

	// Delete removes the list and, through the schema's cascade rule, all of
	// its items. Returns ErrListNotFound if the list does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
