package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/jswann/ladder-api/internal/domain"
)

// ItemStore defines the interface for item data persistence.
type ItemStore interface {
	// CreateMultiple saves multiple items to the store.
	// IMPORTANT: This method MUST be run within a transaction for atomicity.
	// Use the WithTx method with store.RunInTransaction to ensure proper
	// transaction handling; calling it outside a transaction may result in
	// partial insertion if failures occur.
	//
	// All items must be valid according to domain validation rules.
	// Returns ErrInvalidEntity (wrapping the validation error) otherwise.
	CreateMultiple(ctx context.Context, items []*domain.Item) error

	// GetByID retrieves an item by its unique ID.
	// Returns ErrItemNotFound if the item does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)

	// GetForUpdate retrieves an item by ID with a row-level lock
	// (SELECT ... FOR UPDATE). It MUST be called within a transaction;
	// the lock is held until the transaction ends.
	// Returns ErrItemNotFound if the item does not exist.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Item, error)

	// Update persists the item's current strength, relations, and timestamps.
	// Title, list membership, and position are immutable after creation.
	// Returns ErrItemNotFound if the item does not exist.
	Update(ctx context.Context, item *domain.Item) error

	// FindByList retrieves all items belonging to the given list, ordered by
	// descending strength with position as the tiebreaker.
	// Returns an empty slice when the list has no items.
	FindByList(ctx context.Context, listID uuid.UUID) ([]*domain.Item, error)

	// DeleteByList removes all items belonging to the given list.
	// Used when replacing a list's contents from imported text; MUST be run
	// within the same transaction as the subsequent CreateMultiple.
	DeleteByList(ctx context.Context, listID uuid.UUID) error

	// WithTx returns a new ItemStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) ItemStore
}
