package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/jswann/ladder-api/internal/domain"
)

// ListStore defines the interface for list data persistence.
type ListStore interface {
	// Create saves a new list to the store.
	// Returns ErrListNameExists if a list with the same name already exists.
	// Returns ErrInvalidEntity (wrapping the validation error) if the list is invalid.
	Create(ctx context.Context, list *domain.List) error

	// GetByID retrieves a list by its unique ID.
	// Returns ErrListNotFound if the list does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.List, error)

	// Touch updates the list's updated_at timestamp, marking that its items
	// changed. Returns ErrListNotFound if the list does not exist.
	Touch(ctx context.Context, id uuid.UUID) error

	// Delete removes a list from the store by its ID.
	// Returns ErrListNotFound if the list does not exist.
	//
	// Items belonging to the list are removed by the database through
	// ON DELETE CASCADE on items.list_id; application code does not delete
	// them explicitly.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ListStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) ListStore
}
