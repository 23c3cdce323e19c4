package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// List-specific validation errors
var (
	// ErrListIDEmpty is returned when a list ID is empty or nil.
	ErrListIDEmpty = errors.New("list ID cannot be empty")

	// ErrListNameEmpty is returned when a list's name is empty.
	ErrListNameEmpty = errors.New("list name cannot be empty")
)

// List is a named collection of ranked items. The canonical ordering of a
// list's items is descending by strength with ties keeping input order.
type List struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewList creates a new List with the given name.
// It generates a new UUID for the list ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewList(name string) (*List, error) {
	now := time.Now().UTC()
	list := &List{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := list.Validate(); err != nil {
		return nil, err
	}

	return list, nil
}

// Validate checks if the List has valid data.
// Returns an error if any field fails validation.
func (l *List) Validate() error {
	if l.ID == uuid.Nil {
		return ErrListIDEmpty
	}

	if l.Name == "" {
		return ErrListNameEmpty
	}

	return nil
}
