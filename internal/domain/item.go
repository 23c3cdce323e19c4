package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Item-specific validation errors
var (
	// ErrItemIDEmpty is returned when an item ID is empty or nil.
	ErrItemIDEmpty = errors.New("item ID cannot be empty")

	// ErrItemListIDEmpty is returned when an item's list ID is empty or nil.
	ErrItemListIDEmpty = errors.New("item list ID cannot be empty")

	// ErrItemTitleEmpty is returned when an item's title is empty.
	ErrItemTitleEmpty = errors.New("item title cannot be empty")

	// ErrItemPositionNegative is returned when an item's position is negative.
	ErrItemPositionNegative = errors.New("item position cannot be negative")
)

// Item is one entry in a ranked list. Strength is a derived value: it is
// always the estimator's output for the current relation set (or the default
// strength when the relation set is empty), never independently authoritative.
// Relations grow by one per comparison while the item is incubating and
// collapse to a single Equal relation once the item settles.
type Item struct {
	ID        uuid.UUID  `json:"id"`
	ListID    uuid.UUID  `json:"list_id"`
	Title     string     `json:"title"`
	Strength  float64    `json:"strength"`
	Relations []Relation `json:"relations"`
	Position  int        `json:"position"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewItem creates a new Item with the given list ID, title, and input
// position. It generates a new UUID for the item ID and sets the
// creation/update timestamps. Returns an error if validation fails.
// The caller is responsible for setting Strength and Relations; a fresh item
// has no relations and the default strength.
func NewItem(listID uuid.UUID, title string, position int) (*Item, error) {
	now := time.Now().UTC()
	item := &Item{
		ID:        uuid.New(),
		ListID:    listID,
		Title:     title,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the Item has valid data.
// Returns an error if any field fails validation.
func (i *Item) Validate() error {
	if i.ID == uuid.Nil {
		return ErrItemIDEmpty
	}

	if i.ListID == uuid.Nil {
		return ErrItemListIDEmpty
	}

	if i.Title == "" {
		return ErrItemTitleEmpty
	}

	if i.Position < 0 {
		return ErrItemPositionNegative
	}

	return nil
}

// Settled reports whether the item's relation history has collapsed to a
// single equality, i.e. the item has a confident, non-provisional strength.
// An item with zero relations is new, not settled.
func (i *Item) Settled() bool {
	return len(i.Relations) == 1 && i.Relations[0].Kind == RelationEqual
}

// Incubating reports whether the item is still accumulating comparison
// evidence. New items (zero relations) are incubating.
func (i *Item) Incubating() bool {
	return !i.Settled()
}

// CloneRelations returns an independent copy of the item's relation slice so
// that updates can build a new relation set without aliasing the original.
func (i *Item) CloneRelations() []Relation {
	if len(i.Relations) == 0 {
		return nil
	}
	relations := make([]Relation, len(i.Relations))
	copy(relations, i.Relations)
	return relations
}

// Note: Items carry no mutating update methods. Comparison outcomes are
// applied through rating.Service, which follows immutability principles by
// returning new instances rather than modifying existing ones.
