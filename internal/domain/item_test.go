package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewItem(t *testing.T) {
	t.Parallel()

	listID := uuid.New()
	item, err := NewItem(listID, "Alice", 0)
	if err != nil {
		t.Fatalf("NewItem error: %v", err)
	}

	if item.ID == uuid.Nil {
		t.Error("NewItem left ID empty")
	}
	if item.ListID != listID {
		t.Errorf("ListID = %v, want %v", item.ListID, listID)
	}
	if len(item.Relations) != 0 {
		t.Errorf("fresh item has %d relations, want 0", len(item.Relations))
	}
	if item.CreatedAt != item.UpdatedAt {
		t.Error("CreatedAt and UpdatedAt differ on a fresh item")
	}
}

func TestItemValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Item)
		wantErr error
	}{
		{"valid", func(i *Item) {}, nil},
		{"empty ID", func(i *Item) { i.ID = uuid.Nil }, ErrItemIDEmpty},
		{"empty list ID", func(i *Item) { i.ListID = uuid.Nil }, ErrItemListIDEmpty},
		{"empty title", func(i *Item) { i.Title = "" }, ErrItemTitleEmpty},
		{"negative position", func(i *Item) { i.Position = -1 }, ErrItemPositionNegative},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			item, err := NewItem(uuid.New(), "Alice", 0)
			if err != nil {
				t.Fatalf("NewItem error: %v", err)
			}
			tt.mutate(item)

			err = item.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestItemSettled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		relations []Relation
		settled   bool
	}{
		{"no relations", nil, false},
		{"single equal", []Relation{NewEqualRelation(650)}, true},
		{"single bound", []Relation{NewGreaterThanRelation(618)}, false},
		{"single unparseable", []Relation{NewUnparseableRelation()}, false},
		{
			"equal plus bound",
			[]Relation{NewEqualRelation(650), NewGreaterThanRelation(618)},
			false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			item := Item{Relations: tt.relations}
			if got := item.Settled(); got != tt.settled {
				t.Errorf("Settled() = %v, want %v", got, tt.settled)
			}
			if got := item.Incubating(); got == tt.settled {
				t.Errorf("Incubating() = %v, want %v", got, !tt.settled)
			}
		})
	}
}

func TestCloneRelationsIsIndependent(t *testing.T) {
	t.Parallel()

	item := Item{Relations: []Relation{NewEqualRelation(650)}}

	cloned := item.CloneRelations()
	cloned[0] = NewLessThanRelation(100)

	if item.Relations[0].Kind != RelationEqual {
		t.Error("mutating the clone changed the original relations")
	}

	var empty Item
	if empty.CloneRelations() != nil {
		t.Error("CloneRelations on empty item should return nil")
	}
}
