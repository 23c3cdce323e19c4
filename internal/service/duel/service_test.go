package duel

import (
	"context"
	"database/sql"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jswann/ladder-api/internal/domain"
	"github.com/jswann/ladder-api/internal/domain/rating"
	"github.com/jswann/ladder-api/internal/store"
)

// fakeListStore is an in-memory ListStore for unit tests.
type fakeListStore struct {
	lists   map[uuid.UUID]*domain.List
	touched map[uuid.UUID]int
}

func newFakeListStore() *fakeListStore {
	return &fakeListStore{
		lists:   make(map[uuid.UUID]*domain.List),
		touched: make(map[uuid.UUID]int),
	}
}

func (f *fakeListStore) Create(ctx context.Context, list *domain.List) error {
	copied := *list
	f.lists[list.ID] = &copied
	return nil
}

func (f *fakeListStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.List, error) {
	list, ok := f.lists[id]
	if !ok {
		return nil, store.ErrListNotFound
	}
	copied := *list
	return &copied, nil
}

func (f *fakeListStore) Touch(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.lists[id]; !ok {
		return store.ErrListNotFound
	}
	f.touched[id]++
	return nil
}

func (f *fakeListStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.lists, id)
	return nil
}

func (f *fakeListStore) WithTx(tx *sql.Tx) store.ListStore { return f }

// fakeItemStore is an in-memory ItemStore for unit tests.
type fakeItemStore struct {
	items map[uuid.UUID]*domain.Item
}

func newFakeItemStore() *fakeItemStore {
	return &fakeItemStore{items: make(map[uuid.UUID]*domain.Item)}
}

func (f *fakeItemStore) CreateMultiple(ctx context.Context, items []*domain.Item) error {
	for _, item := range items {
		copied := *item
		f.items[item.ID] = &copied
	}
	return nil
}

func (f *fakeItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, store.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeItemStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeItemStore) Update(ctx context.Context, item *domain.Item) error {
	if _, ok := f.items[item.ID]; !ok {
		return store.ErrItemNotFound
	}
	copied := *item
	f.items[item.ID] = &copied
	return nil
}

func (f *fakeItemStore) FindByList(
	ctx context.Context,
	listID uuid.UUID,
) ([]*domain.Item, error) {
	var items []*domain.Item
	for _, item := range f.items {
		if item.ListID == listID {
			copied := *item
			items = append(items, &copied)
		}
	}
	return items, nil
}

func (f *fakeItemStore) DeleteByList(ctx context.Context, listID uuid.UUID) error {
	for id, item := range f.items {
		if item.ListID == listID {
			delete(f.items, id)
		}
	}
	return nil
}

func (f *fakeItemStore) WithTx(tx *sql.Tx) store.ItemStore { return f }

func passthroughTx(ctx context.Context, db *sql.DB, fn store.TxFn) error {
	return fn(ctx, nil)
}

// seedItem stores a settled item with the given strength.
func seedItem(t *testing.T, items *fakeItemStore, listID uuid.UUID, title string, strength float64) *domain.Item {
	t.Helper()

	item, err := domain.NewItem(listID, title, 0)
	require.NoError(t, err)
	item.Strength = strength
	item.Relations = []domain.Relation{domain.NewEqualRelation(strength)}

	require.NoError(t, items.CreateMultiple(context.Background(), []*domain.Item{item}))
	return item
}

func newTestService(lists *fakeListStore, items *fakeItemStore) *duelServiceImpl {
	return &duelServiceImpl{
		lists:  lists,
		items:  items,
		rating: rating.NewDefaultService(),
		intn:   func(n int) int { return 0 },
		runTx:  passthroughTx,
	}
}

func seedList(t *testing.T, lists *fakeListStore) *domain.List {
	t.Helper()

	list, err := domain.NewList("books")
	require.NoError(t, err)
	require.NoError(t, lists.Create(context.Background(), list))
	return list
}

func TestNextPairReturnsDistinctItems(t *testing.T) {
	t.Parallel()

	lists := newFakeListStore()
	items := newFakeItemStore()
	svc := newTestService(lists, items)
	list := seedList(t, lists)

	seedItem(t, items, list.ID, "Alice", 650)
	seedItem(t, items, list.ID, "Bob", 600)
	seedItem(t, items, list.ID, "Carol", 620)

	first, second, err := svc.NextPair(context.Background(), list.ID)
	require.NoError(t, err)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, list.ID, first.ListID)
	assert.Equal(t, list.ID, second.ListID)
}

func TestNextPairCoversAllSecondChoices(t *testing.T) {
	t.Parallel()

	lists := newFakeListStore()
	items := newFakeItemStore()
	list := seedList(t, lists)

	seedItem(t, items, list.ID, "Alice", 650)
	seedItem(t, items, list.ID, "Bob", 600)

	// The second draw is over n-1 slots and skips past the first index, so
	// every returned pair must still be distinct whatever the draws are.
	for firstDraw := 0; firstDraw < 2; firstDraw++ {
		draws := []int{firstDraw, 0}
		svc := newTestService(lists, items)
		svc.intn = func(n int) int {
			d := draws[0] % n
			draws = draws[1:]
			return d
		}

		first, second, err := svc.NextPair(context.Background(), list.ID)
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	}
}

func TestNextPairNotEnoughItems(t *testing.T) {
	t.Parallel()

	lists := newFakeListStore()
	items := newFakeItemStore()
	svc := newTestService(lists, items)
	list := seedList(t, lists)

	seedItem(t, items, list.ID, "Alice", 650)

	_, _, err := svc.NextPair(context.Background(), list.ID)
	assert.ErrorIs(t, err, ErrNotEnoughItems)
}

func TestNextPairListNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeListStore(), newFakeItemStore())

	_, _, err := svc.NextPair(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrListNotFound)
}

func TestSubmitResultUpdatesBothFromSnapshots(t *testing.T) {
	t.Parallel()

	lists := newFakeListStore()
	items := newFakeItemStore()
	svc := newTestService(lists, items)
	list := seedList(t, lists)

	alice := seedItem(t, items, list.ID, "Alice", 650)
	bob := seedItem(t, items, list.ID, "Bob", 600)

	result, err := svc.SubmitResult(context.Background(), list.ID, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, result)

	// Both settled, so each gets a direct adjustment computed from the
	// pre-update strengths.
	pWin := 1.0 / (1.0 + math.Pow(10, (600.0-650.0)/400.0))
	wantWinner := 650 + 32*(1-pWin)
	wantLoser := 600 - 32*(1-pWin)

	require.Len(t, result.Winner.Relations, 1)
	require.Len(t, result.Loser.Relations, 1)
	assert.InDelta(t, wantWinner, result.Winner.Relations[0].Value, 1e-9)
	assert.InDelta(t, wantLoser, result.Loser.Relations[0].Value, 1e-9)

	// Persisted state matches the returned items.
	storedWinner, err := items.GetByID(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Winner.Strength, storedWinner.Strength)

	storedLoser, err := items.GetByID(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Loser.Strength, storedLoser.Strength)

	assert.Equal(t, 1, lists.touched[list.ID])
}

func TestSubmitResultIncubatingAppendsBound(t *testing.T) {
	t.Parallel()

	lists := newFakeListStore()
	items := newFakeItemStore()
	svc := newTestService(lists, items)
	list := seedList(t, lists)

	alice := seedItem(t, items, list.ID, "Alice", 650)

	// A brand-new item has no relations and participates at the default
	// strength.
	fresh, err := domain.NewItem(list.ID, "Newcomer", 1)
	require.NoError(t, err)
	fresh.Strength = 600
	require.NoError(t, items.CreateMultiple(context.Background(), []*domain.Item{fresh}))

	result, err := svc.SubmitResult(context.Background(), list.ID, fresh.ID, alice.ID)
	require.NoError(t, err)

	require.Len(t, result.Winner.Relations, 1)
	assert.Equal(t, domain.RelationGreaterThan, result.Winner.Relations[0].Kind)
}

func TestSubmitResultSameItem(t *testing.T) {
	t.Parallel()

	lists := newFakeListStore()
	items := newFakeItemStore()
	svc := newTestService(lists, items)
	list := seedList(t, lists)

	alice := seedItem(t, items, list.ID, "Alice", 650)

	_, err := svc.SubmitResult(context.Background(), list.ID, alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrItemsNotDistinct)
}

func TestSubmitResultItemNotFound(t *testing.T) {
	t.Parallel()

	lists := newFakeListStore()
	items := newFakeItemStore()
	svc := newTestService(lists, items)
	list := seedList(t, lists)

	alice := seedItem(t, items, list.ID, "Alice", 650)

	_, err := svc.SubmitResult(context.Background(), list.ID, alice.ID, uuid.New())
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestSubmitResultListMismatch(t *testing.T) {
	t.Parallel()

	lists := newFakeListStore()
	items := newFakeItemStore()
	svc := newTestService(lists, items)
	list := seedList(t, lists)

	other, err := domain.NewList("other")
	require.NoError(t, err)
	require.NoError(t, lists.Create(context.Background(), other))

	alice := seedItem(t, items, list.ID, "Alice", 650)
	stranger := seedItem(t, items, other.ID, "Stranger", 600)

	_, err = svc.SubmitResult(context.Background(), list.ID, alice.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrListMismatch)
}
