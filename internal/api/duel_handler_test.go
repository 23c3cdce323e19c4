package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jswann/ladder-api/internal/domain"
	"github.com/jswann/ladder-api/internal/service/duel"
)

// stubDuelService implements duel.DuelService with overridable functions.
type stubDuelService struct {
	nextPairFn func(ctx context.Context, listID uuid.UUID) (*domain.Item, *domain.Item, error)
	submitFn   func(ctx context.Context, listID, winnerID, loserID uuid.UUID) (*duel.Result, error)
}

var _ duel.DuelService = (*stubDuelService)(nil)

func (s *stubDuelService) NextPair(
	ctx context.Context,
	listID uuid.UUID,
) (*domain.Item, *domain.Item, error) {
	return s.nextPairFn(ctx, listID)
}

func (s *stubDuelService) SubmitResult(
	ctx context.Context,
	listID, winnerID, loserID uuid.UUID,
) (*duel.Result, error) {
	return s.submitFn(ctx, listID, winnerID, loserID)
}

func newDuelRouter(svc duel.DuelService) http.Handler {
	h := NewDuelHandler(svc, nil)

	r := chi.NewRouter()
	r.Get("/lists/{id}/duels/next", h.NextDuel)
	r.Post("/lists/{id}/duels", h.SubmitDuel)
	return r
}

func testItem(t *testing.T, listID uuid.UUID, title string, strength float64) *domain.Item {
	t.Helper()

	item, err := domain.NewItem(listID, title, 0)
	require.NoError(t, err)
	item.Strength = strength
	item.Relations = []domain.Relation{domain.NewEqualRelation(strength)}
	return item
}

func TestNextDuel(t *testing.T) {
	t.Parallel()

	listID := uuid.New()
	alice := testItem(t, listID, "Alice", 650)
	bob := testItem(t, listID, "Bob", 600)

	svc := &stubDuelService{
		nextPairFn: func(ctx context.Context, id uuid.UUID) (*domain.Item, *domain.Item, error) {
			assert.Equal(t, listID, id)
			return alice, bob, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/lists/"+listID.String()+"/duels/next", nil)
	rec := httptest.NewRecorder()
	newDuelRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp DuelPairResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Alice", resp.First.Title)
	assert.Equal(t, "Bob", resp.Second.Title)
}

func TestNextDuelNotEnoughItems(t *testing.T) {
	t.Parallel()

	svc := &stubDuelService{
		nextPairFn: func(ctx context.Context, id uuid.UUID) (*domain.Item, *domain.Item, error) {
			return nil, nil, duel.ErrNotEnoughItems
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/lists/"+uuid.NewString()+"/duels/next", nil)
	rec := httptest.NewRecorder()
	newDuelRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestNextDuelListNotFound(t *testing.T) {
	t.Parallel()

	svc := &stubDuelService{
		nextPairFn: func(ctx context.Context, id uuid.UUID) (*domain.Item, *domain.Item, error) {
			return nil, nil, duel.ErrListNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/lists/"+uuid.NewString()+"/duels/next", nil)
	rec := httptest.NewRecorder()
	newDuelRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitDuel(t *testing.T) {
	t.Parallel()

	listID := uuid.New()
	winner := testItem(t, listID, "Alice", 664)
	loser := testItem(t, listID, "Bob", 586)

	svc := &stubDuelService{
		submitFn: func(ctx context.Context, id, winnerID, loserID uuid.UUID) (*duel.Result, error) {
			assert.Equal(t, listID, id)
			assert.Equal(t, winner.ID, winnerID)
			assert.Equal(t, loser.ID, loserID)
			return &duel.Result{Winner: winner, Loser: loser}, nil
		},
	}

	body := fmt.Sprintf(`{"winner_id":%q,"loser_id":%q}`, winner.ID, loser.ID)
	req := httptest.NewRequest(
		http.MethodPost,
		"/lists/"+listID.String()+"/duels",
		strings.NewReader(body),
	)
	rec := httptest.NewRecorder()
	newDuelRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp duel.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Alice", resp.Winner.Title)
	assert.Equal(t, float64(664), resp.Winner.Strength)
}

func TestSubmitDuelMissingIDs(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(
		http.MethodPost,
		"/lists/"+uuid.NewString()+"/duels",
		strings.NewReader(`{}`),
	)
	rec := httptest.NewRecorder()
	newDuelRouter(&stubDuelService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitDuelNotDistinct(t *testing.T) {
	t.Parallel()

	svc := &stubDuelService{
		submitFn: func(ctx context.Context, id, winnerID, loserID uuid.UUID) (*duel.Result, error) {
			return nil, duel.ErrItemsNotDistinct
		},
	}

	itemID := uuid.NewString()
	body := fmt.Sprintf(`{"winner_id":%q,"loser_id":%q}`, itemID, itemID)
	req := httptest.NewRequest(
		http.MethodPost,
		"/lists/"+uuid.NewString()+"/duels",
		strings.NewReader(body),
	)
	rec := httptest.NewRecorder()
	newDuelRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "different items")
}
