package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jswann/ladder-api/internal/api/shared"
	"github.com/jswann/ladder-api/internal/domain"
	"github.com/jswann/ladder-api/internal/platform/logger"
	"github.com/jswann/ladder-api/internal/service/list"
)

// ListHandler handles list-related HTTP requests.
type ListHandler struct {
	listService list.ListService
	logger      *slog.Logger
}

// NewListHandler creates a new ListHandler.
func NewListHandler(listService list.ListService, logger *slog.Logger) *ListHandler {
	if listService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("listService cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ListHandler{
		listService: listService,
		logger:      logger.With(slog.String("component", "list_handler")),
	}
}

// CreateListRequest is the request body for creating a list.
type CreateListRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	Text string `json:"text"`
}

// ReplaceTextRequest is the request body for replacing a list's items from
// text. An empty text empties the list.
type ReplaceTextRequest struct {
	Text string `json:"text"`
}

// ListResponse is the response body carrying a list and its items in
// canonical order.
type ListResponse struct {
	List  *domain.List   `json:"list"`
	Items []*domain.Item `json:"items"`
}

// ItemsResponse is the response body carrying only items.
type ItemsResponse struct {
	Items []*domain.Item `json:"items"`
}

// CreateList handles POST /lists.
func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateListRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(
			w, r, http.StatusBadRequest, SanitizeValidationError(err), err,
		)
		return
	}

	created, items, err := h.listService.Create(r.Context(), req.Name, req.Text)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err,
		)
		return
	}

	log.Debug("list created via API",
		slog.String("list_id", created.ID.String()),
		slog.Int("item_count", len(items)))
	shared.RespondWithJSON(w, r, http.StatusCreated, ListResponse{List: created, Items: items})
}

// GetList handles GET /lists/{id}.
func (h *ListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	id, ok := listIDFromURL(w, r)
	if !ok {
		return
	}

	found, items, err := h.listService.Get(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err,
		)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListResponse{List: found, Items: items})
}

// ReplaceText handles PUT /lists/{id}/text.
func (h *ListHandler) ReplaceText(w http.ResponseWriter, r *http.Request) {
	id, ok := listIDFromURL(w, r)
	if !ok {
		return
	}

	var req ReplaceTextRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	items, err := h.listService.ReplaceText(r.Context(), id, req.Text)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err,
		)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ItemsResponse{Items: items})
}

// ExportList handles GET /lists/{id}/export.
func (h *ListHandler) ExportList(w http.ResponseWriter, r *http.Request) {
	id, ok := listIDFromURL(w, r)
	if !ok {
		return
	}

	text, err := h.listService.Export(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err,
		)
		return
	}

	shared.RespondWithText(w, r, http.StatusOK, text)
}

// DeleteList handles DELETE /lists/{id}.
func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	id, ok := listIDFromURL(w, r)
	if !ok {
		return
	}

	if err := h.listService.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err,
		)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listIDFromURL parses the {id} URL parameter. On failure it writes a 400
// response and returns ok=false.
func listIDFromURL(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid list ID", err)
		return uuid.Nil, false
	}
	return id, true
}
