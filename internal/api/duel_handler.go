package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/jswann/ladder-api/internal/api/shared"
	"github.com/jswann/ladder-api/internal/domain"
	"github.com/jswann/ladder-api/internal/platform/logger"
	"github.com/jswann/ladder-api/internal/service/duel"
)

// DuelHandler handles duel-related HTTP requests.
type DuelHandler struct {
	duelService duel.DuelService
	logger      *slog.Logger
}

// NewDuelHandler creates a new DuelHandler.
func NewDuelHandler(duelService duel.DuelService, logger *slog.Logger) *DuelHandler {
	if duelService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("duelService cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &DuelHandler{
		duelService: duelService,
		logger:      logger.With(slog.String("component", "duel_handler")),
	}
}

// SubmitDuelRequest is the request body for recording a duel outcome.
type SubmitDuelRequest struct {
	WinnerID uuid.UUID `json:"winner_id" validate:"required"`
	LoserID  uuid.UUID `json:"loser_id"  validate:"required"`
}

// DuelPairResponse is the response body for the next comparison pair.
type DuelPairResponse struct {
	First  *domain.Item `json:"first"`
	Second *domain.Item `json:"second"`
}

// NextDuel handles GET /lists/{id}/duels/next.
// A list with fewer than two items yields 204 No Content: there is nothing
// to compare, which is not an error.
func (h *DuelHandler) NextDuel(w http.ResponseWriter, r *http.Request) {
	listID, ok := listIDFromURL(w, r)
	if !ok {
		return
	}

	first, second, err := h.duelService.NextPair(r.Context(), listID)
	if err != nil {
		if errors.Is(err, duel.ErrNotEnoughItems) {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err,
		)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DuelPairResponse{First: first, Second: second})
}

// SubmitDuel handles POST /lists/{id}/duels.
func (h *DuelHandler) SubmitDuel(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	listID, ok := listIDFromURL(w, r)
	if !ok {
		return
	}

	var req SubmitDuelRequest
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

	result, err := h.duelService.SubmitResult(r.Context(), listID, req.WinnerID, req.LoserID)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err,
		)
		return
	}

	log.Debug("duel recorded via API",
		slog.String("list_id", listID.String()),
		slog.String("winner_id", req.WinnerID.String()),
		slog.String("loser_id", req.LoserID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
