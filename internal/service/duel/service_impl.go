package duel

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/jswann/ladder-api/internal/domain"
	"github.com/jswann/ladder-api/internal/domain/rating"
	"github.com/jswann/ladder-api/internal/platform/logger"
	"github.com/jswann/ladder-api/internal/store"
)

// Verify interface compliance at compile time
var _ DuelService = (*duelServiceImpl)(nil)

// duelServiceImpl implements the DuelService interface.
type duelServiceImpl struct {
	db     *sql.DB
	lists  store.ListStore
	items  store.ItemStore
	rating rating.Service
	logger *slog.Logger

	// intn returns a uniform random int in [0, n). Replaceable in tests.
	intn func(n int) int

	// runTx executes a function within a database transaction.
	// Replaceable in tests.
	runTx func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewDuelService creates a new DuelService implementation.
func NewDuelService(
	db *sql.DB,
	lists store.ListStore,
	items store.ItemStore,
	ratingService rating.Service,
	logger *slog.Logger,
) DuelService {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if lists == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("lists cannot be nil")
	}
	if items == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("items cannot be nil")
	}
	if ratingService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("ratingService cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &duelServiceImpl{
		db:     db,
		lists:  lists,
		items:  items,
		rating: ratingService,
		logger: logger.With(slog.String("component", "duel_service")),
		intn:   rand.Intn,
		runTx:  store.RunInTransaction,
	}
}

// NextPair implements DuelService.NextPair.
// Selection is uniform over distinct pairs; no scheduling heuristics.
func (s *duelServiceImpl) NextPair(
	ctx context.Context,
	listID uuid.UUID,
) (*domain.Item, *domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.lists.GetByID(ctx, listID); err != nil {
		if errors.Is(err, store.ErrListNotFound) {
			return nil, nil, ErrListNotFound
		}
		return nil, nil, fmt.Errorf("failed to get list: %w", err)
	}

	items, err := s.items.FindByList(ctx, listID)
	if err != nil {
		log.Error("failed to load items for pairing",
			slog.String("error", err.Error()),
			slog.String("list_id", listID.String()))
		return nil, nil, fmt.Errorf("failed to load items: %w", err)
	}

	if len(items) < 2 {
		log.Debug("not enough items for a duel",
			slog.String("list_id", listID.String()),
			slog.Int("item_count", len(items)))
		return nil, nil, ErrNotEnoughItems
	}

	first := s.intn(len(items))
	second := s.intn(len(items) - 1)
	if second >= first {
		second++
	}

	return items[first], items[second], nil
}

// SubmitResult implements DuelService.SubmitResult.
func (s *duelServiceImpl) SubmitResult(
	ctx context.Context,
	listID, winnerID, loserID uuid.UUID,
) (*Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if winnerID == loserID {
		log.Warn("duel submitted with identical items",
			slog.String("list_id", listID.String()),
			slog.String("item_id", winnerID.String()))
		return nil, ErrItemsNotDistinct
	}

	var result *Result
	err := s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txItems := s.items.WithTx(tx)

		winner, loser, err := lockPair(ctx, txItems, winnerID, loserID)
		if err != nil {
			return err
		}

		if winner.ListID != listID || loser.ListID != listID {
			return ErrListMismatch
		}

		// Both updates must read the opponent's strength as it was before
		// either update, so snapshot before applying.
		winnerSnap := *winner
		loserSnap := *loser
		now := time.Now().UTC()

		updatedWinner, err := s.rating.ApplyWin(&winnerSnap, &loserSnap, now)
		if err != nil {
			return fmt.Errorf("failed to apply win: %w", err)
		}
		updatedLoser, err := s.rating.ApplyLoss(&loserSnap, &winnerSnap, now)
		if err != nil {
			return fmt.Errorf("failed to apply loss: %w", err)
		}

		if err := txItems.Update(ctx, updatedWinner); err != nil {
			return fmt.Errorf("failed to persist winner: %w", err)
		}
		if err := txItems.Update(ctx, updatedLoser); err != nil {
			return fmt.Errorf("failed to persist loser: %w", err)
		}

		if err := s.lists.WithTx(tx).Touch(ctx, listID); err != nil {
			return fmt.Errorf("failed to touch list: %w", err)
		}

		result = &Result{Winner: updatedWinner, Loser: updatedLoser}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrItemNotFound) || errors.Is(err, ErrListMismatch) {
			return nil, err
		}
		if errors.Is(err, store.ErrListNotFound) {
			return nil, ErrListNotFound
		}

		log.Error("failed to submit duel result",
			slog.String("error", err.Error()),
			slog.String("list_id", listID.String()),
			slog.String("winner_id", winnerID.String()),
			slog.String("loser_id", loserID.String()))
		return nil, fmt.Errorf("failed to submit duel result: %w", err)
	}

	log.Info("duel result recorded",
		slog.String("list_id", listID.String()),
		slog.String("winner_id", winnerID.String()),
		slog.String("loser_id", loserID.String()),
		slog.Float64("winner_strength", result.Winner.Strength),
		slog.Float64("loser_strength", result.Loser.Strength))
	return result, nil
}

// lockPair locks both rows in a deterministic order so concurrent
// submissions touching the same pair cannot deadlock, then returns the items
// keyed back to their roles.
func lockPair(
	ctx context.Context,
	items store.ItemStore,
	winnerID, loserID uuid.UUID,
) (winner, loser *domain.Item, err error) {
	firstID, secondID := winnerID, loserID
	if bytes.Compare(loserID[:], winnerID[:]) < 0 {
		firstID, secondID = loserID, winnerID
	}

	first, err := lockOne(ctx, items, firstID)
	if err != nil {
		return nil, nil, err
	}
	second, err := lockOne(ctx, items, secondID)
	if err != nil {
		return nil, nil, err
	}

	if first.ID == winnerID {
		return first, second, nil
	}
	return second, first, nil
}

func lockOne(
	ctx context.Context,
	items store.ItemStore,
	id uuid.UUID,
) (*domain.Item, error) {
	item, err := items.GetForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
		}
		return nil, fmt.Errorf("failed to lock item %s: %w", id, err)
	}
	return item, nil
}
