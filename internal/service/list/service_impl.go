package list

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jswann/ladder-api/internal/domain"
	"github.com/jswann/ladder-api/internal/listfmt"
	"github.com/jswann/ladder-api/internal/platform/logger"
	"github.com/jswann/ladder-api/internal/store"
)

// Verify interface compliance at compile time
var _ ListService = (*listServiceImpl)(nil)

// txRunner executes a function within a database transaction. Declared as a
// field type so tests can substitute an in-memory runner.
type txRunner func(ctx context.Context, db *sql.DB, fn store.TxFn) error

// listServiceImpl implements the ListService interface.
type listServiceImpl struct {
	db     *sql.DB
	lists  store.ListStore
	items  store.ItemStore
	codec  *listfmt.Codec
	logger *slog.Logger
	runTx  txRunner
}

// NewListService creates a new ListService implementation.
func NewListService(
	db *sql.DB,
	lists store.ListStore,
	items store.ItemStore,
	codec *listfmt.Codec,
	logger *slog.Logger,
) ListService {
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
	if codec == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("codec cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &listServiceImpl{
		db:     db,
		lists:  lists,
		items:  items,
		codec:  codec,
		logger: logger.With(slog.String("component", "list_service")),
		runTx:  store.RunInTransaction,
	}
}

// Create implements ListService.Create.
func (s *listServiceImpl) Create(
	ctx context.Context,
	name, text string,
) (*domain.List, []*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	newList, err := domain.NewList(name)
	if err != nil {
		log.Warn("invalid list name", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidList, err)
	}

	items, err := s.buildItems(newList.ID, text)
	if err != nil {
		return nil, nil, err
	}

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.lists.WithTx(tx).Create(ctx, newList); err != nil {
			return err
		}
		return s.items.WithTx(tx).CreateMultiple(ctx, items)
	})
	if err != nil {
		if errors.Is(err, store.ErrListNameExists) {
			log.Warn("list name already taken", slog.String("name", name))
			return nil, nil, ErrListNameTaken
		}

		log.Error("failed to create list",
			slog.String("error", err.Error()),
			slog.String("name", name))
		return nil, nil, fmt.Errorf("failed to create list: %w", err)
	}

	log.Info("list created",
		slog.String("list_id", newList.ID.String()),
		slog.Int("item_count", len(items)))
	return newList, items, nil
}

// Get implements ListService.Get.
func (s *listServiceImpl) Get(
	ctx context.Context,
	id uuid.UUID,
) (*domain.List, []*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	found, err := s.lists.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrListNotFound) {
			return nil, nil, ErrListNotFound
		}

		log.Error("failed to get list",
			slog.String("error", err.Error()),
			slog.String("list_id", id.String()))
		return nil, nil, fmt.Errorf("failed to get list: %w", err)
	}

	items, err := s.items.FindByList(ctx, id)
	if err != nil {
		log.Error("failed to load list items",
			slog.String("error", err.Error()),
			slog.String("list_id", id.String()))
		return nil, nil, fmt.Errorf("failed to load list items: %w", err)
	}

	return found, items, nil
}

// ReplaceText implements ListService.ReplaceText.
func (s *listServiceImpl) ReplaceText(
	ctx context.Context,
	id uuid.UUID,
	text string,
) ([]*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	items, err := s.buildItems(id, text)
	if err != nil {
		return nil, err
	}

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txItems := s.items.WithTx(tx)
		if err := txItems.DeleteByList(ctx, id); err != nil {
			return err
		}
		if err := txItems.CreateMultiple(ctx, items); err != nil {
			return err
		}
		return s.lists.WithTx(tx).Touch(ctx, id)
	})
	if err != nil {
		if errors.Is(err, store.ErrListNotFound) {
			return nil, ErrListNotFound
		}

		log.Error("failed to replace list items",
			slog.String("error", err.Error()),
			slog.String("list_id", id.String()))
		return nil, fmt.Errorf("failed to replace list items: %w", err)
	}

	log.Info("list items replaced",
		slog.String("list_id", id.String()),
		slog.Int("item_count", len(items)))
	return items, nil
}

// Export implements ListService.Export.
func (s *listServiceImpl) Export(ctx context.Context, id uuid.UUID) (string, error) {
	_, items, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	values := make([]domain.Item, 0, len(items))
	for _, item := range items {
		values = append(values, *item)
	}

	return listfmt.SerializeList(values), nil
}

// Delete implements ListService.Delete.
func (s *listServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.lists.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrListNotFound) {
			return ErrListNotFound
		}

		log.Error("failed to delete list",
			slog.String("error", err.Error()),
			slog.String("list_id", id.String()))
		return fmt.Errorf("failed to delete list: %w", err)
	}

	log.Info("list deleted", slog.String("list_id", id.String()))
	return nil
}

// buildItems parses text into persistable items bound to the given list.
// Blank text yields an empty item set.
func (s *listServiceImpl) buildItems(listID uuid.UUID, text string) ([]*domain.Item, error) {
	parsed := s.codec.ParseList(text)

	items := make([]*domain.Item, 0, len(parsed))
	for _, p := range parsed {
		item, err := domain.NewItem(listID, p.Title, p.Position)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidList, p.Position+1, err)
		}
		item.Strength = p.Strength
		item.Relations = p.Relations
		items = append(items, item)
	}

	return items, nil
}
