package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jswann/ladder-api/internal/domain"
	"github.com/jswann/ladder-api/internal/platform/logger"
	"github.com/jswann/ladder-api/internal/store"
)

// PostgresListStore implements the store.ListStore interface
// using a PostgreSQL database as the storage backend.
type PostgresListStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresListStore creates a new PostgreSQL implementation of the ListStore interface.
// It accepts a database connection or transaction that should be initialized and managed
// by the caller. If logger is nil, a default logger will be used.
func NewPostgresListStore(db store.DBTX, logger *slog.Logger) *PostgresListStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresListStore{
		db:     db,
		logger: logger.With(slog.String("component", "list_store")),
	}
}

// Ensure PostgresListStore implements store.ListStore interface
var _ store.ListStore = (*PostgresListStore)(nil)

// Create implements store.ListStore.Create
// Returns store.ErrListNameExists if a list with the same name already exists.
// Returns store.ErrInvalidEntity (wrapping the validation error) if the list is invalid.
func (s *PostgresListStore) Create(ctx context.Context, list *domain.List) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := list.Validate(); err != nil {
		log.Warn("list validation failed during create",
			slog.String("error", err.Error()),
			slog.String("list_id", list.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO lists (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(ctx, query,
		list.ID,
		list.Name,
		list.CreatedAt,
		list.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate list name",
				slog.String("list_id", list.ID.String()),
				slog.String("name", list.Name))
			return fmt.Errorf("%w: %q", store.ErrListNameExists, list.Name)
		}

		log.Error("failed to create list",
			slog.String("error", err.Error()),
			slog.String("list_id", list.ID.String()))
		return MapError(err)
	}

	log.Info("list created",
		slog.String("list_id", list.ID.String()),
		slog.String("name", list.Name))
	return nil
}

// GetByID implements store.ListStore.GetByID
// Returns store.ErrListNotFound if the list does not exist.
func (s *PostgresListStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.List, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, created_at, updated_at
		FROM lists
		WHERE id = $1
	`

	var list domain.List
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&list.ID,
		&list.Name,
		&list.CreatedAt,
		&list.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("list not found", slog.String("list_id", id.String()))
			return nil, store.ErrListNotFound
		}

		log.Error("failed to get list",
			slog.String("error", err.Error()),
			slog.String("list_id", id.String()))
		return nil, MapError(err)
	}

	return &list, nil
}

// Touch implements store.ListStore.Touch
// Returns store.ErrListNotFound if the list does not exist.
func (s *PostgresListStore) Touch(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE lists
		SET updated_at = $1
		WHERE id = $2
	`

	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to touch list",
			slog.String("error", err.Error()),
			slog.String("list_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrListNotFound
	}

	return nil
}

// Delete implements store.ListStore.Delete
// Returns store.ErrListNotFound if the list does not exist.
// Items are removed by ON DELETE CASCADE on items.list_id.
func (s *PostgresListStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM lists
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete list",
			slog.String("error", err.Error()),
			slog.String("list_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrListNotFound
	}

	log.Info("list deleted", slog.String("list_id", id.String()))
	return nil
}

// WithTx implements store.ListStore.WithTx
// It returns a new ListStore that uses the provided transaction.
func (s *PostgresListStore) WithTx(tx *sql.Tx) store.ListStore {
	return &PostgresListStore{
		db:     tx,
		logger: s.logger,
	}
}
