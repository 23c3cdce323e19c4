package postgres

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

// itemColumns is the column list shared by every item SELECT.
const itemColumns = "id, list_id, title, strength, relations, position, created_at, updated_at"

// PostgresItemStore implements the store.ItemStore interface
// using a PostgreSQL database as the storage backend.
//
// The relation history is persisted in the same comma-separated token
// encoding used by the list text format. That keeps one codec for both the
// wire format and storage, at the cost of the format's lossiness: values are
// truncated at two decimals and unparseable relations are not stored.
type PostgresItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresItemStore creates a new PostgreSQL implementation of the ItemStore interface.
// It accepts a database connection or transaction that should be initialized and managed
// by the caller. If logger is nil, a default logger will be used.
func NewPostgresItemStore(db store.DBTX, logger *slog.Logger) *PostgresItemStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "item_store")),
	}
}

// Ensure PostgresItemStore implements store.ItemStore interface
var _ store.ItemStore = (*PostgresItemStore)(nil)

// CreateMultiple implements store.ItemStore.CreateMultiple
// It must be run within a transaction; see the interface documentation.
func (s *PostgresItemStore) CreateMultiple(ctx context.Context, items []*domain.Item) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO items (id, list_id, title, strength, relations, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	stmt, err := s.db.PrepareContext(ctx, query)
	if err != nil {
		log.Error("failed to prepare item insert",
			slog.String("error", err.Error()))
		return MapError(err)
	}
	defer func() { _ = stmt.Close() }()

	for _, item := range items {
		if err := item.Validate(); err != nil {
			log.Warn("item validation failed during create",
				slog.String("error", err.Error()),
				slog.String("item_id", item.ID.String()))
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}

		_, err := stmt.ExecContext(ctx,
			item.ID,
			item.ListID,
			item.Title,
			item.Strength,
			listfmt.SerializeRelations(item.Relations),
			item.Position,
			item.CreatedAt,
			item.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to insert item",
				slog.String("error", err.Error()),
				slog.String("item_id", item.ID.String()),
				slog.String("list_id", item.ListID.String()))
			return MapError(err)
		}
	}

	log.Debug("items created",
		slog.Int("count", len(items)),
		slog.String("list_id", items[0].ListID.String()))
	return nil
}

// GetByID implements store.ItemStore.GetByID
// Returns store.ErrItemNotFound if the item does not exist.
func (s *PostgresItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return s.getOne(ctx, query, id)
}

// GetForUpdate implements store.ItemStore.GetForUpdate
// It locks the row for the remainder of the enclosing transaction.
// Returns store.ErrItemNotFound if the item does not exist.
func (s *PostgresItemStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return s.getOne(ctx, query, id)
}

func (s *PostgresItemStore) getOne(
	ctx context.Context,
	query string,
	id uuid.UUID,
) (*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	item, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("item not found", slog.String("item_id", id.String()))
			return nil, store.ErrItemNotFound
		}

		log.Error("failed to get item",
			slog.String("error", err.Error()),
			slog.String("item_id", id.String()))
		return nil, MapError(err)
	}

	return item, nil
}

// Update implements store.ItemStore.Update
// Only strength, relations, and updated_at are written; title, list
// membership, and position are immutable after creation.
// Returns store.ErrItemNotFound if the item does not exist.
func (s *PostgresItemStore) Update(ctx context.Context, item *domain.Item) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE items
		SET strength = $1, relations = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(ctx, query,
		item.Strength,
		listfmt.SerializeRelations(item.Relations),
		item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		log.Error("failed to update item",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrItemNotFound
	}

	return nil
}

// FindByList implements store.ItemStore.FindByList
// Items are returned in canonical order: descending strength, then position.
func (s *PostgresItemStore) FindByList(
	ctx context.Context,
	listID uuid.UUID,
) ([]*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE list_id = $1
		ORDER BY strength DESC, position ASC
	`

	rows, err := s.db.QueryContext(ctx, query, listID)
	if err != nil {
		log.Error("failed to query items by list",
			slog.String("error", err.Error()),
			slog.String("list_id", listID.String()))
		return nil, MapError(err)
	}
	defer rows.Close()

	items := []*domain.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			log.Error("failed to scan item row",
				slog.String("error", err.Error()),
				slog.String("list_id", listID.String()))
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating item rows",
			slog.String("error", err.Error()),
			slog.String("list_id", listID.String()))
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}

	return items, nil
}

// DeleteByList implements store.ItemStore.DeleteByList
// Deleting zero rows is not an error; an empty list is a valid replace target.
func (s *PostgresItemStore) DeleteByList(ctx context.Context, listID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM items
		WHERE list_id = $1
	`

	if _, err := s.db.ExecContext(ctx, query, listID); err != nil {
		log.Error("failed to delete items by list",
			slog.String("error", err.Error()),
			slog.String("list_id", listID.String()))
		return MapError(err)
	}

	return nil
}

// WithTx implements store.ItemStore.WithTx
// It returns a new ItemStore that uses the provided transaction.
func (s *PostgresItemStore) WithTx(tx *sql.Tx) store.ItemStore {
	return &PostgresItemStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem reads one item row, decoding the stored relation history with the
// list-format codec.
func scanItem(row rowScanner) (*domain.Item, error) {
	var item domain.Item
	var relations string

	err := row.Scan(
		&item.ID,
		&item.ListID,
		&item.Title,
		&item.Strength,
		&relations,
		&item.Position,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Relations = listfmt.ParseRelations(relations)
	return &item, nil
}
