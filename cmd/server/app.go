package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jswann/ladder-api/internal/config"
	"github.com/jswann/ladder-api/internal/domain/rating"
	"github.com/jswann/ladder-api/internal/listfmt"
	"github.com/jswann/ladder-api/internal/platform/postgres"
	"github.com/jswann/ladder-api/internal/service/duel"
	"github.com/jswann/ladder-api/internal/service/list"
	"github.com/jswann/ladder-api/internal/store"
)

// application holds the shared dependencies the HTTP layer is built from.
// It is assembled once at startup by newApplication.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	listStore store.ListStore
	itemStore store.ItemStore

	ratingService rating.Service
	codec         *listfmt.Codec
	listService   list.ListService
	duelService   duel.DuelService
}

// newApplication wires the full dependency graph: database, stores, rating
// engine, codec, and services.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	listStore := postgres.NewPostgresListStore(db, logger)
	itemStore := postgres.NewPostgresItemStore(db, logger)

	ratingService := rating.NewServiceWithParams(rating.NewParams(rating.ParamsConfig{
		DefaultStrength: cfg.Rating.DefaultStrength,
		KFactor:         cfg.Rating.KFactor,
		LogisticScale:   cfg.Rating.LogisticScale,
		IncubationLimit: cfg.Rating.IncubationLimit,
	}))
	codec := listfmt.NewCodec(ratingService)

	return &application{
		config:        cfg,
		logger:        logger,
		db:            db,
		listStore:     listStore,
		itemStore:     itemStore,
		ratingService: ratingService,
		codec:         codec,
		listService:   list.NewListService(db, listStore, itemStore, codec, logger),
		duelService:   duel.NewDuelService(db, listStore, itemStore, ratingService, logger),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection",
				slog.String("error", err.Error()))
		}
	}
}
