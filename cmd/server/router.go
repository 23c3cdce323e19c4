package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jswann/ladder-api/internal/api"
	apiMiddleware "github.com/jswann/ladder-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	listHandler := api.NewListHandler(app.listService, app.logger)
	duelHandler := api.NewDuelHandler(app.duelService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// List lifecycle endpoints
		r.Post("/lists", listHandler.CreateList)
		r.Get("/lists/{id}", listHandler.GetList)
		r.Put("/lists/{id}/text", listHandler.ReplaceText)
		r.Get("/lists/{id}/export", listHandler.ExportList)
		r.Delete("/lists/{id}", listHandler.DeleteList)

		// Duel endpoints
		r.Get("/lists/{id}/duels/next", duelHandler.NextDuel)
		r.Post("/lists/{id}/duels", duelHandler.SubmitDuel)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
