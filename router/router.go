// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/vivekrp/openform/cliparse"
	"github.com/vivekrp/openform/handlers"
	"github.com/vivekrp/openform/middleware"
	"github.com/vivekrp/openform/player"
	"github.com/vivekrp/openform/storage"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, registry *player.Registry, store player.Uploader, disk *storage.Disk) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	formHandler := handlers.NewFormHandler(db, cfg)
	playHandler := handlers.NewPlayHandler(db, cfg, registry, store)
	responseHandler := handlers.NewResponseHandler(db, cfg)
	fileHandler := handlers.NewFileHandler(disk)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Form management (admin operations)
	mux.HandleFunc("POST /forms", middleware.WithLogging(formHandler.CreateForm))
	mux.HandleFunc("GET /forms/{id}/admin", middleware.WithLogging(formHandler.GetFormAdmin))
	mux.HandleFunc("PUT /forms/{id}", middleware.WithLogging(formHandler.UpdateForm))
	mux.HandleFunc("POST /forms/{id}/publish", middleware.WithLogging(formHandler.PublishForm))
	mux.HandleFunc("POST /forms/{id}/close", middleware.WithLogging(formHandler.CloseForm))
	mux.HandleFunc("DELETE /forms/{id}", middleware.WithLogging(formHandler.DeleteForm))

	// Response inspection (admin)
	mux.HandleFunc("GET /forms/{id}/responses", middleware.WithLogging(responseHandler.ListResponses))
	mux.HandleFunc("GET /forms/{id}/responses.csv", middleware.WithLogging(responseHandler.ExportCSV))

	// Form player (public)
	mux.HandleFunc("GET /f/{slug}", middleware.WithLogging(playHandler.GetForm))
	mux.HandleFunc("POST /f/{slug}/sessions", middleware.WithLogging(playHandler.CreateSession))
	mux.HandleFunc("GET /sessions/{id}", middleware.WithLogging(playHandler.GetSession))
	mux.HandleFunc("POST /sessions/{id}/answer", middleware.WithLogging(playHandler.SetAnswer))
	mux.HandleFunc("POST /sessions/{id}/events", middleware.WithLogging(playHandler.HandleEvent))
	mux.HandleFunc("POST /sessions/{id}/upload", middleware.WithLogging(playHandler.Upload))
	mux.HandleFunc("DELETE /sessions/{id}/files/{question_id}", middleware.WithLogging(playHandler.ClearUpload))
	mux.HandleFunc("DELETE /sessions/{id}", middleware.WithLogging(playHandler.DeleteSession))

	// Stored upload files (public)
	mux.HandleFunc("GET /files/{key}", middleware.WithLogging(fileHandler.Serve))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("openform API v1"))
	})

	return mux
}
