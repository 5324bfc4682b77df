package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mpautz/crossword-times/internal/api/handler"
	"github.com/mpautz/crossword-times/internal/api/middleware"
	"github.com/mpautz/crossword-times/internal/services/extract"
	"github.com/mpautz/crossword-times/internal/services/record"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	ExtractService   *extract.Service
	RecordController *record.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	extractHandler := handler.NewExtractHandler(cfg.ExtractService)
	entryHandler := handler.NewEntryHandler(cfg.RecordController)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Extraction route: image in, recognized times out, nothing saved
	api.HandleFunc("/extract", extractHandler.Extract).Methods(http.MethodPost)

	// Entry routes
	api.HandleFunc("/entries", entryHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/entries", entryHandler.List).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
