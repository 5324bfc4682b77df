package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mpautz/crossword-times/internal/model"
	"github.com/mpautz/crossword-times/internal/services/extract"
	"github.com/mpautz/crossword-times/internal/services/record"
	"github.com/mpautz/crossword-times/internal/web/handler"
	"github.com/mpautz/crossword-times/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger           *slog.Logger
	ExtractService   *extract.Service
	RecordController *record.Controller
	Roster           model.Roster
	StoreConfigured  bool
	OCRConfigured    bool
	StaticDir        string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Create handlers
	homeHandler := handler.NewHomeHandler(cfg.RecordController, cfg.Roster, cfg.StoreConfigured, cfg.OCRConfigured)
	entryHandler := handler.NewEntryHandler(cfg.ExtractService, cfg.RecordController, cfg.Roster)
	exportHandler := handler.NewExportHandler(cfg.RecordController, cfg.Roster)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// Page routes
	pages := r.NewRoute().Subrouter()
	pages.Use(flashMiddleware)
	pages.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	pages.HandleFunc("/process", entryHandler.Process).Methods(http.MethodPost)
	pages.HandleFunc("/submit", entryHandler.Submit).Methods(http.MethodPost)
	pages.HandleFunc("/export.xlsx", exportHandler.Export).Methods(http.MethodGet)

	return r
}
