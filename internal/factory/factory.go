package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/mpautz/crossword-times/internal/dependencies/clock"
	"github.com/mpautz/crossword-times/internal/model"
	"github.com/mpautz/crossword-times/internal/ocr"
	"github.com/mpautz/crossword-times/internal/ocr/gemini"
	"github.com/mpautz/crossword-times/internal/ocr/ocrspace"
	"github.com/mpautz/crossword-times/internal/ocr/tesseract"
	"github.com/mpautz/crossword-times/internal/services/extract"
	"github.com/mpautz/crossword-times/internal/services/parser"
	"github.com/mpautz/crossword-times/internal/services/record"
	"github.com/mpautz/crossword-times/internal/storage"
	"github.com/mpautz/crossword-times/internal/storage/memory"
	"github.com/mpautz/crossword-times/internal/storage/postgres"
	redisstorage "github.com/mpautz/crossword-times/internal/storage/redis"
	"github.com/mpautz/crossword-times/internal/storage/supabase"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeSupabase = "supabase"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// OCR provider constants
const (
	OCRProviderOCRSpace  = "ocrspace"
	OCRProviderTesseract = "tesseract"
	OCRProviderGemini    = "gemini"
)

// App contains all wired application components
type App struct {
	// Storage; nil when the selected backend is not configured
	Storage storage.Storage

	// OCREngine; nil when the selected provider is not configured
	OCREngine ocr.Engine

	// External dependencies
	Clock clock.Clock

	// Roster in effect for this process
	Roster model.Roster

	// Services
	ParserService    *parser.Service
	ExtractService   *extract.Service
	RecordController *record.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// Roster is the player list (optional)
	// If empty, defaults to model.DefaultRoster
	Roster model.Roster

	// StorageType selects the storage backend
	// ("memory", "supabase", "redis" or "postgres"); empty means "memory"
	StorageType string
	// SupabaseConfig holds Supabase settings (used when StorageType is "supabase")
	SupabaseConfig *supabase.Config
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresConfig holds Postgres connection settings (required if StorageType is "postgres")
	PostgresConfig *postgres.Config

	// OCRProvider selects the recognition engine
	// ("ocrspace", "tesseract" or "gemini"); empty means "ocrspace"
	OCRProvider string
	// OCRSpaceConfig holds OCR.space settings (used when OCRProvider is "ocrspace")
	OCRSpaceConfig *ocrspace.Config
	// GeminiAPIKey is the Gemini key (used when OCRProvider is "gemini")
	GeminiAPIKey string
}

// New creates a new application with all dependencies wired.
//
// Missing credentials for the selected Supabase storage or OCR provider do
// not fail startup: the component is left nil and its operations report
// not-configured errors, while recent views and manual entry keep working.
// Backends whose connections are verified at startup (redis, postgres) do
// fail startup when unreachable.
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	roster := cfg.Roster
	if len(roster) == 0 {
		roster = model.DefaultRoster
	}

	store, err := buildStorage(cfg, roster, logger)
	if err != nil {
		return nil, err
	}

	engine, err := buildEngine(cfg, logger)
	if err != nil {
		return nil, err
	}

	return newWithDependencies(store, engine, roster, clock.New(), logger), nil
}

func buildStorage(cfg Config, roster model.Roster, logger *slog.Logger) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil

	case StorageTypeSupabase:
		var supabaseCfg supabase.Config
		if cfg.SupabaseConfig != nil {
			supabaseCfg = *cfg.SupabaseConfig
		}
		store, err := supabase.New(supabaseCfg)
		if err != nil {
			// Keep serving without a store; saves will report not-configured
			logger.Warn("supabase storage unavailable",
				slog.String("error", err.Error()),
			)
			return nil, nil
		}
		return store, nil

	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)

	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		return postgres.New(*cfg.PostgresConfig, roster)

	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'supabase', 'redis' or 'postgres'")
	}
}

func buildEngine(cfg Config, logger *slog.Logger) (ocr.Engine, error) {
	provider := cfg.OCRProvider
	if provider == "" {
		provider = OCRProviderOCRSpace
	}

	switch provider {
	case OCRProviderOCRSpace:
		var ocrspaceCfg ocrspace.Config
		if cfg.OCRSpaceConfig != nil {
			ocrspaceCfg = *cfg.OCRSpaceConfig
		}
		if ocrspaceCfg.APIKey == "" {
			logger.Warn("ocrspace api key not set, image extraction disabled")
			return nil, nil
		}
		return ocrspace.New(ocrspaceCfg), nil

	case OCRProviderTesseract:
		return tesseract.New(), nil

	case OCRProviderGemini:
		if cfg.GeminiAPIKey == "" {
			logger.Warn("gemini api key not set, image extraction disabled")
			return nil, nil
		}
		return gemini.New(context.Background(), cfg.GeminiAPIKey)

	default:
		return nil, errors.New("invalid OCRProvider: must be 'ocrspace', 'tesseract' or 'gemini'")
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, engine ocr.Engine, roster model.Roster, clk clock.Clock, logger *slog.Logger) *App {
	// Create services
	parserService := parser.New(roster)
	extractService := extract.NewService(engine, parserService, logger)
	recordController := record.NewController(store, roster, clk, logger)

	return &App{
		Storage:          store,
		OCREngine:        engine,
		Clock:            clk,
		Roster:           roster,
		ParserService:    parserService,
		ExtractService:   extractService,
		RecordController: recordController,
	}
}
