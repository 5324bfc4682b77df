package record

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mpautz/crossword-times/internal/dependencies/clock"
	"github.com/mpautz/crossword-times/internal/model"
	"github.com/mpautz/crossword-times/internal/storage"
)

// DefaultRecentLimit is how many records the recent views show
const DefaultRecentLimit = 10

// Controller builds and persists leaderboard records
type Controller struct {
	storage storage.Storage
	roster  model.Roster
	clock   clock.Clock
	logger  *slog.Logger
}

// NewController creates a new RecordController. A nil storage means no
// backend is configured; operations then fail with ErrStoreNotConfigured
// rather than at startup, so the rest of the app stays usable.
func NewController(storage storage.Storage, roster model.Roster, clock clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		roster:  roster,
		clock:   clock,
		logger:  logger,
	}
}

// Today returns the current date in record form, for prefilling forms
func (c *Controller) Today() string {
	return c.clock.Now().Format(model.DateLayout)
}

// Submit validates the date and per-player times, assigns the next free ID
// and saves the record. Blank times and names off the roster are dropped; a
// submission left with no times at all is rejected.
func (c *Controller) Submit(ctx context.Context, date string, times map[string]string) (*model.Record, error) {
	if c.storage == nil {
		return nil, model.ErrStoreNotConfigured
	}

	if err := model.ValidateDate(date); err != nil {
		return nil, err
	}

	clean := make(model.ExtractedTimes)
	for name, value := range times {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if !c.roster.Contains(name) {
			continue
		}
		if err := model.ValidateTime(trimmed); err != nil {
			return nil, err
		}
		clean[name] = trimmed
	}
	if len(clean) == 0 {
		return nil, model.ErrEmptySubmission
	}

	id, err := c.storage.NextRecordID(ctx)
	if err != nil {
		// An unreadable max ID is treated like an empty table so a flaky
		// read does not block the save itself
		c.logger.Warn("failed to read max record id, assuming empty table",
			slog.String("error", err.Error()),
		)
		id = model.NextID(0, false)
	}

	record := &model.Record{
		ID:        id,
		Date:      date,
		CreatedAt: c.clock.Now().UTC().Format(time.RFC3339),
		Times:     clean,
	}

	if err := c.storage.SaveRecord(ctx, record); err != nil {
		c.logger.Error("failed to save record",
			slog.Int("record_id", id),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("record saved",
		slog.Int("record_id", id),
		slog.String("date", date),
		slog.Int("player_count", len(clean)),
	)

	return record, nil
}

// GetRecentRecords returns the latest records, newest first. A non-positive
// limit falls back to DefaultRecentLimit.
func (c *Controller) GetRecentRecords(ctx context.Context, limit int) ([]*model.Record, error) {
	if c.storage == nil {
		return nil, model.ErrStoreNotConfigured
	}
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	records, err := c.storage.GetRecentRecords(ctx, limit)
	if err != nil {
		c.logger.Error("failed to load recent records",
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return records, nil
}

// Interface for dependency injection
type ControllerInterface interface {
	Today() string
	Submit(ctx context.Context, date string, times map[string]string) (*model.Record, error)
	GetRecentRecords(ctx context.Context, limit int) ([]*model.Record, error)
}

var _ ControllerInterface = (*Controller)(nil)
