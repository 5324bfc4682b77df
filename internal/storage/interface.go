package storage

import (
	"context"

	"github.com/mpautz/crossword-times/internal/model"
)

// Storage defines the interface for leaderboard persistence
type Storage interface {
	// NextRecordID returns the identifier the next record should be saved
	// under: one past the current maximum, or 1 for an empty store.
	NextRecordID(ctx context.Context) (int, error)

	// SaveRecord persists a record under its ID
	SaveRecord(ctx context.Context, record *model.Record) error

	// GetRecentRecords returns up to limit records, newest first by ID.
	// A non-positive limit yields an empty result.
	GetRecentRecords(ctx context.Context, limit int) ([]*model.Record, error)
}
