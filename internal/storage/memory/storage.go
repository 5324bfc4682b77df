package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mpautz/crossword-times/internal/model"
	"github.com/mpautz/crossword-times/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	records map[int]*model.Record
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		records: make(map[int]*model.Record),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) NextRecordID(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	maxID := 0
	for id := range s.records {
		if id > maxID {
			maxID = id
		}
	}
	return model.NextID(maxID, len(s.records) > 0), nil
}

func (s *Storage) SaveRecord(ctx context.Context, record *model.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record
	return nil
}

func (s *Storage) GetRecentRecords(ctx context.Context, limit int) ([]*model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		return []*model.Record{}, nil
	}

	records := make([]*model.Record, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID > records[j].ID
	})

	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
