package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mpautz/crossword-times/internal/model"
	"github.com/mpautz/crossword-times/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Records are stored as JSON values with a ZSET index scored by record ID,
// so "newest first" is a reverse range over the index. Leaderboard history
// is permanent: no TTLs are applied.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) NextRecordID(ctx context.Context) (int, error) {
	// The highest score in the index is the current maximum ID
	results, err := s.client.ZRevRangeWithScores(ctx, recordIndexKey(), 0, 0).Result()
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return model.NextID(0, false), nil
	}
	return model.NextID(int(results[0].Score), true), nil
}

func (s *Storage) SaveRecord(ctx context.Context, record *model.Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	key := recordKey(record.ID)

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.ZAdd(ctx, recordIndexKey(), redis.Z{Score: float64(record.ID), Member: key})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRecentRecords(ctx context.Context, limit int) ([]*model.Record, error) {
	if limit <= 0 {
		return []*model.Record{}, nil
	}

	// Highest IDs first
	keys, err := s.client.ZRevRange(ctx, recordIndexKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return []*model.Record{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.Record, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Index entry without a value
		}
		var record model.Record
		if err := json.Unmarshal([]byte(val.(string)), &record); err != nil {
			continue // Skip invalid data
		}
		records = append(records, &record)
	}

	return records, nil
}
