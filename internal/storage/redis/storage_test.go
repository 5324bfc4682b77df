package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mpautz/crossword-times/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) saveRecord(id int, date string) {
	record := &model.Record{
		ID:        id,
		Date:      date,
		CreatedAt: "2025-03-01T10:00:00Z",
		Times:     model.ExtractedTimes{"Merrick": "3.45"},
	}
	err := s.storage.SaveRecord(s.ctx, record)
	s.Require().NoError(err)
}

// NextRecordID tests

func (s *StorageSuite) TestNextRecordIDEmpty() {
	id, err := s.storage.NextRecordID(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, id)
}

func (s *StorageSuite) TestNextRecordIDIncrements() {
	s.saveRecord(1, "2025-03-01")
	s.saveRecord(2, "2025-03-02")

	id, err := s.storage.NextRecordID(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, id)
}

func (s *StorageSuite) TestNextRecordIDSkipsGaps() {
	s.saveRecord(4, "2025-03-01")

	id, err := s.storage.NextRecordID(s.ctx)
	s.Require().NoError(err)
	s.Equal(5, id)
}

// SaveRecord tests

func (s *StorageSuite) TestSaveAndGetRecord() {
	record := &model.Record{
		ID:        1,
		Date:      "2025-03-01",
		CreatedAt: "2025-03-01T10:00:00Z",
		Times:     model.ExtractedTimes{"Merrick": "3.45", "Moi": "4.5"},
	}

	err := s.storage.SaveRecord(s.ctx, record)
	s.Require().NoError(err)

	records, err := s.storage.GetRecentRecords(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(1, records[0].ID)
	s.Equal("2025-03-01", records[0].Date)
	s.Equal("3.45", records[0].Times["Merrick"])
	s.Equal("4.5", records[0].Times["Moi"])
}

func (s *StorageSuite) TestSaveRecordNoTTL() {
	s.saveRecord(1, "2025-03-01")

	ttl := s.mini.TTL(recordKey(1))
	s.Zero(ttl, "records should not expire")
}

// GetRecentRecords tests

func (s *StorageSuite) TestGetRecentRecordsNewestFirst() {
	s.saveRecord(1, "2025-03-01")
	s.saveRecord(2, "2025-03-02")
	s.saveRecord(3, "2025-03-03")

	records, err := s.storage.GetRecentRecords(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	s.Equal(3, records[0].ID)
	s.Equal(2, records[1].ID)
	s.Equal(1, records[2].ID)
}

func (s *StorageSuite) TestGetRecentRecordsHonorsLimit() {
	for i := 1; i <= 15; i++ {
		s.saveRecord(i, "2025-03-01")
	}

	records, err := s.storage.GetRecentRecords(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(records, 10)
	s.Equal(15, records[0].ID)
	s.Equal(6, records[9].ID)
}

func (s *StorageSuite) TestGetRecentRecordsEmpty() {
	records, err := s.storage.GetRecentRecords(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(records)
}

func (s *StorageSuite) TestGetRecentRecordsSkipsDanglingIndexEntries() {
	s.saveRecord(1, "2025-03-01")
	s.saveRecord(2, "2025-03-02")

	// Simulate a value lost out from under its index entry
	s.mini.Del(recordKey(1))

	records, err := s.storage.GetRecentRecords(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(2, records[0].ID)
}
