package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mpautz/crossword-times/internal/model"
	"github.com/mpautz/crossword-times/internal/storage"
)

// tableName is the leaderboard table in the Supabase project
const tableName = "crossword_times"

const requestTimeout = 10 * time.Second

// Config holds the settings for the Supabase storage backend
type Config struct {
	// URL is the project base URL (e.g. https://xyz.supabase.co)
	URL string
	// Key is the project API key, sent as both apikey and bearer token
	Key string
}

// Storage talks to a Supabase project's PostgREST endpoint. All three
// operations map to plain REST calls on the crossword_times table.
type Storage struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a new Supabase storage instance
func New(cfg Config) (*Storage, error) {
	if cfg.URL == "" || cfg.Key == "" {
		return nil, fmt.Errorf("%w: supabase url and key required", model.ErrStoreNotConfigured)
	}
	return &Storage{
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		apiKey:  cfg.Key,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}, nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) NextRecordID(ctx context.Context) (int, error) {
	query := url.Values{}
	query.Set("select", "id")
	query.Set("order", "id.desc")
	query.Set("limit", "1")

	body, err := s.do(ctx, http.MethodGet, query, nil)
	if err != nil {
		return 0, err
	}

	var rows []struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return 0, fmt.Errorf("%w: decode id response: %v", model.ErrStoreFailed, err)
	}
	if len(rows) == 0 {
		return model.NextID(0, false), nil
	}

	maxID, err := decodeID(rows[0].ID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrStoreFailed, err)
	}
	return model.NextID(maxID, true), nil
}

func (s *Storage) SaveRecord(ctx context.Context, record *model.Record) error {
	payload, err := json.Marshal(encodeRow(record))
	if err != nil {
		return fmt.Errorf("%w: encode row: %v", model.ErrStoreFailed, err)
	}

	body, err := s.do(ctx, http.MethodPost, nil, payload)
	if err != nil {
		return err
	}

	// With return=representation an empty body means nothing was inserted
	var inserted []json.RawMessage
	if err := json.Unmarshal(body, &inserted); err != nil || len(inserted) == 0 {
		return fmt.Errorf("%w: insert returned no data", model.ErrStoreFailed)
	}
	return nil
}

func (s *Storage) GetRecentRecords(ctx context.Context, limit int) ([]*model.Record, error) {
	if limit <= 0 {
		return []*model.Record{}, nil
	}

	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "id.desc")
	query.Set("limit", strconv.Itoa(limit))

	body, err := s.do(ctx, http.MethodGet, query, nil)
	if err != nil {
		return nil, err
	}

	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("%w: decode rows: %v", model.ErrStoreFailed, err)
	}

	records := make([]*model.Record, 0, len(rows))
	for _, row := range rows {
		record, err := decodeRow(row)
		if err != nil {
			continue // Skip invalid data
		}
		records = append(records, record)
	}
	return records, nil
}

// do issues a request against the table endpoint and returns the response
// body for 2xx statuses
func (s *Storage) do(ctx context.Context, method string, query url.Values, payload []byte) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", s.baseURL, tableName)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", model.ErrStoreFailed, err)
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStoreFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", model.ErrStoreFailed, resp.StatusCode)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("%w: read response: %v", model.ErrStoreFailed, err)
	}
	return buf.Bytes(), nil
}
