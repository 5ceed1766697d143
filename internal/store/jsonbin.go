package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gridwatch/dominion-schedule/internal/models"
)

// DefaultJSONBinBaseURL is the JSONBin.io v3 API.
const DefaultJSONBinBaseURL = "https://api.jsonbin.io/v3"

// JSONBinStore persists the record in a JSONBin.io bin: PUT replaces the bin
// content wholesale, GET /latest reads it back wrapped in {"record": ...}.
type JSONBinStore struct {
	BaseURL string
	APIKey  string
	BinID   string
	HTTP    *http.Client

	Now func() time.Time
}

// NewJSONBinStore returns a JSONBinStore with a bounded timeout on every call.
func NewJSONBinStore(apiKey, binID string, timeout time.Duration) *JSONBinStore {
	return &JSONBinStore{
		BaseURL: DefaultJSONBinBaseURL,
		APIKey:  apiKey,
		BinID:   binID,
		HTTP:    &http.Client{Timeout: timeout},
		Now:     time.Now,
	}
}

func (s *JSONBinStore) Name() string { return "jsonbin.io" }

func (s *JSONBinStore) Save(ctx context.Context, payload models.SchedulePayload) error {
	rec := models.NewStoredRecord(payload, s.Now())
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	url := fmt.Sprintf("%s/b/%s", s.BaseURL, s.BinID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("jsonbin save: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Access-Key", s.APIKey)

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("jsonbin save: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("jsonbin save: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (s *JSONBinStore) Load(ctx context.Context) (*models.StoredRecord, error) {
	url := fmt.Sprintf("%s/b/%s/latest", s.BaseURL, s.BinID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("jsonbin load: %w", err)
	}
	req.Header.Set("X-Access-Key", s.APIKey)

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jsonbin load: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("jsonbin load: unexpected status %d", resp.StatusCode)
	}

	var wrapper struct {
		Record models.StoredRecord `json:"record"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wrapper); err != nil {
		return nil, fmt.Errorf("jsonbin load: decode: %w", err)
	}
	return &wrapper.Record, nil
}
