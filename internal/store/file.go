package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gridwatch/dominion-schedule/internal/models"
)

// FileStore keeps the record in a single JSON document on disk. Writes go
// through a temp file and rename so readers never observe a partial record.
type FileStore struct {
	Path string

	// Now is the clock used to stamp received_at; overridable in tests.
	Now func() time.Time
}

// NewFileStore returns a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path, Now: time.Now}
}

func (s *FileStore) Name() string { return "file" }

func (s *FileStore) Save(ctx context.Context, payload models.SchedulePayload) error {
	rec := models.NewStoredRecord(payload, s.Now())
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context) (*models.StoredRecord, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return models.Sentinel(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	var rec models.StoredRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("corrupt schedule file %s: %w", s.Path, err)
	}
	return &rec, nil
}
