package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gridwatch/dominion-schedule/internal/models"
)

// PostgresStore keeps the record as a single JSONB row, upserted wholesale.
// Interchangeable with the file and JSONBin backends behind the same contract.
type PostgresStore struct {
	DB *sql.DB

	Now func() time.Time
}

// NewPostgresStore returns a PostgresStore on an open connection.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db, Now: time.Now}
}

func (s *PostgresStore) Name() string { return "postgres" }

func (s *PostgresStore) Save(ctx context.Context, payload models.SchedulePayload) error {
	now := s.Now()
	rec := models.NewStoredRecord(payload, now)
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	query := `
		INSERT INTO schedule_records (id, record, received_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET record = EXCLUDED.record, received_at = EXCLUDED.received_at
	`
	if _, err := s.DB.ExecContext(ctx, query, data, now); err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) (*models.StoredRecord, error) {
	var data []byte
	err := s.DB.QueryRowContext(ctx, `SELECT record FROM schedule_records WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Sentinel(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load record: %w", err)
	}

	var rec models.StoredRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("corrupt stored record: %w", err)
	}
	return &rec, nil
}
