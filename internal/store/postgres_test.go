package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/gridwatch/dominion-schedule/internal/models"
)

func TestPostgresStore_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	stamp := time.Date(2026, time.January, 27, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec(`INSERT INTO schedule_records`).
		WithArgs(sqlmock.AnyArg(), stamp).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewPostgresStore(db)
	s.Now = func() time.Time { return stamp }

	if err := s.Save(context.Background(), testPayload()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostgresStore_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	rec := models.NewStoredRecord(testPayload(), time.Date(2026, time.January, 27, 9, 0, 0, 0, time.UTC))
	data, _ := json.Marshal(rec)
	mock.ExpectQuery(`SELECT record FROM schedule_records WHERE id = 1`).
		WillReturnRows(sqlmock.NewRows([]string{"record"}).AddRow(data))

	s := NewPostgresStore(db)
	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.NextDesignation == nil || got.NextDesignation.Date != "2026-01-27" {
		t.Errorf("unexpected record: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostgresStore_LoadNoRowsReturnsSentinel(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT record FROM schedule_records`).
		WillReturnError(sql.ErrNoRows)

	s := NewPostgresStore(db)
	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.NoData() {
		t.Errorf("expected sentinel, got %+v", got)
	}
}
