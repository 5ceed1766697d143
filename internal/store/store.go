// Package store persists the latest aggregated schedule record. Every
// implementation overwrites the whole record on Save (last writer wins, a
// single extractor is the only expected writer) and serves the "no data yet"
// sentinel from Load until the first successful Save.
package store

import (
	"context"

	"github.com/gridwatch/dominion-schedule/internal/models"
)

// Store is the load/save contract the API and extractor share.
type Store interface {
	// Save stamps received_at and persists the full record, replacing any
	// prior one.
	Save(ctx context.Context, payload models.SchedulePayload) error

	// Load returns the last-saved record, the sentinel when nothing has ever
	// been saved, or an error when the read itself fails.
	Load(ctx context.Context) (*models.StoredRecord, error)

	// Name identifies the backend in health responses ("file", "jsonbin.io", "postgres").
	Name() string
}
