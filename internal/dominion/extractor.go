package dominion

import (
	"context"
	"log/slog"
	"time"

	"github.com/gridwatch/dominion-schedule/internal/config"
	"github.com/gridwatch/dominion-schedule/internal/metrics"
	"github.com/gridwatch/dominion-schedule/internal/models"
)

// Extractor runs the fetch, normalize, aggregate, publish pipeline. Each run
// is independent and idempotent: the same upstream state at the same instant
// reproduces the same payload.
type Extractor struct {
	Client    *Client
	Publisher *Publisher
	DaysAhead int

	// Now is the clock; overridable in tests.
	Now func() time.Time
}

// NewExtractor builds an Extractor from configuration.
func NewExtractor(cfg config.Config) *Extractor {
	daysAhead := cfg.DaysAhead
	if daysAhead <= 0 {
		daysAhead = DefaultDaysAhead
	}
	return &Extractor{
		Client:    NewClient(cfg.DominionBaseURL, cfg.HTTPTimeout),
		Publisher: NewPublisher(cfg.APIEndpoint, cfg.APIKey, cfg.HTTPTimeout),
		DaysAhead: daysAhead,
		Now:       time.Now,
	}
}

// Run performs one extraction. It fetches the current month, pulls in the
// following month when the forward window outruns the schedule, aggregates,
// and publishes. A fetch error aborts the run; a publish failure is logged
// and counted but the aggregated payload is still returned.
func (e *Extractor) Run(ctx context.Context) (models.SchedulePayload, error) {
	now := e.Now()
	slog.Info("fetching schedule", "year", now.Year(), "month", now.Month().String())

	data, err := e.Client.FetchMonth(ctx, now.Year(), now.Month())
	if err != nil {
		metrics.IncExtractionRuns("error")
		return models.SchedulePayload{}, err
	}
	schedule := ExtractSchedule(data)

	if NeedsNextMonth(now, e.DaysAhead, schedule) {
		year, month := NextMonth(now)
		slog.Info("window extends past current month, fetching next", "year", year, "month", month.String())
		nextData, err := e.Client.FetchMonth(ctx, year, month)
		if err != nil {
			metrics.IncExtractionRuns("error")
			return models.SchedulePayload{}, err
		}
		schedule = append(schedule, ExtractSchedule(nextData)...)
	}

	payload := Aggregate(now, e.DaysAhead, schedule)
	metrics.SetUpcomingEntries(payload.Summary.TotalUpcoming)

	if next := payload.NextDesignation; next != nil {
		slog.Info("next designation", "designation", next.Designation, "date", next.Date)
	}
	slog.Info("upcoming schedule",
		"days", e.DaysAhead,
		"entries", payload.Summary.TotalUpcoming,
		"a", payload.Summary.ACount,
		"b", payload.Summary.BCount,
		"c", payload.Summary.CCount)

	if e.Publisher == nil || e.Publisher.Endpoint == "" {
		slog.Info("no API endpoint configured, skipping publish")
	} else if err := e.Publisher.Publish(ctx, payload); err != nil {
		slog.Error("publish failed", "err", err)
		metrics.IncPublishFailures()
	} else {
		slog.Info("payload published", "endpoint", e.Publisher.Endpoint)
	}

	metrics.IncExtractionRuns("success")
	return payload, nil
}
