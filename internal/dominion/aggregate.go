package dominion

import (
	"log/slog"
	"time"

	"github.com/gridwatch/dominion-schedule/internal/models"
)

// DefaultDaysAhead is the forward window length when DAYS_AHEAD is unset.
const DefaultDaysAhead = 7

// NeedsNextMonth reports whether the forward window [now, now+daysAhead] runs
// past the end of the schedule, meaning the following calendar month must be
// fetched and appended before aggregating. An empty schedule compares against
// now's own date.
func NeedsNextMonth(now time.Time, daysAhead int, schedule []models.ScheduleEntry) bool {
	end := now.AddDate(0, 0, daysAhead).Format(models.DateLayout)
	last := now.Format(models.DateLayout)
	if len(schedule) > 0 {
		last = schedule[len(schedule)-1].Date
	}
	return end > last
}

// NextMonth returns the calendar month after now's. Jumping to day 28 and
// adding four days lands in the following month regardless of month length.
// This is a one-step lookahead: windows spanning more than two months are not
// supported and come back truncated.
func NextMonth(now time.Time) (int, time.Month) {
	t := time.Date(now.Year(), now.Month(), 28, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 4)
	return t.Year(), t.Month()
}

// Aggregate builds the canonical payload from a date-sorted schedule: the
// first entry on or after now's date, every entry inside the closed window
// [now, now+daysAhead], and per-letter counts over that window. An empty
// schedule yields an absent next entry and an empty window, not an error.
func Aggregate(now time.Time, daysAhead int, schedule []models.ScheduleEntry) models.SchedulePayload {
	today := now.Format(models.DateLayout)
	end := now.AddDate(0, 0, daysAhead).Format(models.DateLayout)

	var next *models.ScheduleEntry
	for _, e := range schedule {
		if e.Date >= today {
			entry := e
			next = &entry
			break
		}
	}
	if next == nil {
		slog.Warn("no upcoming designation found", "today", today)
	}

	upcoming := []models.ScheduleEntry{}
	var summary models.Summary
	for _, e := range schedule {
		if e.Date < today || e.Date > end {
			continue
		}
		upcoming = append(upcoming, e)
		switch e.Designation {
		case models.DesignationA:
			summary.ACount++
		case models.DesignationB:
			summary.BCount++
		case models.DesignationC:
			summary.CCount++
		}
	}
	summary.TotalUpcoming = len(upcoming)

	return models.SchedulePayload{
		FetchedAt:        now.Format(time.RFC3339),
		NextDesignation:  next,
		UpcomingSchedule: upcoming,
		Summary:          summary,
	}
}
