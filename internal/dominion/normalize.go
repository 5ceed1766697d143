package dominion

import (
	"sort"
	"time"

	"github.com/gridwatch/dominion-schedule/internal/models"
)

// ExtractSchedule flattens one month's raw calendar into designation entries,
// sorted ascending by date. Malformed day records are dropped, not reported:
// the upstream feed pads weeks with null days and occasionally ships days
// without a designation. The result may be empty.
func ExtractSchedule(m models.MonthResponse) []models.ScheduleEntry {
	var schedule []models.ScheduleEntry

	for _, week := range m.Weeks {
		for _, d := range week.Days {
			ts, ok := ParseMSDate(d.Date)
			if !ok {
				continue
			}
			if !models.ValidDesignation(d.Designation) {
				continue
			}
			schedule = append(schedule, models.ScheduleEntry{
				Date:        ts.Format(models.DateLayout),
				Day:         int(d.Day),
				Designation: d.Designation,
				Timestamp:   ts.Format(time.RFC3339),
			})
		}
	}

	sort.Slice(schedule, func(i, j int) bool { return schedule[i].Date < schedule[j].Date })
	return schedule
}
