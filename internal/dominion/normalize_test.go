package dominion

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/gridwatch/dominion-schedule/internal/models"
)

// msDate formats a local date as the upstream's wrapped-epoch encoding.
func msDate(year int, month time.Month, day int) string {
	t := time.Date(year, month, day, 12, 0, 0, 0, time.Local)
	return fmt.Sprintf("/Date(%d)/", t.UnixMilli())
}

func TestExtractSchedule(t *testing.T) {
	m := models.MonthResponse{
		Weeks: []models.RawWeek{
			{Days: []models.RawDay{
				{Date: msDate(2026, time.January, 29), Day: 29, Designation: "C"},
				{Date: msDate(2026, time.January, 28), Day: 28, Designation: "B"},
			}},
			{Days: []models.RawDay{
				{Date: msDate(2026, time.January, 27), Day: 27, Designation: "A"},
			}},
		},
	}

	schedule := ExtractSchedule(m)
	if len(schedule) != 3 {
		t.Fatalf("ExtractSchedule: got %d entries, want 3", len(schedule))
	}
	for i := 1; i < len(schedule); i++ {
		if schedule[i-1].Date > schedule[i].Date {
			t.Errorf("schedule not sorted: %s before %s", schedule[i-1].Date, schedule[i].Date)
		}
	}
	if schedule[0].Designation != "A" || schedule[0].Day != 27 {
		t.Errorf("unexpected first entry: %+v", schedule[0])
	}
}

func TestExtractSchedule_DropsMalformedRecords(t *testing.T) {
	m := models.MonthResponse{
		Weeks: []models.RawWeek{
			{Days: []models.RawDay{
				{Date: "", Day: 1, Designation: "A"},               // week padding
				{Date: "null", Day: 2, Designation: "B"},           // null marker
				{Date: "/Date(abc)/", Day: 3, Designation: "C"},    // undecodable
				{Date: msDate(2026, time.January, 4), Day: 4},      // no designation
				{Date: msDate(2026, time.January, 5), Day: 5, Designation: "X"}, // invalid letter
				{Date: msDate(2026, time.January, 6), Day: 6, Designation: "B"},
			}},
		},
	}

	schedule := ExtractSchedule(m)
	if len(schedule) != 1 {
		t.Fatalf("ExtractSchedule: got %d entries, want 1", len(schedule))
	}
	if schedule[0].Day != 6 || schedule[0].Designation != "B" {
		t.Errorf("unexpected entry: %+v", schedule[0])
	}
}

func TestExtractSchedule_Empty(t *testing.T) {
	if got := ExtractSchedule(models.MonthResponse{}); len(got) != 0 {
		t.Errorf("ExtractSchedule: got %d entries, want 0", len(got))
	}
}

func TestExtractSchedule_UpstreamScenario(t *testing.T) {
	// A real upstream record with a wrapped millisecond epoch.
	raw := `{"Weeks":[{"Days":[{"Date":"/Date(1769558400000)/","Day":28,"Designation":"B"}]}]}`
	var m models.MonthResponse
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	schedule := ExtractSchedule(m)
	if len(schedule) != 1 {
		t.Fatalf("ExtractSchedule: got %d entries, want 1", len(schedule))
	}
	e := schedule[0]
	wantDate := time.UnixMilli(1769558400000).Format(models.DateLayout)
	if e.Date != wantDate || e.Day != 28 || e.Designation != "B" {
		t.Errorf("unexpected entry: %+v (want date %s, day 28, designation B)", e, wantDate)
	}
}

func TestExtractSchedule_QuotedDayNumber(t *testing.T) {
	raw := fmt.Sprintf(`{"Weeks":[{"Days":[{"Date":"%s","Day":"15","Designation":"A"}]}]}`, msDate(2026, time.March, 15))
	var m models.MonthResponse
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	schedule := ExtractSchedule(m)
	if len(schedule) != 1 || schedule[0].Day != 15 {
		t.Errorf("unexpected schedule: %+v", schedule)
	}
}
