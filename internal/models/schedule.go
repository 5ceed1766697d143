package models

import "time"

// The three conservation designations Dominion rotates across calendar days.
const (
	DesignationA = "A"
	DesignationB = "B"
	DesignationC = "C"
)

// ValidDesignation reports whether s is one of the three rotation letters.
func ValidDesignation(s string) bool {
	return s == DesignationA || s == DesignationB || s == DesignationC
}

// DateLayout is the calendar-date format used on the wire and for ordering.
// ISO dates compare correctly as strings, which the aggregation relies on.
const DateLayout = "2006-01-02"

// ScheduleEntry is one calendar day's designation. Day matches the
// day-of-month of Date. Entries are never modified after normalization.
type ScheduleEntry struct {
	Date        string `json:"date"`
	Day         int    `json:"day"`
	Designation string `json:"designation"`
	Timestamp   string `json:"timestamp"`
}

// Summary holds per-letter counts over the upcoming window.
// TotalUpcoming always equals the number of upcoming entries.
type Summary struct {
	TotalUpcoming int `json:"total_upcoming"`
	ACount        int `json:"A_count"`
	BCount        int `json:"B_count"`
	CCount        int `json:"C_count"`
}

// SchedulePayload is the canonical payload one extraction run produces.
// NextDesignation is nil when no entry on or after the run date exists.
type SchedulePayload struct {
	FetchedAt        string          `json:"fetched_at"`
	NextDesignation  *ScheduleEntry  `json:"next_designation"`
	UpcomingSchedule []ScheduleEntry `json:"upcoming_schedule"`
	Summary          Summary         `json:"summary"`
}

// StoredRecord is the persisted form: the payload plus the time the API
// received it. Status and Message are set only on the "no data yet" sentinel.
type StoredRecord struct {
	SchedulePayload
	ReceivedAt string `json:"received_at,omitempty"`
	Status     string `json:"status,omitempty"`
	Message    string `json:"message,omitempty"`
}

// NoData reports whether r is the sentinel served before the first write.
func (r *StoredRecord) NoData() bool {
	return r.Status == "no_data"
}

// Sentinel returns the record served until the first successful save.
func Sentinel() *StoredRecord {
	return &StoredRecord{Status: "no_data", Message: "Waiting for first update"}
}

// NewStoredRecord stamps payload with the given receive time.
func NewStoredRecord(payload SchedulePayload, receivedAt time.Time) StoredRecord {
	return StoredRecord{
		SchedulePayload: payload,
		ReceivedAt:      receivedAt.Format(time.RFC3339),
	}
}
