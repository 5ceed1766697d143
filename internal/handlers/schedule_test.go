package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gridwatch/dominion-schedule/internal/config"
	"github.com/gridwatch/dominion-schedule/internal/models"
	"github.com/gridwatch/dominion-schedule/internal/store"
)

const testAPIKey = "test-key"

// newTestRouter returns a router backed by a fresh file store in a temp dir.
func newTestRouter(t *testing.T) (http.Handler, *store.FileStore) {
	t.Helper()
	st := store.NewFileStore(filepath.Join(t.TempDir(), "schedule.json"))
	cfg := config.Config{APIKey: testAPIKey}
	return NewRouter(cfg, st), st
}

func testPayload() models.SchedulePayload {
	next := models.ScheduleEntry{Date: "2026-01-27", Day: 27, Designation: "B", Timestamp: "2026-01-27T00:00:00Z"}
	return models.SchedulePayload{
		FetchedAt:       "2026-01-27T08:00:00Z",
		NextDesignation: &next,
		UpcomingSchedule: []models.ScheduleEntry{
			next,
			{Date: "2026-01-28", Day: 28, Designation: "A", Timestamp: "2026-01-28T00:00:00Z"},
			{Date: "2026-01-29", Day: 29, Designation: "C", Timestamp: "2026-01-29T00:00:00Z"},
			{Date: "2026-01-30", Day: 30, Designation: "A", Timestamp: "2026-01-30T00:00:00Z"},
			{Date: "2026-01-31", Day: 31, Designation: "A", Timestamp: "2026-01-31T00:00:00Z"},
		},
		Summary: models.Summary{TotalUpcoming: 5, ACount: 3, BCount: 1, CCount: 1},
	}
}

func postSchedule(t *testing.T, r http.Handler, key string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/dominion-schedule", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestReceive_Success(t *testing.T) {
	r, _ := newTestRouter(t)

	body, _ := json.Marshal(testPayload())
	rr := postSchedule(t, r, testAPIKey, body)

	if rr.Code != http.StatusOK {
		t.Fatalf("Receive status: got %d, want 200 (%s)", rr.Code, rr.Body.String())
	}
	var out struct {
		Status          string `json:"status"`
		NextDesignation string `json:"next_designation"`
		NextDate        string `json:"next_date"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Status != "success" || out.NextDesignation != "B" || out.NextDate != "2026-01-27" {
		t.Errorf("unexpected response: %+v", out)
	}
}

func TestReceive_MissingAuth(t *testing.T) {
	r, _ := newTestRouter(t)

	body, _ := json.Marshal(testPayload())
	if rr := postSchedule(t, r, "", body); rr.Code != http.StatusUnauthorized {
		t.Errorf("no auth: got %d, want 401", rr.Code)
	}
	if rr := postSchedule(t, r, "wrong-key", body); rr.Code != http.StatusUnauthorized {
		t.Errorf("wrong key: got %d, want 401", rr.Code)
	}
}

func TestReceive_InvalidJSON(t *testing.T) {
	r, _ := newTestRouter(t)

	if rr := postSchedule(t, r, testAPIKey, []byte("{not json")); rr.Code != http.StatusBadRequest {
		t.Errorf("invalid JSON: got %d, want 400", rr.Code)
	}
}

func TestReceive_MissingFields(t *testing.T) {
	r, _ := newTestRouter(t)

	body := []byte(`{"fetched_at":"2026-01-27T08:00:00Z","next_designation":null,"upcoming_schedule":[]}`)
	rr := postSchedule(t, r, testAPIKey, body)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("missing fields: got %d, want 400", rr.Code)
	}
	var out struct {
		Error   string   `json:"error"`
		Missing []string `json:"missing"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.Missing) != 1 || out.Missing[0] != "summary" {
		t.Errorf("missing list: got %v, want [summary]", out.Missing)
	}
}

func TestReceive_AliasRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	body, _ := json.Marshal(testPayload())
	req := httptest.NewRequest("POST", "/api/schedule", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("alias route: got %d, want 200", rr.Code)
	}
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestReads_NoDataYet(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{"/api/next", "/api/today", "/api/upcoming", "/api/summary", "/dominion-schedule"} {
		if rr := get(r, path); rr.Code != http.StatusNotFound {
			t.Errorf("GET %s before first write: got %d, want 404", path, rr.Code)
		}
	}

	rr := get(r, "/api/designation")
	if rr.Code != http.StatusNotFound || rr.Body.String() != "ERROR" {
		t.Errorf("GET /api/designation: got %d %q, want 404 ERROR", rr.Code, rr.Body.String())
	}
}

func TestDesignation(t *testing.T) {
	r, st := newTestRouter(t)
	if err := st.Save(context.Background(), testPayload()); err != nil {
		t.Fatal(err)
	}

	rr := get(r, "/api/designation")
	if rr.Code != http.StatusOK || rr.Body.String() != "B" {
		t.Errorf("designation: got %d %q, want 200 B", rr.Code, rr.Body.String())
	}
}

func TestDesignation_NoneUpcoming(t *testing.T) {
	r, st := newTestRouter(t)
	p := testPayload()
	p.NextDesignation = nil
	if err := st.Save(context.Background(), p); err != nil {
		t.Fatal(err)
	}

	rr := get(r, "/api/designation")
	if rr.Code != http.StatusNotFound || rr.Body.String() != "NONE" {
		t.Errorf("designation: got %d %q, want 404 NONE", rr.Code, rr.Body.String())
	}
}

func TestNext(t *testing.T) {
	r, st := newTestRouter(t)
	if err := st.Save(context.Background(), testPayload()); err != nil {
		t.Fatal(err)
	}

	rr := get(r, "/api/next")
	if rr.Code != http.StatusOK {
		t.Fatalf("next: got %d, want 200", rr.Code)
	}
	var out struct {
		Designation string `json:"designation"`
		Date        string `json:"date"`
		Day         int    `json:"day"`
		ReceivedAt  string `json:"received_at"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Designation != "B" || out.Date != "2026-01-27" || out.Day != 27 {
		t.Errorf("unexpected next: %+v", out)
	}
	if out.ReceivedAt == "" {
		t.Error("received_at missing")
	}
}

func TestToday(t *testing.T) {
	r, st := newTestRouter(t)

	today := time.Now().Format(models.DateLayout)
	p := testPayload()
	p.UpcomingSchedule = append(p.UpcomingSchedule, models.ScheduleEntry{
		Date: today, Day: time.Now().Day(), Designation: "C", Timestamp: today + "T00:00:00Z",
	})
	if err := st.Save(context.Background(), p); err != nil {
		t.Fatal(err)
	}

	rr := get(r, "/api/today")
	if rr.Code != http.StatusOK {
		t.Fatalf("today: got %d, want 200", rr.Code)
	}
	var out struct {
		Date        string `json:"date"`
		Designation string `json:"designation"`
		IsToday     bool   `json:"is_today"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Date != today || out.Designation != "C" || !out.IsToday {
		t.Errorf("unexpected today: %+v", out)
	}
}

func TestToday_NotInWindow(t *testing.T) {
	r, st := newTestRouter(t)
	if err := st.Save(context.Background(), testPayload()); err != nil {
		t.Fatal(err)
	}

	if rr := get(r, "/api/today"); rr.Code != http.StatusNotFound {
		t.Errorf("today: got %d, want 404", rr.Code)
	}
}

func TestUpcoming_FilterAndLimit(t *testing.T) {
	r, st := newTestRouter(t)
	if err := st.Save(context.Background(), testPayload()); err != nil {
		t.Fatal(err)
	}

	rr := get(r, "/api/upcoming?limit=2&designation=A")
	if rr.Code != http.StatusOK {
		t.Fatalf("upcoming: got %d, want 200", rr.Code)
	}
	var out struct {
		Upcoming []struct {
			Date        string `json:"date"`
			Designation string `json:"designation"`
		} `json:"upcoming"`
		Count          int `json:"count"`
		TotalAvailable int `json:"total_available"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 2 || len(out.Upcoming) != 2 {
		t.Fatalf("count: got %d (%d entries), want 2", out.Count, len(out.Upcoming))
	}
	if out.Upcoming[0].Date != "2026-01-28" || out.Upcoming[1].Date != "2026-01-30" {
		t.Errorf("unexpected entries: %+v", out.Upcoming)
	}
	for _, e := range out.Upcoming {
		if e.Designation != "A" {
			t.Errorf("filter leaked: %+v", e)
		}
	}
	if out.TotalAvailable != 5 {
		t.Errorf("total_available: got %d, want 5", out.TotalAvailable)
	}
}

func TestUpcoming_LowercaseFilter(t *testing.T) {
	r, st := newTestRouter(t)
	if err := st.Save(context.Background(), testPayload()); err != nil {
		t.Fatal(err)
	}

	rr := get(r, "/api/upcoming?designation=a")
	var out struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 3 {
		t.Errorf("count: got %d, want 3", out.Count)
	}
}

func TestSummary(t *testing.T) {
	r, st := newTestRouter(t)
	if err := st.Save(context.Background(), testPayload()); err != nil {
		t.Fatal(err)
	}

	rr := get(r, "/api/summary")
	if rr.Code != http.StatusOK {
		t.Fatalf("summary: got %d, want 200", rr.Code)
	}
	var out struct {
		TotalUpcoming   int    `json:"total_upcoming"`
		ACount          int    `json:"A_count"`
		NextDesignation string `json:"next_designation"`
		NextDate        string `json:"next_date"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.TotalUpcoming != 5 || out.ACount != 3 || out.NextDesignation != "B" || out.NextDate != "2026-01-27" {
		t.Errorf("unexpected summary: %+v", out)
	}
}

func TestFullRecord(t *testing.T) {
	r, st := newTestRouter(t)
	if err := st.Save(context.Background(), testPayload()); err != nil {
		t.Fatal(err)
	}

	rr := get(r, "/dominion-schedule")
	if rr.Code != http.StatusOK {
		t.Fatalf("full record: got %d, want 200", rr.Code)
	}
	var rec models.StoredRecord
	if err := json.NewDecoder(rr.Body).Decode(&rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.ReceivedAt == "" || len(rec.UpcomingSchedule) != 5 {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestHealth(t *testing.T) {
	r, st := newTestRouter(t)

	rr := get(r, "/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("health: got %d, want 200", rr.Code)
	}
	var out struct {
		Status     string `json:"status"`
		HasData    bool   `json:"has_data"`
		LastUpdate string `json:"last_update"`
		Storage    string `json:"storage"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Status != "healthy" || out.HasData || out.LastUpdate != "never" || out.Storage != "file" {
		t.Errorf("unexpected health: %+v", out)
	}

	if err := st.Save(context.Background(), testPayload()); err != nil {
		t.Fatal(err)
	}
	rr = get(r, "/health")
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.HasData || out.LastUpdate == "never" {
		t.Errorf("unexpected health after write: %+v", out)
	}
}

func TestIndex(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := get(r, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("index: got %d, want 200", rr.Code)
	}
	var out struct {
		Name      string            `json:"name"`
		Endpoints map[string]string `json:"endpoints"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Name == "" || len(out.Endpoints) == 0 {
		t.Errorf("unexpected index: %+v", out)
	}
}
