package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gridwatch/dominion-schedule/internal/models"
	"github.com/gridwatch/dominion-schedule/internal/store"
)

// ScheduleHandler serves the stored designation schedule: one authenticated
// write from the extractor, read-only derivations for everyone else. The
// handler never mutates the stored record.
type ScheduleHandler struct {
	Store store.Store

	// Now is the clock; overridable in tests.
	Now func() time.Time
}

// requiredFields must all be present (null is fine) in a write body.
var requiredFields = []string{"fetched_at", "next_designation", "upcoming_schedule", "summary"}

// Receive accepts an aggregated payload from the extractor and persists it.
func (h *ScheduleHandler) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var missing []string
	for _, f := range requiredFields {
		if _, ok := raw[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		JSONMissingFields(w, missing)
		return
	}

	var payload models.SchedulePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if err := h.Store.Save(r.Context(), payload); err != nil {
		slog.Error("save schedule failed", "err", err)
		JSONError(w, "Failed to save data", http.StatusInternalServerError)
		return
	}

	resp := map[string]interface{}{
		"status":           "success",
		"message":          "Schedule data received and stored",
		"next_designation": nil,
		"next_date":        nil,
	}
	if next := payload.NextDesignation; next != nil {
		resp["next_designation"] = next.Designation
		resp["next_date"] = next.Date
		slog.Info("received schedule update", "next", next.Designation, "date", next.Date)
	} else {
		slog.Info("received schedule update", "next", "none")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// load fetches the stored record, replying 404 on read failure or sentinel.
// Returns nil when the response has already been written.
func (h *ScheduleHandler) load(w http.ResponseWriter, r *http.Request) *models.StoredRecord {
	rec, err := h.Store.Load(r.Context())
	if err != nil {
		slog.Error("load schedule failed", "err", err)
		JSONError(w, "No data available", http.StatusNotFound)
		return nil
	}
	if rec.NoData() {
		JSONError(w, "No data available", http.StatusNotFound)
		return nil
	}
	return rec
}

// Designation returns just the letter as plain text: A, B, or C.
func (h *ScheduleHandler) Designation(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.Load(r.Context())
	if err != nil || rec.NoData() {
		if err != nil {
			slog.Error("load schedule failed", "err", err)
		}
		plainText(w, "ERROR", http.StatusNotFound)
		return
	}
	if rec.NextDesignation == nil {
		plainText(w, "NONE", http.StatusNotFound)
		return
	}
	plainText(w, rec.NextDesignation.Designation, http.StatusOK)
}

// Next returns the next designation with details.
func (h *ScheduleHandler) Next(w http.ResponseWriter, r *http.Request) {
	rec := h.load(w, r)
	if rec == nil {
		return
	}
	next := rec.NextDesignation
	if next == nil {
		JSONError(w, "No upcoming designation found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"designation": next.Designation,
		"date":        next.Date,
		"day":         next.Day,
		"timestamp":   next.Timestamp,
		"fetched_at":  rec.FetchedAt,
		"received_at": rec.ReceivedAt,
	})
}

// Today returns today's designation, if the upcoming window covers today.
func (h *ScheduleHandler) Today(w http.ResponseWriter, r *http.Request) {
	rec := h.load(w, r)
	if rec == nil {
		return
	}

	today := h.Now().Format(models.DateLayout)
	for _, e := range rec.UpcomingSchedule {
		if e.Date == today {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"date":        e.Date,
				"designation": e.Designation,
				"day":         e.Day,
				"is_today":    true,
			})
			return
		}
	}

	JSONError(w, "No designation for today", http.StatusNotFound)
}

// Upcoming returns the upcoming window, optionally filtered by designation
// letter and truncated to the first N entries (query: limit, designation).
func (h *ScheduleHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	rec := h.load(w, r)
	if rec == nil {
		return
	}

	upcoming := rec.UpcomingSchedule
	totalAvailable := len(upcoming)

	if filter := strings.ToUpper(r.URL.Query().Get("designation")); models.ValidDesignation(filter) {
		filtered := []models.ScheduleEntry{}
		for _, e := range upcoming {
			if e.Designation == filter {
				filtered = append(filtered, e)
			}
		}
		upcoming = filtered
	}

	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n < len(upcoming) {
			upcoming = upcoming[:n]
		}
	}

	if upcoming == nil {
		upcoming = []models.ScheduleEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"upcoming":        upcoming,
		"count":           len(upcoming),
		"total_available": totalAvailable,
	})
}

// Summary returns the per-letter counts plus next designation and timestamps.
func (h *ScheduleHandler) Summary(w http.ResponseWriter, r *http.Request) {
	rec := h.load(w, r)
	if rec == nil {
		return
	}

	out := map[string]interface{}{
		"total_upcoming":   rec.Summary.TotalUpcoming,
		"A_count":          rec.Summary.ACount,
		"B_count":          rec.Summary.BCount,
		"C_count":          rec.Summary.CCount,
		"next_designation": nil,
		"next_date":        nil,
		"fetched_at":       rec.FetchedAt,
		"received_at":      rec.ReceivedAt,
	}
	if next := rec.NextDesignation; next != nil {
		out["next_designation"] = next.Designation
		out["next_date"] = next.Date
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// FullRecord returns the complete stored record (file-backed deployments).
func (h *ScheduleHandler) FullRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.Load(r.Context())
	if err != nil {
		slog.Error("load schedule failed", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if rec.NoData() {
		JSONError(w, "No data available", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}

// Health always reports 200 so load balancers keep the instance in rotation;
// has_data says whether a schedule has ever been stored.
func (h *ScheduleHandler) Health(w http.ResponseWriter, r *http.Request) {
	lastUpdate := "never"
	hasData := false
	if rec, err := h.Store.Load(r.Context()); err == nil && !rec.NoData() {
		hasData = true
		if rec.ReceivedAt != "" {
			lastUpdate = rec.ReceivedAt
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":      "healthy",
		"timestamp":   h.Now().Format(time.RFC3339),
		"has_data":    hasData,
		"last_update": lastUpdate,
		"storage":     h.Store.Name(),
	})
}

// Index serves static API documentation.
func (h *ScheduleHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"name":    "Dominion Energy Schedule API",
		"version": "3.0",
		"storage": h.Store.Name(),
		"endpoints": map[string]string{
			"GET /api/designation":    "Returns just the letter (A, B, or C)",
			"GET /api/next":           "Returns next designation with details",
			"GET /api/today":          "Returns today's designation",
			"GET /api/upcoming":       "Returns upcoming schedule (query: limit, designation)",
			"GET /api/summary":        "Returns summary statistics",
			"POST /dominion-schedule": "Receives data from extractor (requires API key)",
			"GET /health":             "Health check",
		},
	})
}

func plainText(w http.ResponseWriter, body string, status int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
