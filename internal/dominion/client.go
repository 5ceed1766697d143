package dominion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gridwatch/dominion-schedule/internal/models"
)

// DefaultBaseURL is the upstream sched10 calendar API. Months are addressed
// by numeric year and English month name.
const DefaultBaseURL = "https://www.dominionenergy.com/api/sched10"

// Client fetches monthly designation calendars from the upstream API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient returns a Client with the given base URL (empty for the real
// upstream) and a bounded timeout on every request.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// FetchMonth retrieves one month's raw calendar. Any failure here aborts the
// extraction run: a partially fetched schedule must never be published.
func (c *Client) FetchMonth(ctx context.Context, year int, month time.Month) (models.MonthResponse, error) {
	url := fmt.Sprintf("%s/years/%d/months/%s", c.BaseURL, year, month.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.MonthResponse{}, fmt.Errorf("fetch %s %d: %w", month, year, err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return models.MonthResponse{}, fmt.Errorf("fetch %s %d: %w", month, year, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return models.MonthResponse{}, fmt.Errorf("fetch %s %d: unexpected status %d", month, year, resp.StatusCode)
	}

	var m models.MonthResponse
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return models.MonthResponse{}, fmt.Errorf("decode %s %d: %w", month, year, err)
	}
	return m, nil
}
