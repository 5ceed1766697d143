package dominion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gridwatch/dominion-schedule/internal/models"
)

// Publisher posts aggregated payloads to the receiving API with bearer auth.
type Publisher struct {
	Endpoint string
	APIKey   string
	HTTP     *http.Client
}

// NewPublisher returns a Publisher targeting endpoint with a bounded timeout.
func NewPublisher(endpoint, apiKey string, timeout time.Duration) *Publisher {
	return &Publisher{
		Endpoint: endpoint,
		APIKey:   apiKey,
		HTTP:     &http.Client{Timeout: timeout},
	}
}

// Publish sends the payload. Callers treat an error as reportable, not fatal:
// the run already has its payload and the next run retries.
func (p *Publisher) Publish(ctx context.Context, payload models.SchedulePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	resp, err := p.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("publish: unexpected status %d", resp.StatusCode)
	}
	return nil
}
