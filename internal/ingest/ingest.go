package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"data-qc/internal/dataset"
)

const (
	HealthTimeout = 5 * time.Second
	SendTimeout   = 30 * time.Second

	// SampleEndpoint is where SendSample posts rows.
	SampleEndpoint = "ingest/sample"
	// SampleRows caps how many rows SendSample forwards.
	SampleRows = 20
)

// StatusError is returned by Send when the service answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ingest: unexpected status %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// HealthStatus is the outcome of a health probe.
type HealthStatus struct {
	OK         bool
	StatusCode int
	Body       string
}

// Client talks to the ingestion service. There are no retries: each call is
// attempted exactly once.
type Client struct {
	baseURL string
	token   string
	health  *http.Client
	send    *http.Client
}

// NewClient builds a client for baseURL. An empty token sends no Authorization header.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		health:  &http.Client{Timeout: HealthTimeout},
		send:    &http.Client{Timeout: SendTimeout},
	}
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Health probes GET {base}/health. Any transport error or non-200 status
// yields an unhealthy status; it never returns an error.
func (c *Client) Health(ctx context.Context) HealthStatus {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return HealthStatus{}
	}
	resp, err := c.health.Do(req)
	if err != nil {
		return HealthStatus{}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return HealthStatus{StatusCode: resp.StatusCode}
	}
	return HealthStatus{
		OK:         resp.StatusCode == http.StatusOK,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}

// Healthy reports whether the service answered its health probe with 200.
func (c *Client) Healthy(ctx context.Context) bool {
	return c.Health(ctx).OK
}

// Send POSTs payload as JSON to {base}/{endpoint} and returns the raw response
// body. Non-2xx responses come back as *StatusError.
func (c *Client) Send(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ingest: marshal payload: %w", err)
	}
	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ingest: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.send.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ingest: post %s: %w", url, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ingest: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return bytes.TrimSpace(respBody), nil
}

// SendSample forwards the first n rows of ds as {"rows": [...]}.
func (c *Client) SendSample(ctx context.Context, ds dataset.Dataset, n int) (json.RawMessage, error) {
	rows, err := ds.RowsJSON(n, "")
	if err != nil {
		return nil, fmt.Errorf("ingest: serialize rows: %w", err)
	}
	return c.Send(ctx, SampleEndpoint, map[string]json.RawMessage{"rows": rows})
}
