// Package client talks to the summarization service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dtnitsch/smart-reader/models"
)

// maxErrorBody caps how much of a failed response is kept for diagnostics.
const maxErrorBody = 4 << 10

// Client makes a single POST /summarize request per call. It never retries.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the service at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = models.DefaultServiceURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// NewWithHTTPClient uses hc for transport.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	c := New(baseURL, 0)
	c.http = hc
	return c
}

// Summarize sends text with either a named level or a ratio. A level of ""
// or "ratio" sends the ratio.
func (c *Client) Summarize(ctx context.Context, text string, ratio float64, level string) (string, error) {
	req := models.SummaryRequest{Text: text}
	if level == "" || level == models.DefaultLevel {
		r := ratio
		req.Ratio = &r
	} else {
		req.Level = level
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/summarize", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrBackendUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &models.BackendError{Status: resp.StatusCode, Body: errorDetail(raw)}
	}

	var out models.SummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrMalformedResponse, err)
	}
	if out.Summary == nil {
		return "", models.ErrMalformedResponse
	}
	return *out.Summary, nil
}

// errorDetail prefers the service's {"detail": ...} message over the raw body.
func errorDetail(raw []byte) string {
	var er models.ErrorResponse
	if err := json.Unmarshal(raw, &er); err == nil && er.Detail != "" {
		return er.Detail
	}
	return strings.TrimSpace(string(raw))
}
