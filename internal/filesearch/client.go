// Package filesearch drives the Gemini File Search REST API: store
// management, the three-phase resumable upload protocol, and the indexing
// operation poll loop.
package filesearch

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the Gemini API base for store, document and
	// operation resources.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	// DefaultUploadBaseURL is the base for the resumable upload protocol.
	DefaultUploadBaseURL = "https://generativelanguage.googleapis.com/upload/v1beta"

	// DefaultPollInterval and DefaultMaxPollAttempts bound the indexing
	// wait to roughly five minutes.
	DefaultPollInterval    = 5 * time.Second
	DefaultMaxPollAttempts = 60

	defaultRequestTimeout = 60 * time.Second
)

// Config configures a Client. Zero values fall back to defaults.
type Config struct {
	APIKey          string
	BaseURL         string
	UploadBaseURL   string
	HTTPClient      *http.Client
	PollInterval    time.Duration
	MaxPollAttempts int
}

// Client is a FileSearch API client. It holds no per-call state; the
// embedded HTTP client's connection pool may be shared across goroutines.
type Client struct {
	httpClient      *http.Client
	apiKey          string
	baseURL         string
	uploadBaseURL   string
	pollInterval    time.Duration
	maxPollAttempts int
}

// NewClient creates a Client from cfg.
func NewClient(cfg Config) *Client {
	c := &Client{
		httpClient:      cfg.HTTPClient,
		apiKey:          cfg.APIKey,
		baseURL:         cfg.BaseURL,
		uploadBaseURL:   cfg.UploadBaseURL,
		pollInterval:    cfg.PollInterval,
		maxPollAttempts: cfg.MaxPollAttempts,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.uploadBaseURL == "" {
		c.uploadBaseURL = DefaultUploadBaseURL
	}
	if c.pollInterval <= 0 {
		c.pollInterval = DefaultPollInterval
	}
	if c.maxPollAttempts <= 0 {
		c.maxPollAttempts = DefaultMaxPollAttempts
	}
	return c
}

// doJSON issues an authenticated request with an optional JSON body and
// returns the response body. Non-2xx responses become TransportErrors
// tagged with the given phase.
func (c *Client) doJSON(ctx context.Context, method, url, phase string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{Phase: phase, StatusCode: resp.StatusCode, Body: string(payload)}
	}
	return payload, nil
}
