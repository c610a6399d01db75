// Package llm provides a retrying HTTP client for the Gemini generateContent
// API and defensive readers for its response envelopes.
//
// The client deliberately works with untyped response envelopes
// (map[string]any) instead of an SDK response type: the API has shipped more
// than one envelope layout, and the reader in envelope.go probes the known
// shapes rather than binding to a single one.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Default request policy for the generateContent call.
const (
	DefaultBaseURL        = "https://generativelanguage.googleapis.com"
	DefaultModel          = "gemini-2.5-flash"
	DefaultAttempts       = 3
	DefaultBackoff        = 1 * time.Second
	DefaultRequestTimeout = 60 * time.Second
)

// Config holds the Gemini client configuration. The API key is checked once
// at construction; an absent key makes every call fail fast with
// MissingCredentialError instead of attempting the network.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	Attempts       int
	Backoff        time.Duration
	RequestTimeout time.Duration
}

// Client calls the Gemini generateContent endpoint with bounded retries.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger

	// sleep is replaceable in tests to observe backoff delays
	sleep func(time.Duration)
}

// request mirrors the generateContent request body:
// {"contents": [{"parts": [{"text": <prompt>}]}]}
type request struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// NewClient creates a Gemini client. Zero-valued config fields fall back to
// the package defaults.
func NewClient(config Config, logger zerolog.Logger) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.Attempts <= 0 {
		config.Attempts = DefaultAttempts
	}
	if config.Backoff <= 0 {
		config.Backoff = DefaultBackoff
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = DefaultRequestTimeout
	}

	return &Client{
		httpClient: &http.Client{},
		config:     config,
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// GenerateContent sends the prompt to the model and returns the deserialized
// response envelope. Attempts are sequential: each has its own timeout, and
// the delay before attempt N+1 is backoff*N (linearly increasing). After the
// final failed attempt it returns ModelUnavailableError.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (map[string]any, error) {
	if c.config.APIKey == "" {
		return nil, &MissingCredentialError{}
	}

	body, err := json.Marshal(request{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.config.BaseURL, c.config.Model)

	var lastErr error
	for attempt := 1; attempt <= c.config.Attempts; attempt++ {
		envelope, err := c.doRequest(ctx, url, body)
		if err == nil {
			return envelope, nil
		}
		lastErr = err
		c.logger.Warn().
			Int("attempt", attempt).
			Int("max_attempts", c.config.Attempts).
			Err(err).
			Msg("model call attempt failed")

		if attempt < c.config.Attempts {
			c.sleep(c.config.Backoff * time.Duration(attempt))
		}
	}

	return nil, &ModelUnavailableError{Attempts: c.config.Attempts, Cause: lastErr}
}

// doRequest performs a single generateContent attempt with its own timeout.
func (c *Client) doRequest(ctx context.Context, url string, body []byte) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP status %d: %s", resp.StatusCode, snippet(respBody, 500))
	}

	var envelope map[string]any
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	return envelope, nil
}

// snippet truncates a response body for log-safe error messages.
func snippet(body []byte, max int) string {
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
