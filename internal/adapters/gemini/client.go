package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"analyze-relay-api/internal/models"
)

// Default endpoint settings
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash-preview-09-2025"
)

// ClientConfig configures the generateContent client
type ClientConfig struct {
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// Client calls the provider's generateContent endpoint
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient creates a new Client, filling in defaults for empty fields
func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		model:      model,
		httpClient: httpClient,
	}
}

// Model returns the model name requests are sent to
func (c *Client) Model() string {
	return c.model
}

// endpoint builds the generateContent URL with the key as a query credential
func (c *Client) endpoint(apiKey string) string {
	q := url.Values{}
	q.Set("key", apiKey)
	return fmt.Sprintf("%s/models/%s:generateContent?%s", c.baseURL, url.PathEscape(c.model), q.Encode())
}

// GenerateContent issues a single generateContent call.
// A non-2xx answer is returned as *UpstreamError.
func (c *Client) GenerateContent(ctx context.Context, apiKey string, payload *models.UpstreamPayload) (*models.UpstreamResponse, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(apiKey), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error embeds the request URL, which carries the key
		return nil, fmt.Errorf("upstream request failed: %w", redactKey(err, apiKey))
	}
	defer resp.Body.Close()

	logrus.WithFields(logrus.Fields{
		"model":       c.model,
		"status_code": resp.StatusCode,
		"latency_ms":  float64(time.Since(start).Nanoseconds()) / 1000000,
	}).Debug("Upstream call completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read upstream error body: %w", err)
		}
		return nil, NewUpstreamError(resp.StatusCode, string(text))
	}

	var out models.UpstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return &out, nil
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

func redactKey(err error, apiKey string) error {
	original := err.Error()
	msg := strings.ReplaceAll(original, url.QueryEscape(apiKey), "REDACTED")
	msg = strings.ReplaceAll(msg, apiKey, "REDACTED")
	if msg == original {
		return err
	}
	return &redactedError{msg: msg, err: err}
}
