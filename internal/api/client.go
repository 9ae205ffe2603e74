// Package api is the client for the dataset curation backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/rcliao/curate/internal/model"
)

// Prefix is the path every backend route lives under.
const Prefix = "/api"

// Client talks to the curation backend. It sets no request timeout; callers
// bound calls through the context when they need to.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a backend client rooted at baseURL (without the /api prefix).
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// CreateResponse is what the backend returns after storing an entry.
type CreateResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Ping checks that the API root answers.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "ping", http.MethodGet, "", nil, nil)
}

// ListEntries fetches the full entry collection.
func (c *Client) ListEntries(ctx context.Context) ([]model.Entry, error) {
	var entries []model.Entry
	if err := c.do(ctx, "list entries", http.MethodGet, "/entries", nil, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	return entries, nil
}

// CreateEntry stores a new record.
func (c *Client) CreateEntry(ctx context.Context, rec model.Record) (*CreateResponse, error) {
	var out CreateResponse
	body := model.NewEntryRequest{Type: rec.Format(), Data: rec}
	if err := c.do(ctx, "create entry", http.MethodPost, "/entries", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteEntry removes one entry by id.
func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	return c.do(ctx, "delete entry", http.MethodDelete, "/entries/"+pathEscape(id), nil, nil)
}

// DeleteAll clears the whole collection.
func (c *Client) DeleteAll(ctx context.Context) error {
	return c.do(ctx, "clear entries", http.MethodDelete, "/entries", nil, nil)
}

// Validate asks the backend for a quality assessment of rec.
func (c *Client) Validate(ctx context.Context, rec model.Record) (*model.ValidationResult, error) {
	var out model.ValidationResult
	body := model.NewEntryRequest{Type: rec.Format(), Data: rec}
	if err := c.do(ctx, "validate", http.MethodPost, "/validate", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) url(path string) string {
	return c.baseURL + Prefix + path
}

func (c *Client) newRequest(ctx context.Context, method, path string, in any) (*http.Request, string, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	reqID := ulid.Make().String()
	req.Header.Set("X-Request-ID", reqID)
	return req, reqID, nil
}

// do sends one JSON request. Any non-2xx status becomes an *Error carrying the body text.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	req, reqID, err := c.newRequest(ctx, method, path, in)
	if err != nil {
		return err
	}

	log := c.logger.With(zap.String("op", op), zap.String("request_id", reqID))
	log.Debug("api request", zap.String("method", method), zap.String("url", req.URL.String()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("api transport failure", zap.Error(err))
		return &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(resp.Body)
		apiErr := &Error{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
		log.Error("api error", zap.Int("status", resp.StatusCode), zap.String("body", apiErr.Body))
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			log.Error("api decode failure", zap.Error(err))
			return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
		}
	}
	log.Debug("api response", zap.Int("status", resp.StatusCode))
	return nil
}
