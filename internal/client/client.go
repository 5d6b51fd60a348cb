// Package client implements the quiz backend's wire contract. The backend
// owns grading and persistence; this client consumes its REST surface and
// applies the prompt codec on every question read and write path.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/quizforge/quiz-core/internal/config"
	"github.com/quizforge/quiz-core/internal/utils"
)

var (
	// ErrUnauthorized is returned when the bearer token is rejected.
	ErrUnauthorized = errors.New("authentication failed")
	// ErrNotFound is returned for unknown quiz/attempt identifiers.
	ErrNotFound = errors.New("resource not found")
)

// APIError carries a non-2xx backend response.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api request failed: %s %s returned %d", e.Method, e.Path, e.StatusCode)
}

// Client is the shared HTTP transport for the quiz and attempt services.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     utils.Logger
}

func New(cfg *config.Config, logger utils.Logger) *Client {
	return &Client{
		baseURL: cfg.APIBaseURL,
		token:   cfg.APIToken,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
	}
}

// do performs one JSON request against the backend. A nil out discards the
// response body.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.LogRequest(method, path, resp.StatusCode, time.Since(start).String())

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s %s", ErrUnauthorized, method, path)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	case resp.StatusCode >= 400:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %s %s: %w", method, path, err)
	}
	return nil
}
