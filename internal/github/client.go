package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ghactions/internal/logger"
)

const (
	// DefaultBaseURL is the public GitHub REST API endpoint.
	DefaultBaseURL = "https://api.github.com"
	// apiVersion is sent on every request via the X-GitHub-Api-Version header.
	apiVersion = "2022-11-28"
	// requestTimeout bounds every API call so a tool invocation cannot hang
	// on an unresponsive endpoint.
	requestTimeout = 15 * time.Second
)

// Client talks to the GitHub REST API with a bearer token.
//
// A Client is constructed per tool invocation with the token resolved for
// that invocation; it holds no state beyond the HTTP client and base URL.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *logger.Entry
}

// NewClient creates a client for the given token. The token must already be
// resolved (explicit argument, config file, or environment); an empty token
// is caught earlier as a missing-credential failure, not here.
func NewClient(token string) *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		http:    &http.Client{Timeout: requestTimeout},
		log:     logger.Named("github"),
	}
}

// SetBaseURL overrides the API endpoint. Used by tests and GHES setups.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// do issues one request and returns the response. The caller owns the body.
func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debugf("-> %s %s", method, path)
	return c.http.Do(req)
}

// getJSON issues a GET and decodes a 200 response into out. Non-200 statuses
// are mapped to an APIError for the given operation.
func (c *Client) getJSON(ctx context.Context, path, operation string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiErrorFrom(resp, operation)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to parse response: %w", operation, err)
	}
	return nil
}

// apiErrorFrom builds an APIError from a non-success response, embedding the
// provider's message when the body carries one.
func apiErrorFrom(resp *http.Response, operation string) *APIError {
	msg := ""
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(data) > 0 {
		var body apiErrorBody
		if json.Unmarshal(data, &body) == nil && body.Message != "" {
			msg = body.Message
		} else {
			msg = string(bytes.TrimSpace(data))
		}
	}
	return &APIError{
		Kind:      classifyStatus(resp.StatusCode),
		Status:    resp.StatusCode,
		Operation: operation,
		Message:   msg,
	}
}

// CheckAuth performs a cheap authenticated call to validate the token. Used
// by the doctor command.
func (c *Client) CheckAuth(ctx context.Context) error {
	var out struct {
		Resources map[string]any `json:"resources"`
	}
	return c.getJSON(ctx, "/rate_limit", "check GitHub credentials", &out)
}
