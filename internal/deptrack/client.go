// Package deptrack is a typed client for the Dependency-Track REST API,
// covering the access-management surface: OIDC groups, teams, projects,
// permissions, group mappings, and portfolio ACL entries.
//
// Every accessor issues exactly one HTTP request. Mutating accessors report a
// "changed" signal derived from the response status code; an unexpected status
// on a write is not an error. List and get accessors return an error on any
// non-2xx status.
package deptrack

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
)

// Client talks to a Dependency-Track API server. The API key is sent as the
// X-API-Key header on every request.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a client for the given server. A trailing slash on the
// base URL is stripped.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Do issues a single HTTP request against the API. The path is relative to
// /api/v1. A non-nil body is JSON-encoded.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Response, error) {
	u := c.BaseURL + "/api/v1" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-API-Key", c.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.HTTPClient.Do(req)
}

// APIError is returned when a read endpoint responds with a non-2xx status.
type APIError struct {
	Method     string
	Path       string
	HTTPStatus int
	Body       string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.HTTPStatus)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.HTTPStatus, body)
}

// get issues a GET and decodes the JSON response into target. Any non-2xx
// status is an error: read failures are fatal to a reconciliation pass.
func (c *Client) get(ctx context.Context, path string, query url.Values, target interface{}) error {
	resp, err := c.Do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read GET %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Method: http.MethodGet, Path: path, HTTPStatus: resp.StatusCode, Body: string(data)}
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parse GET %s: %w", path, err)
	}
	return nil
}

// write issues a mutating request and reports whether the response status
// matches wantStatus. Any other status means "no change"; only transport
// failures surface as errors.
func (c *Client) write(ctx context.Context, method, path string, body interface{}, wantStatus int) (bool, error) {
	resp, err := c.Do(ctx, method, path, nil, body)
	if err != nil {
		return false, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == wantStatus, nil
}

// writeDecode issues a mutating request; when the response status matches
// wantStatus it decodes the body into target and reports changed=true.
func (c *Client) writeDecode(ctx context.Context, method, path string, body, target interface{}, wantStatus int) (bool, error) {
	resp, err := c.Do(ctx, method, path, nil, body)
	if err != nil {
		return false, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return true, fmt.Errorf("read %s %s: %w", method, path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return true, fmt.Errorf("parse %s %s: %w", method, path, err)
	}
	return true, nil
}
