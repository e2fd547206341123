// Package rest performs HTTP requests against a single Solr node and
// normalizes the response envelope: every response is parsed as JSON and
// rejected when it carries a top-level "error" key or a non-2xx status.
// Higher layers never re-check statuses themselves.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// Endpoint locates a Solr node. Immutable after construction.
type Endpoint struct {
	Protocol string
	Host     string
	Port     int
}

// URL returns the absolute URL for a path below the fixed /solr/ root.
func (e Endpoint) URL(path string) string {
	return e.Protocol + "://" + e.Host + ":" + strconv.Itoa(e.Port) + "/solr/" + path
}

// Client issues requests against one endpoint. It owns no retry, timeout
// or caching behavior; cancellation comes from the caller's context.
type Client struct {
	endpoint Endpoint
	http     *http.Client
}

// New returns a Client bound to the endpoint. A nil httpClient falls back
// to http.DefaultClient.
func New(endpoint Endpoint, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{endpoint: endpoint, http: httpClient}
}

// Endpoint returns the endpoint this client is bound to.
func (c *Client) Endpoint() Endpoint { return c.endpoint }

// Get issues a GET against the path and returns the decoded body.
func (c *Client) Get(ctx context.Context, path string) (map[string]any, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post serializes body as JSON and POSTs it to the path.
func (c *Client) Post(ctx context.Context, path string, body any) (map[string]any, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (map[string]any, error) {
	op := method + " " + path

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Op: op, Err: fmt.Errorf("encode request body: %w", err)}
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint.URL(path), payload)
	if err != nil {
		return nil, &Error{Op: op, Err: fmt.Errorf("%w: %v", ErrTransport, err)}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Op: op, Err: fmt.Errorf("%w: %v", ErrTransport, err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: op, Err: fmt.Errorf("%w: read body: %v", ErrTransport, err)}
	}

	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &Error{Op: op, Err: fmt.Errorf("%w: %v", ErrDecode, err)}
	}

	// An "error" key marks a failure even under a 2xx status.
	if e, ok := parsed["error"]; ok {
		return nil, &Error{Op: op, Err: fmt.Errorf("%w: %s", ErrServer, errorMessage(e))}
	}
	if resp.StatusCode/100 != 2 {
		return nil, &Error{Op: op, Err: fmt.Errorf("%w: unexpected status %s", ErrServer, resp.Status)}
	}
	return parsed, nil
}

// errorMessage extracts the msg field of a Solr error payload, falling
// back to the serialized payload.
func errorMessage(v any) string {
	if obj, ok := v.(map[string]any); ok {
		if msg, ok := obj["msg"].(string); ok && msg != "" {
			return msg
		}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(raw)
}
