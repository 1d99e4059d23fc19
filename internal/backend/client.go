// Package backend is the single edge between the gateway and the remote
// commerce REST services. Every request gets the session's bearer token,
// a client-side timeout, and response/error normalization, so the rest of
// the codebase never handles raw HTTP details.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type ctxKey string

const tokenKey ctxKey = "auth_token"

// WithToken stores the caller's bearer token for outgoing requests.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFrom returns the bearer token carried by ctx, or "".
func TokenFrom(ctx context.Context) string {
	if token, ok := ctx.Value(tokenKey).(string); ok {
		return token
	}
	return ""
}

const maxResponseBody = 1 << 20 // 1MB

type Client struct {
	baseURL       string
	http          *http.Client
	timeout       time.Duration
	onAuthFailure func(ctx context.Context)
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// OnAuthFailure registers a hook invoked whenever the backend rejects the
// session token (401/403). The gateway wires it to session teardown.
func (c *Client) OnAuthFailure(fn func(ctx context.Context)) {
	c.onAuthFailure = fn
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, false)
}

// GetList fetches a collection, normalizing the backend's inconsistent
// envelope (bare array vs {"data": [...]}) once, at this edge.
func (c *Client) GetList(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, true)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, false)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out, false)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out, false)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, false)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, list bool) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return &NetworkError{Op: method + " " + path, Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return decodeBody(data, out, list)
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		if c.onAuthFailure != nil {
			c.onAuthFailure(ctx)
		}
		return &AuthError{StatusCode: resp.StatusCode}
	default:
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    messageFromPayload(data, resp.StatusCode),
		}
	}
}

func decodeBody(data []byte, out any, list bool) error {
	if out == nil {
		return nil
	}
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if list {
		normalized, err := normalizeList(raw)
		if err != nil {
			return err
		}
		raw = normalized
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// normalizeList unwraps {"data": [...]} envelopes down to the bare array.
func normalizeList(raw []byte) (json.RawMessage, error) {
	if raw[0] == '[' {
		return raw, nil
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode collection envelope: %w", err)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("unexpected collection payload shape")
	}
	return envelope.Data, nil
}
