// Package client is the HTTP Explainer used by overlay sessions that talk
// to a termlens server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/termlens/internal/overlay"
)

// ErrInvalidExplanation is returned for a 2xx reply without a usable
// explanation. It is the overlay's sentinel so errors.Is works on both.
var ErrInvalidExplanation = overlay.ErrInvalidExplanation

// StatusError is returned for non-2xx replies.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("explain endpoint returned status %d", e.Code)
	}
	return fmt.Sprintf("explain endpoint returned status %d: %s", e.Code, e.Message)
}

// Request is the body POSTed to the explain endpoint.
type Request struct {
	Term    string `json:"term"`
	Context string `json:"context,omitempty"`
}

// Response is a successful explain reply.
type Response struct {
	Term        string `json:"term"`
	Explanation string `json:"explanation"`
	Cached      bool   `json:"cached"`
}

// Client calls a termlens explain endpoint.
type Client struct {
	endpoint  string
	http      *http.Client
	sentinels []string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithSentinels replaces the replies treated as "no explanation".
func WithSentinels(sentinels []string) Option {
	return func(c *Client) { c.sentinels = sentinels }
}

// New returns a client for the given absolute endpoint URL.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:  endpoint,
		http:      &http.Client{Timeout: 30 * time.Second},
		sentinels: overlay.DefaultSentinels,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint resolves an endpoint path such as "/simplifier/explain"
// against a server base URL. Absolute endpoints are returned unchanged.
func Endpoint(base, endpoint string) (string, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint %q: %w", endpoint, err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base URL %q: %w", base, err)
	}
	if !b.IsAbs() {
		return "", fmt.Errorf("base URL %q is not absolute", base)
	}
	return b.ResolveReference(ref).String(), nil
}

// Explain implements overlay.Explainer.
func (c *Client) Explain(ctx context.Context, term string) (string, error) {
	resp, err := c.Lookup(ctx, Request{Term: term})
	if err != nil {
		return "", err
	}
	return resp.Explanation, nil
}

// Lookup posts req and returns the decoded reply.
func (c *Client) Lookup(ctx context.Context, req Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal explain request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-Id", uuid.NewString())

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("explain request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read explain response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, &StatusError{Code: httpResp.StatusCode, Message: errorMessage(respBody)}
	}

	var out Response
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("failed to decode explain response: %w", err)
	}
	if !overlay.Usable(out.Explanation, c.sentinels) {
		return nil, ErrInvalidExplanation
	}
	out.Explanation = strings.TrimSpace(out.Explanation)
	if out.Term == "" {
		out.Term = req.Term
	}
	return &out, nil
}

// errorMessage pulls the message out of {"error": ...} or {"detail": ...}
// bodies and falls back to the raw text.
func errorMessage(body []byte) string {
	var e struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &e) == nil {
		if e.Error != "" {
			return e.Error
		}
		if e.Detail != "" {
			return e.Detail
		}
	}
	return strings.TrimSpace(string(body))
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
