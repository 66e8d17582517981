package backend

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

	"github.com/bazaarhq/adminapi/internal/logger"
)

// Client is the remote read/write contract: verbs against a resource path.
// Successful responses carry the payload in a "data" envelope; failures are
// returned as *Error with a structured kind.
type Client interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// envelope is the backend's response wrapper.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *errorPayload   `json:"error"`
}

type errorPayload struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

// HTTPClient talks to the real marketplace backend.
type HTTPClient struct {
	base  *url.URL
	token string
	hc    *http.Client
}

// NewHTTPClient creates a client for the given base URL. The timeout caps
// every request; callers can tighten it further per call through ctx.
func NewHTTPClient(baseURL, token string, timeout time.Duration) (*HTTPClient, error) {
	if baseURL == "" {
		return nil, errors.New("backend base url is required")
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend base url: %w", err)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		base:  base,
		token: token,
		hc:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *HTTPClient) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *HTTPClient) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *HTTPClient) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *HTTPClient) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return fmt.Errorf("parse request path: %w", err)
	}
	target := c.base.ResolveReference(ref)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		// Transport failure: no status to map, classify from the error text.
		logger.WithComponent("backend").Debugf("%s %s transport error: %v", method, path, err)
		return Classify(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Classify(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := ""
		var fields map[string]string
		var env envelope
		if json.Unmarshal(raw, &env) == nil && env.Error != nil {
			detail = env.Error.Message
			fields = env.Error.Fields
		}
		logger.WithComponent("backend").Debugf("%s %s -> %d: %s", method, path, resp.StatusCode, detail)
		return fromStatus(resp.StatusCode, detail, fields)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Data != nil {
		raw = env.Data
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
