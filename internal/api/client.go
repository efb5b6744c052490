// Package api is the HTTP client for the wellness backend. It owns URL
// building, auth headers, request correlation and error extraction; the
// typed endpoint bindings live in endpoints.go.
package api

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

	"github.com/google/uuid"

	"github.com/Carma123/Mental-Health-Support-System/internal"
	"github.com/Carma123/Mental-Health-Support-System/internal/metrics"
	"github.com/Carma123/Mental-Health-Support-System/internal/session"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	headers    map[string]string
	session    *session.Session
	logger     internal.Logger
	metrics    *metrics.Recorder
}

func NewClient(baseURL string, timeout time.Duration, sess *session.Session, logger internal.Logger, rec *metrics.Recorder) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		headers:    make(map[string]string),
		session:    sess,
		logger:     logger,
		metrics:    rec,
	}
	c.headers["Content-Type"] = "application/json"
	c.headers["Accept"] = "application/json"
	c.headers["User-Agent"] = "wellness-client/1.0"
	return c, nil
}

// Request describes one call. Name labels the endpoint for metrics; Path is
// the concrete URL path. Authenticated requests carry the session bearer
// token when one is present -- an expired or missing token is the backend's
// problem to report.
type Request struct {
	Name          string
	Method        string
	Path          string
	Body          interface{}
	Authenticated bool
}

type Response struct {
	StatusCode int
	Body       []byte
}

// Do executes a single request. There are no automatic retries; failures
// are surfaced to the caller exactly once. The context cancels the request
// when the view that issued it is torn down.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	var bodyReader io.Reader
	if req.Body != nil {
		bodyBytes, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if req.Authenticated {
		if token := c.session.Token(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	duration := time.Since(start)
	if err != nil {
		c.metrics.Observe(req.Name, req.Method, 0, duration)
		c.logger.Errorf("api: %s %s failed: %v", req.Method, req.Path, err)
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	defer httpResp.Body.Close()
	c.metrics.Observe(req.Name, req.Method, httpResp.StatusCode, duration)

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{StatusCode: httpResp.StatusCode, Body: body}
	if httpResp.StatusCode >= 400 {
		appErr := internal.NewAppError(httpResp.StatusCode, serverMessage(body))
		c.logger.Warnf("api: %s %s returned %d: %s", req.Method, req.Path, appErr.Status, appErr.Message)
		return resp, appErr
	}

	c.logger.Debugf("api: %s %s -> %d in %s", req.Method, req.Path, httpResp.StatusCode, duration)
	return resp, nil
}

func (c *Client) get(ctx context.Context, name, path string, authed bool) (*Response, error) {
	return c.Do(ctx, Request{Name: name, Method: http.MethodGet, Path: path, Authenticated: authed})
}

func (c *Client) post(ctx context.Context, name, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, Request{Name: name, Method: http.MethodPost, Path: path, Body: body, Authenticated: true})
}

func (c *Client) put(ctx context.Context, name, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, Request{Name: name, Method: http.MethodPut, Path: path, Body: body, Authenticated: true})
}

func (c *Client) delete(ctx context.Context, name, path string) (*Response, error) {
	return c.Do(ctx, Request{Name: name, Method: http.MethodDelete, Path: path, Authenticated: true})
}

func decodeJSON(resp *Response, v interface{}) error {
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
