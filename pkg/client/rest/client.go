package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hospitalops/pulse/pkg/domain/model/alert"
	"github.com/hospitalops/pulse/pkg/domain/model/errs"
	"github.com/hospitalops/pulse/pkg/domain/types"
	"github.com/hospitalops/pulse/pkg/utils/safe"
)

// Client wraps the alert REST API. Every call returns the server's
// authoritative copy of the alert, which callers feed back into their cache.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dst any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return goerr.Wrap(err, "failed to marshal request body")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return goerr.Wrap(err, "failed to build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "request failed",
			goerr.T(errs.TagNetwork),
			goerr.V("method", method),
			goerr.V("path", path))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return goerr.New("alert not found",
			goerr.T(errs.TagNotFound),
			goerr.V("path", path))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return goerr.New("server returned error",
			goerr.T(errs.TagServer),
			goerr.V("status", resp.StatusCode),
			goerr.V("path", path),
			goerr.V("message", strings.TrimSpace(string(msg))))
	}

	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return goerr.Wrap(err, "failed to decode response", goerr.T(errs.TagServer))
	}
	return nil
}

func (c *Client) List(ctx context.Context, filter alert.Filter) (alert.Alerts, error) {
	var alerts alert.Alerts
	if err := c.do(ctx, http.MethodGet, "/alerts", filter.Values(), nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

func (c *Client) Get(ctx context.Context, id types.AlertID) (*alert.Alert, error) {
	var a alert.Alert
	if err := c.do(ctx, http.MethodGet, "/alerts/"+id.String(), nil, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) Create(ctx context.Context, input alert.CreateInput) (*alert.Alert, error) {
	var a alert.Alert
	if err := c.do(ctx, http.MethodPost, "/alerts", nil, input, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) Update(ctx context.Context, id types.AlertID, patch alert.UpdateInput) (*alert.Alert, error) {
	var a alert.Alert
	if err := c.do(ctx, http.MethodPut, "/alerts/"+id.String(), nil, patch, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) Delete(ctx context.Context, id types.AlertID) error {
	return c.do(ctx, http.MethodDelete, "/alerts/"+id.String(), nil, nil, nil)
}

func (c *Client) MarkRead(ctx context.Context, id types.AlertID) (*alert.Alert, error) {
	var a alert.Alert
	if err := c.do(ctx, http.MethodPut, "/alerts/"+id.String()+"/read", nil, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) MarkAllRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPut, "/alerts/read-all", nil, nil, nil)
}

// Acknowledge transitions an alert via the status-patch form of the update
// endpoint. Acknowledging an already acknowledged alert succeeds and returns
// the current state.
func (c *Client) Acknowledge(ctx context.Context, id types.AlertID) (*alert.Alert, error) {
	status := types.AlertStatusAcknowledged
	return c.Update(ctx, id, alert.UpdateInput{Status: &status})
}

func (c *Client) Resolve(ctx context.Context, id types.AlertID, resolution string) (*alert.Alert, error) {
	status := types.AlertStatusResolved
	return c.Update(ctx, id, alert.UpdateInput{Status: &status, Resolution: &resolution})
}

func (c *Client) Stats(ctx context.Context) (*alert.Stats, error) {
	var stats alert.Stats
	if err := c.do(ctx, http.MethodGet, "/alerts/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
