package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hospitalops/pulse/pkg/domain/model/errs"
	"github.com/hospitalops/pulse/pkg/domain/model/resource"
	"github.com/hospitalops/pulse/pkg/utils/safe"
)

// Client talks to the external analytics service that produces resource
// utilization recommendations from a snapshot of the current inventory.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OptimizeInput is the inventory snapshot sent for analysis.
type OptimizeInput struct {
	Beds      []*resource.Bed       `json:"beds"`
	Staff     []*resource.Staff     `json:"staff"`
	Equipment []*resource.Equipment `json:"equipment"`
}

// Recommendation is a single suggested action for a resource category.
type Recommendation struct {
	Category string `json:"category"`
	Summary  string `json:"summary"`
	Detail   string `json:"detail,omitempty"`
	Severity string `json:"severity,omitempty"`
}

type Recommendations struct {
	Items       []Recommendation `json:"items"`
	GeneratedAt time.Time        `json:"generated_at"`
}

func (c *Client) Optimize(ctx context.Context, input OptimizeInput) (*Recommendations, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal optimize request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/optimize", bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build optimize request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call analytics service",
			goerr.T(errs.TagExternal), goerr.V("endpoint", c.endpoint))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("analytics service returned error",
			goerr.T(errs.TagExternal),
			goerr.V("status", resp.StatusCode),
			goerr.V("endpoint", c.endpoint))
	}

	var recs Recommendations
	if err := json.NewDecoder(resp.Body).Decode(&recs); err != nil {
		return nil, goerr.Wrap(err, "failed to decode analytics response", goerr.T(errs.TagExternal))
	}

	return &recs, nil
}
