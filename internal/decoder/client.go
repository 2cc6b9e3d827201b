// Package decoder talks to the remote model that turns a latent seed into
// track parameters.
package decoder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/llehouerou/genwaves/internal/params"
)

const (
	defaultTimeout  = 30 * time.Second
	maxResponseSize = 4 << 20
)

// ErrNoURL is returned by New when no service URL is configured.
var ErrNoURL = errors.New("decoder: no service URL configured")

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("decoder: service returned %d", e.Code)
	}
	return fmt.Sprintf("decoder: service returned %d: %s", e.Code, e.Body)
}

// Options configures a Client.
type Options struct {
	URL               string
	APIKey            string
	Timeout           time.Duration
	RequestsPerMinute int // 0 disables client-side limiting
	HTTPClient        *http.Client
}

// Client calls the decode service.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

// New creates a decode-service client.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.URL), "/")
	if base == "" {
		return nil, ErrNoURL
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	c := &Client{baseURL: base, apiKey: opts.APIKey, http: hc}
	if opts.RequestsPerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), 1)
	}
	return c, nil
}

type decodeRequest struct {
	InputList []float64 `json:"inputList"`
}

// Decode sends seed to the service and returns the decoded parameters.
func (c *Client) Decode(ctx context.Context, seed []float64) (params.OutputParams, error) {
	var out params.OutputParams

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return out, fmt.Errorf("decoder: rate limit: %w", err)
		}
	}

	body, err := json.Marshal(decodeRequest{InputList: seed})
	if err != nil {
		return out, fmt.Errorf("decoder: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/decode", bytes.NewReader(body))
	if err != nil {
		return out, fmt.Errorf("decoder: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return out, fmt.Errorf("decoder: request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return out, fmt.Errorf("decoder: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(truncate(data, 200)))}
	}

	if err := json.Unmarshal(data, &out); err != nil {
		return params.OutputParams{}, fmt.Errorf("decoder: decode response: %w", err)
	}
	if out.Title == "" {
		return params.OutputParams{}, fmt.Errorf("decoder: %w", params.ErrNoTitle)
	}
	if len(out.InputList) == 0 {
		out.InputList = append([]float64(nil), seed...)
	}
	return out, nil
}

// Health checks that the service answers GET /health with a 2xx status.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("decoder: create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("decoder: health: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}

// URL returns the service base URL.
func (c *Client) URL() string {
	return c.baseURL
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
