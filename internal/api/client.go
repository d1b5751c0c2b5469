// Package api drives the Amazona REST surface: a thin HTTP client, the
// signup/login harness and the steps used to chain calls together.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/amazona/e2e/internal/logging"
)

// Client issues JSON requests against one base URL. A non-2xx status is a
// normal response, never an error; only transport failures are errors.
type Client struct {
	http *resty.Client
	log  *zap.Logger
}

// Response is a decoded HTTP response
type Response struct {
	Status   int
	Header   http.Header
	Body     []byte
	JSON     interface{} // nil when the body is not JSON
	Duration time.Duration
}

// OK reports whether the status is 200 or 201
func (r *Response) OK() bool {
	return r != nil && OK(r.Status)
}

// OK reports whether status is one a successful create or read returns
func OK(status int) bool {
	return status == http.StatusOK || status == http.StatusCreated
}

// NewClient returns a client for baseURL. timeout bounds each request.
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &Client{http: httpClient, log: logging.OrNop(log)}
}

// Get issues a GET. headers and query may be nil.
func (c *Client) Get(ctx context.Context, path string, headers, query map[string]string) (*Response, error) {
	req := c.http.R().SetContext(ctx).SetHeaders(headers)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	return c.do(req, http.MethodGet, path)
}

// Post issues a POST with body encoded as JSON. headers may be nil.
func (c *Client) Post(ctx context.Context, path string, body interface{}, headers map[string]string) (*Response, error) {
	req := c.http.R().SetContext(ctx).SetHeaders(headers)
	if body != nil {
		req.SetBody(body)
	}
	return c.do(req, http.MethodPost, path)
}

func (c *Client) do(req *resty.Request, method, path string) (*Response, error) {
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	out := &Response{
		Status:   resp.StatusCode(),
		Header:   resp.Header(),
		Body:     resp.Body(),
		JSON:     decodeJSON(resp.Body()),
		Duration: resp.Time(),
	}
	c.log.Debug("api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", out.Status),
		zap.Duration("took", out.Duration),
	)
	return out, nil
}

// decodeJSON returns nil for empty or non-JSON bodies. Numbers are kept as
// json.Number so identifiers are not mangled by float conversion.
func decodeJSON(body []byte) interface{} {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}
