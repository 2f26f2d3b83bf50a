package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"

	"github.com/tidwall/gjson"

	"github.com/kbukum/superfetch/httpclient"
)

// Client is a JSON-focused client over httpclient.Client. Every request
// asks for application/json and 4xx/5xx responses become typed errors.
type Client struct {
	http *httpclient.Client
}

// New creates a REST client. opts are passed to httpclient.New; a
// ClassifyStatus response interceptor is registered after any defaults
// they supply.
func New(cfg httpclient.Config, opts ...httpclient.Option) (*Client, error) {
	headers := make(map[string]string, len(cfg.Headers)+1)
	for k, v := range cfg.Headers {
		headers[k] = v
	}
	if !hasHeader(headers, "Accept") {
		headers["Accept"] = "application/json"
	}
	cfg.Headers = headers

	opts = append(slices.Clip(opts), httpclient.WithResponseInterceptors(httpclient.ClassifyStatus()))
	c, err := httpclient.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{http: c}, nil
}

// NewFromClient wraps an existing client as is.
func NewFromClient(c *httpclient.Client) *Client {
	return &Client{http: c}
}

// HTTP returns the underlying client.
func (c *Client) HTTP() *httpclient.Client {
	return c.http
}

// RequestOption configures a single REST request.
type RequestOption func(*httpclient.Request)

// WithQuery adds query parameters to the request.
func WithQuery(params map[string]string) RequestOption {
	return func(r *httpclient.Request) {
		if r.Query == nil {
			r.Query = make(map[string]string, len(params))
		}
		for k, v := range params {
			r.Query[k] = v
		}
	}
}

// WithHeader sets a request header.
func WithHeader(key, value string) RequestOption {
	return func(r *httpclient.Request) {
		if r.Header == nil {
			r.Header = make(http.Header)
		}
		r.Header.Set(key, value)
	}
}

// WithSignal attaches a caller cancellation signal, which replaces the
// client's automatic timeout for this request.
func WithSignal(signal context.Context) RequestOption {
	return func(r *httpclient.Request) { r.Signal = signal }
}

// WithOption sets a transport-specific option.
func WithOption(key string, value any) RequestOption {
	return func(r *httpclient.Request) {
		if r.Options == nil {
			r.Options = make(map[string]any)
		}
		r.Options[key] = value
	}
}

// Response is a decoded REST response.
type Response[T any] struct {
	StatusCode int
	Header     http.Header
	Data       T
	// Raw is the undecoded response.
	Raw *httpclient.Response
}

// Get reads a field from the raw body by gjson path, e.g. "items.0.id".
func (r *Response[T]) Get(path string) gjson.Result {
	return Extract(r.Raw, path)
}

// Extract reads a field from a JSON response body by gjson path.
// A nil response or a non-JSON body yields an empty result.
func Extract(resp *httpclient.Response, path string) gjson.Result {
	if resp == nil || !gjson.ValidBytes(resp.Body) {
		return gjson.Result{}
	}
	return gjson.GetBytes(resp.Body, path)
}

// Get performs a GET request and decodes the JSON response into T.
func Get[T any](ctx context.Context, c *Client, url string, opts ...RequestOption) (*Response[T], error) {
	return do[T](ctx, c, http.MethodGet, url, nil, opts...)
}

// Post performs a POST request with a JSON body and decodes the response into T.
func Post[T any](ctx context.Context, c *Client, url string, body any, opts ...RequestOption) (*Response[T], error) {
	return do[T](ctx, c, http.MethodPost, url, body, opts...)
}

// Put performs a PUT request with a JSON body and decodes the response into T.
func Put[T any](ctx context.Context, c *Client, url string, body any, opts ...RequestOption) (*Response[T], error) {
	return do[T](ctx, c, http.MethodPut, url, body, opts...)
}

// Patch performs a PATCH request with a JSON body and decodes the response into T.
func Patch[T any](ctx context.Context, c *Client, url string, body any, opts ...RequestOption) (*Response[T], error) {
	return do[T](ctx, c, http.MethodPatch, url, body, opts...)
}

// Delete performs a DELETE request and decodes the response into T.
func Delete[T any](ctx context.Context, c *Client, url string, opts ...RequestOption) (*Response[T], error) {
	return do[T](ctx, c, http.MethodDelete, url, nil, opts...)
}

func do[T any](ctx context.Context, c *Client, method, url string, body any, opts ...RequestOption) (*Response[T], error) {
	req := httpclient.Request{
		Method: method,
		URL:    url,
		Body:   body,
	}
	for _, opt := range opts {
		opt(&req)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		// Error bodies are often JSON too; hand them back when they decode.
		if resp != nil {
			var data T
			if jsonErr := json.Unmarshal(resp.Body, &data); jsonErr == nil {
				return newResponse(resp, data), err
			}
		}
		return nil, err
	}

	var data T
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &data); err != nil {
			return nil, fmt.Errorf("httpclient/rest: decode response: %w", err)
		}
	}
	return newResponse(resp, data), nil
}

func newResponse[T any](resp *httpclient.Response, data T) *Response[T] {
	return &Response[T]{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Data:       data,
		Raw:        resp,
	}
}

func hasHeader(headers map[string]string, key string) bool {
	for k := range headers {
		if http.CanonicalHeaderKey(k) == http.CanonicalHeaderKey(key) {
			return true
		}
	}
	return false
}
