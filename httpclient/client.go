package httpclient

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"net/textproto"
	"slices"
	"strings"
	"time"

	"github.com/kbukum/superfetch/interceptor"
	"github.com/kbukum/superfetch/logger"
)

// RequestInterceptor transforms a request before it is sent. The returned
// Request fully replaces the input; returning an error aborts the call.
type RequestInterceptor func(req Request) (Request, error)

// ResponseInterceptor inspects or replaces a response after the transport
// returns. It receives the request that produced the response and returns
// the response and request seen by the next interceptor.
type ResponseInterceptor func(ctx context.Context, resp *Response, req Request) (*Response, Request, error)

// ErrRequestTimeout is the cause recorded when the automatic per-request
// timeout fires.
var ErrRequestTimeout = errors.New("request timed out")

var errNilResponse = errors.New("nil response")

// Client sends requests through a Transport, applying the base URL, the
// interceptor chains and an automatic timeout.
//
// A Client is safe for concurrent use. Every call gets its own timer.
type Client struct {
	config    Config
	base      Transport
	transport Transport
	requests  *interceptor.Registry[RequestInterceptor]
	responses *interceptor.Registry[ResponseInterceptor]
	log       *logger.Logger
}

type clientOptions struct {
	transport    Transport
	transportSet bool
	requests     []RequestInterceptor
	responses    []ResponseInterceptor
	middlewares  []TransportMiddleware
	log          *logger.Logger
}

// Option configures a Client.
type Option func(*clientOptions)

// WithTransport sets the transport. Passing nil makes New fail with
// ErrTransportUnavailable.
func WithTransport(t Transport) Option {
	return func(o *clientOptions) {
		o.transport = t
		o.transportSet = true
	}
}

// WithRequestInterceptors registers default request interceptors, in order,
// ahead of any registered later through RequestInterceptors.
func WithRequestInterceptors(h ...RequestInterceptor) Option {
	return func(o *clientOptions) { o.requests = append(o.requests, h...) }
}

// WithResponseInterceptors registers default response interceptors, in order,
// ahead of any registered later through ResponseInterceptors.
func WithResponseInterceptors(h ...ResponseInterceptor) Option {
	return func(o *clientOptions) { o.responses = append(o.responses, h...) }
}

// WithMiddleware wraps the transport. The first middleware is outermost.
func WithMiddleware(m ...TransportMiddleware) Option {
	return func(o *clientOptions) { o.middlewares = append(o.middlewares, m...) }
}

// WithLogger sets the client logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *clientOptions) { o.log = l }
}

// New creates a client. Without WithTransport the net/http transport is
// built from cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &clientOptions{}
	for _, opt := range opts {
		opt(o)
	}

	base := o.transport
	if !o.transportSet {
		t, err := NewHTTPTransport(cfg)
		if err != nil {
			return nil, NewTransportUnavailableError(err)
		}
		base = t
	}
	if base == nil {
		return nil, NewTransportUnavailableError(nil)
	}

	log := o.log
	if log == nil {
		log = logger.Get("httpclient")
	}

	return &Client{
		config:    cfg,
		base:      base,
		transport: ChainTransport(base, o.middlewares...),
		requests:  interceptor.NewRegistry(o.requests...),
		responses: interceptor.NewRegistry(o.responses...),
		log:       log.WithFields(logger.Fields("client", cfg.Name)),
	}, nil
}

// RequestInterceptors returns the request interceptor registry.
func (c *Client) RequestInterceptors() *interceptor.Registry[RequestInterceptor] {
	return c.requests
}

// ResponseInterceptors returns the response interceptor registry.
func (c *Client) ResponseInterceptors() *interceptor.Registry[ResponseInterceptor] {
	return c.responses
}

// Config returns a copy of the client configuration after defaults.
func (c *Client) Config() Config {
	cfg := c.config
	cfg.Headers = maps.Clone(c.config.Headers)
	return cfg
}

// Transport returns the transport as supplied or discovered, without middleware.
func (c *Client) Transport() Transport {
	return c.base
}

// IsAvailable reports whether the client can send requests.
func (c *Client) IsAvailable(_ context.Context) bool {
	return c.base != nil
}

// Close releases idle connections held by the transport, if it keeps any.
func (c *Client) Close(_ context.Context) error {
	if t, ok := c.base.(interface{ CloseIdleConnections() }); ok {
		t.CloseIdleConnections()
	}
	return nil
}

// Do merges req with the client defaults, resolves its URL, runs the request
// interceptors, sends it through the transport and runs the response
// interceptors.
//
// When req.Signal is nil the transport call is bounded by Config.Timeout and
// expiry yields an ErrCodeTimeout error. When req.Signal is set no timer is
// armed; the call is aborted when Signal is done and fails with
// ErrCodeTransport wrapping the signal's cause.
//
// Errors:
//   - request interceptor failure: nil response, ErrCodeInterceptor with
//     phase "request"; the transport is never called.
//   - transport failure, timeout or signal abort: nil response,
//     ErrCodeTransport or ErrCodeTimeout. A transport that has not settled
//     when the timeout fires or the signal is done is abandoned.
//   - response interceptor failure: the call is not atomic. Do returns the
//     response as it stood when the failing interceptor was called, together
//     with ErrCodeInterceptor and phase "response", so callers can inspect
//     the status and body behind a ClassifyStatus error. Later interceptors
//     do not run.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	req = c.merge(req)
	req.URL = c.resolveURL(req.URL)

	for i, h := range c.requests.Handlers() {
		next, err := callRequestInterceptor(h, req)
		if err != nil {
			c.log.Debug("request interceptor failed", logger.Fields(
				logger.FieldPhase, PhaseRequest, logger.FieldIndex, i, logger.FieldError, err.Error(),
			))
			return nil, NewInterceptorError(PhaseRequest, i, err)
		}
		req = next
	}

	resp, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}

	for i, h := range c.responses.Handlers() {
		nextResp, nextReq, err := callResponseInterceptor(ctx, h, resp, req)
		if err == nil && nextResp == nil {
			err = errNilResponse
		}
		if err != nil {
			c.log.Debug("response interceptor failed", logger.Fields(
				logger.FieldPhase, PhaseResponse, logger.FieldIndex, i, logger.FieldError, err.Error(),
			))
			return resp, NewInterceptorError(PhaseResponse, i, err)
		}
		resp, req = nextResp, nextReq
	}
	return resp, nil
}

// send runs the transport under the call's cancellation binding.
func (c *Client) send(ctx context.Context, req Request) (*Response, error) {
	callCtx, release := c.bind(ctx, req)
	defer release()

	start := time.Now()
	c.log.Debug("sending request", logger.Fields(
		logger.FieldMethod, req.Method, logger.FieldURL, req.URL,
	))

	resp, err := c.roundTrip(callCtx, req)
	if err != nil {
		if errors.Is(context.Cause(callCtx), ErrRequestTimeout) {
			c.log.Debug("request timed out", logger.MergeWithDuration(logger.Fields(
				logger.FieldURL, req.URL, logger.FieldTimeout, c.config.Timeout.Milliseconds(),
			), time.Since(start)))
			cause := fmt.Errorf("%w after %s", ErrRequestTimeout, c.config.Timeout)
			if !errors.Is(err, ErrRequestTimeout) {
				cause = fmt.Errorf("%w: %w", cause, err)
			}
			return nil, NewTimeoutError(cause)
		}
		if req.Signal != nil && req.Signal.Err() != nil {
			if cause := context.Cause(req.Signal); !errors.Is(err, cause) {
				err = fmt.Errorf("%w: %w", err, cause)
			}
		}
		c.log.Debug("request failed", logger.MergeWithDuration(logger.Fields(
			logger.FieldURL, req.URL, logger.FieldError, err.Error(),
		), time.Since(start)))
		return nil, NewTransportError(err)
	}
	if resp == nil {
		return nil, NewTransportError(errNilResponse)
	}

	c.log.Debug("request completed", logger.MergeWithDuration(logger.Fields(
		logger.FieldURL, req.URL, logger.FieldStatus, resp.StatusCode,
	), time.Since(start)))
	return resp, nil
}

type roundTripResult struct {
	resp     *Response
	err      error
	panicked any
}

// roundTrip settles as soon as either the transport returns or ctx is done,
// so a transport that ignores ctx cannot outlive the call's deadline or
// signal. A response that arrives after ctx is done is discarded.
func (c *Client) roundTrip(ctx context.Context, req Request) (*Response, error) {
	done := make(chan roundTripResult, 1)
	go func() {
		var res roundTripResult
		defer func() {
			if r := recover(); r != nil {
				res.panicked = r
			}
			done <- res
		}()
		res.resp, res.err = c.transport.RoundTrip(ctx, req)
	}()

	select {
	case res := <-done:
		if res.panicked != nil {
			panic(res.panicked)
		}
		if res.err == nil && ctx.Err() != nil {
			return nil, context.Cause(ctx)
		}
		return res.resp, res.err
	case <-ctx.Done():
		return nil, context.Cause(ctx)
	}
}

// bind derives the transport context. Without a caller signal a fresh timer
// is armed for this call only; with one, the signal alone decides.
func (c *Client) bind(ctx context.Context, req Request) (context.Context, func()) {
	if req.Signal == nil {
		callCtx, cancel := context.WithTimeoutCause(ctx, c.config.Timeout, ErrRequestTimeout)
		return callCtx, cancel
	}

	callCtx, cancel := context.WithCancelCause(ctx)
	if req.Signal.Err() != nil {
		cancel(context.Cause(req.Signal))
		return callCtx, func() { cancel(nil) }
	}
	stop := context.AfterFunc(req.Signal, func() {
		cancel(context.Cause(req.Signal))
	})
	return callCtx, func() {
		stop()
		cancel(nil)
	}
}

// merge layers req over the client defaults. Headers merge key by key with
// the request winning; every other field is replaced wholesale when set.
func (c *Client) merge(req Request) Request {
	out := req

	header := make(http.Header, len(c.config.Headers)+len(req.Header))
	for k, v := range c.config.Headers {
		header.Set(k, v)
	}
	for k, vs := range req.Header {
		header[textproto.CanonicalMIMEHeaderKey(k)] = slices.Clone(vs)
	}
	out.Header = header

	if out.Method == "" {
		out.Method = c.config.Method
	}
	if out.Method == "" {
		out.Method = http.MethodGet
	}
	// Config.Validate guarantees the default body is re-readable.
	if out.Body == nil {
		out.Body = c.config.Body
	}
	return out
}

// resolveURL prefixes the base URL unless url already starts with it. The
// check is a plain string prefix, so a URL that merely begins with the same
// characters is left alone.
func (c *Client) resolveURL(url string) string {
	base := c.config.BaseURL
	if base == "" || strings.HasPrefix(url, base) {
		return url
	}
	return base + url
}

func callRequestInterceptor(h RequestInterceptor, req Request) (out Request, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h(req)
}

func callResponseInterceptor(ctx context.Context, h ResponseInterceptor, resp *Response, req Request) (outResp *Response, outReq Request, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h(ctx, resp, req)
}
