package testutil

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/kbukum/superfetch/httpclient"
)

// HandlerFunc produces the outcome of one scripted round trip.
type HandlerFunc func(ctx context.Context, req httpclient.Request) (*httpclient.Response, error)

// Transport is an in-memory httpclient.Transport. It records every request
// it receives and answers with a scripted handler. The zero value answers
// 200 OK with an empty body.
type Transport struct {
	mu       sync.Mutex
	handler  HandlerFunc
	requests []httpclient.Request
	contexts []context.Context
}

var _ httpclient.Transport = (*Transport)(nil)

// NewTransport returns a transport that answers 200 OK.
func NewTransport() *Transport {
	return &Transport{}
}

// RoundTrip records req and runs the scripted handler.
func (t *Transport) RoundTrip(ctx context.Context, req httpclient.Request) (*httpclient.Response, error) {
	t.mu.Lock()
	t.requests = append(t.requests, req.Clone())
	t.contexts = append(t.contexts, ctx)
	handler := t.handler
	t.mu.Unlock()

	if handler == nil {
		return Response(http.StatusOK, ""), nil
	}
	return handler(ctx, req)
}

// RespondWith scripts every following round trip.
func (t *Transport) RespondWith(h HandlerFunc) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handler = h
	return t
}

// Respond answers every following round trip with status and body.
func (t *Transport) Respond(status int, body string) *Transport {
	return t.RespondWith(func(context.Context, httpclient.Request) (*httpclient.Response, error) {
		return Response(status, body), nil
	})
}

// Fail makes every following round trip return err.
func (t *Transport) Fail(err error) *Transport {
	return t.RespondWith(func(context.Context, httpclient.Request) (*httpclient.Response, error) {
		return nil, err
	})
}

// Block makes every following round trip wait until its context is done
// and fail with the context's cause, the way a cancellable network call does.
func (t *Transport) Block() *Transport {
	return t.RespondWith(func(ctx context.Context, _ httpclient.Request) (*httpclient.Response, error) {
		<-ctx.Done()
		return nil, context.Cause(ctx)
	})
}

// Requests returns every recorded request in arrival order.
func (t *Transport) Requests() []httpclient.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]httpclient.Request(nil), t.requests...)
}

// LastRequest returns the most recent request.
func (t *Transport) LastRequest() (httpclient.Request, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.requests) == 0 {
		return httpclient.Request{}, false
	}
	return t.requests[len(t.requests)-1], true
}

// LastContext returns the context the most recent round trip ran under.
func (t *Transport) LastContext() context.Context {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.contexts) == 0 {
		return nil
	}
	return t.contexts[len(t.contexts)-1]
}

// Calls returns the number of round trips made.
func (t *Transport) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.requests)
}

// Reset forgets recorded requests and the scripted handler.
func (t *Transport) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handler = nil
	t.requests = nil
	t.contexts = nil
}

// Response builds a response with the status text for status.
func Response(status int, body string) *httpclient.Response {
	return &httpclient.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     make(http.Header),
		Body:       []byte(body),
	}
}

// NewClient builds a client over a fresh Transport and fails t on error.
func NewClient(t testing.TB, cfg httpclient.Config, opts ...httpclient.Option) (*httpclient.Client, *Transport) {
	t.Helper()
	tr := NewTransport()
	c, err := httpclient.New(cfg, append([]httpclient.Option{httpclient.WithTransport(tr)}, opts...)...)
	if err != nil {
		t.Fatalf("testutil: new client: %v", err)
	}
	return c, tr
}
