package httpclient

import "context"

// Transport performs one request/response exchange. Implementations should
// honour ctx cancellation: Client stops waiting once ctx is done, but a
// transport that ignores it keeps running in the background until it returns.
type Transport interface {
	RoundTrip(ctx context.Context, req Request) (*Response, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req Request) (*Response, error)

// RoundTrip calls f(ctx, req).
func (f TransportFunc) RoundTrip(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}

// TransportMiddleware wraps a Transport with additional behavior.
type TransportMiddleware func(Transport) Transport

// ChainTransport applies middlewares to t. The first middleware is the
// outermost wrapper.
func ChainTransport(t Transport, middlewares ...TransportMiddleware) Transport {
	for i := len(middlewares) - 1; i >= 0; i-- {
		t = middlewares[i](t)
	}
	return t
}
