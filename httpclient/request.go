package httpclient

import (
	"context"
	"maps"
	"net/http"
)

// Request describes an outbound HTTP request. It is passed by value through
// the request interceptor chain; each interceptor returns the Request the
// next stage sees.
type Request struct {
	// URL is resolved against the client's BaseURL unless it already starts with it.
	URL string
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE, etc).
	// Empty falls back to Config.Method, then GET.
	Method string
	// Header holds request-specific headers, merged over Config.Headers.
	Header http.Header
	// Query are URL query parameters appended by the transport.
	Query map[string]string
	// Body is the request body. Accepts io.Reader, []byte, string,
	// *MultipartBody, or any value that will be JSON-encoded.
	Body any
	// Signal is an optional caller cancellation signal. When set, the client
	// arms no timeout of its own and aborts the transport when Signal is done.
	Signal context.Context
	// Options carries transport-specific settings, passed through untouched.
	Options map[string]any
}

// Clone returns a copy of r whose Header, Query and Options may be modified
// without affecting r.
func (r Request) Clone() Request {
	out := r
	if r.Header != nil {
		out.Header = r.Header.Clone()
	}
	if r.Query != nil {
		out.Query = maps.Clone(r.Query)
	}
	if r.Options != nil {
		out.Options = maps.Clone(r.Options)
	}
	return out
}

// Option returns the transport option stored under key.
func (r Request) Option(key string) (any, bool) {
	v, ok := r.Options[key]
	return v, ok
}

// Response is the result of a transport round trip.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Status is the status text (e.g., "OK").
	Status string
	// Header holds the response headers.
	Header http.Header
	// Body is the complete response body.
	Body []byte
	// Raw is the underlying *http.Response for the net/http transport. Its
	// body has already been consumed. Nil for other transports.
	Raw *http.Response
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}
