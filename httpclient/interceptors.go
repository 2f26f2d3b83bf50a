package httpclient

import (
	"context"
	"maps"
	"net/http"

	"github.com/google/uuid"

	"github.com/kbukum/superfetch/logger"
)

// HeaderRequestID is the header set by RequestID.
const HeaderRequestID = "X-Request-Id"

// withHeader returns req with key set to value on a copied header.
func withHeader(req Request, key, value string) Request {
	h := req.Header.Clone()
	if h == nil {
		h = make(http.Header)
	}
	h.Set(key, value)
	req.Header = h
	return req
}

// SetHeader always sets key to value, replacing any existing value.
func SetHeader(key, value string) RequestInterceptor {
	return func(req Request) (Request, error) {
		return withHeader(req, key, value), nil
	}
}

// DefaultHeaders sets each header the request does not already carry.
func DefaultHeaders(headers map[string]string) RequestInterceptor {
	return func(req Request) (Request, error) {
		h := req.Header.Clone()
		if h == nil {
			h = make(http.Header, len(headers))
		}
		for k, v := range headers {
			if h.Get(k) == "" {
				h.Set(k, v)
			}
		}
		req.Header = h
		return req, nil
	}
}

// UserAgent sets the User-Agent header when the request has none.
func UserAgent(ua string) RequestInterceptor {
	return DefaultHeaders(map[string]string{"User-Agent": ua})
}

// RequestID sets X-Request-Id to a new UUID unless the request already has one.
func RequestID() RequestInterceptor {
	return func(req Request) (Request, error) {
		if req.Header.Get(HeaderRequestID) != "" {
			return req, nil
		}
		return withHeader(req, HeaderRequestID, uuid.NewString()), nil
	}
}

// QueryParams merges params into the request query, overriding existing keys.
func QueryParams(params map[string]string) RequestInterceptor {
	return func(req Request) (Request, error) {
		q := maps.Clone(req.Query)
		if q == nil {
			q = make(map[string]string, len(params))
		}
		maps.Copy(q, params)
		req.Query = q
		return req, nil
	}
}

// ClassifyStatus fails the call with a typed *Error for 4xx and 5xx
// responses. Do still returns the response alongside the error.
func ClassifyStatus() ResponseInterceptor {
	return func(_ context.Context, resp *Response, req Request) (*Response, Request, error) {
		if err := ClassifyStatusCode(resp.StatusCode, resp.Body); err != nil {
			return resp, req, err
		}
		return resp, req, nil
	}
}

// LogResponses logs every response at debug level, or at warn level for
// 4xx and 5xx statuses.
func LogResponses(log *logger.Logger) ResponseInterceptor {
	return func(_ context.Context, resp *Response, req Request) (*Response, Request, error) {
		fields := logger.Fields(
			logger.FieldMethod, req.Method,
			logger.FieldURL, req.URL,
			logger.FieldStatus, resp.StatusCode,
		)
		if id := req.Header.Get(HeaderRequestID); id != "" {
			fields[logger.FieldRequestID] = id
		}
		if resp.IsError() {
			log.Warn("http response", fields)
		} else {
			log.Debug("http response", fields)
		}
		return resp, req, nil
	}
}
