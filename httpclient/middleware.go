package httpclient

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/propagation"

	"github.com/kbukum/superfetch/logger"
	"github.com/kbukum/superfetch/observability"
)

// WithLogging logs each round trip: debug on success, error on failure.
func WithLogging(log *logger.Logger) TransportMiddleware {
	return func(next Transport) Transport {
		return TransportFunc(func(ctx context.Context, req Request) (*Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(ctx, req)

			fields := logger.MergeWithDuration(logger.Fields(
				logger.FieldMethod, req.Method,
				logger.FieldURL, req.URL,
			), time.Since(start))

			if err != nil {
				fields[logger.FieldError] = err.Error()
				log.Error("round trip failed", fields)
				return resp, err
			}
			if resp != nil {
				fields[logger.FieldStatus] = resp.StatusCode
			}
			log.Debug("round trip ok", fields)
			return resp, nil
		})
	}
}

// WithTracing wraps each round trip in a client span named
// "{clientName} {METHOD}" and injects trace propagation headers.
func WithTracing(clientName string) TransportMiddleware {
	return func(next Transport) Transport {
		return TransportFunc(func(ctx context.Context, req Request) (*Response, error) {
			ctx, span := observability.StartSpan(ctx, clientName+" "+req.Method)
			defer span.End()

			observability.SetSpanAttribute(ctx, observability.AttrClientName, clientName)
			observability.SetSpanAttribute(ctx, observability.AttrHTTPMethod, req.Method)
			observability.SetSpanAttribute(ctx, observability.AttrHTTPURL, req.URL)

			req.Header = req.Header.Clone()
			if req.Header == nil {
				req.Header = make(http.Header)
			}
			observability.InjectHeaders(ctx, propagation.HeaderCarrier(req.Header))

			resp, err := next.RoundTrip(ctx, req)
			if err != nil {
				observability.SetSpanError(ctx, err)
				return resp, err
			}
			if resp != nil {
				observability.SetSpanAttribute(ctx, observability.AttrHTTPStatusCode, resp.StatusCode)
			}
			return resp, nil
		})
	}
}

// WithMetrics records request count, duration, in-flight requests and
// errors for each round trip.
func WithMetrics(metrics *observability.Metrics, clientName string) TransportMiddleware {
	return func(next Transport) Transport {
		return TransportFunc(func(ctx context.Context, req Request) (*Response, error) {
			start := time.Now()
			metrics.RecordRequestStart(ctx)
			resp, err := next.RoundTrip(ctx, req)

			// Record against a context that outlives the call.
			recordCtx := context.WithoutCancel(ctx)
			status := "error"
			switch {
			case err != nil:
				errType := "transport"
				if errors.Is(context.Cause(ctx), ErrRequestTimeout) {
					errType = "timeout"
				}
				metrics.RecordError(recordCtx, errType, clientName)
			case resp != nil:
				status = strconv.Itoa(resp.StatusCode)
			}
			metrics.RecordRequestEnd(recordCtx, clientName, req.Method, status, time.Since(start))
			return resp, err
		})
	}
}
