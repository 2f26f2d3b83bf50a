// Package httpclient adds base-URL prefixing, request and response
// interceptor chains and an automatic per-request timeout on top of a
// pluggable Transport.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Headers: map[string]string{"Accept": "application/json"},
//	},
//	    httpclient.WithRequestInterceptors(httpclient.RequestID(), httpclient.BearerAuth(token)),
//	    httpclient.WithResponseInterceptors(httpclient.ClassifyStatus()),
//	)
//
//	resp, err := client.Do(ctx, httpclient.Request{URL: "/users/123"})
//
// # Timeouts and Cancellation
//
// Every call without a Request.Signal gets its own timer of Config.Timeout
// (150s by default); expiry fails the call with an error for which
// IsTimeout is true. A call that supplies Signal arms no timer and is
// aborted only when Signal is done.
//
// # Interceptors
//
// Interceptors run sequentially in registration order. Handlers added with
// Use can be removed with Eject regardless of other removals; positions
// returned by Register shift when earlier entries are removed.
//
//	h := client.RequestInterceptors().Use(httpclient.SetHeader("X-Trace", "1"))
//	defer client.RequestInterceptors().Eject(h)
package httpclient
