package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/superfetch/security/tlstest"
	"github.com/kbukum/superfetch/version"
)

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.Any("/echo", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.JSON(http.StatusOK, gin.H{
			"method":       c.Request.Method,
			"query":        c.Request.URL.RawQuery,
			"content_type": c.GetHeader("Content-Type"),
			"user_agent":   c.GetHeader("User-Agent"),
			"x_custom":     c.GetHeader("X-Custom"),
			"body":         string(body),
		})
	})
	r.POST("/upload", func(c *gin.Context) {
		file, err := c.FormFile("doc")
		if err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		c.String(http.StatusCreated, c.PostForm("title")+":"+file.Filename)
	})
	r.GET("/redirect", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/echo")
	})
	r.GET("/slow", func(c *gin.Context) {
		select {
		case <-c.Request.Context().Done():
		case <-time.After(2 * time.Second):
		}
		c.Status(http.StatusOK)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newTestTransport(t *testing.T, cfg Config) *HTTPTransport {
	t.Helper()
	tr, err := NewHTTPTransport(cfg)
	if err != nil {
		t.Fatalf("NewHTTPTransport: %v", err)
	}
	t.Cleanup(tr.CloseIdleConnections)
	return tr
}

func TestHTTPTransport_JSONBody(t *testing.T) {
	srv := newUpstream(t)
	tr := newTestTransport(t, Config{})

	resp, err := tr.RoundTrip(context.Background(), Request{
		URL:    srv.URL + "/echo",
		Method: http.MethodPost,
		Header: http.Header{"X-Custom": {"yes"}},
		Query:  map[string]string{"page": "2"},
		Body:   map[string]string{"name": "Bob"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK || resp.Status != "OK" {
		t.Errorf("unexpected status %d %q", resp.StatusCode, resp.Status)
	}
	if resp.Raw == nil {
		t.Error("expected raw response")
	}

	got := decodeEcho(t, resp)
	want := map[string]string{
		"method":       http.MethodPost,
		"query":        "page=2",
		"content_type": "application/json",
		"user_agent":   version.UserAgent(),
		"x_custom":     "yes",
		"body":         `{"name":"Bob"}`,
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s: expected %q, got %q", k, v, got[k])
		}
	}
}

func TestHTTPTransport_UserAgent(t *testing.T) {
	srv := newUpstream(t)
	tr := newTestTransport(t, Config{UserAgent: "billing/1.0"})

	resp, err := tr.RoundTrip(context.Background(), Request{URL: srv.URL + "/echo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ua := decodeEcho(t, resp)["user_agent"]; ua != "billing/1.0" {
		t.Errorf("expected configured user agent, got %q", ua)
	}

	resp, _ = tr.RoundTrip(context.Background(), Request{
		URL:    srv.URL + "/echo",
		Header: http.Header{"User-Agent": {"explicit"}},
	})
	if ua := decodeEcho(t, resp)["user_agent"]; ua != "explicit" {
		t.Errorf("request user agent should win, got %q", ua)
	}
}

func TestHTTPTransport_Multipart(t *testing.T) {
	srv := newUpstream(t)
	tr := newTestTransport(t, Config{})

	resp, err := tr.RoundTrip(context.Background(), Request{
		URL:    srv.URL + "/upload",
		Method: http.MethodPost,
		Body:   NewMultipartBody().AddField("title", "Q3").AddFile("doc", "q3.pdf", "application/pdf", []byte("%PDF")),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated || string(resp.Body) != "Q3:q3.pdf" {
		t.Errorf("unexpected response %d %q", resp.StatusCode, resp.Body)
	}
}

func TestHTTPTransport_NoRedirectOption(t *testing.T) {
	srv := newUpstream(t)
	tr := newTestTransport(t, Config{})

	resp, err := tr.RoundTrip(context.Background(), Request{URL: srv.URL + "/redirect"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected redirect to be followed, got %d", resp.StatusCode)
	}

	resp, err = tr.RoundTrip(context.Background(), Request{
		URL:     srv.URL + "/redirect",
		Options: map[string]any{OptionNoRedirect: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/echo" {
		t.Errorf("expected 302 to /echo, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestHTTPTransport_ContextCancel(t *testing.T) {
	srv := newUpstream(t)
	tr := newTestTransport(t, Config{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := tr.RoundTrip(ctx, Request{URL: srv.URL + "/slow"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestHTTPTransport_InvalidURL(t *testing.T) {
	tr := newTestTransport(t, Config{})
	_, err := tr.RoundTrip(context.Background(), Request{URL: "://bad"})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestHTTPTransport_TLS(t *testing.T) {
	certs := tlstest.Generate(t)
	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, r.Proto)
	}))
	srv.TLS = certs.ServerConfig()
	srv.EnableHTTP2 = true
	srv.StartTLS()
	defer srv.Close()

	tr := newTestTransport(t, Config{TLS: &TLSConfig{CAFile: certs.CAFile}, HTTP2: true})
	resp, err := tr.RoundTrip(context.Background(), Request{URL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Body) != "HTTP/2.0" {
		t.Errorf("expected HTTP/2.0, got %q", resp.Body)
	}

	untrusted := newTestTransport(t, Config{})
	if _, err := untrusted.RoundTrip(context.Background(), Request{URL: srv.URL}); err == nil {
		t.Error("expected certificate error without the test CA")
	}
}

func TestClient_OverHTTPTransport(t *testing.T) {
	srv := newUpstream(t)
	c, err := New(Config{BaseURL: srv.URL, Headers: map[string]string{"X-Custom": "default"}},
		WithResponseInterceptors(ClassifyStatus()),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = c.Close(context.Background()) }()

	resp, err := c.Do(context.Background(), Request{URL: "/echo", Body: "hi", Method: http.MethodPut})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := decodeEcho(t, resp)
	if got["x_custom"] != "default" || got["body"] != "hi" || got["method"] != http.MethodPut {
		t.Errorf("unexpected echo %v", got)
	}

	_, err = c.Do(context.Background(), Request{URL: "/missing"})
	if !IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestClient_TimeoutOverHTTPTransport(t *testing.T) {
	srv := newUpstream(t)
	c, err := New(Config{BaseURL: srv.URL, Timeout: 30 * time.Millisecond})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = c.Do(context.Background(), Request{URL: "/slow"})
	if !IsTimeout(err) {
		t.Fatalf("expected timeout, got %v", err)
	}
}

func decodeEcho(t *testing.T, resp *Response) map[string]string {
	t.Helper()
	var out map[string]string
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		t.Fatalf("decode echo: %v (%s)", err, resp.Body)
	}
	return out
}
