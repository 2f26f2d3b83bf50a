package httpclient

import (
	"io"
	"time"

	"github.com/kbukum/superfetch/security"
	"github.com/kbukum/superfetch/validation"
)

const (
	// DefaultTimeout is the automatic per-request timeout.
	DefaultTimeout = 150 * time.Second

	defaultName = "http"
)

// TLSConfig is an alias for the shared security TLS configuration.
// See security.TLSConfig for full documentation.
type TLSConfig = security.TLSConfig

// Config configures the HTTP client.
type Config struct {
	// Name identifies the client in logs, metrics and spans. Defaults to "http".
	Name string `yaml:"name" mapstructure:"name" validate:"omitempty,max=64"`

	// BaseURL is prefixed to every request URL that does not already start with it.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,uri"`

	// Timeout is the automatic per-request timeout, armed only when the
	// request carries no Signal. Defaults to 150s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are default headers merged key-by-key under request headers.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Method is the default method used when a request has none. Empty means GET.
	Method string `yaml:"method" mapstructure:"method" validate:"omitempty,oneof=GET HEAD POST PUT PATCH DELETE OPTIONS CONNECT TRACE"`

	// Body is the default body used when a request has none. It is shared by
	// every call, so it must be re-readable: []byte, string, *MultipartBody
	// without Reader files, or a JSON-encodable value. io.Reader is rejected.
	Body any `yaml:"-" mapstructure:"-" validate:"-"`

	// TLS configures TLS settings for the net/http transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// HTTP2 enables HTTP/2 on the net/http transport.
	HTTP2 bool `yaml:"http2" mapstructure:"http2"`

	// UserAgent is sent when a request sets none. Defaults to the library version string.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent" validate:"omitempty,printascii"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	v := validation.New().
		Merge(validation.Validate(c)).
		PositiveDuration("timeout", c.Timeout).
		Custom(reusableBody(c.Body), "body", "default body must be re-readable, not an io.Reader")
	if c.TLS != nil {
		v.Merge(c.TLS.Validate())
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func reusableBody(body any) bool {
	switch b := body.(type) {
	case io.Reader:
		return false
	case *MultipartBody:
		if b == nil {
			return true
		}
		for _, f := range b.Files {
			if f.Reader != nil {
				return false
			}
		}
	}
	return true
}
