package security

import (
	"crypto/tls"
	"os"
	"path/filepath"
	"testing"

	"github.com/kbukum/superfetch/errors"
	"github.com/kbukum/superfetch/security/tlstest"
)

func TestTLSConfig_Build_Disabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  *TLSConfig
	}{
		{"nil", nil},
		{"zero value", &TLSConfig{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.Build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != nil {
				t.Fatal("expected nil tls.Config")
			}
			if tt.cfg.IsEnabled() {
				t.Error("expected IsEnabled=false")
			}
		})
	}
}

func TestTLSConfig_Build_SkipVerifyAndServerName(t *testing.T) {
	cfg := &TLSConfig{SkipVerify: true, ServerName: "api.internal"}
	got, err := cfg.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.InsecureSkipVerify {
		t.Error("expected InsecureSkipVerify=true")
	}
	if got.ServerName != "api.internal" {
		t.Errorf("expected ServerName api.internal, got %q", got.ServerName)
	}
	if got.MinVersion != tls.VersionTLS12 {
		t.Errorf("expected TLS 1.2 minimum, got %x", got.MinVersion)
	}
}

func TestTLSConfig_Build_MinVersion13(t *testing.T) {
	got, err := (&TLSConfig{MinVersion: "1.3"}).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MinVersion != tls.VersionTLS13 {
		t.Errorf("expected TLS 1.3 minimum, got %x", got.MinVersion)
	}
}

func TestTLSConfig_Build_CAAndClientCert(t *testing.T) {
	certs := tlstest.Generate(t)
	cfg := &TLSConfig{CAFile: certs.CAFile, CertFile: certs.CertFile, KeyFile: certs.KeyFile}

	got, err := cfg.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.RootCAs == nil {
		t.Error("expected RootCAs to be set")
	}
	if len(got.Certificates) != 1 {
		t.Errorf("expected 1 client certificate, got %d", len(got.Certificates))
	}
}

func TestTLSConfig_Build_Errors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.pem")
	if err := os.WriteFile(garbage, []byte("not a cert"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		cfg  *TLSConfig
		code errors.ErrorCode
	}{
		{"missing CA file", &TLSConfig{CAFile: filepath.Join(dir, "missing.pem")}, errors.ErrCodeConfiguration},
		{"unparseable CA", &TLSConfig{CAFile: garbage}, errors.ErrCodeInvalidInput},
		{"bad key pair", &TLSConfig{CertFile: garbage, KeyFile: garbage}, errors.ErrCodeConfiguration},
		{"cert without key", &TLSConfig{CertFile: garbage}, errors.ErrCodeInvalidInput},
		{"unknown version", &TLSConfig{MinVersion: "1.0"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.Build()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.HasCode(err, tt.code) {
				t.Errorf("expected code %s, got %v", tt.code, err)
			}
		})
	}
}

func TestTLSConfig_Validate(t *testing.T) {
	var nilCfg *TLSConfig
	if err := nilCfg.Validate(); err != nil {
		t.Errorf("nil config should be valid: %v", err)
	}
	if err := (&TLSConfig{CertFile: "c", KeyFile: "k"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (&TLSConfig{KeyFile: "k"}).Validate(); err == nil {
		t.Error("expected error for key without cert")
	}
}
