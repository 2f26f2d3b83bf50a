// Package security provides the TLS client configuration used by the
// net/http transport.
//
//	cfg := security.TLSConfig{
//	    CAFile:   "/etc/ssl/internal-ca.pem",
//	    CertFile: "/etc/ssl/client.pem",
//	    KeyFile:  "/etc/ssl/client-key.pem",
//	}
//	tlsConfig, err := cfg.Build()
package security
