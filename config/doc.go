// Package config loads client configuration with Viper.
//
// Files are resolved from standard locations (./config/<name>.yml,
// ./<name>.yml, ./config.yml), .env files are loaded with godotenv, and
// environment variables override file values:
//
//	var cfg struct {
//	    HTTP httpclient.Config `mapstructure:"http"`
//	}
//	err := config.LoadConfig("billing-api", &cfg, config.WithEnvPrefix("BILLING"))
//
// With the prefix above, BILLING_HTTP_BASE_URL overrides http.base_url.
package config
