// Package validation provides struct-tag and programmatic validation
// producing *errors.AppError values.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    BaseURL string `mapstructure:"base_url" validate:"omitempty,uri"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.PositiveDuration("timeout", cfg.Timeout)
//	if err := v.Validate(); err != nil { ... }
package validation
