package validation

import (
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/superfetch/errors"
)

type sampleConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"omitempty,uri"`
	Method  string `mapstructure:"method" validate:"omitempty,oneof=GET POST"`
	Name    string `validate:"required"`
}

func TestValidate_Valid(t *testing.T) {
	cfg := sampleConfig{BaseURL: "https://api.example.com", Method: "GET", Name: "api"}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RelativeBaseURL(t *testing.T) {
	cfg := sampleConfig{BaseURL: "/api/v1", Name: "api"}
	if err := Validate(cfg); err != nil {
		t.Fatalf("relative base URL should be accepted, got %v", err)
	}
}

func TestValidate_Invalid(t *testing.T) {
	cfg := sampleConfig{BaseURL: "not a url", Method: "BREW"}
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("expected *errors.AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	for _, want := range []string{"base_url: must be a valid URL", "method: must be one of: GET POST", "name: is required"} {
		if !strings.Contains(appErr.Message, want) {
			t.Errorf("expected message to contain %q, got %q", want, appErr.Message)
		}
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 3 {
		t.Errorf("expected 3 field errors, got %v", appErr.Details["fields"])
	}
}

func TestValidator_Programmatic(t *testing.T) {
	v := New()
	v.Required("name", " ").
		PositiveDuration("timeout", 0).
		OneOf("format", "xml", []string{"json"}).
		OneOf("empty", "", []string{"json"}).
		Custom(false, "custom", "failed")

	if len(v.Errors()) != 4 {
		t.Fatalf("expected 4 errors, got %d: %v", len(v.Errors()), v.Errors())
	}
	if err := v.Validate(); err == nil {
		t.Fatal("expected AppError")
	}
}

func TestValidator_NoErrors(t *testing.T) {
	v := New().Required("name", "api").PositiveDuration("timeout", time.Second)
	if v.HasErrors() {
		t.Fatalf("unexpected errors: %v", v.Errors())
	}
	if v.Validate() != nil {
		t.Error("expected nil AppError")
	}
}

func TestValidator_Merge(t *testing.T) {
	v := New()
	v.Merge(Validate(sampleConfig{}))
	v.Merge(nil)
	v.Merge(stderrors.New("plain"))
	if len(v.Errors()) != 2 {
		t.Fatalf("expected 2 errors, got %v", v.Errors())
	}
	if v.Errors()[0].Field != "name" {
		t.Errorf("expected merged field name, got %q", v.Errors()[0].Field)
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("BaseURL"); got != "base_u_r_l" {
		t.Errorf("unexpected %q", got)
	}
	if got := toSnakeCase("Timeout"); got != "timeout" {
		t.Errorf("unexpected %q", got)
	}
}
