package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/svcregistry/errors"
)

type inspectSettings struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr" validate:"required_if=Enabled true,omitempty,hostname_port"`
}

type sampleConfig struct {
	Roots      []string        `yaml:"roots" validate:"min=1"`
	DumpFormat string          `yaml:"dump_format" validate:"oneof=yaml json none"`
	Inspect    inspectSettings `yaml:"inspect"`
	MaxDepth   int             `validate:"max=64"`
}

func validSample() sampleConfig {
	return sampleConfig{
		Roots:      []string{"user_service"},
		DumpFormat: "yaml",
		Inspect:    inspectSettings{Enabled: true, ListenAddr: "127.0.0.1:8089"},
	}
}

func TestValidateSuccess(t *testing.T) {
	cfg := validSample()
	if err := Validate(&cfg); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*sampleConfig)
		field  string
		msg    string
	}{
		{"empty roots", func(c *sampleConfig) { c.Roots = nil }, "roots", "must have at least 1 entries"},
		{"bad dump format", func(c *sampleConfig) { c.DumpFormat = "xml" }, "dump_format", "must be one of: yaml json none"},
		{"missing listen addr", func(c *sampleConfig) { c.Inspect.ListenAddr = "" }, "inspect.listen_addr", "is required when"},
		{"bad listen addr", func(c *sampleConfig) { c.Inspect.ListenAddr = "nope" }, "inspect.listen_addr", "must be a host:port address"},
		{"snake case fallback", func(c *sampleConfig) { c.MaxDepth = 100 }, "max_depth", "must be at most 64"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validSample()
			tc.mutate(&cfg)

			err := Validate(&cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			appErr, ok := errors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.Code != errors.ErrCodeInvalidInput {
				t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
			}
			fields, ok := appErr.Details["fields"].([]FieldError)
			if !ok || len(fields) != 1 {
				t.Fatalf("expected one field error, got %v", appErr.Details["fields"])
			}
			if fields[0].Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, fields[0].Field)
			}
			if !strings.Contains(fields[0].Message, tc.msg) {
				t.Errorf("expected message containing %q, got %q", tc.msg, fields[0].Message)
			}
		})
	}
}

func TestValidateDisabledInspectSkipsAddr(t *testing.T) {
	cfg := validSample()
	cfg.Inspect = inspectSettings{Enabled: false}
	if err := Validate(&cfg); err != nil {
		t.Errorf("expected no error when inspect is disabled, got %v", err)
	}
}

func TestValidateNonStruct(t *testing.T) {
	err := Validate("not a struct")
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for non-struct input, got %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"MaxDepth":   "max_depth",
		"name":       "name",
		"ListenAddr": "listen_addr",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q): expected %q, got %q", in, want, got)
		}
	}
}
