package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func jsonLogger(buf *bytes.Buffer, level string) *Logger {
	return NewWithWriter(&Config{Level: level, Format: "json"}, "test-svc", buf)
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	line := strings.TrimSpace(buf.String())
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("expected a single JSON log line, got %q: %v", line, err)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "invalid-level")
	l.Debug("hidden")
	l.Info("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("expected invalid level to fall back to info")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("expected info message to be written")
	}
}

func TestNewFromEnv(t *testing.T) {
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	defer os.Unsetenv("LOG_LEVEL")
	defer os.Unsetenv("LOG_FORMAT")

	if l := NewFromEnv("env-svc"); l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestJSONOutputCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "debug").WithComponent("di")
	l.Info("constructed", Fields(FieldType, "*demo.DataBase", FieldDepth, 2))

	m := decodeLine(t, &buf)
	if m["message"] != "constructed" {
		t.Errorf("expected message 'constructed', got %v", m["message"])
	}
	if m[FieldComponent] != "di" {
		t.Errorf("expected component 'di', got %v", m[FieldComponent])
	}
	if m[FieldType] != "*demo.DataBase" {
		t.Errorf("expected type field, got %v", m[FieldType])
	}
	if m[FieldService] != "test-svc" {
		t.Errorf("expected service field, got %v", m[FieldService])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "warn")
	l.Info("skipped")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered at warn level, got %q", buf.String())
	}
	l.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Error("expected warn to be written")
	}
}

func TestWithContextSpan(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	var buf bytes.Buffer
	jsonLogger(&buf, "info").WithContext(ContextWithRequestID(ctx, "req-1")).Info("traced")

	m := decodeLine(t, &buf)
	if m[FieldTraceID] != span.SpanContext().TraceID().String() {
		t.Errorf("expected trace id %s, got %v", span.SpanContext().TraceID(), m[FieldTraceID])
	}
	if m[FieldSpanID] != span.SpanContext().SpanID().String() {
		t.Errorf("expected span id %s, got %v", span.SpanContext().SpanID(), m[FieldSpanID])
	}
	if m[FieldRequestID] != "req-1" {
		t.Errorf("expected request id req-1, got %v", m[FieldRequestID])
	}
}

func TestWithContextNoSpan(t *testing.T) {
	var buf bytes.Buffer
	jsonLogger(&buf, "info").WithContext(context.Background()).Info("plain")

	m := decodeLine(t, &buf)
	if _, ok := m[FieldTraceID]; ok {
		t.Error("expected no trace id without an active span")
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	jsonLogger(&buf, "info").WithError(fmt.Errorf("boom")).Error("failed")

	m := decodeLine(t, &buf)
	if m["error"] != "boom" {
		t.Errorf("expected error 'boom', got %v", m["error"])
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("nothing")
	l.WithComponent("x").Error("still nothing")
}

func TestSetGlobalLogger(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	var buf bytes.Buffer
	SetGlobalLogger(jsonLogger(&buf, "info"))
	Info("via global")
	if !strings.Contains(buf.String(), "via global") {
		t.Errorf("expected package-level Info to use the global logger, got %q", buf.String())
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != FormatConsole {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("expected output 'stdout', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp to be enabled")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "debug", Format: "json"}, false},
		{"pretty", Config{Level: "info", Format: "pretty"}, false},
		{"bad level", Config{Level: "loud", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "registry", &buf)
	l.Info("hello")
	out := buf.String()
	if !strings.Contains(out, "[REG][INF]") {
		t.Errorf("expected service and level tags, got %q", out)
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("expected message in console output, got %q", out)
	}
}

func TestRegisterAndGet(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "info")
	Register("custom", l)
	if Get("custom") != l {
		t.Error("expected registered logger to be returned")
	}
	found := false
	for _, n := range Names() {
		if n == "custom" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 'custom' in Names(), got %v", Names())
	}
}

func TestGetUnregistered(t *testing.T) {
	if Get("never-registered") == nil {
		t.Fatal("expected fallback logger")
	}
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", 3, "skipped", "dangling")
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected fields: %v", m)
	}
	if len(m) != 2 {
		t.Errorf("expected 2 fields, got %d", len(m))
	}
}

func TestErrorAndDurationFields(t *testing.T) {
	ef := ErrorFields("register", fmt.Errorf("bad"))
	if ef[FieldOperation] != "register" || ef[FieldError] != "bad" {
		t.Errorf("unexpected error fields: %v", ef)
	}
	df := DurationFields("construct", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", df[FieldDuration])
	}
	merged := MergeWithError(nil, fmt.Errorf("x"))
	if merged[FieldError] != "x" {
		t.Errorf("expected error merged into nil map, got %v", merged)
	}
}
