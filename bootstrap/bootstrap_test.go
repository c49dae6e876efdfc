package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/svcregistry/config"
	"github.com/kbukum/svcregistry/demo"
	"github.com/kbukum/svcregistry/di"
	"github.com/kbukum/svcregistry/logger"
)

// testConfig is a minimal config for testing that satisfies the Config interface.
type testConfig struct {
	config.ServiceConfig
}

func newTestConfig(name, version string) *testConfig {
	return &testConfig{
		ServiceConfig: config.ServiceConfig{
			Base: config.BaseConfig{
				Name:        name,
				Version:     version,
				Environment: "development",
			},
		},
	}
}

func newTestApp(t *testing.T, cfg *testConfig, out *bytes.Buffer) *App[*testConfig] {
	t.Helper()
	app, err := NewApp(cfg, demo.Catalog(),
		WithLogger(logger.Nop()),
		WithSummaryOutput(out),
		WithRegistryOptions(di.WithID("boot-test")),
	)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app
}

func TestNewApp(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(t, newTestConfig("test-svc", "1.0.0"), &out)

	if app.Name != "test-svc" {
		t.Errorf("expected name 'test-svc', got %q", app.Name)
	}
	if app.Version != "1.0.0" {
		t.Errorf("expected version '1.0.0', got %q", app.Version)
	}
	if app.Registry == nil || app.Registry.ID() != "boot-test" {
		t.Error("expected registry with configured id")
	}
	if app.Cfg.Base.Name != "test-svc" {
		t.Errorf("expected typed cfg name 'test-svc', got %q", app.Cfg.Base.Name)
	}
}

func TestNewAppInvalidConfig(t *testing.T) {
	cfg := newTestConfig("", "1.0.0")
	if _, err := NewApp(cfg, demo.Catalog(), WithLogger(logger.Nop())); err == nil {
		t.Error("expected validation error for missing name")
	}
}

func TestRunTaskLifecycle(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(t, newTestConfig("svc", "1.0.0"), &out)

	var order []string
	app.OnStart(func(context.Context) error { order = append(order, "start"); return nil })
	app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error {
		order = append(order, "configure")
		return di.Register[*demo.UserService](ctx, a.Registry)
	})
	app.OnReady(func(context.Context) error { order = append(order, "ready"); return nil })
	app.OnStop(func(context.Context) error { order = append(order, "stop"); return nil })

	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		order = append(order, "task")
		_, err := di.Get[*demo.UserService](app.Registry)
		return err
	})
	if err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}

	want := "start,configure,ready,task,stop"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("expected order %s, got %s", want, got)
	}
	if !strings.Contains(out.String(), "Services (4)") {
		t.Errorf("expected summary to list 4 services, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "*demo.UserService via demo.NewUserService [inject] <- *demo.UserRepository, *demo.MetricsRepository") {
		t.Errorf("expected user service line in summary, got:\n%s", out.String())
	}
}

func TestRunTaskConfigureError(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(t, newTestConfig("svc", "1.0.0"), &out)

	taskRan := false
	app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error {
		return a.Registry.Register(ctx, di.TypeOf[string]())
	})
	err := app.RunTask(context.Background(), func(context.Context) error {
		taskRan = true
		return nil
	})

	if !di.IsNoEligibleConstructor(err) {
		t.Errorf("expected NO_ELIGIBLE_CONSTRUCTOR through configure, got %v", err)
	}
	if taskRan {
		t.Error("expected task not to run after configure failure")
	}
}

func TestRunTaskStopError(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(t, newTestConfig("svc", "1.0.0"), &out)

	errStop := errors.New("flush failed")
	secondRan := false
	app.OnStop(
		func(context.Context) error { return errStop },
		func(context.Context) error { secondRan = true; return nil },
	)

	err := app.RunTask(context.Background(), func(context.Context) error { return nil })
	if !errors.Is(err, errStop) {
		t.Errorf("expected stop error, got %v", err)
	}
	if !secondRan {
		t.Error("expected every stop hook to run")
	}
}

func TestRunReturnsOnContextCancel(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(t, newTestConfig("svc", "1.0.0"), &out)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestSummaryEmpty(t *testing.T) {
	var out bytes.Buffer
	NewSummary("svc", "dev").Display(&out, nil)
	if !strings.Contains(out.String(), "Registry is empty") {
		t.Errorf("unexpected summary: %q", out.String())
	}
}
