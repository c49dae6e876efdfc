package demo

import (
	"context"
	"testing"

	"github.com/kbukum/svcregistry/di"
	"github.com/kbukum/svcregistry/logger"
)

func newRegistry() *di.Registry {
	Calls.Reset()
	return di.New(Catalog(), di.WithLogger(logger.Nop()))
}

func TestUserServiceGraph(t *testing.T) {
	reg := newRegistry()
	if err := di.Register[*UserService](context.Background(), reg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reg.Len() != 4 {
		t.Errorf("expected 4 instances, got %d", reg.Len())
	}
	if Calls.DataBase.Load() != 1 {
		t.Errorf("expected one database, got %d", Calls.DataBase.Load())
	}
	if Calls.UserRepository.Load() != 1 {
		t.Errorf("expected one user repository, got %d", Calls.UserRepository.Load())
	}

	svc := di.MustGet[*UserService](reg)
	if svc.Users().DB() != svc.Metrics().DB() {
		t.Error("expected repositories to share one database")
	}
	if svc.Users().DB() != di.MustGet[*DataBase](reg) {
		t.Error("expected the shared database to be the cached one")
	}
}

func TestMarkedConstructorWins(t *testing.T) {
	reg := newRegistry()
	if err := di.Register[*UserRepository](context.Background(), reg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, ok := reg.Lookup("*demo.UserRepository")
	if !ok {
		t.Fatal("expected user repository registration")
	}
	if info.Constructor != "demo.NewUserRepository" {
		t.Errorf("expected demo.NewUserRepository, got %q", info.Constructor)
	}
	if !info.Injected {
		t.Error("expected marked constructor")
	}
}

func TestUserServiceSignUp(t *testing.T) {
	reg := newRegistry()
	if err := di.Register[*UserService](context.Background(), reg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc := di.MustGet[*UserService](reg)

	if n := svc.SignUp("1", "ada"); n != 1 {
		t.Errorf("expected first signup count 1, got %d", n)
	}
	if n := svc.SignUp("2", "grace"); n != 2 {
		t.Errorf("expected second signup count 2, got %d", n)
	}
	if name, ok := svc.Users().Find("2"); !ok || name != "grace" {
		t.Errorf("expected grace, got %q (ok=%v)", name, ok)
	}
	// Two users plus one metric row.
	if got := di.MustGet[*DataBase](reg).Len(); got != 3 {
		t.Errorf("expected 3 rows, got %d", got)
	}
}

func TestRoot(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"user_service", "*demo.UserService", false},
		{"database", "*demo.DataBase", false},
		{"cache", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Root(tc.name)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestRootNamesSorted(t *testing.T) {
	names := RootNames()
	want := []string{"database", "metrics_repository", "user_repository", "user_service"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
			break
		}
	}
}
