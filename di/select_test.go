package di

import (
	"reflect"
	"testing"
)

type stubConstructor struct {
	name     string
	params   int
	injected bool
}

func (s stubConstructor) Type() reflect.Type { return reflect.TypeFor[*struct{}]() }
func (s stubConstructor) Params() []reflect.Type {
	return make([]reflect.Type, s.params)
}
func (s stubConstructor) Injected() bool { return s.injected }
func (s stubConstructor) Invoke([]reflect.Value) (reflect.Value, error) {
	return reflect.ValueOf(&struct{}{}), nil
}
func (s stubConstructor) String() string { return s.name }

func TestSelectConstructor(t *testing.T) {
	target := reflect.TypeFor[*struct{}]()

	tests := []struct {
		name    string
		ctors   []Constructor
		want    string
		wantErr bool
	}{
		{"single marked", []Constructor{stubConstructor{name: "a", params: 0, injected: true}}, "a", false},
		{"marked wins over single param", []Constructor{
			stubConstructor{name: "one", params: 1},
			stubConstructor{name: "marked", params: 3, injected: true},
		}, "marked", false},
		{"single param fallback", []Constructor{
			stubConstructor{name: "zero", params: 0},
			stubConstructor{name: "one", params: 1},
			stubConstructor{name: "two", params: 2},
		}, "one", false},
		{"marked single param", []Constructor{stubConstructor{name: "m", params: 1, injected: true}}, "m", false},
		{"no constructors", nil, "", true},
		{"two marked", []Constructor{
			stubConstructor{name: "a", injected: true},
			stubConstructor{name: "b", injected: true},
		}, "", true},
		{"two single param unmarked", []Constructor{
			stubConstructor{name: "a", params: 1},
			stubConstructor{name: "b", params: 1},
		}, "", true},
		{"neither marked nor single param", []Constructor{
			stubConstructor{name: "a", params: 0},
			stubConstructor{name: "b", params: 2},
		}, "", true},
		{"lone zero param unmarked", []Constructor{stubConstructor{name: "a", params: 0}}, "", true},
		{"nil entries skipped", []Constructor{nil, stubConstructor{name: "one", params: 1}}, "one", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SelectConstructor(target, tc.ctors)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got constructor %v", got)
				}
				if !IsNoEligibleConstructor(err) {
					t.Errorf("expected NO_ELIGIBLE_CONSTRUCTOR, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tc.want {
				t.Errorf("expected constructor %q, got %q", tc.want, got.String())
			}
		})
	}
}

func TestSelectConstructorNamesType(t *testing.T) {
	_, err := SelectConstructor(reflect.TypeFor[*stubConstructor](), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); !containsAll(got, "*di.stubConstructor") {
		t.Errorf("expected error to name the type, got %q", got)
	}
}
