package resolver

import (
	"reflect"
	"testing"
)

func TestTopoSortPackages(t *testing.T) {
	deps := map[string][]string{
		"foo": {},
		"bar": {"foo", "baz"},
		"baz": {"foo"},
	}
	got, err := TopoSortPackages(deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"bar", "baz", "foo"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTopoSortPackagesCycle(t *testing.T) {
	deps := map[string][]string{
		"a": {"b"},
		"b": {"a"},
	}
	if _, err := TopoSortPackages(deps); err == nil {
		t.Fatal("expected a cycle error")
	}
}
