package iface

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lucid-lang/lucidc/internal/hir"
	"github.com/lucid-lang/lucidc/internal/position"
)

func TestRoundTrip(t *testing.T) {
	pos := position.New("a.lc", 3, 1, "foo = 1")
	iface := &Interface{
		TypeDefinitions: []*TypeDefinition{{
			Name: "'a:Point", OriginalName: "Point",
			Fields: []hir.Field{{Name: "X", Type: hir.NumberType{}}, {Name: "Y", Type: hir.NumberType{}}},
			Open: true, Public: true, Pos: pos,
		}},
		TypeAliases: []*TypeAlias{{
			Name: "'a:Pair", OriginalName: "Pair",
			Type: &hir.UnionType{LHS: hir.NumberType{}, RHS: hir.NoneType{}},
			Public: true, Pos: pos,
		}},
		FunctionDeclarations: []*FunctionDeclaration{{
			Name: "'a:id", OriginalName: "id",
			Type: &hir.FunctionType{Arguments: []hir.Type{hir.AnyType{}}, Result: hir.AnyType{}},
			Pos: pos,
		}},
	}

	data, err := Marshal(iface)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(iface, got, cmp.AllowUnexported()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyModuleInterface(t *testing.T) {
	mod := &hir.Module{}
	got := Compile(mod)
	if len(got.TypeDefinitions) != 0 || len(got.TypeAliases) != 0 || len(got.FunctionDeclarations) != 0 {
		t.Errorf("expected empty interface, got %+v", got)
	}
}

func TestPrivateDeclarationHidden(t *testing.T) {
	mod := &hir.Module{
		Functions: []*hir.FunctionDefinition{{
			Name: "'a:foo", OriginalName: "foo", Public: false,
			Lambda: &hir.Lambda{ResultType: hir.NoneType{}, Body: &hir.NoneLit{}},
		}},
	}
	got := Compile(mod)
	if len(got.TypeDefinitions) != 0 || len(got.TypeAliases) != 0 || len(got.FunctionDeclarations) != 0 {
		t.Errorf("expected all-empty interface for private-only module, got %+v", got)
	}
}
