package types

import (
	"testing"

	"github.com/lucid-lang/lucidc/internal/hir"
)

func numUnion() hir.Type {
	return &hir.UnionType{LHS: hir.NumberType{}, RHS: hir.NoneType{}}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	ctx := NewContext()
	ctx.Aliases["pkg:Maybe"] = numUnion()
	in := &hir.ReferenceType{Name: "pkg:Maybe"}
	once := Canonicalize(ctx, in)
	twice := Canonicalize(ctx, once)
	if !hir.Equal(once, twice) {
		t.Fatalf("canonicalize not idempotent: %s vs %s", once, twice)
	}
}

func TestCanonicalizeAnyAbsorbs(t *testing.T) {
	ctx := NewContext()
	u := &hir.UnionType{LHS: hir.NumberType{}, RHS: hir.AnyType{}}
	got := Canonicalize(ctx, u)
	if _, ok := got.(hir.AnyType); !ok {
		t.Fatalf("expected Any, got %s", got)
	}
}

func TestSubsumptionReflexiveAndTransitive(t *testing.T) {
	ctx := NewContext()
	num := hir.Type(hir.NumberType{})
	u := numUnion()
	if !Subsumes(ctx, num, num) {
		t.Fatal("expected reflexive subsumption")
	}
	if !Subsumes(ctx, num, u) {
		t.Fatal("expected Number <= Number|None")
	}
	if !Subsumes(ctx, u, hir.AnyType{}) {
		t.Fatal("expected everything <= Any")
	}
}

func TestSubsumptionInvariantInContainers(t *testing.T) {
	ctx := NewContext()
	listNum := &hir.ListType{Element: hir.NumberType{}}
	listUnion := &hir.ListType{Element: numUnion()}
	if Subsumes(ctx, listNum, listUnion) {
		t.Fatal("List(Number) must not be <= List(Number|None): containers are invariant")
	}
}

func TestDifferenceAbsorption(t *testing.T) {
	ctx := NewContext()
	u := &hir.UnionType{LHS: hir.NumberType{}, RHS: hir.StringType{}}
	got := Difference(ctx, u, hir.AnyType{})
	if _, ok := got.(hir.NoneType); !ok {
		t.Fatalf("expected None when subtracting Any, got %s", got)
	}

	got2 := Difference(ctx, u, hir.NumberType{})
	if !hir.Equal(got2, hir.StringType{}) {
		t.Fatalf("expected String remaining, got %s", got2)
	}
}

func TestImpossibleRecordDetected(t *testing.T) {
	ctx := NewContext()
	ctx.Records["pkg:Node"] = []*hir.Field{
		{Name: "next", Type: &hir.RecordType{Name: "pkg:Node"}},
	}
	mod := &hir.Module{
		RecordDefs: []*hir.RecordDefinition{
			{Name: "pkg:Node", Fields: ctx.Records["pkg:Node"]},
		},
	}
	if err := ValidateImpossibleRecords(ctx, mod); err == nil {
		t.Fatal("expected impossible record error")
	}
}

func TestPossibleSelfReferentialRecord(t *testing.T) {
	ctx := NewContext()
	optionalNext := &hir.UnionType{LHS: &hir.RecordType{Name: "pkg:Node"}, RHS: hir.NoneType{}}
	ctx.Records["pkg:Node"] = []*hir.Field{{Name: "next", Type: optionalNext}}
	mod := &hir.Module{
		RecordDefs: []*hir.RecordDefinition{
			{Name: "pkg:Node", Fields: ctx.Records["pkg:Node"]},
		},
	}
	if err := ValidateImpossibleRecords(ctx, mod); err != nil {
		t.Fatalf("list-like record should be possible: %v", err)
	}
}
