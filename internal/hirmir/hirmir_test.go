package hirmir

import (
	"testing"

	"github.com/lucid-lang/lucidc/internal/config"
	"github.com/lucid-lang/lucidc/internal/hir"
	"github.com/lucid-lang/lucidc/internal/mir"
	"github.com/lucid-lang/lucidc/internal/position"
	"github.com/lucid-lang/lucidc/internal/types"
)

func testConfig() *config.CompileConfiguration {
	return &config.CompileConfiguration{
		ListEmptyFunction:       "list'empty",
		ListPrependFunction:     "list'prepend",
		ListFirstFunction:       "list'first",
		ListRestFunction:        "list'rest",
		ListDeconstructFunction: "list'deconstruct",
		ListConcatenateFunction: "list'concatenate",
		ListTypeIteration:       "list'iterate",
		MapEmptyFunction:        "map'empty",
		MapInsertFunction:       "map'insert",
		MapGetFunction:          "map'get",
		StringEqualFunction:     "string'equal",
		ErrorType:               config.ErrorTypeConfiguration{TypeName: "pkg:Error", DebugFunctionName: "error'debug"},
		ContextTypeAlias:        "pkg:Context",
		MainFunctionName:        "main",
	}
}

func TestLowerLambdaExprProducesLetRecursive(t *testing.T) {
	l := New(testConfig(), types.NewContext())
	lambda := &hir.Lambda{
		Arguments:     []*hir.Argument{{Name: "x", Type: hir.NumberType{}}},
		ResultType:    hir.NumberType{},
		Body:          &hir.Variable{Name: "x", Type_: hir.NumberType{}, Pos_: position.Zero},
		FunctionType_: &hir.FunctionType{Arguments: []hir.Type{hir.NumberType{}}, Result: hir.NumberType{}},
		Pos_:          position.Zero,
	}
	got, err := l.lowerLambdaExpr(lambda)
	if err != nil {
		t.Fatalf("lowerLambdaExpr: %v", err)
	}
	rec, ok := got.(*mir.LetRecursive)
	if !ok {
		t.Fatalf("expected *mir.LetRecursive, got %T", got)
	}
	if len(rec.Function.Arguments) != 1 || rec.Function.Arguments[0].Name != "x" {
		t.Errorf("unexpected lowered argument list: %#v", rec.Function.Arguments)
	}
	if rec.Function.Thunk {
		t.Errorf("function with one argument should not be marked Thunk")
	}
}

func TestLowerIfTypeExpandsUnionMembers(t *testing.T) {
	ctx := types.NewContext()
	l := New(testConfig(), ctx)
	union := &hir.UnionType{LHS: hir.NumberType{}, RHS: hir.BooleanType{}}
	ifType := &hir.IfType{
		ArgumentName: "v",
		ArgumentType: union,
		Argument:     &hir.Variable{Name: "v", Type_: union, Pos_: position.Zero},
		Branches: []*hir.IfTypeBranch{
			{Type: union, Then: &hir.BooleanLit{Value: true, Pos_: position.Zero}},
		},
		Pos_: position.Zero,
	}
	got, err := l.lowerIfType(ifType)
	if err != nil {
		t.Fatalf("lowerIfType: %v", err)
	}
	c, ok := got.(*mir.Case)
	if !ok {
		t.Fatalf("expected *mir.Case, got %T", got)
	}
	if len(c.Alternatives) != 1 {
		t.Fatalf("expected 1 alternative, got %d", len(c.Alternatives))
	}
	if len(c.Alternatives[0].VariantTypeIDs) != 2 {
		t.Errorf("expected union branch to expand to 2 type ids, got %d: %v", len(c.Alternatives[0].VariantTypeIDs), c.Alternatives[0].VariantTypeIDs)
	}
}

func TestLowerTypeCoercionToVariantWrapsPayload(t *testing.T) {
	l := New(testConfig(), types.NewContext())
	coercion := &hir.TypeCoercion{
		Operand: &hir.NumberLit{Value: 1, Pos_: position.Zero},
		From:    hir.NumberType{},
		To:      hir.AnyType{},
		Pos_:    position.Zero,
	}
	got, err := l.lowerTypeCoercion(coercion)
	if err != nil {
		t.Fatalf("lowerTypeCoercion: %v", err)
	}
	variant, ok := got.(*mir.Variant)
	if !ok {
		t.Fatalf("expected *mir.Variant, got %T", got)
	}
	if _, ok := variant.Payload.(*mir.NumberLit); !ok {
		t.Errorf("expected payload to be the lowered operand, got %T", variant.Payload)
	}
}

func TestLowerRecordConstructionFollowsFieldOrder(t *testing.T) {
	l := New(testConfig(), types.NewContext())
	rc := &hir.RecordConstruction{
		TypeName: "pkg:Point",
		Fields: map[string]hir.Expr{
			"x": &hir.NumberLit{Value: 1, Pos_: position.Zero},
			"y": &hir.NumberLit{Value: 2, Pos_: position.Zero},
		},
		Order: []string{"y", "x"},
		Pos_:  position.Zero,
	}
	got, err := l.lowerRecordConstruction(rc)
	if err != nil {
		t.Fatalf("lowerRecordConstruction: %v", err)
	}
	rec, ok := got.(*mir.Record)
	if !ok {
		t.Fatalf("expected *mir.Record, got %T", got)
	}
	if len(rec.Fields) != 2 || rec.Fields[0].Name != "y" || rec.Fields[1].Name != "x" {
		t.Errorf("unexpected field order: %#v", rec.Fields)
	}
}
