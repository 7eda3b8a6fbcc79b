package rc

import (
	"testing"

	"github.com/lucid-lang/lucidc/internal/mir"
	"github.com/lucid-lang/lucidc/internal/position"
)

func boxedRecord(name string, fieldCount int) *mir.RecordDefinition {
	fields := make([]*mir.FieldType, fieldCount)
	for i := range fields {
		fields[i] = &mir.FieldType{Name: "f", Type: mir.NumberType{}}
	}
	return &mir.RecordDefinition{Name: name, Fields: fields}
}

func TestUnusedArgumentIsDropped(t *testing.T) {
	ctx := NewContext([]*mir.RecordDefinition{boxedRecord("pkg:Box", 1)})
	fn := &mir.FunctionDefinition{
		Name:       "pkg:f",
		Arguments:  []*mir.EnvironmentEntry{{Name: "x", Type: mir.RecordType{Name: "pkg:Box"}}},
		Body:       &mir.NumberLit{Value: 1, Pos_: position.Zero},
		ResultType: mir.NumberType{},
	}
	if err := insertInFunction(fn, ctx); err != nil {
		t.Fatalf("insertInFunction: %v", err)
	}
	drop, ok := fn.Body.(*mir.DropVariables)
	if !ok {
		t.Fatalf("expected *mir.DropVariables wrapping unused argument, got %T", fn.Body)
	}
	if _, ok := drop.Names["x"]; !ok {
		t.Errorf("expected drop to name x, got %v", drop.Names)
	}
}

func TestMultipleUsesAreCloned(t *testing.T) {
	ctx := NewContext([]*mir.RecordDefinition{boxedRecord("pkg:Box", 1)})
	boxType := mir.RecordType{Name: "pkg:Box"}
	body := &mir.Let{
		Name: "x", Type: boxType,
		Bound: &mir.Variant{TypeID: "pkg:Box", Payload: &mir.NumberLit{Value: 1, Pos_: position.Zero}, Pos_: position.Zero},
		Body: &mir.Record{
			TypeName: "pkg:Pair",
			Fields: []*mir.RecordFieldValue{
				{Name: "a", Value: &mir.Variable{Name: "x", Type: boxType, Pos_: position.Zero}},
				{Name: "b", Value: &mir.Variable{Name: "x", Type: boxType, Pos_: position.Zero}},
			},
			Pos_: position.Zero,
		},
		Pos_: position.Zero,
	}
	fn := &mir.FunctionDefinition{Name: "pkg:f", Body: body, ResultType: boxType}
	if err := insertInFunction(fn, ctx); err != nil {
		t.Fatalf("insertInFunction: %v", err)
	}
	let, ok := fn.Body.(*mir.Let)
	if !ok {
		t.Fatalf("expected top-level *mir.Let, got %T", fn.Body)
	}
	if _, ok := let.Body.(*mir.CloneVariables); !ok {
		t.Fatalf("expected x used twice to be wrapped in CloneVariables, got %T", let.Body)
	}
}

func TestBranchDropsUnusedLiveVariable(t *testing.T) {
	ctx := NewContext([]*mir.RecordDefinition{boxedRecord("pkg:Box", 1)})
	boxType := mir.RecordType{Name: "pkg:Box"}
	fn := &mir.FunctionDefinition{
		Name:       "pkg:f",
		Arguments:  []*mir.EnvironmentEntry{{Name: "x", Type: boxType}},
		ResultType: mir.NumberType{},
		Body: &mir.If{
			Condition: &mir.BooleanLit{Value: true, Pos_: position.Zero},
			Then:      &mir.Variant{TypeID: "pkg:Box", Payload: &mir.Variable{Name: "x", Type: boxType, Pos_: position.Zero}, Pos_: position.Zero},
			Else:      &mir.NumberLit{Value: 0, Pos_: position.Zero},
			Pos_:      position.Zero,
		},
	}
	if err := insertInFunction(fn, ctx); err != nil {
		t.Fatalf("insertInFunction: %v", err)
	}
	ifExpr, ok := fn.Body.(*mir.If)
	if !ok {
		t.Fatalf("expected *mir.If, got %T", fn.Body)
	}
	drop, ok := ifExpr.Else.(*mir.DropVariables)
	if !ok {
		t.Fatalf("expected x dropped in the branch that doesn't use it, got %T", ifExpr.Else)
	}
	if _, ok := drop.Names["x"]; !ok {
		t.Errorf("expected drop to name x, got %v", drop.Names)
	}
}
