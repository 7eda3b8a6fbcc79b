package lower

import (
	"testing"

	"github.com/lucid-lang/lucidc/internal/ast"
	"github.com/lucid-lang/lucidc/internal/hir"
	"github.com/lucid-lang/lucidc/internal/position"
)

func TestBooleanOperatorDesugaring(t *testing.T) {
	lw := &Lowerer{Prefix: "'m:"}
	pos := position.Zero

	and := &ast.BooleanOperation{
		Operator: ast.And,
		LHS:      &ast.Variable{Name: "true", Pos: pos},
		RHS:      &ast.Variable{Name: "true", Pos: pos},
		Pos:      pos,
	}
	got, err := lw.lowerExpr(and)
	if err != nil {
		t.Fatalf("lowerExpr(and): %v", err)
	}
	ifExpr, ok := got.(*hir.If)
	if !ok {
		t.Fatalf("expected *hir.If, got %T", got)
	}
	if b, ok := ifExpr.Else.(*hir.BooleanLit); !ok || b.Value != false {
		t.Errorf("And else branch = %#v, want false literal", ifExpr.Else)
	}

	or := &ast.BooleanOperation{
		Operator: ast.Or,
		LHS:      &ast.Variable{Name: "false", Pos: pos},
		RHS:      &ast.Variable{Name: "false", Pos: pos},
		Pos:      pos,
	}
	got, err = lw.lowerExpr(or)
	if err != nil {
		t.Fatalf("lowerExpr(or): %v", err)
	}
	ifExpr, ok = got.(*hir.If)
	if !ok {
		t.Fatalf("expected *hir.If, got %T", got)
	}
	if b, ok := ifExpr.Then.(*hir.BooleanLit); !ok || b.Value != true {
		t.Errorf("Or then branch = %#v, want true literal", ifExpr.Then)
	}
}

func TestByteStringEscapes(t *testing.T) {
	tests := []struct {
		raw  string
		want []byte
	}{
		{`\\`, []byte{'\\'}},
		{`\n`, []byte{'\n'}},
		{`\x80`, []byte{0x80}},
		{`\x01\x02\x03`, []byte{0x01, 0x02, 0x03}},
	}
	for _, tt := range tests {
		got, err := expandByteString(tt.raw)
		if err != nil {
			t.Fatalf("expandByteString(%q): %v", tt.raw, err)
		}
		if string(got) != string(tt.want) {
			t.Errorf("expandByteString(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestQualifyName(t *testing.T) {
	lw := &Lowerer{
		Prefix:           "'m:",
		localFuncNames:   map[string]string{"foo": "'m:foo"},
		unqualifiedNames: map[string]string{},
	}
	if got := lw.qualifyName("foo"); got != "'m:foo" {
		t.Errorf("qualifyName(foo) = %q, want 'm:foo", got)
	}
	if got := lw.qualifyName("x"); got != "x" {
		t.Errorf("qualifyName(x) = %q, want x (unqualified local)", got)
	}
}
