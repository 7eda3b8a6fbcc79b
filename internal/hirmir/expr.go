package hirmir

import (
	"fmt"

	"github.com/lucid-lang/lucidc/internal/hir"
	"github.com/lucid-lang/lucidc/internal/mir"
	"github.com/lucid-lang/lucidc/internal/mirpass"
)

// LowerExpr translates one HIR expression into MIR, node by node.
func (l *Lowerer) LowerExpr(e hir.Expr) (mir.Expr, error) {
	switch v := e.(type) {
	case *hir.NumberLit:
		return &mir.NumberLit{Value: v.Value, Pos_: v.Pos_}, nil
	case *hir.ByteStringLit:
		return &mir.ByteStringLit{Value: v.Value, Pos_: v.Pos_}, nil
	case *hir.BooleanLit:
		return &mir.BooleanLit{Value: v.Value, Pos_: v.Pos_}, nil
	case *hir.NoneLit:
		return &mir.NoneLit{Pos_: v.Pos_}, nil

	case *hir.Variable:
		return &mir.Variable{Name: v.Name, Type: l.LowerType(v.Type_), Pos_: v.Pos_}, nil

	case *hir.Lambda:
		return l.lowerLambdaExpr(v)

	case *hir.Call:
		fn, err := l.LowerExpr(v.Function)
		if err != nil {
			return nil, err
		}
		args := make([]mir.Expr, len(v.Arguments))
		for i, a := range v.Arguments {
			lowered, err := l.LowerExpr(a)
			if err != nil {
				return nil, err
			}
			args[i] = lowered
		}
		return &mir.FunctionApplication{Function: fn, Arguments: args, Pos_: v.Pos_}, nil

	case *hir.If:
		cond, err := l.LowerExpr(v.Condition)
		if err != nil {
			return nil, err
		}
		then, err := l.LowerExpr(v.Then)
		if err != nil {
			return nil, err
		}
		els, err := l.LowerExpr(v.Else)
		if err != nil {
			return nil, err
		}
		return &mir.If{Condition: cond, Then: then, Else: els, Pos_: v.Pos_}, nil

	case *hir.IfList:
		return l.lowerIfList(v)
	case *hir.IfMap:
		return l.lowerIfMap(v)
	case *hir.IfType:
		return l.lowerIfType(v)

	case *hir.RecordConstruction:
		return l.lowerRecordConstruction(v)
	case *hir.RecordUpdate:
		return l.lowerRecordUpdate(v)
	case *hir.RecordField:
		record, err := l.LowerExpr(v.Record)
		if err != nil {
			return nil, err
		}
		return &mir.RecordField{Record: record, Name: v.Name, Type: l.LowerType(v.Type_), Pos_: v.Pos_}, nil

	case *hir.ListLit:
		return l.lowerListLit(v)
	case *hir.MapLit:
		return l.lowerMapLit(v)
	case *hir.ListComprehension:
		return l.lowerListComprehension(v)

	case *hir.ArithmeticOperation:
		lhs, err := l.LowerExpr(v.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := l.LowerExpr(v.RHS)
		if err != nil {
			return nil, err
		}
		return &mir.ArithmeticOperation{Operator: mir.ArithmeticOp(v.Operator), LHS: lhs, RHS: rhs, Pos_: v.Pos_}, nil

	case *hir.EqualityOperation:
		lhs, err := l.LowerExpr(v.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := l.LowerExpr(v.RHS)
		if err != nil {
			return nil, err
		}
		op := mir.CmpEqual
		if v.Negate {
			op = mir.CmpNotEqual
		}
		return &mir.ComparisonOperation{Operator: op, LHS: lhs, RHS: rhs, Pos_: v.Pos_}, nil

	case *hir.OrderOperation:
		lhs, err := l.LowerExpr(v.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := l.LowerExpr(v.RHS)
		if err != nil {
			return nil, err
		}
		ops := [...]mir.ComparisonOp{mir.CmpLessThan, mir.CmpLessThanOrEqual, mir.CmpGreaterThan, mir.CmpGreaterThanOrEqual}
		return &mir.ComparisonOperation{Operator: ops[v.Operator], LHS: lhs, RHS: rhs, Pos_: v.Pos_}, nil

	case *hir.Not:
		operand, err := l.LowerExpr(v.Operand)
		if err != nil {
			return nil, err
		}
		return &mir.If{
			Condition: operand,
			Then:      &mir.BooleanLit{Value: false, Pos_: v.Pos_},
			Else:      &mir.BooleanLit{Value: true, Pos_: v.Pos_},
			Pos_:      v.Pos_,
		}, nil

	case *hir.TryOperation:
		operand, err := l.LowerExpr(v.Operand)
		if err != nil {
			return nil, err
		}
		name := trySyntheticName(v)
		return &mir.TryOperation{Operand: operand, Name: name, Type: l.LowerType(v.Type_), Then: &mir.Variable{Name: name, Type: l.LowerType(v.Type_), Pos_: v.Pos_}, Pos_: v.Pos_}, nil

	case *hir.TypeCoercion:
		return l.lowerTypeCoercion(v)

	case *hir.Block:
		return l.lowerBlock(v)

	default:
		return nil, fmt.Errorf("hirmir: unhandled HIR expression %T", e)
	}
}

func trySyntheticName(v *hir.TryOperation) string {
	return fmt.Sprintf("$try_%p", v)
}

// lowerTypeCoercion implements the Coercion rule: widening into
// Any/Union becomes a Variant construction tagged with the source
// type's concrete id; every other coercion is an identity projection,
// since MIR has no structural subtyping to witness.
func (l *Lowerer) lowerTypeCoercion(v *hir.TypeCoercion) (mir.Expr, error) {
	operand, err := l.LowerExpr(v.Operand)
	if err != nil {
		return nil, err
	}
	toMIR := l.LowerType(v.To)
	if _, ok := toMIR.(mir.VariantType); ok {
		fromMIR := l.LowerType(v.From)
		return &mir.Variant{TypeID: mirpass.TypeID(fromMIR), Payload: operand, Pos_: v.Pos_}, nil
	}
	return operand, nil
}

func (l *Lowerer) lowerBlock(v *hir.Block) (mir.Expr, error) {
	result, err := l.LowerExpr(v.Result)
	if err != nil {
		return nil, err
	}
	for i := len(v.Statements) - 1; i >= 0; i-- {
		stmt := v.Statements[i]
		bound, err := l.LowerExpr(stmt.Value)
		if err != nil {
			return nil, err
		}
		name := stmt.Name
		if name == "" {
			name = fmt.Sprintf("$discard_%d", i)
		}
		result = &mir.Let{Name: name, Type: l.LowerType(stmt.Type), Bound: bound, Body: result, Pos_: v.Pos_}
	}
	return result, nil
}
