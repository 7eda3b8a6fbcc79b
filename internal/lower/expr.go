package lower

import (
	"github.com/lucid-lang/lucidc/internal/ast"
	"github.com/lucid-lang/lucidc/internal/diag"
	"github.com/lucid-lang/lucidc/internal/hir"
)

func (lw *Lowerer) lowerLambda(l *ast.Lambda) (*hir.Lambda, error) {
	args := make([]*hir.Argument, len(l.Arguments))
	for i, a := range l.Arguments {
		t, err := lw.lowerTypeRef(a.Type)
		if err != nil {
			return nil, err
		}
		args[i] = &hir.Argument{Name: a.Name, Type: t}
	}
	var result hir.Type
	if l.ResultType != nil {
		t, err := lw.lowerTypeRef(l.ResultType)
		if err != nil {
			return nil, err
		}
		result = t
	}
	body, err := lw.lowerExpr(l.Body)
	if err != nil {
		return nil, err
	}
	return &hir.Lambda{Arguments: args, ResultType: result, Body: body, Pos_: l.Pos}, nil
}

// lowerExpr translates one surface expression to HIR.
func (lw *Lowerer) lowerExpr(e ast.Expr) (hir.Expr, error) {
	switch v := e.(type) {
	case *ast.NumberLiteral:
		n, err := parseNumber(v)
		if err != nil {
			return nil, err
		}
		return &hir.NumberLit{Value: n, Pos_: v.Pos}, nil

	case *ast.ByteStringLiteral:
		b, err := expandByteString(v.Raw)
		if err != nil {
			return nil, err
		}
		return &hir.ByteStringLit{Value: b, Pos_: v.Pos}, nil

	case *ast.BooleanLiteral:
		return &hir.BooleanLit{Value: v.Value, Pos_: v.Pos}, nil

	case *ast.NoneLiteral:
		return &hir.NoneLit{Pos_: v.Pos}, nil

	case *ast.Variable:
		if v.Name == "true" {
			return &hir.BooleanLit{Value: true, Pos_: v.Pos}, nil
		}
		if v.Name == "false" {
			return &hir.BooleanLit{Value: false, Pos_: v.Pos}, nil
		}
		return &hir.Variable{Name: lw.qualifyName(v.Name), Pos_: v.Pos}, nil

	case *ast.Lambda:
		return lw.lowerLambda(v)

	case *ast.Call:
		fn, err := lw.lowerExpr(v.Function)
		if err != nil {
			return nil, err
		}
		args := make([]hir.Expr, len(v.Arguments))
		for i, a := range v.Arguments {
			ha, err := lw.lowerExpr(a)
			if err != nil {
				return nil, err
			}
			args[i] = ha
		}
		return &hir.Call{Function: fn, Arguments: args, Pos_: v.Pos}, nil

	case *ast.If:
		return lw.lowerIf(v)

	case *ast.IfList:
		return lw.lowerIfList(v)

	case *ast.IfMap:
		return lw.lowerIfMap(v)

	case *ast.IfType:
		return lw.lowerIfType(v)

	case *ast.RecordConstruction:
		return lw.lowerRecordConstruction(v)

	case *ast.RecordUpdate:
		return lw.lowerRecordUpdate(v)

	case *ast.RecordField:
		r, err := lw.lowerExpr(v.Record)
		if err != nil {
			return nil, err
		}
		return &hir.RecordField{Record: r, Name: v.Name, Pos_: v.Pos}, nil

	case *ast.ListLiteral:
		return lw.lowerListLiteral(v)

	case *ast.MapLiteral:
		return lw.lowerMapLiteral(v)

	case *ast.ListComprehension:
		return lw.lowerListComprehension(v)

	case *ast.ArithmeticOperation:
		l, err := lw.lowerExpr(v.LHS)
		if err != nil {
			return nil, err
		}
		r, err := lw.lowerExpr(v.RHS)
		if err != nil {
			return nil, err
		}
		return &hir.ArithmeticOperation{Operator: hir.ArithmeticOp(v.Operator), LHS: l, RHS: r, Pos_: v.Pos}, nil

	case *ast.EqualityOperation:
		l, err := lw.lowerExpr(v.LHS)
		if err != nil {
			return nil, err
		}
		r, err := lw.lowerExpr(v.RHS)
		if err != nil {
			return nil, err
		}
		return &hir.EqualityOperation{Negate: v.Negate, LHS: l, RHS: r, Pos_: v.Pos}, nil

	case *ast.OrderOperation:
		l, err := lw.lowerExpr(v.LHS)
		if err != nil {
			return nil, err
		}
		r, err := lw.lowerExpr(v.RHS)
		if err != nil {
			return nil, err
		}
		return &hir.OrderOperation{Operator: hir.OrderOp(v.Operator), LHS: l, RHS: r, Pos_: v.Pos}, nil

	case *ast.BooleanOperation:
		return lw.lowerBooleanOperation(v)

	case *ast.Not:
		operand, err := lw.lowerExpr(v.Operand)
		if err != nil {
			return nil, err
		}
		return &hir.Not{Operand: operand, Pos_: v.Pos}, nil

	case *ast.TryOperation:
		operand, err := lw.lowerExpr(v.Operand)
		if err != nil {
			return nil, err
		}
		return &hir.TryOperation{Operand: operand, Pos_: v.Pos}, nil

	case *ast.Block:
		return lw.lowerBlock(v)

	default:
		return nil, &diag.ParseError{Pos: e.Position(), Message: "unsupported expression node"}
	}
}

// lowerBooleanOperation desugars `&&`/`||` to If:
// `a && b` -> `if a then b else false`; `a || b` -> `if a then true else b`.
func (lw *Lowerer) lowerBooleanOperation(v *ast.BooleanOperation) (hir.Expr, error) {
	l, err := lw.lowerExpr(v.LHS)
	if err != nil {
		return nil, err
	}
	r, err := lw.lowerExpr(v.RHS)
	if err != nil {
		return nil, err
	}
	switch v.Operator {
	case ast.And:
		return &hir.If{Condition: l, Then: r, Else: &hir.BooleanLit{Value: false, Pos_: v.Pos}, Pos_: v.Pos}, nil
	default: // ast.Or
		return &hir.If{Condition: l, Then: &hir.BooleanLit{Value: true, Pos_: v.Pos}, Else: r, Pos_: v.Pos}, nil
	}
}

func (lw *Lowerer) lowerIf(v *ast.If) (hir.Expr, error) {
	cond, err := lw.lowerExpr(v.Condition)
	if err != nil {
		return nil, err
	}
	then, err := lw.lowerExpr(v.Then)
	if err != nil {
		return nil, err
	}
	els, err := lw.lowerExpr(v.Else)
	if err != nil {
		return nil, err
	}
	return &hir.If{Condition: cond, Then: then, Else: els, Pos_: v.Pos}, nil
}

func (lw *Lowerer) lowerIfList(v *ast.IfList) (hir.Expr, error) {
	arg, err := lw.lowerExpr(v.Argument)
	if err != nil {
		return nil, err
	}
	then, err := lw.lowerExpr(v.Then)
	if err != nil {
		return nil, err
	}
	els, err := lw.lowerExpr(v.Else)
	if err != nil {
		return nil, err
	}
	return &hir.IfList{
		Argument: arg, FirstName: v.FirstName, RestName: v.RestName,
		Then: then, Else: els, Pos_: v.Pos,
	}, nil
}

func (lw *Lowerer) lowerIfMap(v *ast.IfMap) (hir.Expr, error) {
	m, err := lw.lowerExpr(v.Map)
	if err != nil {
		return nil, err
	}
	key, err := lw.lowerExpr(v.Key)
	if err != nil {
		return nil, err
	}
	then, err := lw.lowerExpr(v.Then)
	if err != nil {
		return nil, err
	}
	els, err := lw.lowerExpr(v.Else)
	if err != nil {
		return nil, err
	}
	return &hir.IfMap{Map: m, Key: key, ValueName: v.ValueName, Then: then, Else: els, Pos_: v.Pos}, nil
}

func (lw *Lowerer) lowerIfType(v *ast.IfType) (hir.Expr, error) {
	arg, err := lw.lowerExpr(v.Argument)
	if err != nil {
		return nil, err
	}
	branches := make([]*hir.IfTypeBranch, len(v.Branches))
	for i, b := range v.Branches {
		t, err := lw.lowerTypeRef(b.Type)
		if err != nil {
			return nil, err
		}
		then, err := lw.lowerExpr(b.Then)
		if err != nil {
			return nil, err
		}
		branches[i] = &hir.IfTypeBranch{Type: t, Then: then}
	}
	var els hir.Expr
	if v.Else != nil {
		els, err = lw.lowerExpr(v.Else)
		if err != nil {
			return nil, err
		}
	}
	return &hir.IfType{
		ArgumentName: v.ArgumentName, Argument: arg, Branches: branches, Else: els, Pos_: v.Pos,
	}, nil
}

func (lw *Lowerer) lowerRecordConstruction(v *ast.RecordConstruction) (hir.Expr, error) {
	typeName, err := lw.recordTypeName(v.Type)
	if err != nil {
		return nil, err
	}
	fields := map[string]hir.Expr{}
	for name, e := range v.Fields {
		he, err := lw.lowerExpr(e)
		if err != nil {
			return nil, err
		}
		fields[name] = he
	}
	return &hir.RecordConstruction{TypeName: typeName, Fields: fields, Order: append([]string(nil), v.Order...), Pos_: v.Pos}, nil
}

func (lw *Lowerer) recordTypeName(ref ast.TypeRef) (string, error) {
	nameRef, ok := ref.(*ast.NameTypeRef)
	if !ok {
		return "", &diag.RecordExpectedError{Pos: ref.Position()}
	}
	t, err := lw.resolveNameType(nameRef)
	if err != nil {
		return "", err
	}
	rt, ok := t.(*hir.ReferenceType)
	if !ok {
		return "", &diag.RecordExpectedError{Pos: ref.Position()}
	}
	return rt.Name, nil
}

func (lw *Lowerer) lowerRecordUpdate(v *ast.RecordUpdate) (hir.Expr, error) {
	r, err := lw.lowerExpr(v.Record)
	if err != nil {
		return nil, err
	}
	fields := map[string]hir.Expr{}
	for name, e := range v.Fields {
		he, err := lw.lowerExpr(e)
		if err != nil {
			return nil, err
		}
		fields[name] = he
	}
	return &hir.RecordUpdate{Record: r, Fields: fields, Order: append([]string(nil), v.Order...), Pos_: v.Pos}, nil
}

func (lw *Lowerer) lowerListLiteral(v *ast.ListLiteral) (hir.Expr, error) {
	elems := make([]*hir.ListElement, len(v.Elements))
	for i, e := range v.Elements {
		he, err := lw.lowerExpr(e.Value)
		if err != nil {
			return nil, err
		}
		elems[i] = &hir.ListElement{Value: he, Splice: e.Splice}
	}
	return &hir.ListLit{Elements: elems, Pos_: v.Pos}, nil
}

func (lw *Lowerer) lowerMapLiteral(v *ast.MapLiteral) (hir.Expr, error) {
	entries := make([]*hir.MapEntry, len(v.Entries))
	for i, e := range v.Entries {
		k, err := lw.lowerExpr(e.Key)
		if err != nil {
			return nil, err
		}
		val, err := lw.lowerExpr(e.Value)
		if err != nil {
			return nil, err
		}
		entries[i] = &hir.MapEntry{Key: k, Value: val}
	}
	return &hir.MapLit{Entries: entries, Pos_: v.Pos}, nil
}

func (lw *Lowerer) lowerListComprehension(v *ast.ListComprehension) (hir.Expr, error) {
	branches := make([]*hir.ComprehensionBranch, len(v.Branches))
	for i, b := range v.Branches {
		it, err := lw.lowerExpr(b.Iteratee)
		if err != nil {
			return nil, err
		}
		branches[i] = &hir.ComprehensionBranch{Names: append([]string(nil), b.Names...), Iteratee: it}
	}
	element, err := lw.lowerExpr(v.Element)
	if err != nil {
		return nil, err
	}
	var cond hir.Expr
	if v.Condition != nil {
		cond, err = lw.lowerExpr(v.Condition)
		if err != nil {
			return nil, err
		}
	}
	return &hir.ListComprehension{Element: element, Branches: branches, Condition: cond, Pos_: v.Pos}, nil
}

func (lw *Lowerer) lowerBlock(v *ast.Block) (hir.Expr, error) {
	stmts := make([]*hir.LetStatement, len(v.Statements))
	for i, s := range v.Statements {
		val, err := lw.lowerExpr(s.Value)
		if err != nil {
			return nil, err
		}
		var t hir.Type
		if s.Type != nil {
			t, err = lw.lowerTypeRef(s.Type)
			if err != nil {
				return nil, err
			}
		}
		stmts[i] = &hir.LetStatement{Name: s.Name, Type: t, Value: val}
	}
	result, err := lw.lowerExpr(v.Result)
	if err != nil {
		return nil, err
	}
	return &hir.Block{Statements: stmts, Result: result, Pos_: v.Pos}, nil
}
