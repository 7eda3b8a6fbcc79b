package types

import (
	"github.com/lucid-lang/lucidc/internal/diag"
	"github.com/lucid-lang/lucidc/internal/hir"
)

// checkLambda infers/checks a lambda's body against its (possibly
// absent) declared result type, filling ResultType and the lambda's
// own FunctionType_ slot.
func (a *analyzer) checkLambda(env Env, l *hir.Lambda) (*hir.Lambda, error) {
	bodyEnv := env
	for _, arg := range l.Arguments {
		if arg.Type == nil {
			return nil, &diag.TypeNotInferredError{Pos: l.Pos_}
		}
		bodyEnv = bodyEnv.With(arg.Name, arg.Type)
	}

	prevResult := a.resultType
	if l.ResultType != nil {
		a.resultType = l.ResultType
	}
	defer func() { a.resultType = prevResult }()

	var body hir.Expr
	var err error
	if l.ResultType != nil {
		body, err = a.check(bodyEnv, l.Body, l.ResultType)
	} else {
		var synthType hir.Type
		body, synthType, err = a.synth(bodyEnv, l.Body)
		if err == nil {
			l.ResultType = synthType
		}
	}
	if err != nil {
		return nil, err
	}

	argTypes := make([]hir.Type, len(l.Arguments))
	for i, arg := range l.Arguments {
		argTypes[i] = arg.Type
	}
	return &hir.Lambda{
		Arguments: l.Arguments, ResultType: l.ResultType, Body: body,
		FunctionType_: &hir.FunctionType{Arguments: argTypes, Result: l.ResultType},
		Pos_: l.Pos_,
	}, nil
}

// check verifies expr's synthesized type is ≤ expected, wrapping it in
// a TypeCoercion when subsumption held but equality did not.
func (a *analyzer) check(env Env, expr hir.Expr, expected hir.Type) (hir.Expr, error) {
	checked, synthType, err := a.synth(env, expr)
	if err != nil {
		return nil, err
	}
	if Equal(a.ctx, synthType, expected) {
		return checked, nil
	}
	if Subsumes(a.ctx, synthType, expected) {
		return &hir.TypeCoercion{From: synthType, To: expected, Operand: checked, Pos_: checked.Position()}, nil
	}
	return nil, &diag.TypesNotMatchedError{LHSPos: checked.Position(), RHSPos: checked.Position(), LHS: synthType, RHS: expected}
}

// synth synthesizes expr's type, recursively filling every inferable
// slot reachable from it, and returns the (possibly rewritten) node
// alongside its type.
func (a *analyzer) synth(env Env, expr hir.Expr) (hir.Expr, hir.Type, error) {
	switch v := expr.(type) {
	case *hir.NumberLit:
		return v, hir.NumberType{}, nil
	case *hir.ByteStringLit:
		return v, hir.StringType{}, nil
	case *hir.BooleanLit:
		return v, hir.BooleanType{}, nil
	case *hir.NoneLit:
		return v, hir.NoneType{}, nil

	case *hir.Variable:
		if t, ok := env[v.Name]; ok {
			v.Type_ = t
			return v, t, nil
		}
		if t, ok := a.ctx.Functions[v.Name]; ok {
			v.Type_ = t
			return v, t, nil
		}
		return nil, nil, &diag.NameNotFoundError{Name: v.Name, Pos: v.Pos_}

	case *hir.Lambda:
		lam, err := a.checkLambda(env, v)
		if err != nil {
			return nil, nil, err
		}
		return lam, lam.FunctionType_, nil

	case *hir.Call:
		return a.synthCall(env, v)

	case *hir.If:
		return a.synthIf(env, v)

	case *hir.IfList:
		return a.synthIfList(env, v)

	case *hir.IfMap:
		return a.synthIfMap(env, v)

	case *hir.IfType:
		return a.synthIfType(env, v)

	case *hir.RecordConstruction:
		return a.synthRecordConstruction(env, v)

	case *hir.RecordUpdate:
		return a.synthRecordUpdate(env, v)

	case *hir.RecordField:
		return a.synthRecordField(env, v)

	case *hir.ListLit:
		return a.synthListLit(env, v)

	case *hir.MapLit:
		return a.synthMapLit(env, v)

	case *hir.ListComprehension:
		return a.synthListComprehension(env, v)

	case *hir.ArithmeticOperation:
		lhs, err := a.check(env, v.LHS, hir.NumberType{})
		if err != nil {
			return nil, nil, err
		}
		rhs, err := a.check(env, v.RHS, hir.NumberType{})
		if err != nil {
			return nil, nil, err
		}
		v.LHS, v.RHS = lhs, rhs
		return v, hir.NumberType{}, nil

	case *hir.EqualityOperation:
		lhs, lt, err := a.synth(env, v.LHS)
		if err != nil {
			return nil, nil, err
		}
		rhs, err := a.check(env, v.RHS, lt)
		if err != nil {
			return nil, nil, err
		}
		v.LHS, v.RHS = lhs, rhs
		return v, hir.BooleanType{}, nil

	case *hir.OrderOperation:
		lhs, err := a.check(env, v.LHS, hir.NumberType{})
		if err != nil {
			return nil, nil, err
		}
		rhs, err := a.check(env, v.RHS, hir.NumberType{})
		if err != nil {
			return nil, nil, err
		}
		v.LHS, v.RHS = lhs, rhs
		return v, hir.BooleanType{}, nil

	case *hir.Not:
		op, err := a.check(env, v.Operand, hir.BooleanType{})
		if err != nil {
			return nil, nil, err
		}
		v.Operand = op
		return v, hir.BooleanType{}, nil

	case *hir.TryOperation:
		return a.synthTryOperation(env, v)

	case *hir.Block:
		return a.synthBlock(env, v)

	default:
		return nil, nil, &diag.TypeNotInferredError{Pos: expr.Position()}
	}
}

func (a *analyzer) synthCall(env Env, v *hir.Call) (hir.Expr, hir.Type, error) {
	fn, fnType, err := a.synth(env, v.Function)
	if err != nil {
		return nil, nil, err
	}
	ft, ok := Canonicalize(a.ctx, fnType).(*hir.FunctionType)
	if !ok {
		return nil, nil, &diag.FunctionExpectedError{Pos: v.Pos_}
	}
	if len(ft.Arguments) != len(v.Arguments) {
		return nil, nil, &diag.FunctionExpectedError{Pos: v.Pos_}
	}
	args := make([]hir.Expr, len(v.Arguments))
	for i, arg := range v.Arguments {
		checked, err := a.check(env, arg, ft.Arguments[i])
		if err != nil {
			return nil, nil, err
		}
		args[i] = checked
	}
	v.Function, v.Arguments, v.Type_ = fn, args, ft.Result
	return v, ft.Result, nil
}

func (a *analyzer) synthIf(env Env, v *hir.If) (hir.Expr, hir.Type, error) {
	cond, err := a.check(env, v.Condition, hir.BooleanType{})
	if err != nil {
		return nil, nil, err
	}
	then, thenType, err := a.synth(env, v.Then)
	if err != nil {
		return nil, nil, err
	}
	els, elseType, err := a.synth(env, v.Else)
	if err != nil {
		return nil, nil, err
	}
	result := Canonicalize(a.ctx, &hir.UnionType{LHS: thenType, RHS: elseType})
	then, err = a.coerceTo(then, thenType, result)
	if err != nil {
		return nil, nil, err
	}
	els, err = a.coerceTo(els, elseType, result)
	if err != nil {
		return nil, nil, err
	}
	v.Condition, v.Then, v.Else, v.Type_ = cond, then, els, result
	return v, result, nil
}

// coerceTo wraps expr in a TypeCoercion from 'from' to 'to' unless the
// two are already structurally equal.
func (a *analyzer) coerceTo(expr hir.Expr, from, to hir.Type) (hir.Expr, error) {
	if Equal(a.ctx, from, to) {
		return expr, nil
	}
	if !Subsumes(a.ctx, from, to) {
		return nil, &diag.TypesNotMatchedError{LHSPos: expr.Position(), RHSPos: expr.Position(), LHS: from, RHS: to}
	}
	return &hir.TypeCoercion{From: from, To: to, Operand: expr, Pos_: expr.Position()}, nil
}

func (a *analyzer) synthIfList(env Env, v *hir.IfList) (hir.Expr, hir.Type, error) {
	arg, argType, err := a.synth(env, v.Argument)
	if err != nil {
		return nil, nil, err
	}
	lt, ok := Canonicalize(a.ctx, argType).(*hir.ListType)
	if !ok {
		return nil, nil, &diag.TypesNotMatchedError{LHSPos: v.Pos_, RHSPos: v.Pos_, LHS: argType, RHS: &hir.ListType{Element: hir.AnyType{}}}
	}
	v.FirstType = lt.Element
	v.RestType = lt
	thenEnv := env.With(v.FirstName, v.FirstType).With(v.RestName, v.RestType)
	then, thenType, err := a.synth(thenEnv, v.Then)
	if err != nil {
		return nil, nil, err
	}
	els, elseType, err := a.synth(env, v.Else)
	if err != nil {
		return nil, nil, err
	}
	result := Canonicalize(a.ctx, &hir.UnionType{LHS: thenType, RHS: elseType})
	if then, err = a.coerceTo(then, thenType, result); err != nil {
		return nil, nil, err
	}
	if els, err = a.coerceTo(els, elseType, result); err != nil {
		return nil, nil, err
	}
	v.Argument, v.Then, v.Else, v.Type_ = arg, then, els, result
	return v, result, nil
}

func (a *analyzer) synthIfMap(env Env, v *hir.IfMap) (hir.Expr, hir.Type, error) {
	m, mapType, err := a.synth(env, v.Map)
	if err != nil {
		return nil, nil, err
	}
	mt, ok := Canonicalize(a.ctx, mapType).(*hir.MapType)
	if !ok {
		return nil, nil, &diag.TypesNotMatchedError{LHSPos: v.Pos_, RHSPos: v.Pos_, LHS: mapType, RHS: &hir.MapType{Key: hir.AnyType{}, Value: hir.AnyType{}}}
	}
	key, err := a.check(env, v.Key, mt.Key)
	if err != nil {
		return nil, nil, err
	}
	v.ValueType = mt.Value
	thenEnv := env.With(v.ValueName, v.ValueType)
	then, thenType, err := a.synth(thenEnv, v.Then)
	if err != nil {
		return nil, nil, err
	}
	els, elseType, err := a.synth(env, v.Else)
	if err != nil {
		return nil, nil, err
	}
	result := Canonicalize(a.ctx, &hir.UnionType{LHS: thenType, RHS: elseType})
	if then, err = a.coerceTo(then, thenType, result); err != nil {
		return nil, nil, err
	}
	if els, err = a.coerceTo(els, elseType, result); err != nil {
		return nil, nil, err
	}
	v.Map, v.Key, v.Then, v.Else, v.Type_ = m, key, then, els, result
	return v, result, nil
}

func (a *analyzer) synthIfType(env Env, v *hir.IfType) (hir.Expr, hir.Type, error) {
	arg, argType, err := a.synth(env, v.Argument)
	if err != nil {
		return nil, nil, err
	}
	v.ArgumentType = argType

	var branchTypes []hir.Type
	covered := hir.Type(hir.NoneType{})
	for _, branch := range v.Branches {
		branchEnv := env.With(v.ArgumentName, branch.Type)
		then, thenType, err := a.synth(branchEnv, branch.Then)
		if err != nil {
			return nil, nil, err
		}
		branch.Then = then
		branchTypes = append(branchTypes, thenType)
		covered = Canonicalize(a.ctx, &hir.UnionType{LHS: covered, RHS: branch.Type})
	}

	if v.Else != nil {
		v.ElseType = Difference(a.ctx, argType, covered)
		elseEnv := env.With(v.ArgumentName, v.ElseType)
		els, elseType, err := a.synth(elseEnv, v.Else)
		if err != nil {
			return nil, nil, err
		}
		v.Else = els
		branchTypes = append(branchTypes, elseType)
	}

	result := branchTypes[0]
	for _, t := range branchTypes[1:] {
		result = Canonicalize(a.ctx, &hir.UnionType{LHS: result, RHS: t})
	}
	v.Argument, v.Type_ = arg, result
	return v, result, nil
}

func (a *analyzer) synthRecordConstruction(env Env, v *hir.RecordConstruction) (hir.Expr, hir.Type, error) {
	fields, ok := a.ctx.Lookup(v.TypeName)
	if !ok {
		return nil, nil, &diag.RecordNotFoundError{Name: v.TypeName, Pos: v.Pos_}
	}
	for _, f := range fields {
		value, ok := v.Fields[f.Name]
		if !ok {
			continue
		}
		checked, err := a.check(env, value, f.Type)
		if err != nil {
			return nil, nil, err
		}
		v.Fields[f.Name] = checked
	}
	return v, &hir.RecordType{Name: v.TypeName}, nil
}

func (a *analyzer) synthRecordUpdate(env Env, v *hir.RecordUpdate) (hir.Expr, hir.Type, error) {
	rec, recType, err := a.synth(env, v.Record)
	if err != nil {
		return nil, nil, err
	}
	rt, ok := Canonicalize(a.ctx, recType).(*hir.RecordType)
	if !ok {
		return nil, nil, &diag.RecordExpectedError{Pos: v.Pos_}
	}
	fields, ok := a.ctx.Lookup(rt.Name)
	if !ok {
		return nil, nil, &diag.RecordNotFoundError{Name: rt.Name, Pos: v.Pos_}
	}
	for _, f := range fields {
		value, ok := v.Fields[f.Name]
		if !ok {
			continue
		}
		checked, err := a.check(env, value, f.Type)
		if err != nil {
			return nil, nil, err
		}
		v.Fields[f.Name] = checked
	}
	v.Record, v.Type_ = rec, rt
	return v, rt, nil
}

func (a *analyzer) synthRecordField(env Env, v *hir.RecordField) (hir.Expr, hir.Type, error) {
	rec, recType, err := a.synth(env, v.Record)
	if err != nil {
		return nil, nil, err
	}
	rt, ok := Canonicalize(a.ctx, recType).(*hir.RecordType)
	if !ok {
		return nil, nil, &diag.RecordExpectedError{Pos: v.Pos_}
	}
	fields, ok := a.ctx.Lookup(rt.Name)
	if !ok {
		return nil, nil, &diag.RecordNotFoundError{Name: rt.Name, Pos: v.Pos_}
	}
	for _, f := range fields {
		if f.Name == v.Name {
			v.Record, v.Type_ = rec, f.Type
			return v, f.Type, nil
		}
	}
	return nil, nil, &diag.RecordNotFoundError{Name: v.Name, Pos: v.Pos_}
}

func (a *analyzer) synthListLit(env Env, v *hir.ListLit) (hir.Expr, hir.Type, error) {
	var elementType hir.Type = hir.NoneType{}
	for i, el := range v.Elements {
		value, vt, err := a.synth(env, el.Value)
		if err != nil {
			return nil, nil, err
		}
		if el.Splice {
			lt, ok := Canonicalize(a.ctx, vt).(*hir.ListType)
			if !ok {
				return nil, nil, &diag.TypesNotMatchedError{LHSPos: value.Position(), RHSPos: value.Position(), LHS: vt, RHS: &hir.ListType{Element: hir.AnyType{}}}
			}
			vt = lt.Element
		}
		el.Value = value
		elementType = Canonicalize(a.ctx, &hir.UnionType{LHS: elementType, RHS: vt})
		_ = i
	}
	v.Type_ = &hir.ListType{Element: elementType}
	return v, v.Type_, nil
}

func (a *analyzer) synthMapLit(env Env, v *hir.MapLit) (hir.Expr, hir.Type, error) {
	var keyType, valueType hir.Type = hir.NoneType{}, hir.NoneType{}
	for _, e := range v.Entries {
		k, kt, err := a.synth(env, e.Key)
		if err != nil {
			return nil, nil, err
		}
		val, vt, err := a.synth(env, e.Value)
		if err != nil {
			return nil, nil, err
		}
		e.Key, e.Value = k, val
		keyType = Canonicalize(a.ctx, &hir.UnionType{LHS: keyType, RHS: kt})
		valueType = Canonicalize(a.ctx, &hir.UnionType{LHS: valueType, RHS: vt})
	}
	v.Type_ = &hir.MapType{Key: keyType, Value: valueType}
	return v, v.Type_, nil
}

func (a *analyzer) synthListComprehension(env Env, v *hir.ListComprehension) (hir.Expr, hir.Type, error) {
	branchEnv := env
	for _, b := range v.Branches {
		it, itType, err := a.synth(branchEnv, b.Iteratee)
		if err != nil {
			return nil, nil, err
		}
		lt, ok := Canonicalize(a.ctx, itType).(*hir.ListType)
		if !ok {
			return nil, nil, &diag.TypesNotMatchedError{LHSPos: it.Position(), RHSPos: it.Position(), LHS: itType, RHS: &hir.ListType{Element: hir.AnyType{}}}
		}
		b.Iteratee = it
		b.NameTypes = make([]hir.Type, len(b.Names))
		for i, n := range b.Names {
			b.NameTypes[i] = lt.Element
			branchEnv = branchEnv.With(n, lt.Element)
		}
	}
	if v.Condition != nil {
		cond, err := a.check(branchEnv, v.Condition, hir.BooleanType{})
		if err != nil {
			return nil, nil, err
		}
		v.Condition = cond
	}
	element, elementType, err := a.synth(branchEnv, v.Element)
	if err != nil {
		return nil, nil, err
	}
	v.Element, v.Type_ = element, &hir.ListType{Element: elementType}
	return v, v.Type_, nil
}

// synthTryOperation validates placement (the enclosing function's
// result type must admit Error) and synthesizes the narrowed,
// non-error operand type.
func (a *analyzer) synthTryOperation(env Env, v *hir.TryOperation) (hir.Expr, hir.Type, error) {
	operand, operandType, err := a.synth(env, v.Operand)
	if err != nil {
		return nil, nil, err
	}
	if a.resultType == nil || !Subsumes(a.ctx, a.ctx.ErrorType, a.resultType) {
		return nil, nil, &diag.TypesNotMatchedError{LHSPos: v.Pos_, RHSPos: v.Pos_, LHS: a.ctx.ErrorType, RHS: a.resultType}
	}
	narrowed := Difference(a.ctx, operandType, a.ctx.ErrorType)
	v.Operand, v.Type_ = operand, narrowed
	return v, narrowed, nil
}

func (a *analyzer) synthBlock(env Env, v *hir.Block) (hir.Expr, hir.Type, error) {
	bodyEnv := env
	for _, stmt := range v.Statements {
		var value hir.Expr
		var valueType hir.Type
		var err error
		if stmt.Type != nil {
			value, err = a.check(bodyEnv, stmt.Value, stmt.Type)
			valueType = stmt.Type
		} else {
			value, valueType, err = a.synth(bodyEnv, stmt.Value)
		}
		if err != nil {
			return nil, nil, err
		}
		if stmt.Name == "" {
			if Subsumes(a.ctx, a.ctx.ErrorType, valueType) {
				return nil, nil, &diag.TypesNotMatchedError{LHSPos: value.Position(), RHSPos: value.Position(), LHS: valueType, RHS: hir.NoneType{}}
			}
		} else {
			bodyEnv = bodyEnv.With(stmt.Name, valueType)
		}
		stmt.Value, stmt.Type = value, valueType
	}
	result, resultType, err := a.synth(bodyEnv, v.Result)
	if err != nil {
		return nil, nil, err
	}
	v.Result = result
	return v, resultType, nil
}
