package hirmir

import (
	"fmt"

	"github.com/lucid-lang/lucidc/internal/hir"
	"github.com/lucid-lang/lucidc/internal/mir"
	"github.com/lucid-lang/lucidc/internal/mirpass"
	"github.com/lucid-lang/lucidc/internal/types"
)

func callPrelude(name string, args []mir.Expr, pos mir.Pos) mir.Expr {
	return &mir.FunctionApplication{Function: &mir.Variable{Name: name, Pos_: pos}, Arguments: args, Pos_: pos}
}

// lowerLambdaExpr turns a lambda appearing in expression position into
// a LetRecursive binding a synthetic name, then referencing it —
// the empty environment is filled later by internal/mirpass.
func (l *Lowerer) lowerLambdaExpr(v *hir.Lambda) (mir.Expr, error) {
	name := fmt.Sprintf("$lambda_%p", v)
	fn, err := l.lowerFunctionDefinition(name, v, false)
	if err != nil {
		return nil, err
	}
	return &mir.LetRecursive{
		Function: fn,
		Body:     &mir.Variable{Name: name, Type: l.LowerType(v.FunctionType_), Pos_: v.Pos_},
		Pos_:     v.Pos_,
	}, nil
}

// lowerFunctionDefinition lowers a lambda's arguments and body into an
// mir.FunctionDefinition. Thunk is set for zero-argument functions.
func (l *Lowerer) lowerFunctionDefinition(name string, v *hir.Lambda, public bool) (*mir.FunctionDefinition, error) {
	args := make([]*mir.EnvironmentEntry, len(v.Arguments))
	for i, a := range v.Arguments {
		args[i] = &mir.EnvironmentEntry{Name: a.Name, Type: l.LowerType(a.Type)}
	}
	body, err := l.LowerExpr(v.Body)
	if err != nil {
		return nil, err
	}
	return &mir.FunctionDefinition{
		Name:       name,
		Arguments:  args,
		Body:       body,
		ResultType: l.LowerType(v.ResultType),
		Public:     public,
		Thunk:      len(args) == 0,
		Pos:        v.Pos_,
	}, nil
}

// variantTypeIDs expands t's union members (after canonicalization)
// into the set of concrete MIR type ids a Case alternative must match
// to cover every value of t.
func (l *Lowerer) variantTypeIDs(t hir.Type) []string {
	members := hir.UnionMembers(types.Canonicalize(l.Ctx, t))
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = mirpass.TypeID(l.LowerType(m))
	}
	return ids
}

func (l *Lowerer) lowerIfType(v *hir.IfType) (mir.Expr, error) {
	argument, err := l.LowerExpr(v.Argument)
	if err != nil {
		return nil, err
	}
	alternatives := make([]*mir.CaseAlternative, 0, len(v.Branches))
	for _, branch := range v.Branches {
		then, err := l.LowerExpr(branch.Then)
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, &mir.CaseAlternative{
			VariantTypeIDs: l.variantTypeIDs(branch.Type),
			Name:           v.ArgumentName,
			BoundType:      l.LowerType(branch.Type),
			Body:           then,
		})
	}
	var def mir.Expr
	if v.Else != nil {
		def, err = l.LowerExpr(v.Else)
		if err != nil {
			return nil, err
		}
	}
	return &mir.Case{Argument: argument, Alternatives: alternatives, Default: def, Pos_: v.Pos_}, nil
}

// lowerIfList calls the prelude's deconstruct function and cases over
// its Empty-sentinel-or-pair result, binding FirstName/RestName from
// the pair's fields in the non-empty arm.
func (l *Lowerer) lowerIfList(v *hir.IfList) (mir.Expr, error) {
	argument, err := l.LowerExpr(v.Argument)
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

	elemType := l.LowerType(v.FirstType)
	restType := l.LowerType(v.RestType)
	pairName := mirpass.ConcreteListName(mirpass.TypeID(elemType)) + "_pair"
	l.registerSpecialization(&mir.RecordDefinition{
		Name:   pairName,
		Fields: []*mir.FieldType{{Name: "first", Type: elemType}, {Name: "rest", Type: restType}},
	})

	deconstructed := callPrelude(l.Config.ListDeconstructFunction, []mir.Expr{argument}, v.Pos_)
	pairVar := fmt.Sprintf("$pair_%p", v)
	thenBody := &mir.Let{
		Name: v.FirstName, Type: elemType,
		Bound: &mir.RecordField{Record: &mir.Variable{Name: pairVar, Type: mir.RecordType{Name: pairName}, Pos_: v.Pos_}, Name: "first", Type: elemType, Pos_: v.Pos_},
		Body: &mir.Let{
			Name: v.RestName, Type: restType,
			Bound: &mir.RecordField{Record: &mir.Variable{Name: pairVar, Type: mir.RecordType{Name: pairName}, Pos_: v.Pos_}, Name: "rest", Type: restType, Pos_: v.Pos_},
			Body:  then,
			Pos_:  v.Pos_,
		},
		Pos_: v.Pos_,
	}

	return &mir.Case{
		Argument: deconstructed,
		Alternatives: []*mir.CaseAlternative{
			{VariantTypeIDs: []string{"Empty"}, Name: "$_", BoundType: mir.NoneType{}, Body: els},
			{VariantTypeIDs: []string{mirpass.TypeID(mir.RecordType{Name: pairName})}, Name: pairVar, BoundType: mir.RecordType{Name: pairName}, Body: thenBody},
		},
		Pos_: v.Pos_,
	}, nil
}

// lowerIfMap calls the prelude's get function and cases over its
// Empty-sentinel-or-value result.
func (l *Lowerer) lowerIfMap(v *hir.IfMap) (mir.Expr, error) {
	m, err := l.LowerExpr(v.Map)
	if err != nil {
		return nil, err
	}
	key, err := l.LowerExpr(v.Key)
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

	valueType := l.LowerType(v.ValueType)
	got := callPrelude(l.Config.MapGetFunction, []mir.Expr{m, key}, v.Pos_)

	return &mir.Case{
		Argument: got,
		Alternatives: []*mir.CaseAlternative{
			{VariantTypeIDs: []string{"Empty"}, Name: "$_", BoundType: mir.NoneType{}, Body: els},
			{VariantTypeIDs: []string{mirpass.TypeID(valueType)}, Name: v.ValueName, BoundType: valueType, Body: then},
		},
		Pos_: v.Pos_,
	}, nil
}

func (l *Lowerer) lowerRecordConstruction(v *hir.RecordConstruction) (mir.Expr, error) {
	fields := make([]*mir.RecordFieldValue, 0, len(v.Order))
	for _, name := range v.Order {
		value, err := l.LowerExpr(v.Fields[name])
		if err != nil {
			return nil, err
		}
		fields = append(fields, &mir.RecordFieldValue{Name: name, Value: value})
	}
	return &mir.Record{TypeName: v.TypeName, Fields: fields, Pos_: v.Pos_}, nil
}

// lowerRecordUpdate binds the source record to a synthetic name so
// reading its unchanged fields never re-evaluates it, then builds a
// fresh Record reading those fields back and overriding the rest.
func (l *Lowerer) lowerRecordUpdate(v *hir.RecordUpdate) (mir.Expr, error) {
	source, err := l.LowerExpr(v.Record)
	if err != nil {
		return nil, err
	}
	recordType, ok := types.Canonicalize(l.Ctx, v.Type_).(*hir.RecordType)
	if !ok {
		return nil, fmt.Errorf("hirmir: record update target is not a record type")
	}
	defs, _ := l.Ctx.Lookup(recordType.Name)
	sourceName := fmt.Sprintf("$update_%p", v)
	sourceMIRType := l.LowerType(v.Type_)

	fields := make([]*mir.RecordFieldValue, 0, len(defs))
	for _, f := range defs {
		if override, ok := v.Fields[f.Name]; ok {
			value, err := l.LowerExpr(override)
			if err != nil {
				return nil, err
			}
			fields = append(fields, &mir.RecordFieldValue{Name: f.Name, Value: value})
			continue
		}
		fields = append(fields, &mir.RecordFieldValue{
			Name: f.Name,
			Value: &mir.RecordField{
				Record: &mir.Variable{Name: sourceName, Type: sourceMIRType, Pos_: v.Pos_},
				Name:   f.Name,
				Type:   l.LowerType(f.Type),
				Pos_:   v.Pos_,
			},
		})
	}
	rec := &mir.Record{TypeName: recordType.Name, Fields: fields, Pos_: v.Pos_}
	return &mir.Let{Name: sourceName, Type: sourceMIRType, Bound: source, Body: rec, Pos_: v.Pos_}, nil
}

func (l *Lowerer) lowerListLit(v *hir.ListLit) (mir.Expr, error) {
	result := callPrelude(l.Config.ListEmptyFunction, nil, v.Pos_)
	for i := len(v.Elements) - 1; i >= 0; i-- {
		el := v.Elements[i]
		value, err := l.LowerExpr(el.Value)
		if err != nil {
			return nil, err
		}
		if el.Splice {
			result = callPrelude(l.Config.ListConcatenateFunction, []mir.Expr{value, result}, v.Pos_)
		} else {
			result = callPrelude(l.Config.ListPrependFunction, []mir.Expr{value, result}, v.Pos_)
		}
	}
	return result, nil
}

func (l *Lowerer) lowerMapLit(v *hir.MapLit) (mir.Expr, error) {
	result := callPrelude(l.Config.MapEmptyFunction, nil, v.Pos_)
	for i := len(v.Entries) - 1; i >= 0; i-- {
		e := v.Entries[i]
		key, err := l.LowerExpr(e.Key)
		if err != nil {
			return nil, err
		}
		value, err := l.LowerExpr(e.Value)
		if err != nil {
			return nil, err
		}
		result = callPrelude(l.Config.MapInsertFunction, []mir.Expr{key, value, result}, v.Pos_)
	}
	return result, nil
}

// lowerListComprehension folds each generator branch, innermost
// first, into a synthetic accumulator function applied through the
// prelude's named iteration primitive, with the optional filter
// condition guarding whether the element is prepended.
func (l *Lowerer) lowerListComprehension(v *hir.ListComprehension) (mir.Expr, error) {
	resultType := l.LowerType(v.Type_)
	element, err := l.LowerExpr(v.Element)
	if err != nil {
		return nil, err
	}
	const accName = "$acc"
	body := callPrelude(l.Config.ListPrependFunction, []mir.Expr{element, &mir.Variable{Name: accName, Type: resultType, Pos_: v.Pos_}}, v.Pos_)

	if v.Condition != nil {
		condition, err := l.LowerExpr(v.Condition)
		if err != nil {
			return nil, err
		}
		body = &mir.If{Condition: condition, Then: body, Else: &mir.Variable{Name: accName, Type: resultType, Pos_: v.Pos_}, Pos_: v.Pos_}
	}

	for i := len(v.Branches) - 1; i >= 0; i-- {
		branch := v.Branches[i]
		iteratee, err := l.LowerExpr(branch.Iteratee)
		if err != nil {
			return nil, err
		}
		fnArgs := []*mir.EnvironmentEntry{{Name: accName, Type: resultType}}
		for j, name := range branch.Names {
			fnArgs = append(fnArgs, &mir.EnvironmentEntry{Name: name, Type: l.LowerType(branch.NameTypes[j])})
		}
		fnName := fmt.Sprintf("$fold_%p", branch)
		fold := &mir.FunctionDefinition{Name: fnName, Arguments: fnArgs, Body: body, ResultType: resultType, Pos: v.Pos_}
		call := callPrelude(l.Config.ListTypeIteration, []mir.Expr{
			iteratee,
			&mir.Variable{Name: accName, Type: resultType, Pos_: v.Pos_},
			&mir.Variable{Name: fnName, Pos_: v.Pos_},
		}, v.Pos_)
		body = &mir.LetRecursive{Function: fold, Body: call, Pos_: v.Pos_}
	}

	return &mir.Let{Name: accName, Type: resultType, Bound: callPrelude(l.Config.ListEmptyFunction, nil, v.Pos_), Body: body, Pos_: v.Pos_}, nil
}
