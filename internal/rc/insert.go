package rc

import "github.com/lucid-lang/lucidc/internal/mir"

// InsertReferenceCounts rewrites every function body in mod so that
// each ref-counted binder is consumed exactly once along every
// control-flow path, then validates the result.
func InsertReferenceCounts(mod *mir.Module, ctx *Context) error {
	for _, fn := range mod.FunctionDefinitions {
		if err := insertInFunction(fn, ctx); err != nil {
			return err
		}
	}
	return nil
}

func insertInFunction(fn *mir.FunctionDefinition, ctx *Context) error {
	live := map[string]mir.Type{}
	for _, a := range fn.Arguments {
		if ctx.IsRefCounted(a.Type) {
			live[a.Name] = a.Type
		}
	}
	for _, e := range fn.Environment {
		if ctx.IsRefCounted(e.Type) {
			live[e.Name] = e.Type
		}
	}

	unused := map[string]mir.Type{}
	for name, t := range live {
		if countOccurrences(name, fn.Body) == 0 {
			unused[name] = t
		}
	}

	body := rewrite(fn.Body, ctx, live)
	if len(unused) > 0 {
		body = &mir.DropVariables{Names: unused, Body: body}
	}
	fn.Body = body

	return ValidateReferenceCounts(fn, ctx)
}

// rewrite recursively inserts clone/drop markers. live is the set of
// ref-counted names bound by an enclosing scope and still owned at
// this point; it drives the branch-exhaustiveness rule (every live
// name must be consumed or explicitly dropped down each exclusive
// branch).
func rewrite(e mir.Expr, ctx *Context, live map[string]mir.Type) mir.Expr {
	switch v := e.(type) {
	case nil:
		return nil

	case *mir.If:
		cond := rewrite(v.Condition, ctx, live)
		then := sealBranch(v.Then, ctx, live)
		els := sealBranch(v.Else, ctx, live)
		return &mir.If{Condition: cond, Then: then, Else: els, Pos_: v.Pos_}

	case *mir.Case:
		argument := rewrite(v.Argument, ctx, live)
		alternatives := make([]*mir.CaseAlternative, len(v.Alternatives))
		for i, alt := range v.Alternatives {
			alternatives[i] = &mir.CaseAlternative{
				VariantTypeIDs: alt.VariantTypeIDs,
				Name:           alt.Name,
				BoundType:      alt.BoundType,
				Body:           sealCaseAlternative(alt, ctx, live),
			}
		}
		var def mir.Expr
		if v.Default != nil {
			def = sealBranch(v.Default, ctx, live)
		}
		return &mir.Case{Argument: argument, Alternatives: alternatives, Default: def, Pos_: v.Pos_}

	case *mir.Let:
		bound := rewrite(v.Bound, ctx, live)
		body := wrapBinder(v.Name, v.Type, v.Body, ctx, live)
		return &mir.Let{Name: v.Name, Type: v.Type, Bound: bound, Body: body, Pos_: v.Pos_}

	case *mir.LetRecursive:
		innerLive := map[string]mir.Type{}
		for k, t := range live {
			innerLive[k] = t
		}
		for _, arg := range v.Function.Arguments {
			if ctx.IsRefCounted(arg.Type) {
				innerLive[arg.Name] = arg.Type
			}
		}
		fnBody := rewrite(v.Function.Body, ctx, innerLive)
		fn := &mir.FunctionDefinition{
			Name:        v.Function.Name,
			Environment: v.Function.Environment,
			Arguments:   v.Function.Arguments,
			Body:        fnBody,
			ResultType:  v.Function.ResultType,
			Public:      v.Function.Public,
			Global:      v.Function.Global,
			Thunk:       v.Function.Thunk,
			Pos:         v.Function.Pos,
		}
		body := rewrite(v.Body, ctx, live)
		return &mir.LetRecursive{Function: fn, Body: body, Pos_: v.Pos_}

	case *mir.TryOperation:
		operand := rewrite(v.Operand, ctx, live)
		then := wrapBinder(v.Name, v.Type, v.Then, ctx, live)
		return &mir.TryOperation{Operand: operand, Name: v.Name, Type: v.Type, Then: then, Pos_: v.Pos_}

	case *mir.ArithmeticOperation:
		return &mir.ArithmeticOperation{Operator: v.Operator, LHS: rewrite(v.LHS, ctx, live), RHS: rewrite(v.RHS, ctx, live), Pos_: v.Pos_}

	case *mir.ComparisonOperation:
		return &mir.ComparisonOperation{Operator: v.Operator, LHS: rewrite(v.LHS, ctx, live), RHS: rewrite(v.RHS, ctx, live), Pos_: v.Pos_}

	case *mir.FunctionApplication:
		args := make([]mir.Expr, len(v.Arguments))
		for i, a := range v.Arguments {
			args[i] = rewrite(a, ctx, live)
		}
		return &mir.FunctionApplication{Function: rewrite(v.Function, ctx, live), Arguments: args, Pos_: v.Pos_}

	case *mir.Record:
		fields := make([]*mir.RecordFieldValue, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = &mir.RecordFieldValue{Name: f.Name, Value: rewrite(f.Value, ctx, live)}
		}
		return &mir.Record{TypeName: v.TypeName, Fields: fields, Pos_: v.Pos_}

	case *mir.RecordField:
		return &mir.RecordField{Record: rewrite(v.Record, ctx, live), Name: v.Name, Type: v.Type, Pos_: v.Pos_}

	case *mir.Variant:
		return &mir.Variant{TypeID: v.TypeID, Payload: rewrite(v.Payload, ctx, live), Pos_: v.Pos_}

	case *mir.CloneVariables:
		return &mir.CloneVariables{Names: v.Names, Body: rewrite(v.Body, ctx, live)}

	case *mir.DropVariables:
		return &mir.DropVariables{Names: v.Names, Body: rewrite(v.Body, ctx, live)}

	case *mir.ReusedRecord:
		rec := rewrite(v.Record, ctx, live)
		record, _ := rec.(*mir.Record)
		return &mir.ReusedRecord{ID: v.ID, Record: record, Pos_: v.Pos_}

	default:
		// Literals and Variable occurrences carry nothing to rewrite.
		return e
	}
}

// wrapBinder applies the clone/drop decision for a single ref-counted
// binder, using its occurrence count in the still-unrewritten body,
// then recurses into and returns the rewritten body, wrapped.
func wrapBinder(name string, t mir.Type, body mir.Expr, ctx *Context, live map[string]mir.Type) mir.Expr {
	if !ctx.IsRefCounted(t) {
		return rewrite(body, ctx, live)
	}
	total := maxOccurrences(name, body)

	innerLive := map[string]mir.Type{}
	for k, v := range live {
		innerLive[k] = v
	}
	innerLive[name] = t

	rewritten := rewrite(body, ctx, innerLive)
	switch {
	case total == 0:
		return &mir.DropVariables{Names: map[string]mir.Type{name: t}, Body: rewritten}
	case total > 1:
		return &mir.CloneVariables{Names: map[string]mir.Type{name: t}, Body: rewritten}
	default:
		return rewritten
	}
}

// sealBranch drops every live name unused in this exclusive branch,
// then recurses. Only one of a set of exclusive branches executes, so
// no clone is ever needed between them — only the rule that every
// live name is consumed along every path.
func sealBranch(branch mir.Expr, ctx *Context, live map[string]mir.Type) mir.Expr {
	unused := unusedIn(branch, live)
	rewritten := rewrite(branch, ctx, live)
	if len(unused) > 0 {
		return &mir.DropVariables{Names: unused, Body: rewritten}
	}
	return rewritten
}

// sealCaseAlternative is sealBranch plus the alternative's own bound
// name, treated like any other binder introduced at this scope.
func sealCaseAlternative(alt *mir.CaseAlternative, ctx *Context, live map[string]mir.Type) mir.Expr {
	if !ctx.IsRefCounted(alt.BoundType) {
		return sealBranch(alt.Body, ctx, live)
	}
	total := maxOccurrences(alt.Name, alt.Body)
	unused := unusedIn(alt.Body, live)

	innerLive := map[string]mir.Type{}
	for k, v := range live {
		innerLive[k] = v
	}
	innerLive[alt.Name] = alt.BoundType

	rewritten := rewrite(alt.Body, ctx, innerLive)
	if total == 0 {
		rewritten = &mir.DropVariables{Names: map[string]mir.Type{alt.Name: alt.BoundType}, Body: rewritten}
	} else if total > 1 {
		rewritten = &mir.CloneVariables{Names: map[string]mir.Type{alt.Name: alt.BoundType}, Body: rewritten}
	}
	if len(unused) > 0 {
		rewritten = &mir.DropVariables{Names: unused, Body: rewritten}
	}
	return rewritten
}

func unusedIn(branch mir.Expr, live map[string]mir.Type) map[string]mir.Type {
	unused := map[string]mir.Type{}
	for name, t := range live {
		if countOccurrences(name, branch) == 0 {
			unused[name] = t
		}
	}
	return unused
}
