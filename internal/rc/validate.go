package rc

import (
	"sort"

	"github.com/lucid-lang/lucidc/internal/diag"
	"github.com/lucid-lang/lucidc/internal/mir"
)

// ValidateReferenceCounts asserts that, after insertion, every
// ref-counted name bound in fn nets to exactly zero along every
// control-flow path: exactly one of {moved away, explicitly dropped,
// explicitly cloned then consumed} per path, never zero, never more
// than one net use.
func ValidateReferenceCounts(fn *mir.FunctionDefinition, ctx *Context) error {
	var bad []string
	check := func(name string, t mir.Type, scope mir.Expr) {
		if ctx.IsRefCounted(t) && !netsToZero(name, t, scope, ctx) {
			bad = append(bad, name)
		}
	}

	for _, a := range fn.Arguments {
		check(a.Name, a.Type, fn.Body)
	}
	for _, e := range fn.Environment {
		check(e.Name, e.Type, fn.Body)
	}
	walkBinders(fn.Body, check)

	if len(bad) > 0 {
		sort.Strings(bad)
		return &diag.InvalidReferenceCountError{Names: bad}
	}
	return nil
}

// walkBinders visits every Let, LetRecursive-argument, Case-alternative,
// and TryOperation binder introduced anywhere within e and calls check
// with the binder's name, type, and the body scope it owns — the same
// scopes insertInFunction's rewrite wraps in clone/drop markers, so the
// validator covers every binder class the insertion pass does, not
// just a function's own arguments and environment.
func walkBinders(e mir.Expr, check func(name string, t mir.Type, scope mir.Expr)) {
	switch v := e.(type) {
	case nil:
		return
	case *mir.If:
		walkBinders(v.Condition, check)
		walkBinders(v.Then, check)
		walkBinders(v.Else, check)
	case *mir.Case:
		walkBinders(v.Argument, check)
		for _, alt := range v.Alternatives {
			check(alt.Name, alt.BoundType, alt.Body)
			walkBinders(alt.Body, check)
		}
		walkBinders(v.Default, check)
	case *mir.Let:
		check(v.Name, v.Type, v.Body)
		walkBinders(v.Bound, check)
		walkBinders(v.Body, check)
	case *mir.LetRecursive:
		for _, arg := range v.Function.Arguments {
			check(arg.Name, arg.Type, v.Function.Body)
		}
		walkBinders(v.Function.Body, check)
		walkBinders(v.Body, check)
	case *mir.TryOperation:
		check(v.Name, v.Type, v.Then)
		walkBinders(v.Operand, check)
		walkBinders(v.Then, check)
	case *mir.ArithmeticOperation:
		walkBinders(v.LHS, check)
		walkBinders(v.RHS, check)
	case *mir.ComparisonOperation:
		walkBinders(v.LHS, check)
		walkBinders(v.RHS, check)
	case *mir.FunctionApplication:
		walkBinders(v.Function, check)
		for _, a := range v.Arguments {
			walkBinders(a, check)
		}
	case *mir.Record:
		for _, f := range v.Fields {
			walkBinders(f.Value, check)
		}
	case *mir.RecordField:
		walkBinders(v.Record, check)
	case *mir.Variant:
		walkBinders(v.Payload, check)
	case *mir.CloneVariables:
		walkBinders(v.Body, check)
	case *mir.DropVariables:
		walkBinders(v.Body, check)
	case *mir.ReusedRecord:
		if v.Record != nil {
			walkBinders(v.Record, check)
		}
	}
}

// netsToZero reports whether every execution path through e consumes
// name exactly once: a single move, or a drop/clone marker explicitly
// naming it, accounting for the clone/drop markers the insertion pass
// places immediately around the scope that introduced or owns name.
func netsToZero(name string, t mir.Type, e mir.Expr, ctx *Context) bool {
	switch v := e.(type) {
	case nil:
		return false
	case *mir.DropVariables:
		if _, ok := v.Names[name]; ok {
			return true
		}
		return netsToZero(name, t, v.Body, ctx)
	case *mir.CloneVariables:
		if _, ok := v.Names[name]; ok {
			return pathsAllUse(name, v.Body)
		}
		return netsToZero(name, t, v.Body, ctx)
	case *mir.If:
		return netsToZero(name, t, v.Then, ctx) && netsToZero(name, t, v.Else, ctx)
	case *mir.Case:
		for _, alt := range v.Alternatives {
			if alt.Name == name {
				continue
			}
			if !netsToZero(name, t, alt.Body, ctx) {
				return false
			}
		}
		if v.Default != nil {
			return netsToZero(name, t, v.Default, ctx)
		}
		return true
	case *mir.Let:
		if v.Name == name {
			return true
		}
		return netsToZero(name, t, v.Body, ctx)
	case *mir.LetRecursive:
		if v.Function.Name == name {
			return true
		}
		return netsToZero(name, t, v.Body, ctx)
	case *mir.TryOperation:
		if v.Name == name {
			return true
		}
		return netsToZero(name, t, v.Then, ctx)
	default:
		return countOccurrences(name, e) == 1
	}
}

func pathsAllUse(name string, e mir.Expr) bool {
	switch v := e.(type) {
	case *mir.If:
		return pathsAllUse(name, v.Then) && pathsAllUse(name, v.Else)
	case *mir.Case:
		for _, alt := range v.Alternatives {
			if alt.Name == name {
				continue
			}
			if !pathsAllUse(name, alt.Body) {
				return false
			}
		}
		if v.Default != nil {
			return pathsAllUse(name, v.Default)
		}
		return true
	default:
		return countOccurrences(name, e) >= 1
	}
}
