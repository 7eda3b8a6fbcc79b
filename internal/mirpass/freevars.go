package mirpass

import "github.com/lucid-lang/lucidc/internal/mir"

// ComputeFreeVariables returns the deterministically ordered set of
// variables used in fn's body but bound neither by its arguments nor
// by its own name (recursion through LetRecursive does not free the
// defined name). The result seeds fn.Environment.
func ComputeFreeVariables(fn *mir.FunctionDefinition) []*mir.EnvironmentEntry {
	bound := map[string]bool{fn.Name: true}
	for _, arg := range fn.Arguments {
		bound[arg.Name] = true
	}
	found := map[string]mir.Type{}
	var order []string
	walkFree(fn.Body, bound, found, &order)

	out := make([]*mir.EnvironmentEntry, len(order))
	for i, name := range order {
		out[i] = &mir.EnvironmentEntry{Name: name, Type: found[name]}
	}
	return out
}

func record(name string, t mir.Type, bound map[string]bool, found map[string]mir.Type, order *[]string) {
	if bound[name] {
		return
	}
	if _, ok := found[name]; ok {
		return
	}
	found[name] = t
	*order = append(*order, name)
}

func walkFree(e mir.Expr, bound map[string]bool, found map[string]mir.Type, order *[]string) {
	switch v := e.(type) {
	case nil:
		return
	case *mir.Variable:
		record(v.Name, v.Type, bound, found, order)
	case *mir.ArithmeticOperation:
		walkFree(v.LHS, bound, found, order)
		walkFree(v.RHS, bound, found, order)
	case *mir.ComparisonOperation:
		walkFree(v.LHS, bound, found, order)
		walkFree(v.RHS, bound, found, order)
	case *mir.If:
		walkFree(v.Condition, bound, found, order)
		walkFree(v.Then, bound, found, order)
		walkFree(v.Else, bound, found, order)
	case *mir.Case:
		walkFree(v.Argument, bound, found, order)
		for _, alt := range v.Alternatives {
			inner := withBound(bound, alt.Name)
			walkFree(alt.Body, inner, found, order)
		}
		if v.Default != nil {
			walkFree(v.Default, bound, found, order)
		}
	case *mir.Let:
		walkFree(v.Bound, bound, found, order)
		inner := withBound(bound, v.Name)
		walkFree(v.Body, inner, found, order)
	case *mir.LetRecursive:
		inner := withBound(bound, v.Function.Name)
		for _, entry := range ComputeFreeVariables(v.Function) {
			record(entry.Name, entry.Type, bound, found, order)
		}
		walkFree(v.Body, inner, found, order)
	case *mir.FunctionApplication:
		walkFree(v.Function, bound, found, order)
		for _, arg := range v.Arguments {
			walkFree(arg, bound, found, order)
		}
	case *mir.Record:
		for _, f := range v.Fields {
			walkFree(f.Value, bound, found, order)
		}
	case *mir.RecordField:
		walkFree(v.Record, bound, found, order)
	case *mir.Variant:
		walkFree(v.Payload, bound, found, order)
	case *mir.TryOperation:
		walkFree(v.Operand, bound, found, order)
		inner := withBound(bound, v.Name)
		walkFree(v.Then, inner, found, order)
	case *mir.CloneVariables:
		for name := range v.Names {
			record(name, v.Names[name], bound, found, order)
		}
		walkFree(v.Body, bound, found, order)
	case *mir.DropVariables:
		walkFree(v.Body, bound, found, order)
	case *mir.ReusedRecord:
		walkFree(v.Record, bound, found, order)
	default:
		// Literals carry no variables.
	}
}

func withBound(bound map[string]bool, name string) map[string]bool {
	out := make(map[string]bool, len(bound)+1)
	for k := range bound {
		out[k] = true
	}
	out[name] = true
	return out
}
