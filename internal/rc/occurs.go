package rc

import "github.com/lucid-lang/lucidc/internal/mir"

// countOccurrences counts how many times name is read in e, stopping
// at any nested binder that rebinds name (a shadowing definition owns
// every occurrence under it instead).
func countOccurrences(name string, e mir.Expr) int {
	n := 0
	walkOccurrences(name, e, &n)
	return n
}

func walkOccurrences(name string, e mir.Expr, n *int) {
	switch v := e.(type) {
	case nil:
		return
	case *mir.Variable:
		if v.Name == name {
			*n++
		}
	case *mir.ArithmeticOperation:
		walkOccurrences(name, v.LHS, n)
		walkOccurrences(name, v.RHS, n)
	case *mir.ComparisonOperation:
		walkOccurrences(name, v.LHS, n)
		walkOccurrences(name, v.RHS, n)
	case *mir.If:
		walkOccurrences(name, v.Condition, n)
		walkOccurrences(name, v.Then, n)
		walkOccurrences(name, v.Else, n)
	case *mir.Case:
		walkOccurrences(name, v.Argument, n)
		for _, alt := range v.Alternatives {
			if alt.Name == name {
				continue
			}
			walkOccurrences(name, alt.Body, n)
		}
		if v.Default != nil {
			walkOccurrences(name, v.Default, n)
		}
	case *mir.Let:
		walkOccurrences(name, v.Bound, n)
		if v.Name != name {
			walkOccurrences(name, v.Body, n)
		}
	case *mir.LetRecursive:
		if v.Function.Name != name {
			if !boundByFunction(v.Function, name) {
				walkOccurrences(name, v.Function.Body, n)
			}
			walkOccurrences(name, v.Body, n)
		}
	case *mir.FunctionApplication:
		walkOccurrences(name, v.Function, n)
		for _, arg := range v.Arguments {
			walkOccurrences(name, arg, n)
		}
	case *mir.Record:
		for _, f := range v.Fields {
			walkOccurrences(name, f.Value, n)
		}
	case *mir.RecordField:
		walkOccurrences(name, v.Record, n)
	case *mir.Variant:
		walkOccurrences(name, v.Payload, n)
	case *mir.TryOperation:
		walkOccurrences(name, v.Operand, n)
		if v.Name != name {
			walkOccurrences(name, v.Then, n)
		}
	case *mir.CloneVariables:
		if _, ok := v.Names[name]; ok {
			*n++
		}
		walkOccurrences(name, v.Body, n)
	case *mir.DropVariables:
		walkOccurrences(name, v.Body, n)
	case *mir.ReusedRecord:
		walkOccurrences(name, v.Record, n)
	default:
		// Literals carry no variables.
	}
}

// usedNames returns the subset of candidates referenced anywhere in e.
func usedNames(candidates map[string]mir.Type, e mir.Expr) map[string]bool {
	used := map[string]bool{}
	for name := range candidates {
		if countOccurrences(name, e) > 0 {
			used[name] = true
		}
	}
	return used
}
