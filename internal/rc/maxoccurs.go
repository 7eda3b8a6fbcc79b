package rc

import "github.com/lucid-lang/lucidc/internal/mir"

// maxOccurrences bounds the number of times name is consumed along
// the single most demanding execution path through e: sequential
// siblings (operands, arguments, fields) add, while an If/Case's
// exclusive branches take the max of each other since only one ever
// runs. This is the quantity that decides whether a clone is needed
// at all — a variable split one-per-branch is still a single move on
// every path, even though its naive whole-subtree occurrence count is
// higher.
func maxOccurrences(name string, e mir.Expr) int {
	switch v := e.(type) {
	case nil:
		return 0
	case *mir.Variable:
		if v.Name == name {
			return 1
		}
		return 0
	case *mir.ArithmeticOperation:
		return maxOccurrences(name, v.LHS) + maxOccurrences(name, v.RHS)
	case *mir.ComparisonOperation:
		return maxOccurrences(name, v.LHS) + maxOccurrences(name, v.RHS)
	case *mir.If:
		return maxOccurrences(name, v.Condition) + maxInt(maxOccurrences(name, v.Then), maxOccurrences(name, v.Else))
	case *mir.Case:
		branchMax := 0
		for _, alt := range v.Alternatives {
			if alt.Name == name {
				continue
			}
			if m := maxOccurrences(name, alt.Body); m > branchMax {
				branchMax = m
			}
		}
		if v.Default != nil {
			if m := maxOccurrences(name, v.Default); m > branchMax {
				branchMax = m
			}
		}
		return maxOccurrences(name, v.Argument) + branchMax
	case *mir.Let:
		bodyCount := 0
		if v.Name != name {
			bodyCount = maxOccurrences(name, v.Body)
		}
		return maxOccurrences(name, v.Bound) + bodyCount
	case *mir.LetRecursive:
		if v.Function.Name == name {
			return maxOccurrences(name, v.Body)
		}
		capture := 0
		if !boundByFunction(v.Function, name) && countOccurrences(name, v.Function.Body) > 0 {
			capture = 1
		}
		return capture + maxOccurrences(name, v.Body)
	case *mir.FunctionApplication:
		total := maxOccurrences(name, v.Function)
		for _, a := range v.Arguments {
			total += maxOccurrences(name, a)
		}
		return total
	case *mir.Record:
		total := 0
		for _, f := range v.Fields {
			total += maxOccurrences(name, f.Value)
		}
		return total
	case *mir.RecordField:
		return maxOccurrences(name, v.Record)
	case *mir.Variant:
		return maxOccurrences(name, v.Payload)
	case *mir.TryOperation:
		total := maxOccurrences(name, v.Operand)
		if v.Name != name {
			total += maxOccurrences(name, v.Then)
		}
		return total
	case *mir.CloneVariables:
		n := 0
		if _, ok := v.Names[name]; ok {
			n = 1
		}
		return n + maxOccurrences(name, v.Body)
	case *mir.DropVariables:
		return maxOccurrences(name, v.Body)
	case *mir.ReusedRecord:
		return maxOccurrences(name, v.Record)
	default:
		return 0
	}
}

func boundByFunction(fn *mir.FunctionDefinition, name string) bool {
	for _, a := range fn.Arguments {
		if a.Name == name {
			return true
		}
	}
	return false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
