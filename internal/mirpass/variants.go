package mirpass

import "github.com/lucid-lang/lucidc/internal/mir"

// CollectVariantTypes walks every function body in mod and returns the
// distinct type ids ever packed into a Variant, deduplicated by
// canonical type id, so the backend can emit exactly one clone/drop
// function per payload shape.
func CollectVariantTypes(mod *mir.Module) []string {
	var ids []string
	for _, fn := range mod.FunctionDefinitions {
		walkVariants(fn.Body, &ids)
	}
	return DedupeTypeIDs(ids)
}

func walkVariants(e mir.Expr, ids *[]string) {
	switch v := e.(type) {
	case nil:
		return
	case *mir.Variant:
		*ids = append(*ids, v.TypeID)
		walkVariants(v.Payload, ids)
	case *mir.ArithmeticOperation:
		walkVariants(v.LHS, ids)
		walkVariants(v.RHS, ids)
	case *mir.ComparisonOperation:
		walkVariants(v.LHS, ids)
		walkVariants(v.RHS, ids)
	case *mir.If:
		walkVariants(v.Condition, ids)
		walkVariants(v.Then, ids)
		walkVariants(v.Else, ids)
	case *mir.Case:
		walkVariants(v.Argument, ids)
		for _, alt := range v.Alternatives {
			walkVariants(alt.Body, ids)
		}
		walkVariants(v.Default, ids)
	case *mir.Let:
		walkVariants(v.Bound, ids)
		walkVariants(v.Body, ids)
	case *mir.LetRecursive:
		walkVariants(v.Function.Body, ids)
		walkVariants(v.Body, ids)
	case *mir.FunctionApplication:
		walkVariants(v.Function, ids)
		for _, arg := range v.Arguments {
			walkVariants(arg, ids)
		}
	case *mir.Record:
		for _, f := range v.Fields {
			walkVariants(f.Value, ids)
		}
	case *mir.RecordField:
		walkVariants(v.Record, ids)
	case *mir.TryOperation:
		walkVariants(v.Operand, ids)
		walkVariants(v.Then, ids)
	case *mir.CloneVariables:
		walkVariants(v.Body, ids)
	case *mir.DropVariables:
		walkVariants(v.Body, ids)
	case *mir.ReusedRecord:
		walkVariants(v.Record, ids)
	default:
	}
}
