package types

import "github.com/lucid-lang/lucidc/internal/hir"

// Analyze runs inference and checking over every function in mod,
// returning a module in which every inferable type slot is filled and
// implicit subtyping has been made explicit through TypeCoercion
// nodes. Analyze also validates try-operation placement and record
// inhabitability. It stops at the first error, matching the core's
// synchronous, no-recovery error propagation.
func Analyze(ctx *Context, mod *hir.Module) (*hir.Module, error) {
	if err := ValidateImpossibleRecords(ctx, mod); err != nil {
		return nil, err
	}

	out := &hir.Module{
		Path:           mod.Path,
		RecordDefs:     mod.RecordDefs,
		TypeAliases:    mod.TypeAliases,
		ForeignImports: mod.ForeignImports,
	}
	for _, fn := range mod.Functions {
		analyzed, err := analyzeFunction(ctx, fn)
		if err != nil {
			return nil, err
		}
		out.Functions = append(out.Functions, analyzed)
	}
	return out, nil
}

func analyzeFunction(ctx *Context, fn *hir.FunctionDefinition) (*hir.FunctionDefinition, error) {
	a := &analyzer{ctx: ctx}
	if fn.Lambda.ResultType != nil {
		a.resultType = fn.Lambda.ResultType
	}
	lambda, err := a.checkLambda(Env{}, fn.Lambda)
	if err != nil {
		return nil, err
	}
	return &hir.FunctionDefinition{
		Name: fn.Name, OriginalName: fn.OriginalName, Public: fn.Public,
		Foreign: fn.Foreign, Lambda: lambda, Pos: fn.Pos,
	}, nil
}

// analyzer threads per-function state (the declared result type, used
// by try-operation validation) through the recursive inference walk.
type analyzer struct {
	ctx        *Context
	resultType hir.Type
}
