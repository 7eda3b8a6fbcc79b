package iface

import "github.com/lucid-lang/lucidc/internal/hir"

// Compile derives the public slice of an analyzed HIR module: public
// type definitions with external stripped, public aliases
// likewise, public function signatures with types extracted from
// their lambdas. Private entries are dropped entirely.
func Compile(mod *hir.Module) *Interface {
	out := &Interface{}
	for _, t := range mod.RecordDefs {
		if !t.Public {
			continue
		}
		out.TypeDefinitions = append(out.TypeDefinitions, &TypeDefinition{
			Name:         t.Name,
			OriginalName: t.OriginalName,
			Fields:       cloneFields(t.Fields),
			Open:         t.Open,
			Public:       true,
			Pos:          t.Pos,
		})
	}
	for _, a := range mod.TypeAliases {
		if !a.Public {
			continue
		}
		out.TypeAliases = append(out.TypeAliases, &TypeAlias{
			Name:         a.Name,
			OriginalName: a.OriginalName,
			Type:         a.Type,
			Public:       true,
			Pos:          a.Pos,
		})
	}
	for _, f := range mod.Functions {
		if !f.Public {
			continue
		}
		out.FunctionDeclarations = append(out.FunctionDeclarations, &FunctionDeclaration{
			Name:         f.Name,
			OriginalName: f.OriginalName,
			Type:         functionType(f),
			Pos:          f.Pos,
		})
	}
	return out
}

func functionType(f *hir.FunctionDefinition) hir.Type {
	args := make([]hir.Type, len(f.Lambda.Arguments))
	for i, a := range f.Lambda.Arguments {
		args[i] = a.Type
	}
	return &hir.FunctionType{Arguments: args, Result: f.Lambda.ResultType}
}

func cloneFields(fields []*hir.Field) []hir.Field {
	out := make([]hir.Field, len(fields))
	for i, f := range fields {
		out[i] = *f
	}
	return out
}
