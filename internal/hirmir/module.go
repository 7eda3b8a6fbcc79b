package hirmir

import (
	"github.com/lucid-lang/lucidc/internal/diag"
	"github.com/lucid-lang/lucidc/internal/hir"
	"github.com/lucid-lang/lucidc/internal/mir"
)

// LowerModule lowers every top-level declaration of an analyzed HIR
// module into MIR, appending the concrete specializations discovered
// along the way. isApplication gates the synthetic main-wrapper rule:
// only application packages require a main function and a configured
// context type alias.
func (l *Lowerer) LowerModule(mod *hir.Module, isApplication bool) (*mir.Module, error) {
	out := &mir.Module{Path: mod.Path.String()}

	for _, rec := range mod.RecordDefs {
		fields := make([]*mir.FieldType, len(rec.Fields))
		for i, f := range rec.Fields {
			fields[i] = &mir.FieldType{Name: f.Name, Type: l.LowerType(f.Type)}
		}
		out.TypeDefinitions = append(out.TypeDefinitions, &mir.RecordDefinition{Name: rec.Name, Fields: fields})
	}

	for _, imp := range mod.ForeignImports {
		out.ForeignDeclarations = append(out.ForeignDeclarations, &mir.ForeignDeclaration{
			Name: imp.Name, Type: l.LowerType(imp.Type), Pos: imp.Pos,
		})
	}

	var mainFn *mir.FunctionDefinition
	for _, fn := range mod.Functions {
		if fn.Foreign != nil {
			out.ForeignDefinitions = append(out.ForeignDefinitions, &mir.ForeignDefinition{
				Name:        fn.Name,
				ForeignName: fn.Foreign.ForeignName,
				Type:        l.LowerType(fn.Lambda.FunctionType_),
				Convention:  mir.CallingConvention(fn.Foreign.Convention),
				Pos:         fn.Pos,
			})
			continue
		}
		def, err := l.lowerFunctionDefinition(fn.Name, fn.Lambda, fn.Public)
		if err != nil {
			return nil, err
		}
		def.Global = true
		out.FunctionDefinitions = append(out.FunctionDefinitions, def)
		if fn.OriginalName == l.Config.MainFunctionName {
			mainFn = def
		}
	}

	out.TypeDefinitions = append(out.TypeDefinitions, l.Specializations()...)

	if isApplication {
		if mainFn == nil {
			return nil, &diag.MainFunctionNotFoundError{}
		}
		contextAlias, ok := l.Ctx.Aliases[l.Config.ContextTypeAlias]
		if !ok {
			return nil, &diag.ContextTypeUndefinedError{}
		}
		out.FunctionDefinitions = append(out.FunctionDefinitions, l.buildMainWrapper(mainFn, contextAlias))
	}

	return out, nil
}

// buildMainWrapper synthesizes the "$main" entry point every
// application module exposes to the host runtime: a function of one
// argument, the configured context type, that forwards to the
// user-named main function.
func (l *Lowerer) buildMainWrapper(mainFn *mir.FunctionDefinition, contextAlias hir.Type) *mir.FunctionDefinition {
	contextType := l.LowerType(contextAlias)
	contextVar := &mir.Variable{Name: "$context", Type: contextType, Pos_: mainFn.Pos}
	call := &mir.FunctionApplication{
		Function:  &mir.Variable{Name: mainFn.Name, Pos_: mainFn.Pos},
		Arguments: []mir.Expr{contextVar},
		Pos_:      mainFn.Pos,
	}
	return &mir.FunctionDefinition{
		Name:       "$main",
		Arguments:  []*mir.EnvironmentEntry{{Name: "$context", Type: contextType}},
		Body:       call,
		ResultType: mainFn.ResultType,
		Public:     true,
		Global:     true,
		Pos:        mainFn.Pos,
	}
}
