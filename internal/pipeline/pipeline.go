// Package pipeline wires the compiler's passes end to end for a single
// module: lowering, analysis, MIR lowering, free-variable and variant
// collection, and reference-count insertion. The CLI driver
// (cmd/penc) is the only caller; it resolves each module's imports
// (internal/resolver) and compiles them, recursively, before running
// CompileModule on the importing module.
package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/lucid-lang/lucidc/internal/ast"
	"github.com/lucid-lang/lucidc/internal/config"
	"github.com/lucid-lang/lucidc/internal/hir"
	"github.com/lucid-lang/lucidc/internal/hirmir"
	"github.com/lucid-lang/lucidc/internal/iface"
	"github.com/lucid-lang/lucidc/internal/lower"
	"github.com/lucid-lang/lucidc/internal/mir"
	"github.com/lucid-lang/lucidc/internal/mirpass"
	"github.com/lucid-lang/lucidc/internal/modpath"
	"github.com/lucid-lang/lucidc/internal/rc"
	"github.com/lucid-lang/lucidc/internal/types"
)

// Pipeline holds configuration shared by every module compiled
// together in one invocation.
type Pipeline struct {
	PackageDir string
	OutputDir  string
	Compile    *config.CompileConfiguration
	Package    *config.PackageConfiguration
}

// Result is everything CompileModule produces for one module.
type Result struct {
	HIR        *hir.Module
	Interface  *iface.Interface
	MIR        *mir.Module
	VariantIDs []string
}

// ModulePathFromSource derives a module's internal path from its
// source file location relative to the package root, the reverse of
// internal/resolver's resolveInternal.
func ModulePathFromSource(packageDir, sourcePath string) (modpath.Path, error) {
	rel, err := filepath.Rel(packageDir, sourcePath)
	if err != nil {
		return modpath.Path{}, err
	}
	rel = strings.TrimSuffix(rel, ".pen")
	return modpath.Internal(strings.Split(filepath.ToSlash(rel), "/")...), nil
}

// LoadModule reads a module's pre-parsed surface syntax from its JSON
// sidecar file. The core has no lexer or parser of its own — a front
// end produces "<source>.ast.json" and the driver loads it from there
// (see DESIGN.md).
func LoadModule(sourcePath string) (*ast.Module, error) {
	data, err := os.ReadFile(sourcePath + ".ast.json")
	if err != nil {
		return nil, err
	}
	return ast.UnmarshalModule(data)
}

// CompileModule runs one module through lowering, analysis, MIR
// lowering, and reference-count insertion. imports maps each of the
// module's resolved import paths to its already-compiled interface;
// prelude lists the interfaces implicitly in scope for every module
// except the prelude itself. isApplication gates the synthetic
// "$main" wrapper.
func (p *Pipeline) CompileModule(mod *ast.Module, prefix string, imports lower.ImportedInterfaces, prelude []*iface.Interface, isPrelude, isApplication bool) (*Result, error) {
	lw := &lower.Lowerer{Prefix: prefix, Imports: imports, Prelude: prelude, IsPrelude: isPrelude}
	hmod, err := lw.Lower(mod)
	if err != nil {
		return nil, err
	}

	ctx := buildTypeContext(hmod, imports, prelude, p.Compile)
	analyzed, err := types.Analyze(ctx, hmod)
	if err != nil {
		return nil, err
	}

	hm := hirmir.New(p.Compile, ctx)
	mmod, err := hm.LowerModule(analyzed, isApplication)
	if err != nil {
		return nil, err
	}

	for _, fn := range mmod.FunctionDefinitions {
		fn.Environment = mirpass.ComputeFreeVariables(fn)
	}

	rcCtx := rc.NewContext(mmod.TypeDefinitions)
	if err := rc.InsertReferenceCounts(mmod, rcCtx); err != nil {
		return nil, err
	}

	defsByName := make(map[string]*mir.RecordDefinition, len(mmod.TypeDefinitions))
	for _, d := range mmod.TypeDefinitions {
		defsByName[d.Name] = d
	}
	for _, fn := range mmod.FunctionDefinitions {
		fn.Body = rc.ApplyHeapReuse(fn.Body, defsByName)
	}

	return &Result{
		HIR:        analyzed,
		Interface:  iface.Compile(analyzed),
		MIR:        mmod,
		VariantIDs: mirpass.CollectVariantTypes(mmod),
	}, nil
}

// AnalyzeOnly runs lowering and type analysis only, stopping short of
// MIR lowering and reference counting. `penc check` uses this to
// surface type errors without paying for passes whose output it
// discards.
func (p *Pipeline) AnalyzeOnly(mod *ast.Module, prefix string, imports lower.ImportedInterfaces, prelude []*iface.Interface, isPrelude bool) (*hir.Module, *iface.Interface, error) {
	lw := &lower.Lowerer{Prefix: prefix, Imports: imports, Prelude: prelude, IsPrelude: isPrelude}
	hmod, err := lw.Lower(mod)
	if err != nil {
		return nil, nil, err
	}

	ctx := buildTypeContext(hmod, imports, prelude, p.Compile)
	analyzed, err := types.Analyze(ctx, hmod)
	if err != nil {
		return nil, nil, err
	}
	return analyzed, iface.Compile(analyzed), nil
}

// buildTypeContext assembles the alias/record/function tables
// internal/types needs to canonicalize and check hmod: its own
// declarations plus every imported and prelude interface's exported
// ones. Qualified names already match across modules because
// internal/lower and internal/iface both qualify with "prefix:name";
// dotted "prefix.name" call syntax additionally resolves through a
// second Functions entry per import, matching the prefix
// internal/lower derives for unqualified-import validation.
func buildTypeContext(mod *hir.Module, imports lower.ImportedInterfaces, prelude []*iface.Interface, cfg *config.CompileConfiguration) *types.Context {
	ctx := types.NewContext()

	for _, rd := range mod.RecordDefs {
		ctx.Records[rd.Name] = rd.Fields
	}
	for _, ta := range mod.TypeAliases {
		ctx.Aliases[ta.Name] = ta.Type
	}
	for _, fi := range mod.ForeignImports {
		ctx.Functions[fi.Name] = fi.Type
	}
	for _, fn := range mod.Functions {
		ctx.Functions[fn.Name] = declaredFunctionType(fn)
	}

	for path, ifc := range imports {
		addInterface(ctx, ifc, importPrefix(path))
	}
	for _, ifc := range prelude {
		addInterface(ctx, ifc, "")
	}

	ctx.ErrorType = &hir.RecordType{Name: cfg.ErrorType.TypeName}
	return ctx
}

func addInterface(ctx *types.Context, ifc *iface.Interface, dotPrefix string) {
	for _, t := range ifc.TypeDefinitions {
		fields := make([]*hir.Field, len(t.Fields))
		for i := range t.Fields {
			f := t.Fields[i]
			fields[i] = &f
		}
		ctx.Records[t.Name] = fields
	}
	for _, a := range ifc.TypeAliases {
		ctx.Aliases[a.Name] = a.Type
	}
	for _, fd := range ifc.FunctionDeclarations {
		ctx.Functions[fd.Name] = fd.Type
		if dotPrefix != "" {
			ctx.Functions[dotPrefix+"."+fd.OriginalName] = fd.Type
		}
	}
}

// importPrefix recovers the dotted-call prefix internal/lower would
// have derived for this import path (its last component, absent an
// explicit alias the driver does not see at this stage).
func importPrefix(serializedPath string) string {
	path := strings.TrimPrefix(serializedPath, "'")
	comps := strings.Split(path, "'")
	if len(comps) == 0 {
		return ""
	}
	return comps[len(comps)-1]
}

// declaredFunctionType builds a function's signature from its
// declared argument and result types, ahead of inference — needed so
// that mutually recursive functions within one module can see each
// other's signatures in ctx.Functions before internal/types.Analyze
// runs. A function omitting its result type is given result type Any
// here; the ctx.Functions entry is not updated after inference.
func declaredFunctionType(fn *hir.FunctionDefinition) hir.Type {
	args := make([]hir.Type, len(fn.Lambda.Arguments))
	for i, a := range fn.Lambda.Arguments {
		args[i] = a.Type
	}
	result := fn.Lambda.ResultType
	if result == nil {
		result = hir.AnyType{}
	}
	return &hir.FunctionType{Arguments: args, Result: result}
}
