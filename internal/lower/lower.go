// Package lower lowers a surface ast.Module into a typed, qualified
// hir.Module. It resolves imports against already
// compiled iface.Interface values, qualifies every top-level name with
// the module's prefix, and resolves every surface type reference to
// an hir.Type.
package lower

import (
	"github.com/lucid-lang/lucidc/internal/ast"
	"github.com/lucid-lang/lucidc/internal/diag"
	"github.com/lucid-lang/lucidc/internal/hir"
	"github.com/lucid-lang/lucidc/internal/iface"
	"github.com/lucid-lang/lucidc/internal/modpath"
)

// ImportedInterfaces maps an imported module's modpath.String() to its
// compiled interface, supplied by the dependency resolver (internal/
// resolver) before lowering begins.
type ImportedInterfaces map[string]*iface.Interface

// Lowerer holds the state threaded through one module's lowering.
type Lowerer struct {
	// Prefix qualifies every top-level name defined by this module,
	// typically "packagepath:" for the module being compiled.
	Prefix string

	// Imports maps each import's resolved module path to its
	// compiled interface.
	Imports ImportedInterfaces

	// Prelude lists the interfaces implicitly in scope for every
	// module except the prelude itself.
	Prelude []*iface.Interface

	// IsPrelude marks that the module being lowered is the prelude:
	// all definitions are forced public=true/external=false and no
	// import-name validation is performed.
	IsPrelude bool

	// importPrefixes maps an import prefix (alias or last path
	// component) to the interface it names, built during import
	// linking and consulted during type/expression qualification.
	importPrefixes map[string]*iface.Interface
	// unqualifiedNames maps an unqualified imported name (pulled in
	// via an explicit import list) to its qualified replacement.
	unqualifiedNames map[string]string
	// localTypeNames maps a surface type/record name defined in this
	// module to its qualified name.
	localTypeNames map[string]string
	// localFuncNames maps a surface function name defined in this
	// module to its qualified name.
	localFuncNames map[string]string
}

// Lower transforms mod into a qualified, typed HIR module or returns
// the first compile error encountered.
func (lw *Lowerer) Lower(mod *ast.Module) (*hir.Module, error) {
	lw.importPrefixes = map[string]*iface.Interface{}
	lw.unqualifiedNames = map[string]string{}
	lw.localTypeNames = map[string]string{}
	lw.localFuncNames = map[string]string{}

	if err := lw.linkImports(mod); err != nil {
		return nil, err
	}
	if err := lw.collectLocalNames(mod); err != nil {
		return nil, err
	}

	out := &hir.Module{Path: mod.Path}

	for _, rd := range mod.RecordDefs {
		hrd, err := lw.lowerRecordDefinition(rd)
		if err != nil {
			return nil, err
		}
		out.RecordDefs = append(out.RecordDefs, hrd)
	}
	for _, ta := range mod.TypeAliases {
		hta, err := lw.lowerTypeAlias(ta)
		if err != nil {
			return nil, err
		}
		out.TypeAliases = append(out.TypeAliases, hta)
	}
	for _, fi := range mod.ForeignImports {
		hfi, err := lw.lowerForeignImport(fi)
		if err != nil {
			return nil, err
		}
		out.ForeignImports = append(out.ForeignImports, hfi)
	}
	for _, fn := range mod.Functions {
		hfn, err := lw.lowerFunctionDefinition(fn)
		if err != nil {
			return nil, err
		}
		out.Functions = append(out.Functions, hfn)
	}

	return out, nil
}

// linkImports derives each import's prefix (explicit alias, else the
// last path component) and validates every explicitly named
// unqualified symbol against the imported interface. In prelude mode,
// no import validation is performed.
func (lw *Lowerer) linkImports(mod *ast.Module) error {
	for _, imp := range mod.Imports {
		iface, ok := lw.Imports[imp.Path.String()]
		if !ok {
			return &diag.ModuleNotFoundError{Path: imp.Path.String()}
		}
		prefix := imp.Alias
		if prefix == "" {
			prefix = imp.Path.LastComponent()
		}
		lw.importPrefixes[prefix] = iface

		if lw.IsPrelude {
			continue
		}
		for _, name := range imp.Names {
			if !iface.FindName(name) {
				return &diag.NameNotFoundError{Name: name, Pos: imp.Pos}
			}
			qualified := prefix + "." + name
			lw.unqualifiedNames[name] = qualified
		}
	}
	return nil
}

// collectLocalNames qualifies every top-level name this module
// defines and rejects collisions (DuplicateFunctionNames,
// DuplicateTypeNames).
func (lw *Lowerer) collectLocalNames(mod *ast.Module) error {
	seenTypes := map[string]ast.Node{}
	for _, rd := range mod.RecordDefs {
		if prev, dup := seenTypes[rd.Name]; dup {
			return &diag.DuplicateTypeNamesError{Name: rd.Name, First: prev.Position(), Second: rd.Pos}
		}
		seenTypes[rd.Name] = rd
		lw.localTypeNames[rd.Name] = lw.Prefix + rd.Name
	}
	for _, ta := range mod.TypeAliases {
		if prev, dup := seenTypes[ta.Name]; dup {
			return &diag.DuplicateTypeNamesError{Name: ta.Name, First: prev.Position(), Second: ta.Pos}
		}
		seenTypes[ta.Name] = ta
		lw.localTypeNames[ta.Name] = lw.Prefix + ta.Name
	}

	seenFuncs := map[string]ast.Node{}
	for _, fn := range mod.Functions {
		if prev, dup := seenFuncs[fn.Name]; dup {
			return &diag.DuplicateFunctionNamesError{Name: fn.Name, First: prev.Position(), Second: fn.Pos}
		}
		seenFuncs[fn.Name] = fn
		lw.localFuncNames[fn.Name] = lw.Prefix + fn.Name
	}
	for _, fi := range mod.ForeignImports {
		if prev, dup := seenFuncs[fi.Name]; dup {
			return &diag.DuplicateFunctionNamesError{Name: fi.Name, First: prev.Position(), Second: fi.Pos}
		}
		seenFuncs[fi.Name] = fi
		lw.localFuncNames[fi.Name] = lw.Prefix + fi.Name
	}
	return nil
}

func (lw *Lowerer) lowerRecordDefinition(rd *ast.RecordDefinition) (*hir.RecordDefinition, error) {
	fields := make([]*hir.Field, len(rd.Fields))
	allPublic := true
	for i, f := range rd.Fields {
		t, err := lw.lowerTypeRef(f.Type)
		if err != nil {
			return nil, err
		}
		fields[i] = &hir.Field{Name: f.Name, Type: t}
		if !modpath.IsPublic(f.Name) {
			allPublic = false
		}
	}
	public, external := rd.Public, rd.External
	if lw.IsPrelude {
		public, external = true, false
	}
	return &hir.RecordDefinition{
		Name:         lw.Prefix + rd.Name,
		OriginalName: rd.Name,
		Fields:       fields,
		Open:         allPublic && rd.Open,
		Public:       public,
		External:     external,
		Pos:          rd.Pos,
	}, nil
}

func (lw *Lowerer) lowerTypeAlias(ta *ast.TypeAliasDefinition) (*hir.TypeAliasDefinition, error) {
	t, err := lw.lowerTypeRef(ta.Type)
	if err != nil {
		return nil, err
	}
	public, external := ta.Public, ta.External
	if lw.IsPrelude {
		public, external = true, false
	}
	return &hir.TypeAliasDefinition{
		Name:         lw.Prefix + ta.Name,
		OriginalName: ta.Name,
		Type:         t,
		Public:       public,
		External:     external,
		Pos:          ta.Pos,
	}, nil
}

func (lw *Lowerer) lowerForeignImport(fi *ast.ForeignImport) (*hir.ForeignImport, error) {
	t, err := lw.lowerTypeRef(fi.Type)
	if err != nil {
		return nil, err
	}
	return &hir.ForeignImport{
		Name:        lw.Prefix + fi.Name,
		ForeignName: fi.ForeignName,
		Type:        t,
		Convention:  hir.CallingConvention(fi.Convention),
		Pos:         fi.Pos,
	}, nil
}

func (lw *Lowerer) lowerFunctionDefinition(fn *ast.FunctionDefinition) (*hir.FunctionDefinition, error) {
	lambda, err := lw.lowerLambda(fn.Lambda)
	if err != nil {
		return nil, err
	}
	public := fn.Public
	if lw.IsPrelude {
		public = true
	}
	var foreign *hir.ForeignDefinitionConfiguration
	if fn.Foreign != nil {
		foreign = &hir.ForeignDefinitionConfiguration{
			ForeignName: fn.Foreign.ForeignName,
			Convention:  hir.CallingConvention(fn.Foreign.Convention),
		}
	}
	return &hir.FunctionDefinition{
		Name:         lw.Prefix + fn.Name,
		OriginalName: fn.Name,
		Public:       public,
		Foreign:      foreign,
		Lambda:       lambda,
		Pos:          fn.Pos,
	}, nil
}

// qualifyName resolves a surface variable/function name to its
// qualified HIR spelling: local definitions first, then names pulled
// in by an explicit import list. Any other name, including a dotted
// "prefix.name", is returned unchanged (a lambda argument, a let-bound
// local, or a dotted call resolved later by name lookup).
func (lw *Lowerer) qualifyName(name string) string {
	if q, ok := lw.localFuncNames[name]; ok {
		return q
	}
	if q, ok := lw.unqualifiedNames[name]; ok {
		return q
	}
	return name
}
