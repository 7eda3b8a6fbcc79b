package hir

import "github.com/lucid-lang/lucidc/internal/modpath"

// Field is one field of a record type definition.
type Field struct {
	Name string
	Type Type
}

// RecordDefinition is a module-qualified record type definition.
type RecordDefinition struct {
	Name         string // qualified
	OriginalName string // surface spelling
	Fields       []*Field
	Open         bool
	Public       bool
	External     bool
	Pos          Pos
}

// TypeAliasDefinition is a module-qualified type alias.
type TypeAliasDefinition struct {
	Name         string
	OriginalName string
	Type         Type
	Public       bool
	External     bool
	Pos          Pos
}

// CallingConvention mirrors ast.CallingConvention for HIR foreign
// definitions.
type CallingConvention int

const (
	NativeConvention CallingConvention = iota
	CConvention
)

// ForeignDefinitionConfiguration records the calling convention under
// which a definition is exposed to foreign callers.
type ForeignDefinitionConfiguration struct {
	ForeignName string
	Convention  CallingConvention
}

// ForeignImport is a module-qualified foreign function import.
type ForeignImport struct {
	Name        string
	ForeignName string
	Type        Type
	Convention  CallingConvention
	Pos         Pos
}

// FunctionDefinition is a module-qualified top-level function.
type FunctionDefinition struct {
	Name         string // qualified, e.g. "pkg'a'b:foo"
	OriginalName string // surface spelling, e.g. "foo"
	Public       bool
	Foreign      *ForeignDefinitionConfiguration
	Lambda       *Lambda
	Pos          Pos
}

// Module is a fully qualified, typed HIR module: the output of
// internal/lower and the input (and, after analysis, output) of
// internal/types.
type Module struct {
	Path           modpath.Path
	RecordDefs     []*RecordDefinition
	TypeAliases    []*TypeAliasDefinition
	ForeignImports []*ForeignImport
	Functions      []*FunctionDefinition
}
