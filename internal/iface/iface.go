// Package iface defines the persisted module interface — the public
// surface a compiled module exposes to its importers — and its JSON
// encoding.
package iface

import (
	"github.com/lucid-lang/lucidc/internal/hir"
	"github.com/lucid-lang/lucidc/internal/position"
)

// TypeDefinition is one exported record type.
type TypeDefinition struct {
	Name         string
	OriginalName string
	Fields       []hir.Field
	Open         bool
	Public       bool
	Pos          position.Pos
}

// TypeAlias is one exported type alias.
type TypeAlias struct {
	Name         string
	OriginalName string
	Type         hir.Type
	Public       bool
	Pos          position.Pos
}

// FunctionDeclaration is one exported function signature.
type FunctionDeclaration struct {
	Name         string
	OriginalName string
	Type         hir.Type
	Pos          position.Pos
}

// Interface is the serializable public projection of a module: the
// three lists persisted to an interface file and loaded back when the
// module is imported elsewhere. Private entries are never present
// here — see Compile in compiler.go.
type Interface struct {
	TypeDefinitions      []*TypeDefinition
	TypeAliases          []*TypeAlias
	FunctionDeclarations []*FunctionDeclaration
}

// FindName reports whether name is exported by the interface as a
// type definition, alias, or function declaration, used by import
// linking (internal/lower) to validate explicit import lists.
func (i *Interface) FindName(name string) bool {
	for _, t := range i.TypeDefinitions {
		if t.OriginalName == name {
			return true
		}
	}
	for _, a := range i.TypeAliases {
		if a.OriginalName == name {
			return true
		}
	}
	for _, f := range i.FunctionDeclarations {
		if f.OriginalName == name {
			return true
		}
	}
	return false
}

// LookupType resolves an original (surface) name to its qualified
// type-definition name, used while qualifying NameTypeRef references
// against an imported interface.
func (i *Interface) LookupType(originalName string) (*TypeDefinition, bool) {
	for _, t := range i.TypeDefinitions {
		if t.OriginalName == originalName {
			return t, true
		}
	}
	return nil, false
}

// LookupAlias resolves an original name to its qualified alias.
func (i *Interface) LookupAlias(originalName string) (*TypeAlias, bool) {
	for _, a := range i.TypeAliases {
		if a.OriginalName == originalName {
			return a, true
		}
	}
	return nil, false
}

// LookupFunction resolves an original name to its qualified function
// declaration.
func (i *Interface) LookupFunction(originalName string) (*FunctionDeclaration, bool) {
	for _, f := range i.FunctionDeclarations {
		if f.OriginalName == originalName {
			return f, true
		}
	}
	return nil, false
}
