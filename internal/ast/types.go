package ast

import (
	"fmt"

	"github.com/lucid-lang/lucidc/internal/modpath"
	"github.com/lucid-lang/lucidc/internal/position"
)

// AnyTypeRef is the surface spelling of the top type.
type AnyTypeRef struct{ Pos position.Pos }

func (t *AnyTypeRef) String() string      { return "any" }
func (t *AnyTypeRef) Position() position.Pos { return t.Pos }
func (t *AnyTypeRef) typeRefNode()       {}

// BooleanTypeRef, NumberTypeRef, StringTypeRef, NoneTypeRef, ErrorTypeRef
// are the surface primitive type spellings.
type BooleanTypeRef struct{ Pos position.Pos }

func (t *BooleanTypeRef) String() string      { return "boolean" }
func (t *BooleanTypeRef) Position() position.Pos { return t.Pos }
func (t *BooleanTypeRef) typeRefNode()       {}

type NumberTypeRef struct{ Pos position.Pos }

func (t *NumberTypeRef) String() string      { return "number" }
func (t *NumberTypeRef) Position() position.Pos { return t.Pos }
func (t *NumberTypeRef) typeRefNode()       {}

type StringTypeRef struct{ Pos position.Pos }

func (t *StringTypeRef) String() string      { return "string" }
func (t *StringTypeRef) Position() position.Pos { return t.Pos }
func (t *StringTypeRef) typeRefNode()       {}

type NoneTypeRef struct{ Pos position.Pos }

func (t *NoneTypeRef) String() string      { return "none" }
func (t *NoneTypeRef) Position() position.Pos { return t.Pos }
func (t *NoneTypeRef) typeRefNode()       {}

type ErrorTypeRef struct{ Pos position.Pos }

func (t *ErrorTypeRef) String() string      { return "error" }
func (t *ErrorTypeRef) Position() position.Pos { return t.Pos }
func (t *ErrorTypeRef) typeRefNode()       {}

// FunctionTypeRef is a surface function type.
type FunctionTypeRef struct {
	Arguments []TypeRef
	Result    TypeRef
	Pos       position.Pos
}

func (t *FunctionTypeRef) String() string      { return "function" }
func (t *FunctionTypeRef) Position() position.Pos { return t.Pos }
func (t *FunctionTypeRef) typeRefNode()       {}

// ListTypeRef is `[T]`.
type ListTypeRef struct {
	Element TypeRef
	Pos     position.Pos
}

func (t *ListTypeRef) String() string      { return fmt.Sprintf("[%s]", t.Element) }
func (t *ListTypeRef) Position() position.Pos { return t.Pos }
func (t *ListTypeRef) typeRefNode()       {}

// MapTypeRef is `{K: V}`.
type MapTypeRef struct {
	Key, Value TypeRef
	Pos        position.Pos
}

func (t *MapTypeRef) String() string      { return fmt.Sprintf("{%s: %s}", t.Key, t.Value) }
func (t *MapTypeRef) Position() position.Pos { return t.Pos }
func (t *MapTypeRef) typeRefNode()       {}

// NameTypeRef references a type or alias by its surface spelling; the
// lowering pass resolves it to either hir.Record(name) or
// hir.Reference(name) depending on what it finds.
type NameTypeRef struct {
	Name string
	Pos  position.Pos
}

func (t *NameTypeRef) String() string      { return t.Name }
func (t *NameTypeRef) Position() position.Pos { return t.Pos }
func (t *NameTypeRef) typeRefNode()       {}

// UnionTypeRef is `A | B`.
type UnionTypeRef struct {
	LHS, RHS TypeRef
	Pos      position.Pos
}

func (t *UnionTypeRef) String() string      { return fmt.Sprintf("%s | %s", t.LHS, t.RHS) }
func (t *UnionTypeRef) Position() position.Pos { return t.Pos }
func (t *UnionTypeRef) typeRefNode()       {}

// ---------------------------------------------------------------------------
// Module-level declarations

// FieldDefinition is one field of a RecordDefinition.
type FieldDefinition struct {
	Name string
	Type TypeRef
	Pos  position.Pos
}

// RecordDefinition declares a record type. Open iff every field name
// is public; an open record accepts extra fields at construction.
type RecordDefinition struct {
	Name     string
	Fields   []*FieldDefinition
	Open     bool
	Public   bool
	External bool
	Pos      position.Pos
}

// TypeAliasDefinition declares `type Name = T`.
type TypeAliasDefinition struct {
	Name     string
	Type     TypeRef
	Public   bool
	External bool
	Pos      position.Pos
}

// CallingConvention names how a foreign function is invoked.
type CallingConvention int

const (
	NativeConvention CallingConvention = iota
	CConvention
)

// ForeignImport declares an imported foreign function.
type ForeignImport struct {
	Name       string
	ForeignName string
	Type       TypeRef
	Convention CallingConvention
	Pos        position.Pos
}

// FunctionDefinition is a top-level function.
type FunctionDefinition struct {
	Name       string
	Public     bool
	Foreign    *ForeignDefinitionConfig // non-nil iff this definition is exported to foreign code
	Lambda     *Lambda
	Pos        position.Pos
}

// ForeignDefinitionConfig records the calling convention under which a
// definition is exposed to foreign callers.
type ForeignDefinitionConfig struct {
	ForeignName string
	Convention  CallingConvention
}

// ImportStatement is a module-level import.
type ImportStatement struct {
	Path  modpath.Path
	Alias string   // "" when no explicit alias is given
	Names []string // unqualified names pulled into scope; empty means "whole module qualified"
	Pos   position.Pos
}

// Module is a parsed surface-syntax module.
type Module struct {
	Path           modpath.Path
	Exports        []string
	Imports        []*ImportStatement
	ForeignImports []*ForeignImport
	RecordDefs     []*RecordDefinition
	TypeAliases    []*TypeAliasDefinition
	Functions      []*FunctionDefinition
	Pos            position.Pos
}
