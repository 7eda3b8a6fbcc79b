// Package mir is the lower-level, backend-facing intermediate
// representation produced by internal/hirmir: explicit records,
// variants, closures, and thunks in place of HIR's structural type
// system.
package mir

import "github.com/lucid-lang/lucidc/internal/position"

// Pos is re-exported for callers that only need the MIR package.
type Pos = position.Pos

// Type is an MIR type. Unlike hir.Type, there is no Union or Any: both
// collapse to Variant during lowering (internal/hirmir).
type Type interface {
	mirTypeNode()
	String() string
}

type BooleanType struct{}

func (BooleanType) mirTypeNode() {}
func (BooleanType) String() string { return "Boolean" }

type ByteStringType struct{}

func (ByteStringType) mirTypeNode() {}
func (ByteStringType) String() string { return "ByteString" }

type NumberType struct{}

func (NumberType) mirTypeNode() {}
func (NumberType) String() string { return "Number" }

type NoneType struct{}

func (NoneType) mirTypeNode() {}
func (NoneType) String() string { return "None" }

// RecordType names a record whose field layout is declared elsewhere
// in the module's TypeDefinitions.
type RecordType struct{ Name string }

func (RecordType) mirTypeNode() {}
func (r RecordType) String() string { return r.Name }

// FunctionType is a curried/boxed closure type; the closure record
// itself is synthesized during lowering (see internal/hirmir).
type FunctionType struct {
	Arguments []Type
	Result    Type
}

func (FunctionType) mirTypeNode() {}
func (f FunctionType) String() string { return "Function" }

// VariantType is the tagged-union runtime representation: a
// type-information tag plus a payload pointer, always two words.
type VariantType struct{}

func (VariantType) mirTypeNode() {}
func (VariantType) String() string { return "Variant" }

// FieldType is one field of a RecordDefinition's body.
type FieldType struct {
	Name string
	Type Type
}

// RecordDefinition declares a record's field layout. A record is
// boxed iff it has any fields; the empty record is represented
// inline and needs no heap allocation or reference counting.
type RecordDefinition struct {
	Name   string
	Fields []*FieldType
}

func (r *RecordDefinition) Boxed() bool { return len(r.Fields) > 0 }
