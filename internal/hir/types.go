// Package hir is the typed intermediate representation produced by
// lowering the surface AST (see internal/lower) and consumed, in
// place, by the type analyzer (see internal/types). Unlike the
// surface syntax, every name here is module-qualified and every type
// reference is a structured node rather than a bare string.
package hir

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucid-lang/lucidc/internal/position"
)

// Type is an HIR type node. Type nodes carry no positions; structural
// equality between them is implemented by Equal.
type Type interface {
	fmt.Stringer
	typeNode()
}

// AnyType is the top type: everything subsumes into it.
type AnyType struct{}

func (AnyType) String() string { return "Any" }
func (AnyType) typeNode()      {}

type BooleanType struct{}

func (BooleanType) String() string { return "Boolean" }
func (BooleanType) typeNode()      {}

type NumberType struct{}

func (NumberType) String() string { return "Number" }
func (NumberType) typeNode()      {}

type StringType struct{}

func (StringType) String() string { return "String" }
func (StringType) typeNode()      {}

type NoneType struct{}

func (NoneType) String() string { return "None" }
func (NoneType) typeNode()      {}

type ErrorType struct{}

func (ErrorType) String() string { return "Error" }
func (ErrorType) typeNode()      {}

// FunctionType is a (possibly multi-argument) function type.
type FunctionType struct {
	Arguments []Type
	Result    Type
}

func (f *FunctionType) String() string {
	args := make([]string, len(f.Arguments))
	for i, a := range f.Arguments {
		args[i] = a.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(args, ", "), f.Result)
}
func (f *FunctionType) typeNode() {}

// ListType is the list-of-T type.
type ListType struct {
	Element Type
}

func (l *ListType) String() string { return fmt.Sprintf("[%s]", l.Element) }
func (l *ListType) typeNode()      {}

// MapType is the map-of-K-to-V type.
type MapType struct {
	Key, Value Type
}

func (m *MapType) String() string { return fmt.Sprintf("{%s: %s}", m.Key, m.Value) }
func (m *MapType) typeNode()      {}

// RecordType is a by-name handle to a record definition. Because it
// is by-name rather than by-value, it is the only way the type graph
// can contain cycles; canonicalization never descends into it.
type RecordType struct {
	Name string
}

func (r *RecordType) String() string { return r.Name }
func (r *RecordType) typeNode()      {}

// ReferenceType is an unresolved alias reference; types.Canonicalize
// resolves it through the alias table (types.Context.Aliases).
type ReferenceType struct {
	Name string
}

func (r *ReferenceType) String() string { return "ref:" + r.Name }
func (r *ReferenceType) typeNode()      {}

// UnionType is a two-member union; canonicalize flattens chains of
// UnionType into an order-independent set of non-union members.
type UnionType struct {
	LHS, RHS Type
}

func (u *UnionType) String() string { return fmt.Sprintf("%s | %s", u.LHS, u.RHS) }
func (u *UnionType) typeNode()      {}

// Equal reports structural equality of two *canonicalized* types. It
// does not itself canonicalize; callers in internal/types always
// canonicalize before comparing.
func Equal(a, b Type) bool {
	switch at := a.(type) {
	case AnyType:
		_, ok := b.(AnyType)
		return ok
	case BooleanType:
		_, ok := b.(BooleanType)
		return ok
	case NumberType:
		_, ok := b.(NumberType)
		return ok
	case StringType:
		_, ok := b.(StringType)
		return ok
	case NoneType:
		_, ok := b.(NoneType)
		return ok
	case ErrorType:
		_, ok := b.(ErrorType)
		return ok
	case *FunctionType:
		bt, ok := b.(*FunctionType)
		if !ok || len(at.Arguments) != len(bt.Arguments) {
			return false
		}
		for i := range at.Arguments {
			if !Equal(at.Arguments[i], bt.Arguments[i]) {
				return false
			}
		}
		return Equal(at.Result, bt.Result)
	case *ListType:
		bt, ok := b.(*ListType)
		return ok && Equal(at.Element, bt.Element)
	case *MapType:
		bt, ok := b.(*MapType)
		return ok && Equal(at.Key, bt.Key) && Equal(at.Value, bt.Value)
	case *RecordType:
		bt, ok := b.(*RecordType)
		return ok && at.Name == bt.Name
	case *ReferenceType:
		bt, ok := b.(*ReferenceType)
		return ok && at.Name == bt.Name
	case *UnionType:
		// Union equality here operates on the flattened member set;
		// use UnionMembers to compare after canonicalization instead
		// of relying on LHS/RHS shape directly.
		aMembers := UnionMembers(at)
		bMembers, ok := b.(*UnionType)
		if !ok {
			return false
		}
		return unionMembersEqual(aMembers, UnionMembers(bMembers))
	default:
		return false
	}
}

// UnionMembers flattens a (possibly nested) union into its
// non-union leaf members, in the order encountered.
func UnionMembers(t Type) []Type {
	u, ok := t.(*UnionType)
	if !ok {
		return []Type{t}
	}
	return append(UnionMembers(u.LHS), UnionMembers(u.RHS)...)
}

func unionMembersEqual(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	matched := make([]bool, len(b))
	for _, am := range a {
		found := false
		for j, bm := range b {
			if matched[j] {
				continue
			}
			if Equal(am, bm) {
				matched[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// TypeID renders a deterministic, canonical textual form for a type,
// used as the basis of the type-id hash in internal/mirpass. Two
// equal types always produce the same string.
func TypeID(t Type) string {
	switch v := t.(type) {
	case AnyType:
		return "Any"
	case BooleanType:
		return "Boolean"
	case NumberType:
		return "Number"
	case StringType:
		return "String"
	case NoneType:
		return "None"
	case ErrorType:
		return "Error"
	case *FunctionType:
		args := make([]string, len(v.Arguments))
		for i, a := range v.Arguments {
			args[i] = TypeID(a)
		}
		return fmt.Sprintf("Function(%s;%s)", strings.Join(args, ","), TypeID(v.Result))
	case *ListType:
		return fmt.Sprintf("List(%s)", TypeID(v.Element))
	case *MapType:
		return fmt.Sprintf("Map(%s,%s)", TypeID(v.Key), TypeID(v.Value))
	case *RecordType:
		return fmt.Sprintf("Record(%s)", v.Name)
	case *ReferenceType:
		return fmt.Sprintf("Reference(%s)", v.Name)
	case *UnionType:
		members := UnionMembers(v)
		ids := make([]string, len(members))
		for i, m := range members {
			ids[i] = TypeID(m)
		}
		sort.Strings(ids)
		return fmt.Sprintf("Union(%s)", strings.Join(ids, "|"))
	default:
		return fmt.Sprintf("<unknown %T>", t)
	}
}

// Pos is re-exported for callers that only need the HIR package; the
// canonical definition lives in internal/position.
type Pos = position.Pos
