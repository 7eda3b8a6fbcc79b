// Package ast defines the surface syntax tree produced by parsing a
// source module, before import resolution or type checking. Nodes
// carry a position.Pos for diagnostics; see that package for why
// positions never participate in node equality.
package ast

import (
	"fmt"
	"strings"

	"github.com/lucid-lang/lucidc/internal/position"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	String() string
	Position() position.Pos
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// TypeRef is a surface type reference, resolved against local and
// prelude scope during lowering.
type TypeRef interface {
	Node
	typeRefNode()
}

// ---------------------------------------------------------------------------
// Literals and simple expressions

// NumberLiteral holds a syntactic number in its original radix. Base
// distinguishes binary/hex/decimal-integer/float so the lowering pass
// parses with the correct base.
type NumberLiteral struct {
	Text string
	Base NumberBase
	Pos  position.Pos
}

// NumberBase enumerates the literal's syntactic radix.
type NumberBase int

const (
	Decimal NumberBase = iota
	Binary
	Hex
	DecimalFloat
)

func (n *NumberLiteral) String() string      { return n.Text }
func (n *NumberLiteral) Position() position.Pos { return n.Pos }
func (n *NumberLiteral) exprNode()            {}

// ByteStringLiteral holds the raw, unescaped source text of a byte
// string literal; escape expansion happens during lowering so that
// invalid-UTF-8 \xNN bytes can be preserved at the byte level.
type ByteStringLiteral struct {
	Raw string
	Pos position.Pos
}

func (b *ByteStringLiteral) String() string      { return fmt.Sprintf("%q", b.Raw) }
func (b *ByteStringLiteral) Position() position.Pos { return b.Pos }
func (b *ByteStringLiteral) exprNode()            {}

// BooleanLiteral is syntactic sugar: the surface grammar spells
// booleans with the variable names "true"/"false", so this node only
// exists after the parser has recognized those names in a boolean
// context (e.g. inside a BinaryOperation); bare references otherwise
// lower as Variable.
type BooleanLiteral struct {
	Value bool
	Pos   position.Pos
}

func (b *BooleanLiteral) String() string      { return fmt.Sprintf("%v", b.Value) }
func (b *BooleanLiteral) Position() position.Pos { return b.Pos }
func (b *BooleanLiteral) exprNode()            {}

// NoneLiteral is the "none" literal.
type NoneLiteral struct {
	Pos position.Pos
}

func (n *NoneLiteral) String() string      { return "none" }
func (n *NoneLiteral) Position() position.Pos { return n.Pos }
func (n *NoneLiteral) exprNode()            {}

// Variable references a name, qualified or not.
type Variable struct {
	Name string
	Pos  position.Pos
}

func (v *Variable) String() string      { return v.Name }
func (v *Variable) Position() position.Pos { return v.Pos }
func (v *Variable) exprNode()            {}

// ---------------------------------------------------------------------------
// Functions

// Argument is a lambda argument: a name and its declared type.
type Argument struct {
	Name string
	Type TypeRef
	Pos  position.Pos
}

// Lambda is a function literal.
type Lambda struct {
	Arguments  []*Argument
	ResultType TypeRef // nil when the result type is to be inferred
	Body       Expr
	Pos        position.Pos
}

func (l *Lambda) String() string {
	names := make([]string, len(l.Arguments))
	for i, a := range l.Arguments {
		names[i] = a.Name
	}
	return fmt.Sprintf("\\(%s) { %s }", strings.Join(names, ", "), l.Body)
}
func (l *Lambda) Position() position.Pos { return l.Pos }
func (l *Lambda) exprNode()            {}

// Call is function application.
type Call struct {
	Function  Expr
	Arguments []Expr
	Pos       position.Pos
}

func (c *Call) String() string {
	args := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Function, strings.Join(args, ", "))
}
func (c *Call) Position() position.Pos { return c.Pos }
func (c *Call) exprNode()            {}

// ---------------------------------------------------------------------------
// Conditionals

// If is the plain conditional.
type If struct {
	Condition Expr
	Then      Expr
	Else      Expr
	Pos       position.Pos
}

func (i *If) String() string      { return fmt.Sprintf("if %s then %s else %s", i.Condition, i.Then, i.Else) }
func (i *If) Position() position.Pos { return i.Pos }
func (i *If) exprNode()            {}

// IfList destructures a list into head/tail with typed branches.
type IfList struct {
	Argument  Expr
	FirstName string
	RestName  string
	ThenType  TypeRef
	Then      Expr
	Else      Expr
	Pos       position.Pos
}

func (i *IfList) String() string {
	return fmt.Sprintf("if-list %s { %s, %s -> %s } else %s", i.Argument, i.FirstName, i.RestName, i.Then, i.Else)
}
func (i *IfList) Position() position.Pos { return i.Pos }
func (i *IfList) exprNode()            {}

// IfMap looks a key up in a map, binding the value on success.
type IfMap struct {
	Map       Expr
	Key       Expr
	ValueName string
	Then      Expr
	Else      Expr
	Pos       position.Pos
}

func (i *IfMap) String() string {
	return fmt.Sprintf("if-map %s[%s] { %s -> %s } else %s", i.Map, i.Key, i.ValueName, i.Then, i.Else)
}
func (i *IfMap) Position() position.Pos { return i.Pos }
func (i *IfMap) exprNode()            {}

// IfTypeBranch is a single arm of an IfType expression.
type IfTypeBranch struct {
	Type TypeRef
	Then Expr
}

// IfType performs a type-case over an argument, binding a name of the
// narrowed type in each branch.
type IfType struct {
	ArgumentName string
	Argument     Expr
	Branches     []*IfTypeBranch
	Else         Expr // nil when there is no else branch
	Pos          position.Pos
}

func (i *IfType) String() string {
	return fmt.Sprintf("if-type %s = %s { ... }", i.ArgumentName, i.Argument)
}
func (i *IfType) Position() position.Pos { return i.Pos }
func (i *IfType) exprNode()            {}

// ---------------------------------------------------------------------------
// Records

// RecordConstruction builds a record value from field: expr pairs.
type RecordConstruction struct {
	Type   TypeRef
	Fields map[string]Expr
	Order  []string // field evaluation order, for deterministic lowering
	Pos    position.Pos
}

func (r *RecordConstruction) String() string {
	return fmt.Sprintf("%s{ ... }", r.Type)
}
func (r *RecordConstruction) Position() position.Pos { return r.Pos }
func (r *RecordConstruction) exprNode()            {}

// RecordUpdate overrides a subset of an existing record's fields.
type RecordUpdate struct {
	Record Expr
	Fields map[string]Expr
	Order  []string
	Pos    position.Pos
}

func (r *RecordUpdate) String() string { return fmt.Sprintf("%s{ ... | ... }", r.Record) }
func (r *RecordUpdate) Position() position.Pos { return r.Pos }
func (r *RecordUpdate) exprNode()            {}

// RecordField accesses a single field of a record value.
type RecordField struct {
	Record Expr
	Name   string
	Pos    position.Pos
}

func (r *RecordField) String() string      { return fmt.Sprintf("%s.%s", r.Record, r.Name) }
func (r *RecordField) Position() position.Pos { return r.Pos }
func (r *RecordField) exprNode()            {}

// ---------------------------------------------------------------------------
// Lists and maps

// ListElement is either a plain element or a splice (`...expr`).
type ListElement struct {
	Value  Expr
	Splice bool
}

// ListLiteral is a list literal with plain and splice elements.
type ListLiteral struct {
	Elements []*ListElement
	Pos      position.Pos
}

func (l *ListLiteral) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		if e.Splice {
			parts[i] = "..." + e.Value.String()
		} else {
			parts[i] = e.Value.String()
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (l *ListLiteral) Position() position.Pos { return l.Pos }
func (l *ListLiteral) exprNode()            {}

// MapEntry is a single key: value pair of a MapLiteral.
type MapEntry struct {
	Key   Expr
	Value Expr
}

// MapLiteral is a map literal.
type MapLiteral struct {
	Entries []*MapEntry
	Pos     position.Pos
}

func (m *MapLiteral) String() string { return fmt.Sprintf("{#%d entries#}", len(m.Entries)) }
func (m *MapLiteral) Position() position.Pos { return m.Pos }
func (m *MapLiteral) exprNode()            {}

// ComprehensionBranch is one `for name(s) in iteratee` clause of a
// list comprehension; one or more branches may be chained.
type ComprehensionBranch struct {
	Names    []string
	Iteratee Expr
}

// ListComprehension builds a list from one or more iteratee branches
// and an optional filter condition.
type ListComprehension struct {
	Element   Expr
	Branches  []*ComprehensionBranch
	Condition Expr // nil when unconditional
	Pos       position.Pos
}

func (l *ListComprehension) String() string { return fmt.Sprintf("[%s for ...]", l.Element) }
func (l *ListComprehension) Position() position.Pos { return l.Pos }
func (l *ListComprehension) exprNode()            {}

// ---------------------------------------------------------------------------
// Operators

type ArithmeticOperator int

const (
	Add ArithmeticOperator = iota
	Subtract
	Multiply
	Divide
)

type OrderOperator int

const (
	LessThan OrderOperator = iota
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
)

type BooleanOperator int

const (
	And BooleanOperator = iota
	Or
)

// ArithmeticOperation is a binary arithmetic expression.
type ArithmeticOperation struct {
	Operator ArithmeticOperator
	LHS, RHS Expr
	Pos      position.Pos
}

func (a *ArithmeticOperation) String() string      { return fmt.Sprintf("(%s op %s)", a.LHS, a.RHS) }
func (a *ArithmeticOperation) Position() position.Pos { return a.Pos }
func (a *ArithmeticOperation) exprNode()            {}

// EqualityOperation is `==` / `!=`.
type EqualityOperation struct {
	Negate   bool
	LHS, RHS Expr
	Pos      position.Pos
}

func (e *EqualityOperation) String() string      { return fmt.Sprintf("(%s == %s)", e.LHS, e.RHS) }
func (e *EqualityOperation) Position() position.Pos { return e.Pos }
func (e *EqualityOperation) exprNode()            {}

// OrderOperation is a relational comparison.
type OrderOperation struct {
	Operator OrderOperator
	LHS, RHS Expr
	Pos      position.Pos
}

func (o *OrderOperation) String() string      { return fmt.Sprintf("(%s cmp %s)", o.LHS, o.RHS) }
func (o *OrderOperation) Position() position.Pos { return o.Pos }
func (o *OrderOperation) exprNode()            {}

// BooleanOperation is `&&` / `||`, desugared during lowering into If.
type BooleanOperation struct {
	Operator BooleanOperator
	LHS, RHS Expr
	Pos      position.Pos
}

func (b *BooleanOperation) String() string      { return fmt.Sprintf("(%s bool %s)", b.LHS, b.RHS) }
func (b *BooleanOperation) Position() position.Pos { return b.Pos }
func (b *BooleanOperation) exprNode()            {}

// Not is unary boolean negation.
type Not struct {
	Operand Expr
	Pos     position.Pos
}

func (n *Not) String() string      { return fmt.Sprintf("!%s", n.Operand) }
func (n *Not) Position() position.Pos { return n.Pos }
func (n *Not) exprNode()            {}

// TryOperation is the postfix `?` operator.
type TryOperation struct {
	Operand Expr
	Pos     position.Pos
}

func (t *TryOperation) String() string      { return fmt.Sprintf("%s?", t.Operand) }
func (t *TryOperation) Position() position.Pos { return t.Pos }
func (t *TryOperation) exprNode()            {}

// ---------------------------------------------------------------------------
// Statements / blocks

// LetStatement is a named or unnamed let-binding inside a block; an
// unnamed binding (Name == "") is evaluated for effect only.
type LetStatement struct {
	Name  string
	Type  TypeRef
	Value Expr
	Pos   position.Pos
}

// Block is a sequence of let-statements terminated by an expression.
type Block struct {
	Statements []*LetStatement
	Result     Expr
	Pos        position.Pos
}

func (b *Block) String() string      { return fmt.Sprintf("{ ...; %s }", b.Result) }
func (b *Block) Position() position.Pos { return b.Pos }
func (b *Block) exprNode()            {}
