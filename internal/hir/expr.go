package hir

import "fmt"

// Expr is an HIR expression node. Every node that carries a type slot
// exposes it through Type/SetType (the Typed interface) so the type analyzer
// (internal/types) can fill it in a uniform way.
type Expr interface {
	fmt.Stringer
	Position() Pos
	exprNode()
}

// Typed is implemented by expression nodes with an inferable type
// slot; TypeNotInferred is raised by the checker when, after
// inference, Type() is still nil.
type Typed interface {
	Type() Type
	SetType(Type)
}

type NumberLit struct {
	Value float64
	Pos_  Pos
}

func (n *NumberLit) String() string { return fmt.Sprintf("%v", n.Value) }
func (n *NumberLit) Position() Pos  { return n.Pos_ }
func (n *NumberLit) exprNode()      {}

type ByteStringLit struct {
	Value []byte
	Pos_  Pos
}

func (b *ByteStringLit) String() string { return fmt.Sprintf("%q", b.Value) }
func (b *ByteStringLit) Position() Pos  { return b.Pos_ }
func (b *ByteStringLit) exprNode()      {}

type BooleanLit struct {
	Value bool
	Pos_  Pos
}

func (b *BooleanLit) String() string { return fmt.Sprintf("%v", b.Value) }
func (b *BooleanLit) Position() Pos  { return b.Pos_ }
func (b *BooleanLit) exprNode()      {}

type NoneLit struct{ Pos_ Pos }

func (n *NoneLit) String() string { return "none" }
func (n *NoneLit) Position() Pos  { return n.Pos_ }
func (n *NoneLit) exprNode()      {}

// Variable references a (possibly module-qualified) name. Type_ is
// filled by inference from the enclosing scope.
type Variable struct {
	Name  string
	Type_ Type
	Pos_  Pos
}

func (v *Variable) String() string  { return v.Name }
func (v *Variable) Position() Pos   { return v.Pos_ }
func (v *Variable) exprNode()       {}
func (v *Variable) Type() Type      { return v.Type_ }
func (v *Variable) SetType(t Type)  { v.Type_ = t }

// Argument is a lambda argument; Type is always declared (the surface
// grammar requires argument type annotations).
type Argument struct {
	Name string
	Type Type
}

// Lambda is a function literal. ResultType is declared or, if nil at
// parse time, synthesized from the body by inference; after
// inference it is always populated.
type Lambda struct {
	Arguments    []*Argument
	ResultType   Type
	Body         Expr
	FunctionType_ Type // the function's own type; filled by inference, used by Call
	Pos_         Pos
}

func (l *Lambda) String() string     { return fmt.Sprintf("\\(...) { %s }", l.Body) }
func (l *Lambda) Position() Pos      { return l.Pos_ }
func (l *Lambda) exprNode()          {}
func (l *Lambda) Type() Type         { return l.FunctionType_ }
func (l *Lambda) SetType(t Type)     { l.FunctionType_ = t }

// Call is curried function application.
type Call struct {
	Function  Expr
	Arguments []Expr
	Type_     Type // synthesized result type
	Pos_      Pos
}

func (c *Call) String() string { return fmt.Sprintf("%s(...)", c.Function) }
func (c *Call) Position() Pos  { return c.Pos_ }
func (c *Call) exprNode()      {}
func (c *Call) Type() Type     { return c.Type_ }
func (c *Call) SetType(t Type) { c.Type_ = t }

// If is the plain conditional; its type is the union (after
// canonicalization) of the branch types, unless they are equal.
type If struct {
	Condition, Then, Else Expr
	Type_                 Type
	Pos_                   Pos
}

func (i *If) String() string { return fmt.Sprintf("if %s then %s else %s", i.Condition, i.Then, i.Else) }
func (i *If) Position() Pos  { return i.Pos_ }
func (i *If) exprNode()      {}
func (i *If) Type() Type     { return i.Type_ }
func (i *If) SetType(t Type) { i.Type_ = t }

// IfList destructures a list.
type IfList struct {
	Argument                    Expr
	FirstName, RestName         string
	FirstType, RestType         Type // inferred from Argument's list element type
	Then, Else                  Expr
	Type_                       Type
	Pos_                        Pos
}

func (i *IfList) String() string { return "if-list" }
func (i *IfList) Position() Pos  { return i.Pos_ }
func (i *IfList) exprNode()      {}
func (i *IfList) Type() Type     { return i.Type_ }
func (i *IfList) SetType(t Type) { i.Type_ = t }

// IfMap looks up a key.
type IfMap struct {
	Map, Key            Expr
	ValueName           string
	ValueType           Type
	Then, Else          Expr
	Type_               Type
	Pos_                Pos
}

func (i *IfMap) String() string { return "if-map" }
func (i *IfMap) Position() Pos  { return i.Pos_ }
func (i *IfMap) exprNode()      {}
func (i *IfMap) Type() Type     { return i.Type_ }
func (i *IfMap) SetType(t Type) { i.Type_ = t }

// IfTypeBranch is one arm of an IfType.
type IfTypeBranch struct {
	Type Type
	Then Expr
}

// IfType is a type-case. ArgumentType is the argument's declared type
// before narrowing; each branch narrows it to Type, and the else
// branch (if present) narrows it to the difference of ArgumentType
// and the union of all branch types.
type IfType struct {
	ArgumentName string
	ArgumentType Type
	Argument     Expr
	Branches     []*IfTypeBranch
	ElseType     Type // nil when there is no else branch
	Else         Expr
	Type_        Type
	Pos_         Pos
}

func (i *IfType) String() string { return "if-type" }
func (i *IfType) Position() Pos  { return i.Pos_ }
func (i *IfType) exprNode()      {}
func (i *IfType) Type() Type     { return i.Type_ }
func (i *IfType) SetType(t Type) { i.Type_ = t }

// RecordConstruction builds a record value.
type RecordConstruction struct {
	TypeName string
	Fields   map[string]Expr
	Order    []string
	Pos_     Pos
}

func (r *RecordConstruction) String() string { return fmt.Sprintf("%s{...}", r.TypeName) }
func (r *RecordConstruction) Position() Pos  { return r.Pos_ }
func (r *RecordConstruction) exprNode()      {}
func (r *RecordConstruction) Type() Type     { return &RecordType{Name: r.TypeName} }
func (r *RecordConstruction) SetType(Type)   {}

// RecordUpdate overrides a subset of fields.
type RecordUpdate struct {
	Record Expr
	Fields map[string]Expr
	Order  []string
	Type_  Type
	Pos_   Pos
}

func (r *RecordUpdate) String() string { return fmt.Sprintf("%s{...|...}", r.Record) }
func (r *RecordUpdate) Position() Pos  { return r.Pos_ }
func (r *RecordUpdate) exprNode()      {}
func (r *RecordUpdate) Type() Type     { return r.Type_ }
func (r *RecordUpdate) SetType(t Type) { r.Type_ = t }

// RecordField accesses a single field.
type RecordField struct {
	Record Expr
	Name   string
	Type_  Type
	Pos_   Pos
}

func (r *RecordField) String() string { return fmt.Sprintf("%s.%s", r.Record, r.Name) }
func (r *RecordField) Position() Pos  { return r.Pos_ }
func (r *RecordField) exprNode()      {}
func (r *RecordField) Type() Type     { return r.Type_ }
func (r *RecordField) SetType(t Type) { r.Type_ = t }

// ListElement is a plain element or (if Splice) an inlined sub-list.
type ListElement struct {
	Value  Expr
	Splice bool
}

type ListLit struct {
	Elements []*ListElement
	Type_    Type // List(element type)
	Pos_     Pos
}

func (l *ListLit) String() string { return "[...]" }
func (l *ListLit) Position() Pos  { return l.Pos_ }
func (l *ListLit) exprNode()      {}
func (l *ListLit) Type() Type     { return l.Type_ }
func (l *ListLit) SetType(t Type) { l.Type_ = t }

type MapEntry struct {
	Key, Value Expr
}

type MapLit struct {
	Entries []*MapEntry
	Type_   Type
	Pos_    Pos
}

func (m *MapLit) String() string { return "{...}" }
func (m *MapLit) Position() Pos  { return m.Pos_ }
func (m *MapLit) exprNode()      {}
func (m *MapLit) Type() Type     { return m.Type_ }
func (m *MapLit) SetType(t Type) { m.Type_ = t }

type ComprehensionBranch struct {
	Names     []string
	NameTypes []Type
	Iteratee  Expr
}

type ListComprehension struct {
	Element   Expr
	Branches  []*ComprehensionBranch
	Condition Expr
	Type_     Type
	Pos_      Pos
}

func (l *ListComprehension) String() string { return "[... for ...]" }
func (l *ListComprehension) Position() Pos  { return l.Pos_ }
func (l *ListComprehension) exprNode()      {}
func (l *ListComprehension) Type() Type     { return l.Type_ }
func (l *ListComprehension) SetType(t Type) { l.Type_ = t }

type ArithmeticOp int

const (
	OpAdd ArithmeticOp = iota
	OpSubtract
	OpMultiply
	OpDivide
)

type ArithmeticOperation struct {
	Operator ArithmeticOp
	LHS, RHS Expr
	Pos_     Pos
}

func (a *ArithmeticOperation) String() string { return "arith" }
func (a *ArithmeticOperation) Position() Pos  { return a.Pos_ }
func (a *ArithmeticOperation) exprNode()      {}
func (a *ArithmeticOperation) Type() Type     { return NumberType{} }
func (a *ArithmeticOperation) SetType(Type)   {}

type EqualityOperation struct {
	Negate   bool
	LHS, RHS Expr
	Pos_     Pos
}

func (e *EqualityOperation) String() string { return "eq" }
func (e *EqualityOperation) Position() Pos  { return e.Pos_ }
func (e *EqualityOperation) exprNode()      {}
func (e *EqualityOperation) Type() Type     { return BooleanType{} }
func (e *EqualityOperation) SetType(Type)   {}

type OrderOp int

const (
	OpLessThan OrderOp = iota
	OpLessThanOrEqual
	OpGreaterThan
	OpGreaterThanOrEqual
)

type OrderOperation struct {
	Operator OrderOp
	LHS, RHS Expr
	Pos_     Pos
}

func (o *OrderOperation) String() string { return "cmp" }
func (o *OrderOperation) Position() Pos  { return o.Pos_ }
func (o *OrderOperation) exprNode()      {}
func (o *OrderOperation) Type() Type     { return BooleanType{} }
func (o *OrderOperation) SetType(Type)   {}

// Not is unary boolean negation.
type Not struct {
	Operand Expr
	Pos_    Pos
}

func (n *Not) String() string { return "!" }
func (n *Not) Position() Pos  { return n.Pos_ }
func (n *Not) exprNode()      {}
func (n *Not) Type() Type     { return BooleanType{} }
func (n *Not) SetType(Type)   {}

// TryOperation is the postfix `?` operator; valid only inside a
// function whose result type admits Error.
type TryOperation struct {
	Operand Expr
	Type_   Type
	Pos_    Pos
}

func (t *TryOperation) String() string { return fmt.Sprintf("%s?", t.Operand) }
func (t *TryOperation) Position() Pos  { return t.Pos_ }
func (t *TryOperation) exprNode()      {}
func (t *TryOperation) Type() Type     { return t.Type_ }
func (t *TryOperation) SetType(ty Type) { t.Type_ = ty }

// TypeCoercion records a widening from From to To, inserted wherever
// subsumption succeeded but structural equality did not. A coercion
// into Any or a union is the MIR lowering trigger for Variant
// construction.
type TypeCoercion struct {
	From, To Type
	Operand  Expr
	Pos_     Pos
}

func (c *TypeCoercion) String() string { return fmt.Sprintf("(%s :: %s)", c.Operand, c.To) }
func (c *TypeCoercion) Position() Pos  { return c.Pos_ }
func (c *TypeCoercion) exprNode()      {}
func (c *TypeCoercion) Type() Type     { return c.To }
func (c *TypeCoercion) SetType(Type)   {}

// LetStatement is one binding inside a Block; Name == "" is a
// unit-typed expression evaluated only for effect.
type LetStatement struct {
	Name  string
	Type  Type
	Value Expr
}

// Block is a sequence of let-bindings terminated by an expression.
type Block struct {
	Statements []*LetStatement
	Result     Expr
	Pos_       Pos
}

func (b *Block) String() string { return "{...}" }
func (b *Block) Position() Pos  { return b.Pos_ }
func (b *Block) exprNode()      {}
func (b *Block) Type() Type     { return b.Result.(Typed).Type() }
func (b *Block) SetType(Type)   {}
