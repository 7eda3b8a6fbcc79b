package mir

// Expr is an MIR expression node.
type Expr interface {
	mirExprNode()
	Position() Pos
}

type BooleanLit struct {
	Value bool
	Pos_  Pos
}

func (BooleanLit) mirExprNode()    {}
func (b BooleanLit) Position() Pos { return b.Pos_ }

type ByteStringLit struct {
	Value []byte
	Pos_  Pos
}

func (ByteStringLit) mirExprNode()    {}
func (b ByteStringLit) Position() Pos { return b.Pos_ }

type NumberLit struct {
	Value float64
	Pos_  Pos
}

func (NumberLit) mirExprNode()    {}
func (n NumberLit) Position() Pos { return n.Pos_ }

type NoneLit struct{ Pos_ Pos }

func (NoneLit) mirExprNode()    {}
func (n NoneLit) Position() Pos { return n.Pos_ }

type Variable struct {
	Name string
	Type Type
	Pos_ Pos
}

func (*Variable) mirExprNode()    {}
func (v *Variable) Position() Pos { return v.Pos_ }

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

func (*ArithmeticOperation) mirExprNode()    {}
func (a *ArithmeticOperation) Position() Pos { return a.Pos_ }

type ComparisonOp int

const (
	CmpEqual ComparisonOp = iota
	CmpNotEqual
	CmpLessThan
	CmpLessThanOrEqual
	CmpGreaterThan
	CmpGreaterThanOrEqual
)

type ComparisonOperation struct {
	Operator ComparisonOp
	LHS, RHS Expr
	Pos_     Pos
}

func (*ComparisonOperation) mirExprNode()    {}
func (c *ComparisonOperation) Position() Pos { return c.Pos_ }

type If struct {
	Condition, Then, Else Expr
	Pos_                  Pos
}

func (*If) mirExprNode()    {}
func (i *If) Position() Pos { return i.Pos_ }

// CaseAlternative binds Name to the argument's payload when it
// carries one of VariantTypeIDs, and evaluates Body.
type CaseAlternative struct {
	VariantTypeIDs []string
	Name           string
	BoundType      Type
	Body           Expr
}

// Case is the variant-dispatch form; if-type, if-list, and if-map all
// lower to Case over a type-information tag.
type Case struct {
	Argument     Expr
	Alternatives []*CaseAlternative
	Default      Expr // nil when every tag is covered
	Pos_         Pos
}

func (*Case) mirExprNode()    {}
func (c *Case) Position() Pos { return c.Pos_ }

type Let struct {
	Name  string
	Type  Type
	Bound Expr
	Body  Expr
	Pos_  Pos
}

func (*Let) mirExprNode()    {}
func (l *Let) Position() Pos { return l.Pos_ }

// LetRecursive binds a locally defined function (e.g. a lowered
// lambda) under a synthetic name visible in its own body, then
// evaluates Body with that name in scope.
type LetRecursive struct {
	Function *FunctionDefinition
	Body     Expr
	Pos_     Pos
}

func (*LetRecursive) mirExprNode()    {}
func (l *LetRecursive) Position() Pos { return l.Pos_ }

// FunctionApplication is curried application: Arguments are applied
// one at a time against Function.
type FunctionApplication struct {
	Function  Expr
	Arguments []Expr
	Pos_      Pos
}

func (*FunctionApplication) mirExprNode()    {}
func (f *FunctionApplication) Position() Pos { return f.Pos_ }

type RecordFieldValue struct {
	Name  string
	Value Expr
}

type Record struct {
	TypeName string
	Fields   []*RecordFieldValue
	Pos_     Pos
}

func (*Record) mirExprNode()    {}
func (r *Record) Position() Pos { return r.Pos_ }

type RecordField struct {
	Record Expr
	Name   string
	Type   Type
	Pos_   Pos
}

func (*RecordField) mirExprNode()    {}
func (r *RecordField) Position() Pos { return r.Pos_ }

// Variant constructs a tagged-union value; TypeID names the concrete
// specialization registered by internal/mirpass.
type Variant struct {
	TypeID  string
	Payload Expr
	Pos_    Pos
}

func (*Variant) mirExprNode()    {}
func (v *Variant) Position() Pos { return v.Pos_ }

// TryOperation is the lowered postfix `?`: Name is bound to the
// unwrapped non-error payload within Then; propagation of the error
// arm is handled by the enclosing function's result wrapping.
type TryOperation struct {
	Operand Expr
	Name    string
	Type    Type
	Then    Expr
	Pos_    Pos
}

func (*TryOperation) mirExprNode()    {}
func (t *TryOperation) Position() Pos { return t.Pos_ }

// CloneVariables and DropVariables are reference-count markers
// inserted by internal/rc; they carry no runtime value of their own
// and always wrap a Body that is evaluated after the markers take
// effect.
type CloneVariables struct {
	Names map[string]Type
	Body  Expr
	Pos_  Pos
}

func (*CloneVariables) mirExprNode()    {}
func (c *CloneVariables) Position() Pos { return c.Pos_ }

type DropVariables struct {
	Names map[string]Type
	Body  Expr
	Pos_  Pos
}

func (*DropVariables) mirExprNode()    {}
func (d *DropVariables) Position() Pos { return d.Pos_ }

// ReusedRecord marks a Record construction that internal/rc proved
// may reuse the heap cell of an identically shaped record dropped on
// every path into it; ID groups record types by (type, field count)
// so the backend never matches allocations across incompatible types.
type ReusedRecord struct {
	ID     string
	Record *Record
	Pos_   Pos
}

func (*ReusedRecord) mirExprNode()    {}
func (r *ReusedRecord) Position() Pos { return r.Pos_ }
