package ast

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/lucid-lang/lucidc/internal/modpath"
	"github.com/lucid-lang/lucidc/internal/position"
)

// This file is the wire format an external front end (lexer/parser)
// targets to hand a parsed module to this pipeline: a tagged-union
// JSON encoding of every Expr/TypeRef kind, mirroring the style
// internal/iface uses for hir.Type.

type posJSON struct {
	Path     string `json:"path"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	LineText string `json:"line_text"`
}

func toPosJSON(p position.Pos) posJSON {
	return posJSON{Path: p.Path, Line: p.Line, Column: p.Column, LineText: p.LineText}
}
func fromPosJSON(p posJSON) position.Pos {
	return position.New(p.Path, p.Line, p.Column, p.LineText)
}

// ---------------------------------------------------------------------------
// TypeRef

type typeRefJSON struct {
	Any      *struct{}         `json:"Any,omitempty"`
	Boolean  *struct{}         `json:"Boolean,omitempty"`
	Number   *struct{}         `json:"Number,omitempty"`
	String   *struct{}         `json:"String,omitempty"`
	None     *struct{}         `json:"None,omitempty"`
	Error    *struct{}         `json:"Error,omitempty"`
	Function *functionRefJSON  `json:"Function,omitempty"`
	List     *listRefJSON      `json:"List,omitempty"`
	Map      *mapRefJSON       `json:"Map,omitempty"`
	Name     *nameRefJSON      `json:"Name,omitempty"`
	Union    *unionRefJSON     `json:"Union,omitempty"`
	Pos      posJSON           `json:"pos"`
}

type functionRefJSON struct {
	Arguments []*typeRefJSON `json:"arguments"`
	Result    *typeRefJSON   `json:"result"`
}
type listRefJSON struct {
	Element *typeRefJSON `json:"element"`
}
type mapRefJSON struct {
	Key   *typeRefJSON `json:"key"`
	Value *typeRefJSON `json:"value"`
}
type nameRefJSON struct {
	Name string `json:"name"`
}
type unionRefJSON struct {
	LHS *typeRefJSON `json:"lhs"`
	RHS *typeRefJSON `json:"rhs"`
}

func toTypeRefJSON(t TypeRef) *typeRefJSON {
	if t == nil {
		return nil
	}
	pos := toPosJSON(t.Position())
	switch v := t.(type) {
	case *AnyTypeRef:
		return &typeRefJSON{Any: &struct{}{}, Pos: pos}
	case *BooleanTypeRef:
		return &typeRefJSON{Boolean: &struct{}{}, Pos: pos}
	case *NumberTypeRef:
		return &typeRefJSON{Number: &struct{}{}, Pos: pos}
	case *StringTypeRef:
		return &typeRefJSON{String: &struct{}{}, Pos: pos}
	case *NoneTypeRef:
		return &typeRefJSON{None: &struct{}{}, Pos: pos}
	case *ErrorTypeRef:
		return &typeRefJSON{Error: &struct{}{}, Pos: pos}
	case *FunctionTypeRef:
		args := make([]*typeRefJSON, len(v.Arguments))
		for i, a := range v.Arguments {
			args[i] = toTypeRefJSON(a)
		}
		return &typeRefJSON{Function: &functionRefJSON{Arguments: args, Result: toTypeRefJSON(v.Result)}, Pos: pos}
	case *ListTypeRef:
		return &typeRefJSON{List: &listRefJSON{Element: toTypeRefJSON(v.Element)}, Pos: pos}
	case *MapTypeRef:
		return &typeRefJSON{Map: &mapRefJSON{Key: toTypeRefJSON(v.Key), Value: toTypeRefJSON(v.Value)}, Pos: pos}
	case *NameTypeRef:
		return &typeRefJSON{Name: &nameRefJSON{Name: v.Name}, Pos: pos}
	case *UnionTypeRef:
		return &typeRefJSON{Union: &unionRefJSON{LHS: toTypeRefJSON(v.LHS), RHS: toTypeRefJSON(v.RHS)}, Pos: pos}
	default:
		return nil
	}
}

func fromTypeRefJSON(t *typeRefJSON) (TypeRef, error) {
	if t == nil {
		return nil, nil
	}
	pos := fromPosJSON(t.Pos)
	switch {
	case t.Any != nil:
		return &AnyTypeRef{Pos: pos}, nil
	case t.Boolean != nil:
		return &BooleanTypeRef{Pos: pos}, nil
	case t.Number != nil:
		return &NumberTypeRef{Pos: pos}, nil
	case t.String != nil:
		return &StringTypeRef{Pos: pos}, nil
	case t.None != nil:
		return &NoneTypeRef{Pos: pos}, nil
	case t.Error != nil:
		return &ErrorTypeRef{Pos: pos}, nil
	case t.Function != nil:
		args := make([]TypeRef, len(t.Function.Arguments))
		for i, a := range t.Function.Arguments {
			at, err := fromTypeRefJSON(a)
			if err != nil {
				return nil, err
			}
			args[i] = at
		}
		res, err := fromTypeRefJSON(t.Function.Result)
		if err != nil {
			return nil, err
		}
		return &FunctionTypeRef{Arguments: args, Result: res, Pos: pos}, nil
	case t.List != nil:
		el, err := fromTypeRefJSON(t.List.Element)
		if err != nil {
			return nil, err
		}
		return &ListTypeRef{Element: el, Pos: pos}, nil
	case t.Map != nil:
		k, err := fromTypeRefJSON(t.Map.Key)
		if err != nil {
			return nil, err
		}
		val, err := fromTypeRefJSON(t.Map.Value)
		if err != nil {
			return nil, err
		}
		return &MapTypeRef{Key: k, Value: val, Pos: pos}, nil
	case t.Name != nil:
		return &NameTypeRef{Name: t.Name.Name, Pos: pos}, nil
	case t.Union != nil:
		l, err := fromTypeRefJSON(t.Union.LHS)
		if err != nil {
			return nil, err
		}
		r, err := fromTypeRefJSON(t.Union.RHS)
		if err != nil {
			return nil, err
		}
		return &UnionTypeRef{LHS: l, RHS: r, Pos: pos}, nil
	default:
		return nil, fmt.Errorf("ast: type-ref JSON object has no recognized tag")
	}
}

// ---------------------------------------------------------------------------
// Expr

type exprJSON struct {
	NumberLiteral       *numberLiteralJSON       `json:"NumberLiteral,omitempty"`
	ByteStringLiteral   *byteStringLiteralJSON   `json:"ByteStringLiteral,omitempty"`
	BooleanLiteral      *booleanLiteralJSON      `json:"BooleanLiteral,omitempty"`
	NoneLiteral         *struct{}                `json:"NoneLiteral,omitempty"`
	Variable            *variableJSON            `json:"Variable,omitempty"`
	Lambda               *lambdaJSON              `json:"Lambda,omitempty"`
	Call                 *callJSON                `json:"Call,omitempty"`
	If                   *ifJSON                  `json:"If,omitempty"`
	IfList               *ifListJSON              `json:"IfList,omitempty"`
	IfMap                *ifMapJSON               `json:"IfMap,omitempty"`
	IfType               *ifTypeJSON              `json:"IfType,omitempty"`
	RecordConstruction   *recordConstructionJSON  `json:"RecordConstruction,omitempty"`
	RecordUpdate         *recordUpdateJSON        `json:"RecordUpdate,omitempty"`
	RecordField          *recordFieldJSON         `json:"RecordField,omitempty"`
	ListLiteral          *listLiteralJSON         `json:"ListLiteral,omitempty"`
	MapLiteral           *mapLiteralJSON          `json:"MapLiteral,omitempty"`
	ListComprehension    *listComprehensionJSON   `json:"ListComprehension,omitempty"`
	ArithmeticOperation  *arithmeticOperationJSON `json:"ArithmeticOperation,omitempty"`
	EqualityOperation    *equalityOperationJSON   `json:"EqualityOperation,omitempty"`
	OrderOperation       *orderOperationJSON      `json:"OrderOperation,omitempty"`
	BooleanOperation     *booleanOperationJSON    `json:"BooleanOperation,omitempty"`
	Not                  *notJSON                 `json:"Not,omitempty"`
	TryOperation         *tryOperationJSON        `json:"TryOperation,omitempty"`
	Block                *blockJSON               `json:"Block,omitempty"`
	Pos                  posJSON                  `json:"pos"`
}

type numberLiteralJSON struct {
	Text string `json:"text"`
	Base int    `json:"base"`
}
type byteStringLiteralJSON struct {
	Raw string `json:"raw"`
}
type booleanLiteralJSON struct {
	Value bool `json:"value"`
}
type variableJSON struct {
	Name string `json:"name"`
}
type argumentJSON struct {
	Name string       `json:"name"`
	Type *typeRefJSON `json:"type"`
	Pos  posJSON      `json:"pos"`
}
type lambdaJSON struct {
	Arguments  []*argumentJSON `json:"arguments"`
	ResultType *typeRefJSON    `json:"result_type,omitempty"`
	Body       *exprJSON       `json:"body"`
}
type callJSON struct {
	Function  *exprJSON   `json:"function"`
	Arguments []*exprJSON `json:"arguments"`
}
type ifJSON struct {
	Condition *exprJSON `json:"condition"`
	Then      *exprJSON `json:"then"`
	Else      *exprJSON `json:"else"`
}
type ifListJSON struct {
	Argument  *exprJSON    `json:"argument"`
	FirstName string       `json:"first_name"`
	RestName  string       `json:"rest_name"`
	ThenType  *typeRefJSON `json:"then_type,omitempty"`
	Then      *exprJSON    `json:"then"`
	Else      *exprJSON    `json:"else"`
}
type ifMapJSON struct {
	Map       *exprJSON `json:"map"`
	Key       *exprJSON `json:"key"`
	ValueName string    `json:"value_name"`
	Then      *exprJSON `json:"then"`
	Else      *exprJSON `json:"else"`
}
type ifTypeBranchJSON struct {
	Type *typeRefJSON `json:"type"`
	Then *exprJSON    `json:"then"`
}
type ifTypeJSON struct {
	ArgumentName string              `json:"argument_name"`
	Argument     *exprJSON           `json:"argument"`
	Branches     []*ifTypeBranchJSON `json:"branches"`
	Else         *exprJSON           `json:"else,omitempty"`
}
type fieldValueJSON struct {
	Name  string    `json:"name"`
	Value *exprJSON `json:"value"`
}
type recordConstructionJSON struct {
	Type   *typeRefJSON      `json:"type"`
	Fields []*fieldValueJSON `json:"fields"`
	Order  []string          `json:"order"`
}
type recordUpdateJSON struct {
	Record *exprJSON         `json:"record"`
	Fields []*fieldValueJSON `json:"fields"`
	Order  []string          `json:"order"`
}
type recordFieldJSON struct {
	Record *exprJSON `json:"record"`
	Name   string    `json:"name"`
}
type listElementJSON struct {
	Value  *exprJSON `json:"value"`
	Splice bool      `json:"splice"`
}
type listLiteralJSON struct {
	Elements []*listElementJSON `json:"elements"`
}
type mapEntryJSON struct {
	Key   *exprJSON `json:"key"`
	Value *exprJSON `json:"value"`
}
type mapLiteralJSON struct {
	Entries []*mapEntryJSON `json:"entries"`
}
type comprehensionBranchJSON struct {
	Names    []string  `json:"names"`
	Iteratee *exprJSON `json:"iteratee"`
}
type listComprehensionJSON struct {
	Element   *exprJSON                  `json:"element"`
	Branches  []*comprehensionBranchJSON `json:"branches"`
	Condition *exprJSON                  `json:"condition,omitempty"`
}
type arithmeticOperationJSON struct {
	Operator int       `json:"operator"`
	LHS      *exprJSON `json:"lhs"`
	RHS      *exprJSON `json:"rhs"`
}
type equalityOperationJSON struct {
	Negate bool      `json:"negate"`
	LHS    *exprJSON `json:"lhs"`
	RHS    *exprJSON `json:"rhs"`
}
type orderOperationJSON struct {
	Operator int       `json:"operator"`
	LHS      *exprJSON `json:"lhs"`
	RHS      *exprJSON `json:"rhs"`
}
type booleanOperationJSON struct {
	Operator int       `json:"operator"`
	LHS      *exprJSON `json:"lhs"`
	RHS      *exprJSON `json:"rhs"`
}
type notJSON struct {
	Operand *exprJSON `json:"operand"`
}
type tryOperationJSON struct {
	Operand *exprJSON `json:"operand"`
}
type letStatementJSON struct {
	Name  string       `json:"name"`
	Type  *typeRefJSON `json:"type,omitempty"`
	Value *exprJSON    `json:"value"`
	Pos   posJSON      `json:"pos"`
}
type blockJSON struct {
	Statements []*letStatementJSON `json:"statements"`
	Result     *exprJSON           `json:"result"`
}

func toExprJSON(e Expr) *exprJSON {
	if e == nil {
		return nil
	}
	pos := toPosJSON(e.Position())
	switch v := e.(type) {
	case *NumberLiteral:
		return &exprJSON{NumberLiteral: &numberLiteralJSON{Text: v.Text, Base: int(v.Base)}, Pos: pos}
	case *ByteStringLiteral:
		return &exprJSON{ByteStringLiteral: &byteStringLiteralJSON{Raw: v.Raw}, Pos: pos}
	case *BooleanLiteral:
		return &exprJSON{BooleanLiteral: &booleanLiteralJSON{Value: v.Value}, Pos: pos}
	case *NoneLiteral:
		return &exprJSON{NoneLiteral: &struct{}{}, Pos: pos}
	case *Variable:
		return &exprJSON{Variable: &variableJSON{Name: v.Name}, Pos: pos}
	case *Lambda:
		return &exprJSON{Lambda: toLambdaJSON(v), Pos: pos}
	case *Call:
		args := make([]*exprJSON, len(v.Arguments))
		for i, a := range v.Arguments {
			args[i] = toExprJSON(a)
		}
		return &exprJSON{Call: &callJSON{Function: toExprJSON(v.Function), Arguments: args}, Pos: pos}
	case *If:
		return &exprJSON{If: &ifJSON{Condition: toExprJSON(v.Condition), Then: toExprJSON(v.Then), Else: toExprJSON(v.Else)}, Pos: pos}
	case *IfList:
		return &exprJSON{IfList: &ifListJSON{
			Argument: toExprJSON(v.Argument), FirstName: v.FirstName, RestName: v.RestName,
			ThenType: toTypeRefJSON(v.ThenType), Then: toExprJSON(v.Then), Else: toExprJSON(v.Else),
		}, Pos: pos}
	case *IfMap:
		return &exprJSON{IfMap: &ifMapJSON{
			Map: toExprJSON(v.Map), Key: toExprJSON(v.Key), ValueName: v.ValueName,
			Then: toExprJSON(v.Then), Else: toExprJSON(v.Else),
		}, Pos: pos}
	case *IfType:
		branches := make([]*ifTypeBranchJSON, len(v.Branches))
		for i, b := range v.Branches {
			branches[i] = &ifTypeBranchJSON{Type: toTypeRefJSON(b.Type), Then: toExprJSON(b.Then)}
		}
		return &exprJSON{IfType: &ifTypeJSON{
			ArgumentName: v.ArgumentName, Argument: toExprJSON(v.Argument), Branches: branches, Else: toExprJSON(v.Else),
		}, Pos: pos}
	case *RecordConstruction:
		fields := make([]*fieldValueJSON, len(v.Order))
		for i, name := range v.Order {
			fields[i] = &fieldValueJSON{Name: name, Value: toExprJSON(v.Fields[name])}
		}
		return &exprJSON{RecordConstruction: &recordConstructionJSON{Type: toTypeRefJSON(v.Type), Fields: fields, Order: v.Order}, Pos: pos}
	case *RecordUpdate:
		fields := make([]*fieldValueJSON, len(v.Order))
		for i, name := range v.Order {
			fields[i] = &fieldValueJSON{Name: name, Value: toExprJSON(v.Fields[name])}
		}
		return &exprJSON{RecordUpdate: &recordUpdateJSON{Record: toExprJSON(v.Record), Fields: fields, Order: v.Order}, Pos: pos}
	case *RecordField:
		return &exprJSON{RecordField: &recordFieldJSON{Record: toExprJSON(v.Record), Name: v.Name}, Pos: pos}
	case *ListLiteral:
		elems := make([]*listElementJSON, len(v.Elements))
		for i, el := range v.Elements {
			elems[i] = &listElementJSON{Value: toExprJSON(el.Value), Splice: el.Splice}
		}
		return &exprJSON{ListLiteral: &listLiteralJSON{Elements: elems}, Pos: pos}
	case *MapLiteral:
		entries := make([]*mapEntryJSON, len(v.Entries))
		for i, e := range v.Entries {
			entries[i] = &mapEntryJSON{Key: toExprJSON(e.Key), Value: toExprJSON(e.Value)}
		}
		return &exprJSON{MapLiteral: &mapLiteralJSON{Entries: entries}, Pos: pos}
	case *ListComprehension:
		branches := make([]*comprehensionBranchJSON, len(v.Branches))
		for i, b := range v.Branches {
			branches[i] = &comprehensionBranchJSON{Names: b.Names, Iteratee: toExprJSON(b.Iteratee)}
		}
		return &exprJSON{ListComprehension: &listComprehensionJSON{Element: toExprJSON(v.Element), Branches: branches, Condition: toExprJSON(v.Condition)}, Pos: pos}
	case *ArithmeticOperation:
		return &exprJSON{ArithmeticOperation: &arithmeticOperationJSON{Operator: int(v.Operator), LHS: toExprJSON(v.LHS), RHS: toExprJSON(v.RHS)}, Pos: pos}
	case *EqualityOperation:
		return &exprJSON{EqualityOperation: &equalityOperationJSON{Negate: v.Negate, LHS: toExprJSON(v.LHS), RHS: toExprJSON(v.RHS)}, Pos: pos}
	case *OrderOperation:
		return &exprJSON{OrderOperation: &orderOperationJSON{Operator: int(v.Operator), LHS: toExprJSON(v.LHS), RHS: toExprJSON(v.RHS)}, Pos: pos}
	case *BooleanOperation:
		return &exprJSON{BooleanOperation: &booleanOperationJSON{Operator: int(v.Operator), LHS: toExprJSON(v.LHS), RHS: toExprJSON(v.RHS)}, Pos: pos}
	case *Not:
		return &exprJSON{Not: &notJSON{Operand: toExprJSON(v.Operand)}, Pos: pos}
	case *TryOperation:
		return &exprJSON{TryOperation: &tryOperationJSON{Operand: toExprJSON(v.Operand)}, Pos: pos}
	case *Block:
		stmts := make([]*letStatementJSON, len(v.Statements))
		for i, s := range v.Statements {
			stmts[i] = &letStatementJSON{Name: s.Name, Type: toTypeRefJSON(s.Type), Value: toExprJSON(s.Value), Pos: toPosJSON(s.Pos)}
		}
		return &exprJSON{Block: &blockJSON{Statements: stmts, Result: toExprJSON(v.Result)}, Pos: pos}
	default:
		return nil
	}
}

func fromExprJSON(e *exprJSON) (Expr, error) {
	if e == nil {
		return nil, nil
	}
	pos := fromPosJSON(e.Pos)
	switch {
	case e.NumberLiteral != nil:
		return &NumberLiteral{Text: e.NumberLiteral.Text, Base: NumberBase(e.NumberLiteral.Base), Pos: pos}, nil
	case e.ByteStringLiteral != nil:
		return &ByteStringLiteral{Raw: e.ByteStringLiteral.Raw, Pos: pos}, nil
	case e.BooleanLiteral != nil:
		return &BooleanLiteral{Value: e.BooleanLiteral.Value, Pos: pos}, nil
	case e.NoneLiteral != nil:
		return &NoneLiteral{Pos: pos}, nil
	case e.Variable != nil:
		return &Variable{Name: e.Variable.Name, Pos: pos}, nil
	case e.Lambda != nil:
		return fromLambdaJSON(e.Lambda, pos)
	case e.Call != nil:
		fn, err := fromExprJSON(e.Call.Function)
		if err != nil {
			return nil, err
		}
		args := make([]Expr, len(e.Call.Arguments))
		for i, a := range e.Call.Arguments {
			ae, err := fromExprJSON(a)
			if err != nil {
				return nil, err
			}
			args[i] = ae
		}
		return &Call{Function: fn, Arguments: args, Pos: pos}, nil
	case e.If != nil:
		cond, err := fromExprJSON(e.If.Condition)
		if err != nil {
			return nil, err
		}
		then, err := fromExprJSON(e.If.Then)
		if err != nil {
			return nil, err
		}
		els, err := fromExprJSON(e.If.Else)
		if err != nil {
			return nil, err
		}
		return &If{Condition: cond, Then: then, Else: els, Pos: pos}, nil
	case e.IfList != nil:
		arg, err := fromExprJSON(e.IfList.Argument)
		if err != nil {
			return nil, err
		}
		thenType, err := fromTypeRefJSON(e.IfList.ThenType)
		if err != nil {
			return nil, err
		}
		then, err := fromExprJSON(e.IfList.Then)
		if err != nil {
			return nil, err
		}
		els, err := fromExprJSON(e.IfList.Else)
		if err != nil {
			return nil, err
		}
		return &IfList{Argument: arg, FirstName: e.IfList.FirstName, RestName: e.IfList.RestName, ThenType: thenType, Then: then, Else: els, Pos: pos}, nil
	case e.IfMap != nil:
		m, err := fromExprJSON(e.IfMap.Map)
		if err != nil {
			return nil, err
		}
		key, err := fromExprJSON(e.IfMap.Key)
		if err != nil {
			return nil, err
		}
		then, err := fromExprJSON(e.IfMap.Then)
		if err != nil {
			return nil, err
		}
		els, err := fromExprJSON(e.IfMap.Else)
		if err != nil {
			return nil, err
		}
		return &IfMap{Map: m, Key: key, ValueName: e.IfMap.ValueName, Then: then, Else: els, Pos: pos}, nil
	case e.IfType != nil:
		arg, err := fromExprJSON(e.IfType.Argument)
		if err != nil {
			return nil, err
		}
		branches := make([]*IfTypeBranch, len(e.IfType.Branches))
		for i, b := range e.IfType.Branches {
			bt, err := fromTypeRefJSON(b.Type)
			if err != nil {
				return nil, err
			}
			then, err := fromExprJSON(b.Then)
			if err != nil {
				return nil, err
			}
			branches[i] = &IfTypeBranch{Type: bt, Then: then}
		}
		els, err := fromExprJSON(e.IfType.Else)
		if err != nil {
			return nil, err
		}
		return &IfType{ArgumentName: e.IfType.ArgumentName, Argument: arg, Branches: branches, Else: els, Pos: pos}, nil
	case e.RecordConstruction != nil:
		fields := map[string]Expr{}
		order := make([]string, len(e.RecordConstruction.Fields))
		for i, f := range e.RecordConstruction.Fields {
			fe, err := fromExprJSON(f.Value)
			if err != nil {
				return nil, err
			}
			fields[f.Name] = fe
			order[i] = f.Name
		}
		typ, err := fromTypeRefJSON(e.RecordConstruction.Type)
		if err != nil {
			return nil, err
		}
		return &RecordConstruction{Type: typ, Fields: fields, Order: order, Pos: pos}, nil
	case e.RecordUpdate != nil:
		rec, err := fromExprJSON(e.RecordUpdate.Record)
		if err != nil {
			return nil, err
		}
		fields := map[string]Expr{}
		order := make([]string, len(e.RecordUpdate.Fields))
		for i, f := range e.RecordUpdate.Fields {
			fe, err := fromExprJSON(f.Value)
			if err != nil {
				return nil, err
			}
			fields[f.Name] = fe
			order[i] = f.Name
		}
		return &RecordUpdate{Record: rec, Fields: fields, Order: order, Pos: pos}, nil
	case e.RecordField != nil:
		rec, err := fromExprJSON(e.RecordField.Record)
		if err != nil {
			return nil, err
		}
		return &RecordField{Record: rec, Name: e.RecordField.Name, Pos: pos}, nil
	case e.ListLiteral != nil:
		elems := make([]*ListElement, len(e.ListLiteral.Elements))
		for i, el := range e.ListLiteral.Elements {
			ve, err := fromExprJSON(el.Value)
			if err != nil {
				return nil, err
			}
			elems[i] = &ListElement{Value: ve, Splice: el.Splice}
		}
		return &ListLiteral{Elements: elems, Pos: pos}, nil
	case e.MapLiteral != nil:
		entries := make([]*MapEntry, len(e.MapLiteral.Entries))
		for i, en := range e.MapLiteral.Entries {
			k, err := fromExprJSON(en.Key)
			if err != nil {
				return nil, err
			}
			val, err := fromExprJSON(en.Value)
			if err != nil {
				return nil, err
			}
			entries[i] = &MapEntry{Key: k, Value: val}
		}
		return &MapLiteral{Entries: entries, Pos: pos}, nil
	case e.ListComprehension != nil:
		elem, err := fromExprJSON(e.ListComprehension.Element)
		if err != nil {
			return nil, err
		}
		branches := make([]*ComprehensionBranch, len(e.ListComprehension.Branches))
		for i, b := range e.ListComprehension.Branches {
			it, err := fromExprJSON(b.Iteratee)
			if err != nil {
				return nil, err
			}
			branches[i] = &ComprehensionBranch{Names: b.Names, Iteratee: it}
		}
		cond, err := fromExprJSON(e.ListComprehension.Condition)
		if err != nil {
			return nil, err
		}
		return &ListComprehension{Element: elem, Branches: branches, Condition: cond, Pos: pos}, nil
	case e.ArithmeticOperation != nil:
		lhs, err := fromExprJSON(e.ArithmeticOperation.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := fromExprJSON(e.ArithmeticOperation.RHS)
		if err != nil {
			return nil, err
		}
		return &ArithmeticOperation{Operator: ArithmeticOperator(e.ArithmeticOperation.Operator), LHS: lhs, RHS: rhs, Pos: pos}, nil
	case e.EqualityOperation != nil:
		lhs, err := fromExprJSON(e.EqualityOperation.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := fromExprJSON(e.EqualityOperation.RHS)
		if err != nil {
			return nil, err
		}
		return &EqualityOperation{Negate: e.EqualityOperation.Negate, LHS: lhs, RHS: rhs, Pos: pos}, nil
	case e.OrderOperation != nil:
		lhs, err := fromExprJSON(e.OrderOperation.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := fromExprJSON(e.OrderOperation.RHS)
		if err != nil {
			return nil, err
		}
		return &OrderOperation{Operator: OrderOperator(e.OrderOperation.Operator), LHS: lhs, RHS: rhs, Pos: pos}, nil
	case e.BooleanOperation != nil:
		lhs, err := fromExprJSON(e.BooleanOperation.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := fromExprJSON(e.BooleanOperation.RHS)
		if err != nil {
			return nil, err
		}
		return &BooleanOperation{Operator: BooleanOperator(e.BooleanOperation.Operator), LHS: lhs, RHS: rhs, Pos: pos}, nil
	case e.Not != nil:
		operand, err := fromExprJSON(e.Not.Operand)
		if err != nil {
			return nil, err
		}
		return &Not{Operand: operand, Pos: pos}, nil
	case e.TryOperation != nil:
		operand, err := fromExprJSON(e.TryOperation.Operand)
		if err != nil {
			return nil, err
		}
		return &TryOperation{Operand: operand, Pos: pos}, nil
	case e.Block != nil:
		stmts := make([]*LetStatement, len(e.Block.Statements))
		for i, s := range e.Block.Statements {
			st, err := fromTypeRefJSON(s.Type)
			if err != nil {
				return nil, err
			}
			val, err := fromExprJSON(s.Value)
			if err != nil {
				return nil, err
			}
			stmts[i] = &LetStatement{Name: s.Name, Type: st, Value: val, Pos: fromPosJSON(s.Pos)}
		}
		result, err := fromExprJSON(e.Block.Result)
		if err != nil {
			return nil, err
		}
		return &Block{Statements: stmts, Result: result, Pos: pos}, nil
	default:
		return nil, fmt.Errorf("ast: expression JSON object has no recognized tag")
	}
}

func toLambdaJSON(l *Lambda) *lambdaJSON {
	args := make([]*argumentJSON, len(l.Arguments))
	for i, a := range l.Arguments {
		args[i] = &argumentJSON{Name: a.Name, Type: toTypeRefJSON(a.Type), Pos: toPosJSON(a.Pos)}
	}
	return &lambdaJSON{Arguments: args, ResultType: toTypeRefJSON(l.ResultType), Body: toExprJSON(l.Body)}
}

func fromLambdaJSON(l *lambdaJSON, pos position.Pos) (*Lambda, error) {
	args := make([]*Argument, len(l.Arguments))
	for i, a := range l.Arguments {
		t, err := fromTypeRefJSON(a.Type)
		if err != nil {
			return nil, err
		}
		args[i] = &Argument{Name: a.Name, Type: t, Pos: fromPosJSON(a.Pos)}
	}
	resultType, err := fromTypeRefJSON(l.ResultType)
	if err != nil {
		return nil, err
	}
	body, err := fromExprJSON(l.Body)
	if err != nil {
		return nil, err
	}
	return &Lambda{Arguments: args, ResultType: resultType, Body: body, Pos: pos}, nil
}

// ---------------------------------------------------------------------------
// Module-level declarations

type fieldDefinitionJSON struct {
	Name string       `json:"name"`
	Type *typeRefJSON `json:"type"`
	Pos  posJSON      `json:"pos"`
}
type recordDefinitionJSON struct {
	Name     string                 `json:"name"`
	Fields   []*fieldDefinitionJSON `json:"fields"`
	Open     bool                   `json:"open"`
	Public   bool                   `json:"public"`
	External bool                   `json:"external"`
	Pos      posJSON                `json:"pos"`
}
type typeAliasDefinitionJSON struct {
	Name     string       `json:"name"`
	Type     *typeRefJSON `json:"type"`
	Public   bool         `json:"public"`
	External bool         `json:"external"`
	Pos      posJSON      `json:"pos"`
}
type foreignImportJSON struct {
	Name        string       `json:"name"`
	ForeignName string       `json:"foreign_name"`
	Type        *typeRefJSON `json:"type"`
	Convention  int          `json:"convention"`
	Pos         posJSON      `json:"pos"`
}
type foreignDefinitionConfigJSON struct {
	ForeignName string `json:"foreign_name"`
	Convention  int    `json:"convention"`
}
type functionDefinitionJSON struct {
	Name    string                       `json:"name"`
	Public  bool                         `json:"public"`
	Foreign *foreignDefinitionConfigJSON `json:"foreign,omitempty"`
	Lambda  *lambdaJSON                  `json:"lambda"`
	Pos     posJSON                      `json:"pos"`
}
type pathJSON struct {
	External   bool     `json:"external"`
	Package    string   `json:"package,omitempty"`
	Components []string `json:"components"`
}
type importStatementJSON struct {
	Path  pathJSON `json:"path"`
	Alias string   `json:"alias,omitempty"`
	Names []string `json:"names,omitempty"`
	Pos   posJSON  `json:"pos"`
}
type moduleJSON struct {
	Path           pathJSON                   `json:"path"`
	Exports        []string                   `json:"exports,omitempty"`
	Imports        []*importStatementJSON     `json:"imports,omitempty"`
	ForeignImports []*foreignImportJSON       `json:"foreign_imports,omitempty"`
	RecordDefs     []*recordDefinitionJSON    `json:"record_defs,omitempty"`
	TypeAliases    []*typeAliasDefinitionJSON `json:"type_aliases,omitempty"`
	Functions      []*functionDefinitionJSON  `json:"functions"`
	Pos            posJSON                    `json:"pos"`
}

func toPathJSON(p modpath.Path) pathJSON {
	return pathJSON{External: p.IsExternal(), Package: p.Package(), Components: p.Components()}
}
func fromPathJSON(p pathJSON) modpath.Path {
	if p.External {
		return modpath.External(p.Package, p.Components...)
	}
	return modpath.Internal(p.Components...)
}

// MarshalModule serializes a parsed Module to its canonical JSON form.
func MarshalModule(m *Module) ([]byte, error) {
	w := moduleJSON{
		Path:    toPathJSON(m.Path),
		Exports: m.Exports,
		Pos:     toPosJSON(m.Pos),
	}
	for _, imp := range m.Imports {
		w.Imports = append(w.Imports, &importStatementJSON{Path: toPathJSON(imp.Path), Alias: imp.Alias, Names: imp.Names, Pos: toPosJSON(imp.Pos)})
	}
	for _, fi := range m.ForeignImports {
		w.ForeignImports = append(w.ForeignImports, &foreignImportJSON{
			Name: fi.Name, ForeignName: fi.ForeignName, Type: toTypeRefJSON(fi.Type), Convention: int(fi.Convention), Pos: toPosJSON(fi.Pos),
		})
	}
	for _, rd := range m.RecordDefs {
		fields := make([]*fieldDefinitionJSON, len(rd.Fields))
		for i, f := range rd.Fields {
			fields[i] = &fieldDefinitionJSON{Name: f.Name, Type: toTypeRefJSON(f.Type), Pos: toPosJSON(f.Pos)}
		}
		w.RecordDefs = append(w.RecordDefs, &recordDefinitionJSON{
			Name: rd.Name, Fields: fields, Open: rd.Open, Public: rd.Public, External: rd.External, Pos: toPosJSON(rd.Pos),
		})
	}
	for _, ta := range m.TypeAliases {
		w.TypeAliases = append(w.TypeAliases, &typeAliasDefinitionJSON{
			Name: ta.Name, Type: toTypeRefJSON(ta.Type), Public: ta.Public, External: ta.External, Pos: toPosJSON(ta.Pos),
		})
	}
	for _, fn := range m.Functions {
		var foreign *foreignDefinitionConfigJSON
		if fn.Foreign != nil {
			foreign = &foreignDefinitionConfigJSON{ForeignName: fn.Foreign.ForeignName, Convention: int(fn.Foreign.Convention)}
		}
		w.Functions = append(w.Functions, &functionDefinitionJSON{
			Name: fn.Name, Public: fn.Public, Foreign: foreign, Lambda: toLambdaJSON(fn.Lambda), Pos: toPosJSON(fn.Pos),
		})
	}
	return json.MarshalIndent(w, "", "  ")
}

// UnmarshalModule parses a module's canonical JSON form.
func UnmarshalModule(data []byte) (*Module, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var w moduleJSON
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("ast: decode module: %w", err)
	}
	out := &Module{Path: fromPathJSON(w.Path), Exports: w.Exports, Pos: fromPosJSON(w.Pos)}
	for _, imp := range w.Imports {
		out.Imports = append(out.Imports, &ImportStatement{Path: fromPathJSON(imp.Path), Alias: imp.Alias, Names: imp.Names, Pos: fromPosJSON(imp.Pos)})
	}
	for _, fi := range w.ForeignImports {
		t, err := fromTypeRefJSON(fi.Type)
		if err != nil {
			return nil, err
		}
		out.ForeignImports = append(out.ForeignImports, &ForeignImport{
			Name: fi.Name, ForeignName: fi.ForeignName, Type: t, Convention: CallingConvention(fi.Convention), Pos: fromPosJSON(fi.Pos),
		})
	}
	for _, rd := range w.RecordDefs {
		fields := make([]*FieldDefinition, len(rd.Fields))
		for i, f := range rd.Fields {
			t, err := fromTypeRefJSON(f.Type)
			if err != nil {
				return nil, err
			}
			fields[i] = &FieldDefinition{Name: f.Name, Type: t, Pos: fromPosJSON(f.Pos)}
		}
		out.RecordDefs = append(out.RecordDefs, &RecordDefinition{
			Name: rd.Name, Fields: fields, Open: rd.Open, Public: rd.Public, External: rd.External, Pos: fromPosJSON(rd.Pos),
		})
	}
	for _, ta := range w.TypeAliases {
		t, err := fromTypeRefJSON(ta.Type)
		if err != nil {
			return nil, err
		}
		out.TypeAliases = append(out.TypeAliases, &TypeAliasDefinition{Name: ta.Name, Type: t, Public: ta.Public, External: ta.External, Pos: fromPosJSON(ta.Pos)})
	}
	for _, fn := range w.Functions {
		var foreign *ForeignDefinitionConfig
		if fn.Foreign != nil {
			foreign = &ForeignDefinitionConfig{ForeignName: fn.Foreign.ForeignName, Convention: CallingConvention(fn.Foreign.Convention)}
		}
		lambda, err := fromLambdaJSON(fn.Lambda, fromPosJSON(fn.Pos))
		if err != nil {
			return nil, err
		}
		out.Functions = append(out.Functions, &FunctionDefinition{Name: fn.Name, Public: fn.Public, Foreign: foreign, Lambda: lambda, Pos: fromPosJSON(fn.Pos)})
	}
	return out, nil
}
