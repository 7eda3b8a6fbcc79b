package iface

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/lucid-lang/lucidc/internal/hir"
	"github.com/lucid-lang/lucidc/internal/position"
)

// typeJSON is the tagged-union wire representation of hir.Type, e.g.
// {"Function":{"arguments":[...],"result":...}}. Exactly one field is
// ever non-nil.
type typeJSON struct {
	Any       *struct{}       `json:"Any,omitempty"`
	Boolean   *struct{}       `json:"Boolean,omitempty"`
	Number    *struct{}       `json:"Number,omitempty"`
	String    *struct{}       `json:"String,omitempty"`
	None      *struct{}       `json:"None,omitempty"`
	Error     *struct{}       `json:"Error,omitempty"`
	Function  *functionJSON   `json:"Function,omitempty"`
	List      *listJSON       `json:"List,omitempty"`
	Map       *mapJSON        `json:"Map,omitempty"`
	Record    *recordJSON     `json:"Record,omitempty"`
	Reference *referenceJSON  `json:"Reference,omitempty"`
	Union     *unionJSON      `json:"Union,omitempty"`
}

type functionJSON struct {
	Arguments []*typeJSON `json:"arguments"`
	Result    *typeJSON   `json:"result"`
}
type listJSON struct {
	Element *typeJSON `json:"element"`
}
type mapJSON struct {
	Key   *typeJSON `json:"key"`
	Value *typeJSON `json:"value"`
}
type recordJSON struct {
	Name string `json:"name"`
}
type referenceJSON struct {
	Name string `json:"name"`
}
type unionJSON struct {
	LHS *typeJSON `json:"lhs"`
	RHS *typeJSON `json:"rhs"`
}

func toTypeJSON(t hir.Type) *typeJSON {
	switch v := t.(type) {
	case hir.AnyType:
		return &typeJSON{Any: &struct{}{}}
	case hir.BooleanType:
		return &typeJSON{Boolean: &struct{}{}}
	case hir.NumberType:
		return &typeJSON{Number: &struct{}{}}
	case hir.StringType:
		return &typeJSON{String: &struct{}{}}
	case hir.NoneType:
		return &typeJSON{None: &struct{}{}}
	case hir.ErrorType:
		return &typeJSON{Error: &struct{}{}}
	case *hir.FunctionType:
		args := make([]*typeJSON, len(v.Arguments))
		for i, a := range v.Arguments {
			args[i] = toTypeJSON(a)
		}
		return &typeJSON{Function: &functionJSON{Arguments: args, Result: toTypeJSON(v.Result)}}
	case *hir.ListType:
		return &typeJSON{List: &listJSON{Element: toTypeJSON(v.Element)}}
	case *hir.MapType:
		return &typeJSON{Map: &mapJSON{Key: toTypeJSON(v.Key), Value: toTypeJSON(v.Value)}}
	case *hir.RecordType:
		return &typeJSON{Record: &recordJSON{Name: v.Name}}
	case *hir.ReferenceType:
		return &typeJSON{Reference: &referenceJSON{Name: v.Name}}
	case *hir.UnionType:
		return &typeJSON{Union: &unionJSON{LHS: toTypeJSON(v.LHS), RHS: toTypeJSON(v.RHS)}}
	default:
		return nil
	}
}

func fromTypeJSON(t *typeJSON) (hir.Type, error) {
	if t == nil {
		return nil, fmt.Errorf("iface: nil type in interface JSON")
	}
	switch {
	case t.Any != nil:
		return hir.AnyType{}, nil
	case t.Boolean != nil:
		return hir.BooleanType{}, nil
	case t.Number != nil:
		return hir.NumberType{}, nil
	case t.String != nil:
		return hir.StringType{}, nil
	case t.None != nil:
		return hir.NoneType{}, nil
	case t.Error != nil:
		return hir.ErrorType{}, nil
	case t.Function != nil:
		args := make([]hir.Type, len(t.Function.Arguments))
		for i, a := range t.Function.Arguments {
			at, err := fromTypeJSON(a)
			if err != nil {
				return nil, err
			}
			args[i] = at
		}
		res, err := fromTypeJSON(t.Function.Result)
		if err != nil {
			return nil, err
		}
		return &hir.FunctionType{Arguments: args, Result: res}, nil
	case t.List != nil:
		el, err := fromTypeJSON(t.List.Element)
		if err != nil {
			return nil, err
		}
		return &hir.ListType{Element: el}, nil
	case t.Map != nil:
		k, err := fromTypeJSON(t.Map.Key)
		if err != nil {
			return nil, err
		}
		v, err := fromTypeJSON(t.Map.Value)
		if err != nil {
			return nil, err
		}
		return &hir.MapType{Key: k, Value: v}, nil
	case t.Record != nil:
		return &hir.RecordType{Name: t.Record.Name}, nil
	case t.Reference != nil:
		return &hir.ReferenceType{Name: t.Reference.Name}, nil
	case t.Union != nil:
		l, err := fromTypeJSON(t.Union.LHS)
		if err != nil {
			return nil, err
		}
		r, err := fromTypeJSON(t.Union.RHS)
		if err != nil {
			return nil, err
		}
		return &hir.UnionType{LHS: l, RHS: r}, nil
	default:
		return nil, fmt.Errorf("iface: type JSON object has no recognized tag")
	}
}

type posJSON struct {
	Path     string `json:"path"`
	Line     int    `json:"line_number"`
	Column   int    `json:"column_number"`
	LineText string `json:"line"`
}

func toPosJSON(p position.Pos) posJSON {
	return posJSON{Path: p.Path, Line: p.Line, Column: p.Column, LineText: p.LineText}
}
func fromPosJSON(p posJSON) position.Pos {
	return position.New(p.Path, p.Line, p.Column, p.LineText)
}

type fieldJSON struct {
	Name string    `json:"name"`
	Type *typeJSON `json:"type"`
}

type typeDefinitionJSON struct {
	Name         string       `json:"name"`
	OriginalName string       `json:"original_name"`
	Fields       []*fieldJSON `json:"fields"`
	Open         bool         `json:"open"`
	Public       bool         `json:"public"`
	Position     posJSON      `json:"position"`
}

type typeAliasJSON struct {
	Name         string    `json:"name"`
	OriginalName string    `json:"original_name"`
	Type         *typeJSON `json:"type"`
	Public       bool      `json:"public"`
	Position     posJSON   `json:"position"`
}

type functionDeclarationJSON struct {
	Name         string    `json:"name"`
	OriginalName string    `json:"original_name"`
	Type         *typeJSON `json:"type"`
	Position     posJSON   `json:"position"`
}

// wireInterface is the top-level interface-file shape: keys
// type_definitions, type_aliases, function_declarations, each an
// array. Unknown keys are rejected by DisallowUnknownFields.
type wireInterface struct {
	TypeDefinitions      []*typeDefinitionJSON      `json:"type_definitions"`
	TypeAliases          []*typeAliasJSON           `json:"type_aliases"`
	FunctionDeclarations []*functionDeclarationJSON `json:"function_declarations"`
}

// Marshal serializes an Interface to its canonical JSON form.
func Marshal(i *Interface) ([]byte, error) {
	w := wireInterface{
		TypeDefinitions:      make([]*typeDefinitionJSON, 0, len(i.TypeDefinitions)),
		TypeAliases:          make([]*typeAliasJSON, 0, len(i.TypeAliases)),
		FunctionDeclarations: make([]*functionDeclarationJSON, 0, len(i.FunctionDeclarations)),
	}
	for _, t := range i.TypeDefinitions {
		fields := make([]*fieldJSON, len(t.Fields))
		for j, f := range t.Fields {
			fields[j] = &fieldJSON{Name: f.Name, Type: toTypeJSON(f.Type)}
		}
		w.TypeDefinitions = append(w.TypeDefinitions, &typeDefinitionJSON{
			Name: t.Name, OriginalName: t.OriginalName, Fields: fields,
			Open: t.Open, Public: t.Public, Position: toPosJSON(t.Pos),
		})
	}
	for _, a := range i.TypeAliases {
		w.TypeAliases = append(w.TypeAliases, &typeAliasJSON{
			Name: a.Name, OriginalName: a.OriginalName, Type: toTypeJSON(a.Type),
			Public: a.Public, Position: toPosJSON(a.Pos),
		})
	}
	for _, f := range i.FunctionDeclarations {
		w.FunctionDeclarations = append(w.FunctionDeclarations, &functionDeclarationJSON{
			Name: f.Name, OriginalName: f.OriginalName, Type: toTypeJSON(f.Type),
			Position: toPosJSON(f.Pos),
		})
	}
	return json.MarshalIndent(w, "", "  ")
}

// Unmarshal parses the canonical JSON form back into an Interface.
// Round-trip identity (Unmarshal(Marshal(i)) == i) is a required
// invariant.
func Unmarshal(data []byte) (*Interface, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var w wireInterface
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("iface: decode: %w", err)
	}
	out := &Interface{}
	for _, t := range w.TypeDefinitions {
		fields := make([]hir.Field, len(t.Fields))
		for j, f := range t.Fields {
			ft, err := fromTypeJSON(f.Type)
			if err != nil {
				return nil, err
			}
			fields[j] = hir.Field{Name: f.Name, Type: ft}
		}
		out.TypeDefinitions = append(out.TypeDefinitions, &TypeDefinition{
			Name: t.Name, OriginalName: t.OriginalName, Fields: fields,
			Open: t.Open, Public: t.Public, Pos: fromPosJSON(t.Position),
		})
	}
	for _, a := range w.TypeAliases {
		at, err := fromTypeJSON(a.Type)
		if err != nil {
			return nil, err
		}
		out.TypeAliases = append(out.TypeAliases, &TypeAlias{
			Name: a.Name, OriginalName: a.OriginalName, Type: at,
			Public: a.Public, Pos: fromPosJSON(a.Position),
		})
	}
	for _, f := range w.FunctionDeclarations {
		ft, err := fromTypeJSON(f.Type)
		if err != nil {
			return nil, err
		}
		out.FunctionDeclarations = append(out.FunctionDeclarations, &FunctionDeclaration{
			Name: f.Name, OriginalName: f.OriginalName, Type: ft, Pos: fromPosJSON(f.Position),
		})
	}
	return out, nil
}
