package hirmir

import (
	"github.com/lucid-lang/lucidc/internal/hir"
	"github.com/lucid-lang/lucidc/internal/mir"
	"github.com/lucid-lang/lucidc/internal/mirpass"
	"github.com/lucid-lang/lucidc/internal/types"
)

// LowerType compiles an HIR type down to its MIR representation:
// Boolean/Number/None/String map to their MIR scalars, Error maps to
// the configured error record,
// Function/List/Map map to concrete specialization records, Record
// maps to the like-named MIR record, and Any/Union map to Variant.
// Reference must never reach here; analysis guarantees it doesn't.
func (l *Lowerer) LowerType(t hir.Type) mir.Type {
	switch v := types.Canonicalize(l.Ctx, t).(type) {
	case hir.BooleanType:
		return mir.BooleanType{}
	case hir.NumberType:
		return mir.NumberType{}
	case hir.NoneType:
		return mir.NoneType{}
	case hir.StringType:
		return mir.ByteStringType{}
	case hir.ErrorType:
		return mir.RecordType{Name: l.Config.ErrorType.TypeName}
	case hir.AnyType:
		return mir.VariantType{}
	case *hir.UnionType:
		return mir.VariantType{}
	case *hir.RecordType:
		return mir.RecordType{Name: v.Name}
	case *hir.FunctionType:
		return l.lowerFunctionType(v)
	case *hir.ListType:
		return l.lowerListType(v)
	case *hir.MapType:
		return l.lowerMapType(v)
	case *hir.ReferenceType:
		panic("hirmir: unresolved Reference type reached lowering: " + v.Name)
	default:
		panic("hirmir: unhandled hir.Type in LowerType")
	}
}

// lowerFunctionType lowers a function type to its boxed closure
// record and registers the specialization the first time this
// function shape is seen. The closure's own layout (entry pointer,
// captured-environment payload) is a backend concern; the frontend
// only needs a named, typed record so that RC insertion and variant
// collection can treat closures uniformly with any other boxed value.
func (l *Lowerer) lowerFunctionType(v *hir.FunctionType) mir.Type {
	args := make([]mir.Type, len(v.Arguments))
	for i, a := range v.Arguments {
		args[i] = l.LowerType(a)
	}
	result := l.LowerType(v.Result)
	id := mirpass.TypeID(mir.FunctionType{Arguments: args, Result: result})
	name := mirpass.ConcreteFunctionName(id)
	l.registerSpecialization(&mir.RecordDefinition{
		Name: name,
		Fields: []*mir.FieldType{
			{Name: "environment", Type: mir.VariantType{}},
		},
	})
	return mir.RecordType{Name: name}
}

// lowerListType lowers a list element type to the concrete list
// record specialized for it.
func (l *Lowerer) lowerListType(v *hir.ListType) mir.Type {
	elem := l.LowerType(v.Element)
	name := mirpass.ConcreteListName(mirpass.TypeID(elem))
	l.registerSpecialization(&mir.RecordDefinition{
		Name:   name,
		Fields: []*mir.FieldType{{Name: "head", Type: elem}, {Name: "tail", Type: mir.RecordType{Name: name}}},
	})
	return mir.RecordType{Name: name}
}

// lowerMapType lowers a map key/value type pair to the concrete map
// record specialized for it.
func (l *Lowerer) lowerMapType(v *hir.MapType) mir.Type {
	key := l.LowerType(v.Key)
	value := l.LowerType(v.Value)
	name := mirpass.ConcreteMapName(mirpass.TypeID(key), mirpass.TypeID(value))
	l.registerSpecialization(&mir.RecordDefinition{
		Name:   name,
		Fields: []*mir.FieldType{{Name: "key", Type: key}, {Name: "value", Type: value}, {Name: "rest", Type: mir.RecordType{Name: name}}},
	})
	return mir.RecordType{Name: name}
}
