package rc

import (
	"fmt"

	"github.com/lucid-lang/lucidc/internal/mir"
)

// ApplyHeapReuse looks for a Record construction immediately nested
// inside the DropVariables of an identically shaped record (same
// type, same field count) and rewrites the construction into a
// ReusedRecord, letting the backend reuse the just-freed allocation
// instead of freeing and re-allocating. This covers the straight-line
// case of the rule; a construction reachable only through a join of
// several dropping paths is left as a plain Record.
func ApplyHeapReuse(e mir.Expr, defs map[string]*mir.RecordDefinition) mir.Expr {
	switch v := e.(type) {
	case nil:
		return nil
	case *mir.DropVariables:
		body := ApplyHeapReuse(v.Body, defs)
		for name, t := range v.Names {
			rt, ok := t.(mir.RecordType)
			if !ok {
				continue
			}
			if reused, ok := reuseIntoLet(name, rt, body, defs); ok {
				return reused
			}
		}
		return &mir.DropVariables{Names: v.Names, Body: body}
	case *mir.Let:
		return &mir.Let{Name: v.Name, Type: v.Type, Bound: ApplyHeapReuse(v.Bound, defs), Body: ApplyHeapReuse(v.Body, defs), Pos_: v.Pos_}
	case *mir.LetRecursive:
		fn := *v.Function
		fn.Body = ApplyHeapReuse(v.Function.Body, defs)
		return &mir.LetRecursive{Function: &fn, Body: ApplyHeapReuse(v.Body, defs), Pos_: v.Pos_}
	case *mir.If:
		return &mir.If{Condition: v.Condition, Then: ApplyHeapReuse(v.Then, defs), Else: ApplyHeapReuse(v.Else, defs), Pos_: v.Pos_}
	case *mir.Case:
		alts := make([]*mir.CaseAlternative, len(v.Alternatives))
		for i, alt := range v.Alternatives {
			alts[i] = &mir.CaseAlternative{VariantTypeIDs: alt.VariantTypeIDs, Name: alt.Name, BoundType: alt.BoundType, Body: ApplyHeapReuse(alt.Body, defs)}
		}
		var def mir.Expr
		if v.Default != nil {
			def = ApplyHeapReuse(v.Default, defs)
		}
		return &mir.Case{Argument: v.Argument, Alternatives: alts, Default: def, Pos_: v.Pos_}
	default:
		return e
	}
}

// reuseIntoLet matches `Let(x, T, Record{TypeName: sameShape, ...}, rest)`
// directly inside a drop of name:droppedType, where droppedType and
// the constructed record have the same field count.
func reuseIntoLet(droppedName string, droppedType mir.RecordType, body mir.Expr, defs map[string]*mir.RecordDefinition) (mir.Expr, bool) {
	let, ok := body.(*mir.Let)
	if !ok {
		return nil, false
	}
	rec, ok := let.Bound.(*mir.Record)
	if !ok || rec.TypeName != droppedType.Name {
		return nil, false
	}
	droppedDef, ok := defs[droppedType.Name]
	if !ok {
		return nil, false
	}
	if len(droppedDef.Fields) != len(rec.Fields) {
		return nil, false
	}
	id := reuseID(droppedType.Name, len(droppedDef.Fields))
	return &mir.Let{
		Name:  let.Name,
		Type:  let.Type,
		Bound: &mir.ReusedRecord{ID: id, Record: rec, Pos_: rec.Pos_},
		Body:  let.Body,
		Pos_:  let.Pos_,
	}, true
}

func reuseID(typeName string, fieldCount int) string {
	return fmt.Sprintf("_reuse_%s_%d", typeName, fieldCount)
}
