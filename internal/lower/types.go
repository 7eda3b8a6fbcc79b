package lower

import (
	"strings"

	"github.com/lucid-lang/lucidc/internal/ast"
	"github.com/lucid-lang/lucidc/internal/diag"
	"github.com/lucid-lang/lucidc/internal/hir"
)

// lowerTypeRef resolves a surface type reference into an hir.Type.
// A bare name is resolved, in order, against: local
// record/alias definitions, names pulled in by an explicit import
// list, names reached through an import prefix, and the prelude; it errors with TypeNotFound if none match.
func (lw *Lowerer) lowerTypeRef(t ast.TypeRef) (hir.Type, error) {
	switch v := t.(type) {
	case *ast.AnyTypeRef:
		return hir.AnyType{}, nil
	case *ast.BooleanTypeRef:
		return hir.BooleanType{}, nil
	case *ast.NumberTypeRef:
		return hir.NumberType{}, nil
	case *ast.StringTypeRef:
		return hir.StringType{}, nil
	case *ast.NoneTypeRef:
		return hir.NoneType{}, nil
	case *ast.ErrorTypeRef:
		return hir.ErrorType{}, nil
	case *ast.FunctionTypeRef:
		args := make([]hir.Type, len(v.Arguments))
		for i, a := range v.Arguments {
			at, err := lw.lowerTypeRef(a)
			if err != nil {
				return nil, err
			}
			args[i] = at
		}
		res, err := lw.lowerTypeRef(v.Result)
		if err != nil {
			return nil, err
		}
		return &hir.FunctionType{Arguments: args, Result: res}, nil
	case *ast.ListTypeRef:
		el, err := lw.lowerTypeRef(v.Element)
		if err != nil {
			return nil, err
		}
		return &hir.ListType{Element: el}, nil
	case *ast.MapTypeRef:
		k, err := lw.lowerTypeRef(v.Key)
		if err != nil {
			return nil, err
		}
		val, err := lw.lowerTypeRef(v.Value)
		if err != nil {
			return nil, err
		}
		return &hir.MapType{Key: k, Value: val}, nil
	case *ast.UnionTypeRef:
		l, err := lw.lowerTypeRef(v.LHS)
		if err != nil {
			return nil, err
		}
		r, err := lw.lowerTypeRef(v.RHS)
		if err != nil {
			return nil, err
		}
		return &hir.UnionType{LHS: l, RHS: r}, nil
	case *ast.NameTypeRef:
		return lw.resolveNameType(v)
	default:
		return nil, &diag.TypeNotFoundError{Name: t.String(), Pos: t.Position()}
	}
}

func (lw *Lowerer) resolveNameType(ref *ast.NameTypeRef) (hir.Type, error) {
	// Local record or alias definition.
	if qualified, ok := lw.localTypeNames[ref.Name]; ok {
		return &hir.ReferenceType{Name: qualified}, nil
	}

	// Name reached through an explicit import-list entry.
	if qualified, ok := lw.unqualifiedNames[ref.Name]; ok {
		return &hir.ReferenceType{Name: qualified}, nil
	}

	// Qualified reference through an import prefix: "prefix.Name".
	if dot := strings.IndexByte(ref.Name, '.'); dot >= 0 {
		prefix, rest := ref.Name[:dot], ref.Name[dot+1:]
		if iface, ok := lw.importPrefixes[prefix]; ok {
			if td, ok := iface.LookupType(rest); ok {
				return &hir.ReferenceType{Name: td.Name}, nil
			}
			if al, ok := iface.LookupAlias(rest); ok {
				return &hir.ReferenceType{Name: al.Name}, nil
			}
			return nil, &diag.TypeNotFoundError{Name: ref.Name, Pos: ref.Pos}
		}
	}

	// Prelude scope, consulted last.
	for _, p := range lw.Prelude {
		if td, ok := p.LookupType(ref.Name); ok {
			return &hir.ReferenceType{Name: td.Name}, nil
		}
		if al, ok := p.LookupAlias(ref.Name); ok {
			return &hir.ReferenceType{Name: al.Name}, nil
		}
	}

	return nil, &diag.TypeNotFoundError{Name: ref.Name, Pos: ref.Pos}
}
