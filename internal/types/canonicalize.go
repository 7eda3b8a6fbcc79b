package types

import "github.com/lucid-lang/lucidc/internal/hir"

// Canonicalize resolves Reference nodes via the alias table, flattens
// nested unions into an order-independent set of deduplicated,
// non-union members, and absorbs everything into Any wherever Any is
// one of the union members. It never descends into a RecordType by
// value — records are a by-name handle and the only way the type
// graph can contain cycles, so resolving through them here would not
// terminate for a self-referential record.
//
// Canonicalize is idempotent: Canonicalize(Canonicalize(t)) == Canonicalize(t).
func Canonicalize(ctx *Context, t hir.Type) hir.Type {
	switch v := t.(type) {
	case *hir.ReferenceType:
		resolved, ok := ctx.Aliases[v.Name]
		if !ok {
			// Dangling reference; leave as-is, the existence
			// validator (internal/lower, internal/types) will have
			// already rejected this before analysis runs.
			return v
		}
		return Canonicalize(ctx, resolved)
	case *hir.FunctionType:
		args := make([]hir.Type, len(v.Arguments))
		for i, a := range v.Arguments {
			args[i] = Canonicalize(ctx, a)
		}
		return &hir.FunctionType{Arguments: args, Result: Canonicalize(ctx, v.Result)}
	case *hir.ListType:
		return &hir.ListType{Element: Canonicalize(ctx, v.Element)}
	case *hir.MapType:
		return &hir.MapType{Key: Canonicalize(ctx, v.Key), Value: Canonicalize(ctx, v.Value)}
	case *hir.UnionType:
		return canonicalizeUnion(ctx, v)
	default:
		// AnyType, BooleanType, NumberType, StringType, NoneType,
		// ErrorType, *RecordType are already canonical.
		return t
	}
}

// canonicalizeUnion flattens u into its distinct non-union members. If
// Any is among them, the whole union collapses to Any. A single
// remaining member collapses to that member (a union of one type is
// just that type).
func canonicalizeUnion(ctx *Context, u *hir.UnionType) hir.Type {
	raw := hir.UnionMembers(u)
	members := make([]hir.Type, 0, len(raw))
	for _, m := range raw {
		members = append(members, Canonicalize(ctx, m))
	}

	var deduped []hir.Type
	for _, m := range members {
		if _, ok := m.(hir.AnyType); ok {
			return hir.AnyType{}
		}
		// Expand any union member that canonicalization couldn't
		// flatten directly (defensive; canonicalize recursion above
		// should already have flattened nested unions).
		for _, nested := range hir.UnionMembers(m) {
			if !containsType(deduped, nested) {
				deduped = append(deduped, nested)
			}
		}
	}
	if len(deduped) == 0 {
		return hir.NoneType{}
	}
	if len(deduped) == 1 {
		return deduped[0]
	}

	result := deduped[0]
	for _, m := range deduped[1:] {
		result = &hir.UnionType{LHS: result, RHS: m}
	}
	return result
}

func containsType(list []hir.Type, t hir.Type) bool {
	for _, l := range list {
		if hir.Equal(l, t) {
			return true
		}
	}
	return false
}

// Equal reports whether a and b denote the same type once both are
// canonicalized.
func Equal(ctx *Context, a, b hir.Type) bool {
	return hir.Equal(Canonicalize(ctx, a), Canonicalize(ctx, b))
}
