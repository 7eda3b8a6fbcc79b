package types

import "github.com/lucid-lang/lucidc/internal/hir"

// Subsumes reports lower ≤ upper, after canonicalizing both sides:
//
//   - anything ≤ Any;
//   - Union(a,b) ≤ U iff a ≤ U ∧ b ≤ U;
//   - T ≤ Union(a,b) iff T ≤ a ∨ T ≤ b;
//   - otherwise structural equality.
//
// Subsumption is invariant in list element, map key/value, and
// function argument/result: container and function shapes are
// compared with Equal, never with a recursive Subsumes call, so that
// e.g. List(Number) is never a subtype of List(Union(Number, None)).
// This keeps the type system decidable and prevents silent widening
// inside containers.
func Subsumes(ctx *Context, lower, upper hir.Type) bool {
	lower = Canonicalize(ctx, lower)
	upper = Canonicalize(ctx, upper)
	return subsumes(ctx, lower, upper)
}

func subsumes(ctx *Context, lower, upper hir.Type) bool {
	if _, ok := upper.(hir.AnyType); ok {
		return true
	}
	if lu, ok := lower.(*hir.UnionType); ok {
		return subsumes(ctx, lu.LHS, upper) && subsumes(ctx, lu.RHS, upper)
	}
	if uu, ok := upper.(*hir.UnionType); ok {
		return subsumes(ctx, lower, uu.LHS) || subsumes(ctx, lower, uu.RHS)
	}
	return hir.Equal(lower, upper)
}
