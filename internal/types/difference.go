package types

import "github.com/lucid-lang/lucidc/internal/hir"

// Difference returns the canonical union of members of t that are not
// ≤-covered by any member of other, or None when other absorbs t
// entirely. It is used to narrow the else-branch
// binder of if-type.
func Difference(ctx *Context, t, other hir.Type) hir.Type {
	t = Canonicalize(ctx, t)
	other = Canonicalize(ctx, other)

	members := hir.UnionMembers(t)
	var remaining []hir.Type
	for _, m := range members {
		if !subsumes(ctx, m, other) {
			remaining = append(remaining, m)
		}
	}
	if len(remaining) == 0 {
		return hir.NoneType{}
	}
	result := remaining[0]
	for _, m := range remaining[1:] {
		result = &hir.UnionType{LHS: result, RHS: m}
	}
	return Canonicalize(ctx, result)
}
