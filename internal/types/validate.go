package types

import (
	"github.com/lucid-lang/lucidc/internal/diag"
	"github.com/lucid-lang/lucidc/internal/hir"
)

// ValidateImpossibleRecords rejects any record definition that is
// provably uninhabited: one where, along every path reachable from
// every field, the record's own name is re-encountered before a
// non-record type terminates the path.
// A record with no fields is always inhabited; recursion through a
// union member that also has a non-recursive arm does not make the
// record impossible, since that arm gives it a way out.
func ValidateImpossibleRecords(ctx *Context, mod *hir.Module) error {
	for _, rec := range mod.RecordDefs {
		if isImpossible(ctx, rec.Name, rec.Fields, map[string]bool{}) {
			return &diag.ImpossibleRecordError{Name: rec.Name, Pos: rec.Pos}
		}
	}
	return nil
}

// isImpossible reports whether every field of a record named self
// forces self to recur, with visiting tracking the records currently
// on the recursion stack (so mutual recursion between two otherwise
// inhabited records is not mistaken for impossibility).
func isImpossible(ctx *Context, self string, fields []*hir.Field, visiting map[string]bool) bool {
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if !forcesRecord(ctx, self, f.Type, visiting) {
			return false
		}
	}
	return true
}

// forcesRecord reports whether every value inhabiting t must itself
// contain an occurrence of the record named self, i.e. t gives the
// field no way to terminate without recurring into self.
func forcesRecord(ctx *Context, self string, t hir.Type, visiting map[string]bool) bool {
	switch v := Canonicalize(ctx, t).(type) {
	case *hir.RecordType:
		if v.Name == self {
			return true
		}
		if visiting[v.Name] {
			// Already unwinding this record on the current path;
			// treat as non-terminating without re-deriving impossibility.
			return true
		}
		fields, ok := ctx.Lookup(v.Name)
		if !ok || len(fields) == 0 {
			return false
		}
		next := make(map[string]bool, len(visiting)+1)
		for k := range visiting {
			next[k] = true
		}
		next[v.Name] = true
		return isImpossible(ctx, self, fields, next)
	case *hir.UnionType:
		for _, m := range hir.UnionMembers(v) {
			if !forcesRecord(ctx, self, m, visiting) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
