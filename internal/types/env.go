package types

import "github.com/lucid-lang/lucidc/internal/hir"

// Env is the local-variable type environment threaded through
// inference and checking: lambda arguments, let-bindings, and the
// narrowed binders introduced by if-type/if-list/if-map.
type Env map[string]hir.Type

// With returns a copy of e with name bound to t, leaving e itself
// unmodified — branches of a conditional must not see each other's
// narrowing.
func (e Env) With(name string, t hir.Type) Env {
	out := make(Env, len(e)+1)
	for k, v := range e {
		out[k] = v
	}
	out[name] = t
	return out
}
