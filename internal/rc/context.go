// Package rc implements reference-count insertion over a lowered MIR
// module. It classifies every ref-counted variable
// occurrence as a move, a clone, or an implicit drop, placing
// CloneVariables/DropVariables markers so that every binder is
// consumed exactly once along every control-flow path, and applies
// the heap-reuse optimization that turns a doomed Record construction
// into a ReusedRecord.
package rc

import "github.com/lucid-lang/lucidc/internal/mir"

// Context tells the pass which MIR record types are heap-boxed (and
// therefore reference-counted) versus value types, per
// mir.RecordDefinition.Boxed.
type Context struct {
	defs map[string]*mir.RecordDefinition
}

// NewContext indexes a module's record definitions (its own plus any
// concrete specializations) by name.
func NewContext(defs []*mir.RecordDefinition) *Context {
	c := &Context{defs: map[string]*mir.RecordDefinition{}}
	for _, d := range defs {
		c.defs[d.Name] = d
	}
	return c
}

// IsRefCounted reports whether a value of type t lives on the
// reference-counted heap: byte strings, variants (tag + payload
// pointer), and boxed records (closures and any non-empty record).
// Booleans, numbers, and None are plain values.
func (c *Context) IsRefCounted(t mir.Type) bool {
	switch v := t.(type) {
	case mir.ByteStringType:
		return true
	case mir.VariantType:
		return true
	case mir.RecordType:
		def, ok := c.defs[v.Name]
		if !ok {
			return true
		}
		return def.Boxed()
	default:
		return false
	}
}
