// Package types implements type analysis: canonicalization, structural
// equality, subsumption, difference, bidirectional inference,
// checking, and coercion insertion over hir.Module.
package types

import "github.com/lucid-lang/lucidc/internal/hir"

// Context is the environment the analyzer consults while canonicalizing
// and checking types: the alias table (for Reference resolution), the
// record table (the only place the type graph may cycle; see
// Canonicalize), and the platform Error type used by try-operation
// validation.
type Context struct {
	Aliases   map[string]hir.Type
	Records   map[string][]*hir.Field
	ErrorType hir.Type
	// Functions maps every qualified function/foreign-import name
	// visible to this module (its own definitions plus every imported
	// declaration) to its function type, so that Variable lookups in
	// call position can synthesize a result type.
	Functions map[string]hir.Type
}

// NewContext builds an empty Context.
func NewContext() *Context {
	return &Context{
		Aliases:   map[string]hir.Type{},
		Records:   map[string][]*hir.Field{},
		Functions: map[string]hir.Type{},
	}
}

// Lookup returns a record's field list, if defined.
func (c *Context) Lookup(recordName string) ([]*hir.Field, bool) {
	fields, ok := c.Records[recordName]
	return fields, ok
}
