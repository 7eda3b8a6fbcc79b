// Package position carries source-location information for every
// syntactic and IR node produced by the pipeline.
//
// Positions are intentionally "opaque" for comparison purposes: two
// positions always compare equal, hash identically, and sort equal.
// This lets ASTs, HIR, and MIR trees be fingerprinted and compared
// structurally without source-location noise, which in turn lets the
// analysis passes be tested and cached independently of where a piece
// of syntax happened to live in a file.
package position

import "fmt"

// Pos is a single source location: a file path, 1-based line and
// column, and the full text of the line it points into (used for
// diagnostic rendering).
type Pos struct {
	Path     string
	Line     int
	Column   int
	LineText string
}

// New builds a Pos from its parts.
func New(path string, line, column int, lineText string) Pos {
	return Pos{Path: path, Line: line, Column: column, LineText: lineText}
}

// String renders "path:line:column" for use in error messages that
// want the coordinate but not the full line-text diagnostic block.
func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Path, p.Line, p.Column)
}

// Equal always reports true. Positions never participate in
// structural equality of the trees that carry them; see the package
// doc comment.
func (p Pos) Equal(Pos) bool { return true }

// Less always reports false, so that positions never break a stable
// sort order imposed by other fields.
func (p Pos) Less(Pos) bool { return false }

// Key returns a constant map key, so that using Pos as (part of) a map
// key never actually discriminates between positions.
func (p Pos) Key() struct{} { return struct{}{} }

// Zero is the position used for synthetic nodes introduced by lowering
// passes (e.g. the implicit main-wrapper function) that have no
// corresponding source location.
var Zero = Pos{Path: "", Line: 0, Column: 0, LineText: ""}
