package diag

import (
	"fmt"
	"strings"

	"github.com/lucid-lang/lucidc/internal/position"
)

// FormatError renders a diagnostic the way the log_error surface
// outside the core does: "path\nL:C:\t<line>\n    \t <caret>".
func FormatError(pos position.Pos, message string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", pos.Path)
	fmt.Fprintf(&b, "%d:%d:\t%s\n", pos.Line, pos.Column, pos.LineText)
	caretIndent := strings.Repeat(" ", max(pos.Column-1, 0))
	fmt.Fprintf(&b, "    \t%s^", caretIndent)
	return b.String()
}
