package lower

import (
	"strconv"
	"strings"

	"github.com/lucid-lang/lucidc/internal/ast"
	"github.com/lucid-lang/lucidc/internal/diag"
)

// parseNumber parses a number literal according to its syntactic
// radix.
func parseNumber(lit *ast.NumberLiteral) (float64, error) {
	text := strings.ReplaceAll(lit.Text, "_", "")
	switch lit.Base {
	case ast.Binary:
		v, err := strconv.ParseInt(strings.TrimPrefix(text, "0b"), 2, 64)
		if err != nil {
			return 0, &diag.ParseIntegerError{Pos: lit.Pos}
		}
		return float64(v), nil
	case ast.Hex:
		v, err := strconv.ParseInt(strings.TrimPrefix(text, "0x"), 16, 64)
		if err != nil {
			return 0, &diag.ParseIntegerError{Pos: lit.Pos}
		}
		return float64(v), nil
	case ast.DecimalFloat:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, &diag.ParseFloatError{Pos: lit.Pos}
		}
		return v, nil
	default: // ast.Decimal
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			// A decimal literal may still be a float written without
			// an explicit float marker (e.g. produced by a desugared
			// surface rule); fall back before failing outright.
			fv, ferr := strconv.ParseFloat(text, 64)
			if ferr != nil {
				return 0, &diag.ParseIntegerError{Pos: lit.Pos}
			}
			return fv, nil
		}
		return float64(v), nil
	}
}

// expandByteString expands the escape sequences of a byte-string
// literal's raw source text: `\n \r \t \\ \" \xNN`. `\xNN` decodes a
// single raw byte and is appended verbatim even when it is not valid
// UTF-8: byte-preserving behavior is authoritative here over strict
// UTF-8 validation.
func expandByteString(raw string) ([]byte, error) {
	out := make([]byte, 0, len(raw))
	i := 0
	for i < len(raw) {
		c := raw[i]
		if c != '\\' {
			out = append(out, c)
			i++
			continue
		}
		if i+1 >= len(raw) {
			return nil, &diag.ParseError{Message: "dangling escape at end of byte string"}
		}
		switch raw[i+1] {
		case 'n':
			out = append(out, '\n')
			i += 2
		case 'r':
			out = append(out, '\r')
			i += 2
		case 't':
			out = append(out, '\t')
			i += 2
		case '\\':
			out = append(out, '\\')
			i += 2
		case '"':
			out = append(out, '"')
			i += 2
		case 'x':
			if i+3 >= len(raw) {
				return nil, &diag.ParseError{Message: "truncated \\xNN escape"}
			}
			v, err := strconv.ParseUint(raw[i+2:i+4], 16, 8)
			if err != nil {
				return nil, &diag.ParseError{Message: "invalid \\xNN escape"}
			}
			out = append(out, byte(v))
			i += 4
		default:
			return nil, &diag.ParseError{Message: "unknown escape sequence"}
		}
	}
	return out, nil
}
