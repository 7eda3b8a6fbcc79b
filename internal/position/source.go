package position

import (
	"bytes"

	"golang.org/x/text/unicode/norm"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// NormalizeSource strips a leading UTF-8 BOM and applies Unicode NFC
// normalization to raw source bytes before they reach any downstream
// pass. Doing this once at the boundary means two files that differ
// only in Unicode normalization form produce identical positions and
// identical trees.
func NormalizeSource(src []byte) []byte {
	src = bytes.TrimPrefix(src, bomUTF8)
	if !norm.NFC.IsNormal(src) {
		src = norm.NFC.Bytes(src)
	}
	return src
}

// LineAt returns the 1-based line's raw text from normalized source,
// used to populate Pos.LineText when a node's position is constructed
// from a byte offset rather than from a line/column pair.
func LineAt(src []byte, line int) string {
	if line < 1 {
		return ""
	}
	start := 0
	current := 1
	for i := 0; i < len(src); i++ {
		if current == line {
			start = i
			break
		}
		if src[i] == '\n' {
			current++
		}
	}
	if current != line {
		return ""
	}
	end := bytes.IndexByte(src[start:], '\n')
	if end < 0 {
		return string(src[start:])
	}
	return string(src[start : start+end])
}
