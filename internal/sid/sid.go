// Package sid computes module identifiers: a hash of a source file's
// canonical absolute path, used to name the object and interface
// artifacts the resolver and build driver exchange.
package sid

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"runtime"
	"strings"
)

// ModuleID is a stable identifier derived from a module's source path.
type ModuleID string

// NewModuleID computes the module id for a source file at path. Two
// equal (canonicalized) paths always yield the same id, across runs.
// The hashed path is absolute, not relative to the package root, so
// the id changes when the package is moved to another directory.
func NewModuleID(path string) ModuleID {
	canon := canonicalizePath(path)
	hash := sha256.Sum256([]byte(canon))
	return ModuleID(hex.EncodeToString(hash[:])[:16])
}

// canonicalizePath normalizes a source path so that two different
// spellings of the same file resolve to the same module id.
func canonicalizePath(path string) string {
	path = filepath.Clean(path)
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	if isCaseInsensitiveFilesystem() {
		path = strings.ToLower(path)
	}
	return filepath.ToSlash(path)
}

func isCaseInsensitiveFilesystem() bool {
	return runtime.GOOS == "windows" || runtime.GOOS == "darwin"
}
