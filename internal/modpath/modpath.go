// Package modpath implements the module-path model shared by the
// lowering, interface, and dependency-resolution stages.
//
// A module path is either internal to the current package or external,
// naming the package it came from. Both render with a `'` separator
// between components, matching the surface syntax's qualified-name
// punctuation.
package modpath

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Path is a module path: either Internal or External.
type Path struct {
	external   bool
	pkg        string
	components []string
}

// Internal builds an internal module path, e.g. 'a'b for components
// ["a", "b"].
func Internal(components ...string) Path {
	return Path{components: append([]string(nil), components...)}
}

// External builds an external module path naming the owning package.
func External(pkg string, components ...string) Path {
	return Path{external: true, pkg: pkg, components: append([]string(nil), components...)}
}

// IsExternal reports whether the path names an external package.
func (p Path) IsExternal() bool { return p.external }

// Package returns the owning package name for an external path, or ""
// for an internal one.
func (p Path) Package() string { return p.pkg }

// Components returns the path's dotted-quote components.
func (p Path) Components() []string { return append([]string(nil), p.components...) }

// String renders the path using the `'`-separated surface syntax:
// "'a'b" for Internal{a,b}, "pkg'a'b" for External{pkg, a,b}.
func (p Path) String() string {
	joined := strings.Join(p.components, "'")
	if p.external {
		if joined == "" {
			return p.pkg
		}
		return p.pkg + "'" + joined
	}
	return "'" + joined
}

// Equal compares two paths structurally.
func (p Path) Equal(other Path) bool {
	if p.external != other.external || p.pkg != other.pkg {
		return false
	}
	if len(p.components) != len(other.components) {
		return false
	}
	for i := range p.components {
		if p.components[i] != other.components[i] {
			return false
		}
	}
	return true
}

// IsPublic reports whether name is exported: its first rune is
// uppercase.
func IsPublic(name string) bool {
	if name == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// QualificationPrefix derives a module prefix for qualifying top-level names, e.g.
// "pkg'a'b" becomes "pkg'a'b:" when used as a qualification prefix, or
// for the common case of a package path alone, "packagepath:".
func (p Path) QualificationPrefix() string {
	return p.String() + ":"
}

// LastComponent returns the final path component, used as the default
// import alias when no explicit alias is given.
func (p Path) LastComponent() string {
	if len(p.components) == 0 {
		return p.pkg
	}
	return p.components[len(p.components)-1]
}
