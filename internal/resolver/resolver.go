// Package resolver resolves a module's imports to interface file
// paths, and computes package compilation order.
package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/lucid-lang/lucidc/internal/config"
	"github.com/lucid-lang/lucidc/internal/diag"
	"github.com/lucid-lang/lucidc/internal/modpath"
	"github.com/lucid-lang/lucidc/internal/sid"
)

func statModule(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Resolution is the result of resolving one module's imports: a map
// from the imported module's serialized path to the filesystem path
// of its compiled interface JSON.
type Resolution map[string]string

// Resolver resolves a single package's imports against its
// configuration and the output directory layout: objects live under
// <output>/objects/<id>.json, external packages under
// <output>/packages/<package-id>/.
type Resolver struct {
	PackageDir string
	OutputDir  string
	Config     *config.PackageConfiguration
}

// ResolveModule resolves every import in imports to an interface
// path. sourcePath, the importing file's own path, takes no part in
// the resolution.
func (r *Resolver) ResolveModule(sourcePath string, imports []modpath.Path) (Resolution, error) {
	out := make(Resolution, len(imports))
	for _, imp := range imports {
		ifacePath, err := r.ResolveImport(imp)
		if err != nil {
			return nil, err
		}
		out[imp.String()] = ifacePath
	}
	return out, nil
}

// ResolveImport resolves a single import to its interface file path.
func (r *Resolver) ResolveImport(imp modpath.Path) (string, error) {
	if !imp.IsExternal() {
		return r.resolveInternal(imp)
	}
	return r.resolveExternal(imp)
}

func (r *Resolver) resolveInternal(imp modpath.Path) (string, error) {
	rel := filepath.Join(imp.Components()...)
	sourcePath := filepath.Join(r.PackageDir, rel) + ".pen"
	id := sid.NewModuleID(sourcePath)
	ifacePath := filepath.Join(r.OutputDir, "objects", string(id)+".json")
	if _, err := statModule(sourcePath); err != nil {
		return "", &diag.ModuleNotFoundError{Path: sourcePath}
	}
	return ifacePath, nil
}

func (r *Resolver) resolveExternal(imp modpath.Path) (string, error) {
	url, ok := r.Config.Dependencies[imp.Package()]
	if !ok {
		return "", &diag.PackageNotFoundError{Name: imp.Package()}
	}
	dep, err := config.ParseDependencyURL(url)
	if err != nil {
		return "", err
	}
	pkgDir, err := dep.Resolve(r.PackageDir, r.OutputDir)
	if err != nil {
		return "", err
	}
	rel := filepath.Join(imp.Components()...)
	sourcePath := filepath.Join(pkgDir, rel) + ".pen"
	id := sid.NewModuleID(sourcePath)
	ifacePath := filepath.Join(r.OutputDir, "packages", packageID(imp.Package(), url), "objects", string(id)+".json")
	if _, err := statModule(sourcePath); err != nil {
		return "", &diag.ModuleNotFoundError{Path: sourcePath}
	}
	return ifacePath, nil
}

// packageID names the directory an external package's artifacts live
// under: its declared local name plus a short digest of its URL, so
// two dependencies with the same local name in different packages
// (resolved independently) never collide on disk.
func packageID(name, url string) string {
	return name + "-" + strings.Trim(string(sid.NewModuleID(url)), "/")[:8]
}
