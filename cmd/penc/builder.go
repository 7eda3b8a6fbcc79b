package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/lucid-lang/lucidc/internal/config"
	"github.com/lucid-lang/lucidc/internal/iface"
	"github.com/lucid-lang/lucidc/internal/lower"
	"github.com/lucid-lang/lucidc/internal/modpath"
	"github.com/lucid-lang/lucidc/internal/pipeline"
	"github.com/lucid-lang/lucidc/internal/resolver"
	"github.com/lucid-lang/lucidc/internal/sid"
)

// buildContext is shared state for one `penc build`/`check` invocation:
// the package and compile configuration, and a resolver that knows
// the output-directory layout.
type buildContext struct {
	pipeline  *pipeline.Pipeline
	resolver  *resolver.Resolver
	prelude   []*iface.Interface
	isPrelude bool
	workers   int

	mu       sync.Mutex
	compiled map[string]*iface.Interface // by serialized module path
	results  map[string]*pipeline.Result // by serialized module path
	order    []string                    // compiled module paths, dependency-first
}

func newBuildContext(packageDir, outputDir string, pkgCfg *config.PackageConfiguration, compileCfg *config.CompileConfiguration, prelude []*iface.Interface, isPrelude bool) *buildContext {
	return &buildContext{
		pipeline:  &pipeline.Pipeline{PackageDir: packageDir, OutputDir: outputDir, Compile: compileCfg, Package: pkgCfg},
		resolver:  &resolver.Resolver{PackageDir: packageDir, OutputDir: outputDir, Config: pkgCfg},
		prelude:   prelude,
		isPrelude: isPrelude,
		workers:   4,
		compiled:  map[string]*iface.Interface{},
		results:   map[string]*pipeline.Result{},
	}
}

// compile recursively compiles sourcePath and everything it imports,
// memoizing by module path so a module shared by two dependents is
// only ever compiled once. isEntry marks the module named on the
// command line, the only one eligible for the application's $main
// wrapper.
func (b *buildContext) compile(sourcePath string, isEntry bool) (*iface.Interface, error) {
	mpath, err := pipeline.ModulePathFromSource(b.pipeline.PackageDir, sourcePath)
	if err != nil {
		return nil, err
	}
	key := mpath.String()
	b.mu.Lock()
	if ifc, ok := b.compiled[key]; ok {
		b.mu.Unlock()
		return ifc, nil
	}
	b.mu.Unlock()

	trace("loading %s", sourcePath)
	mod, err := pipeline.LoadModule(sourcePath)
	if err != nil {
		return nil, err
	}

	// Sibling imports are independent of each other, so they compile
	// concurrently bounded by b.workers; each writes its own slot in
	// imports/resolution, guarded by a mutex since errgroup.Group fans
	// the goroutines out across the package's whole import graph.
	imports := lower.ImportedInterfaces{}
	resolution := resolver.Resolution{}
	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(b.workers)
	for _, imp := range mod.Imports {
		imp := imp
		g.Go(func() error {
			ifacePath, ifc, err := b.resolveAndCompile(imp.Path)
			if err != nil {
				return err
			}
			mu.Lock()
			imports[imp.Path.String()] = ifc
			resolution[imp.Path.String()] = ifacePath
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	isApplication := isEntry && b.pipeline.Package.Type == config.Application
	trace("compiling %s (application=%v)", key, isApplication)
	result, err := b.pipeline.CompileModule(mod, mpath.QualificationPrefix(), imports, b.prelude, b.isPrelude, isApplication)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sourcePath, err)
	}

	if err := b.writeArtifacts(sourcePath, result, resolution); err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.compiled[key] = result.Interface
	b.results[key] = result
	b.order = append(b.order, key)
	b.mu.Unlock()
	return result.Interface, nil
}

// resolveAndCompile resolves one import to its interface file path
// (internal/resolver) and, for an internal import, recursively
// compiles the module that produces it; an external import's
// interface is loaded from the already-built JSON on disk.
func (b *buildContext) resolveAndCompile(imp modpath.Path) (string, *iface.Interface, error) {
	ifacePath, err := b.resolver.ResolveImport(imp)
	if err != nil {
		return "", nil, err
	}
	if imp.IsExternal() {
		data, err := os.ReadFile(ifacePath)
		if err != nil {
			return "", nil, err
		}
		ifc, err := iface.Unmarshal(data)
		return ifacePath, ifc, err
	}
	sourcePath := filepath.Join(b.pipeline.PackageDir, filepath.Join(imp.Components()...)) + ".pen"
	ifc, err := b.compile(sourcePath, false)
	return ifacePath, ifc, err
}

// writeArtifacts persists the four files produced for one compiled
// module: its interface, the dependency map, the Ninja dyndep
// fragment, and an object placeholder standing in for the bitcode an
// external backend would emit.
func (b *buildContext) writeArtifacts(sourcePath string, result *pipeline.Result, resolution resolver.Resolution) error {
	id := sid.NewModuleID(sourcePath)
	objectsDir := filepath.Join(b.pipeline.OutputDir, "objects")
	if err := os.MkdirAll(objectsDir, 0o755); err != nil {
		return err
	}

	ifaceData, err := iface.Marshal(result.Interface)
	if err != nil {
		return err
	}
	ifacePath := filepath.Join(objectsDir, string(id)+".json")
	if err := os.WriteFile(ifacePath, ifaceData, 0o644); err != nil {
		return err
	}

	depData, err := resolver.WriteDependencyFile(resolution)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(objectsDir, string(id)+".deps.json"), depData, 0o644); err != nil {
		return err
	}

	objectPath := filepath.Join(objectsDir, string(id)+".bc")
	fragment := resolver.WriteBuildFragment(objectPath, resolution)
	if err := os.WriteFile(filepath.Join(objectsDir, string(id)+".dyndep"), []byte(fragment), 0o644); err != nil {
		return err
	}

	return writeObjectPlaceholder(objectPath, result)
}

// writeObjectPlaceholder stands in for the machine code an external
// low-level-IR backend would produce from result.MIR: this repo stops
// at mid-level IR, so the placeholder instead records what that
// backend would have consumed, for inspection and for the dyndep
// fragment's build edge to have something to name.
func writeObjectPlaceholder(path string, result *pipeline.Result) error {
	var names []string
	for _, fn := range result.MIR.FunctionDefinitions {
		names = append(names, fn.Name)
	}
	sort.Strings(names)
	content := fmt.Sprintf(
		"# object placeholder for %s\n# functions: %v\n# variant types: %v\n",
		result.MIR.Path, names, result.VariantIDs,
	)
	return os.WriteFile(path, []byte(content), 0o644)
}
