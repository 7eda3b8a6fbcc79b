package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/lucid-lang/lucidc/internal/config"
	"github.com/lucid-lang/lucidc/internal/pipeline"
	"github.com/lucid-lang/lucidc/internal/resolver"
)

func newDepsCommand() *cobra.Command {
	var f buildFlags
	cmd := &cobra.Command{
		Use:   "deps <entry-module>",
		Short: "print the resolved dependency map and the package topological order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeps(args[0], f)
		},
	}
	addCommonFlags(cmd, &f)
	return cmd
}

func runDeps(entryPath string, f buildFlags) error {
	pkgCfg, err := loadPackageConfig(f.packageDir)
	if err != nil {
		return fmt.Errorf("loading package.yaml: %w", err)
	}

	fmt.Println(bold("module imports:"))
	if err := printModuleImports(f.packageDir, f.outputDir, pkgCfg, entryPath); err != nil {
		reportError(err)
		return err
	}

	fmt.Println()
	fmt.Println(bold("package topological order:"))
	order, err := packageTopoOrder(f.packageDir, f.outputDir, pkgCfg)
	if err != nil {
		reportError(err)
		return err
	}
	for _, name := range order {
		fmt.Printf("  %s\n", name)
	}
	return nil
}

// printModuleImports walks entryPath's import graph (without running
// any of the core pipeline's passes) and prints each module's resolved
// import paths, one line per edge.
func printModuleImports(packageDir, outputDir string, pkgCfg *config.PackageConfiguration, entryPath string) error {
	res := &resolver.Resolver{PackageDir: packageDir, OutputDir: outputDir, Config: pkgCfg}
	seen := map[string]bool{}
	var walk func(sourcePath string) error
	walk = func(sourcePath string) error {
		mpath, err := pipeline.ModulePathFromSource(packageDir, sourcePath)
		if err != nil {
			return err
		}
		key := mpath.String()
		if seen[key] {
			return nil
		}
		seen[key] = true

		mod, err := pipeline.LoadModule(sourcePath)
		if err != nil {
			return err
		}
		for _, imp := range mod.Imports {
			ifacePath, err := res.ResolveImport(imp.Path)
			if err != nil {
				return err
			}
			fmt.Printf("  %s -> %s (%s)\n", key, imp.Path.String(), ifacePath)
			if !imp.Path.IsExternal() {
				next := filepath.Join(packageDir, filepath.Join(imp.Path.Components()...)) + ".pen"
				if err := walk(next); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return walk(entryPath)
}

// packageTopoOrder reads this package's own package.yaml dependencies
// plus, recursively, every dependency's own package.yaml, and orders
// the resulting graph with internal/resolver.TopoSortPackages.
func packageTopoOrder(packageDir, outputDir string, root *config.PackageConfiguration) ([]string, error) {
	graph := map[string][]string{}
	var walk func(name, dir string, cfg *config.PackageConfiguration) error
	walk = func(name, dir string, cfg *config.PackageConfiguration) error {
		if _, ok := graph[name]; ok {
			return nil
		}
		deps := make([]string, 0, len(cfg.Dependencies))
		for depName := range cfg.Dependencies {
			deps = append(deps, depName)
		}
		sort.Strings(deps)
		graph[name] = deps

		for _, depName := range deps {
			raw := cfg.Dependencies[depName]
			url, err := config.ParseDependencyURL(raw)
			if err != nil {
				return fmt.Errorf("dependency %q: %w", depName, err)
			}
			depDir, err := url.Resolve(dir, outputDir)
			if err != nil {
				return fmt.Errorf("dependency %q: %w", depName, err)
			}
			depCfg, err := loadPackageConfig(depDir)
			if err != nil {
				return fmt.Errorf("dependency %q: %w", depName, err)
			}
			if err := walk(depName, depDir, depCfg); err != nil {
				return err
			}
		}
		return nil
	}

	rootName := filepath.Base(absOrSelf(packageDir))
	if err := walk(rootName, packageDir, root); err != nil {
		return nil, err
	}
	return resolver.TopoSortPackages(graph)
}

func absOrSelf(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}
