package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lucid-lang/lucidc/internal/iface"
	"github.com/lucid-lang/lucidc/internal/lower"
	"github.com/lucid-lang/lucidc/internal/modpath"
	"github.com/lucid-lang/lucidc/internal/pipeline"
)

func newCheckCommand() *cobra.Command {
	var f buildFlags
	cmd := &cobra.Command{
		Use:   "check <entry-module>",
		Short: "run the pipeline through type checking only and report diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0], f)
		},
	}
	addCommonFlags(cmd, &f)
	return cmd
}

// checker mirrors buildContext's recursive module discovery without
// writing any artifacts, since `check` only needs every module to
// successfully lower and analyze.
type checker struct {
	bc *buildContext
}

func runCheck(entryPath string, f buildFlags) error {
	pkgCfg, err := loadPackageConfig(f.packageDir)
	if err != nil {
		return fmt.Errorf("loading package.yaml: %w", err)
	}
	compileCfg, err := loadCompileConfig(f.compileCfg)
	if err != nil {
		return fmt.Errorf("loading compile configuration: %w", err)
	}
	prelude, err := loadPreludeInterfaces(f.preludeDir)
	if err != nil {
		return fmt.Errorf("loading prelude interfaces: %w", err)
	}

	bc := newBuildContext(f.packageDir, f.outputDir, pkgCfg, compileCfg, prelude, f.isPrelude)
	c := &checker{bc: bc}
	if err := c.checkModule(entryPath, true); err != nil {
		reportError(err)
		return err
	}

	for _, key := range bc.order {
		fmt.Printf("%s %s\n", green("ok"), key)
	}
	return nil
}

// checkModule runs lowering and analysis only, skipping MIR lowering,
// reference counting, and artifact writing — the type-error surface
// `check` promises without paying for the rest of the pipeline.
func (c *checker) checkModule(sourcePath string, isEntry bool) error {
	mpath, err := pipeline.ModulePathFromSource(c.bc.pipeline.PackageDir, sourcePath)
	if err != nil {
		return err
	}
	key := mpath.String()
	if _, ok := c.bc.compiled[key]; ok {
		return nil
	}

	mod, err := pipeline.LoadModule(sourcePath)
	if err != nil {
		return err
	}

	imports := lower.ImportedInterfaces{}
	for _, imp := range mod.Imports {
		ifc, err := c.resolveAndCheck(imp.Path)
		if err != nil {
			return err
		}
		imports[imp.Path.String()] = ifc
	}

	_, ifc, err := c.bc.pipeline.AnalyzeOnly(mod, mpath.QualificationPrefix(), imports, c.bc.prelude, c.bc.isPrelude)
	if err != nil {
		return fmt.Errorf("%s: %w", sourcePath, err)
	}

	c.bc.compiled[key] = ifc
	c.bc.order = append(c.bc.order, key)
	return nil
}

func (c *checker) resolveAndCheck(imp modpath.Path) (*iface.Interface, error) {
	ifacePath, err := c.bc.resolver.ResolveImport(imp)
	if err != nil {
		return nil, err
	}
	if imp.IsExternal() {
		data, err := os.ReadFile(ifacePath)
		if err != nil {
			return nil, err
		}
		return iface.Unmarshal(data)
	}
	sourcePath := filepath.Join(c.bc.pipeline.PackageDir, filepath.Join(imp.Components()...)) + ".pen"
	if err := c.checkModule(sourcePath, false); err != nil {
		return nil, err
	}
	key, err := pipeline.ModulePathFromSource(c.bc.pipeline.PackageDir, sourcePath)
	if err != nil {
		return nil, err
	}
	return c.bc.compiled[key.String()], nil
}
