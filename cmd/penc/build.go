package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucid-lang/lucidc/internal/diag"
)

type buildFlags struct {
	packageDir string
	outputDir  string
	compileCfg string
	preludeDir string
	isPrelude  bool
	workers    int
}

func newBuildCommand() *cobra.Command {
	var f buildFlags
	cmd := &cobra.Command{
		Use:   "build <entry-module>",
		Short: "resolve, lower, analyze, and lower to MIR an entry module and its dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(args[0], f)
		},
	}
	addCommonFlags(cmd, &f)
	return cmd
}

func addCommonFlags(cmd *cobra.Command, f *buildFlags) {
	cmd.Flags().StringVar(&f.packageDir, "package", ".", "package root directory")
	cmd.Flags().StringVar(&f.outputDir, "output", "build", "output directory for compiled artifacts")
	cmd.Flags().StringVar(&f.compileCfg, "compile-config", "compile.yaml", "path to the prelude-name configuration")
	cmd.Flags().StringVar(&f.preludeDir, "prelude", "", "directory of already-compiled prelude interface JSON files")
	cmd.Flags().BoolVar(&f.isPrelude, "is-prelude", false, "compile this package as the prelude itself")
	cmd.Flags().IntVar(&f.workers, "workers", 4, "bound on independent modules compiled concurrently")
}

func runBuild(entryPath string, f buildFlags) error {
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
	bc.workers = f.workers
	if _, err := bc.compile(entryPath, true); err != nil {
		reportError(err)
		return err
	}

	for _, key := range bc.order {
		fmt.Printf("%s %s\n", green("compiled"), key)
	}
	return nil
}

// reportError renders a diag.Diagnostic with its mnemonic code, or
// falls back to the bare error for anything else (a filesystem error
// reading a missing source file, say).
func reportError(err error) {
	if d, ok := err.(diag.Diagnostic); ok {
		fmt.Printf("%s %s: %s\n", red("error"), d.Code(), d.Error())
		return
	}
	fmt.Printf("%s %v\n", red("error"), err)
}
