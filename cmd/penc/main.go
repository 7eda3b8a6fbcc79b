// Command penc is the compiler driver: it loads a package's
// configuration, resolves its module and package dependency graphs,
// and runs each module through the core pipeline (internal/pipeline),
// writing each module's compiled interface, its dependency map, a
// Ninja dyndep fragment, and an object placeholder file to the output
// directory.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version info, set by ldflags during release builds.
	version = "dev"
	commit  = "unknown"

	red    = color.New(color.FgRed).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()

	traceEnabled bool
)

func main() {
	root := &cobra.Command{
		Use:           "penc",
		Short:         "penc compiles a package of modules to the mid-level IR",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&traceEnabled, "trace", false, "print each pass as it runs")

	var printVersion bool
	root.Flags().BoolVar(&printVersion, "version", false, "print version information")
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if printVersion {
			fmt.Printf("%s %s (%s)\n", bold("penc"), version, commit)
			return nil
		}
		return cmd.Help()
	}

	root.AddCommand(newBuildCommand(), newCheckCommand(), newDepsCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		os.Exit(1)
	}
}

func trace(format string, args ...interface{}) {
	if !traceEnabled {
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", cyan("trace"), fmt.Sprintf(format, args...))
}
