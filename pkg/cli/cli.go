// Package cli is the scc command line. Applications define their
// components in Go, describe them with a compiler.Project and hand it to
// Execute from their own main package.
package cli

import (
	"fmt"
	"os"

	"github.com/recera/scc/pkg/compiler"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// Execute runs the scc command line over p and exits 1 on failure
func Execute(p compiler.Project) {
	if err := NewRootCommand(p).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCommand returns the scc root command bound to p
func NewRootCommand(p compiler.Project) *cobra.Command {
	var cwd string

	rootCmd := &cobra.Command{
		Use:   "scc",
		Short: "scc - static component compiler",
		Long: `scc compiles Go component definitions into static markup, one
DOM-construction script per component and flattened CSS, plus a small
runtime that mounts components on demand in the browser.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cwd != "" {
				if err := os.Chdir(cwd); err != nil {
					return fmt.Errorf("failed to change directory to %s: %w", cwd, err)
				}
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&cwd, "cwd", "", "Project directory holding scc.yaml (defaults to current)")

	rootCmd.AddCommand(newBuildCommand(p))
	rootCmd.AddCommand(newDevCommand(p))
	rootCmd.AddCommand(newInspectCommand(p))
	rootCmd.AddCommand(newVerifyCommand(p))

	return rootCmd
}
