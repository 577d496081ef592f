// Package main provides the pinetree command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pinetree",
		Short: "Stochastic simulator of gene expression on a linear polymer",
		Long: `pinetree simulates polymerases moving along a linear DNA or RNA
polymer, binding at promoters, colliding with one another, and releasing
at terminators.`,
		SilenceUsage: true,
		Version:      fmt.Sprintf("%s (%s) built %s", version, commit, date),
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newConfigCmd())

	return root
}
