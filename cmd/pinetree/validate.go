package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benjaminjack/pinetree/internal/simconfig"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a run configuration without simulating it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := simconfig.LoadAuto(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: genome %q, length %d, %d polymerase species, %d promoters, %d genes, %d terminators\n",
				cfg.GenomeName, cfg.GenomeLength, len(cfg.Polymerases), len(cfg.Promoters), len(cfg.Genes), len(cfg.Terminators))
			return nil
		},
	}
}
