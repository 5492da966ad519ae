package main

import (
	"github.com/spf13/cobra"

	"sanmd/internal/ir"
)

var printCmd = &cobra.Command{
	Use:   "print <module.smod>",
	Short: "Dump a serialized module in readable form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mod, err := ir.LoadModule(args[0])
		if err != nil {
			return err
		}
		return ir.DumpModule(cmd.OutOrStdout(), mod)
	},
}
