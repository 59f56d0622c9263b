package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"omibyte.io/bridge/gen"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols <manifest>",
	Short: "List the link symbols and transfer functions of a manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		module, opts, err := loadModule(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out, err := gen.Generate(cmd.Context(), module.Functions, opts)
		if err != nil {
			return err
		}

		for _, frag := range out.Fragments {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", frag.Symbol.LinkName, frag.Symbol.Ident)
		}
		return nil
	},
}
