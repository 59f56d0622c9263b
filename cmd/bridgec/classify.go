package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"omibyte.io/bridge/ctypes"
	"omibyte.io/bridge/ir"
	"omibyte.io/bridge/parse"
)

var (
	classifyOpts = struct {
		list bool
	}{}

	classifyCmd = &cobra.Command{
		Use:   "classify <type>...",
		Short: "Show how types cross the boundary",
		Long: "Show how types cross the boundary. With --list, print the built-in " +
			"primitives with their C spelling and header instead.",
		Args: func(cmd *cobra.Command, args []string) error {
			if classifyOpts.list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if classifyOpts.list {
				for _, p := range ctypes.All() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", p.Name, p.C, p.Header)
				}
				return nil
			}

			for _, arg := range args {
				t, err := parse.ParseType(cmd.Context(), arg)
				if err != nil {
					return fmt.Errorf("%s: %w", arg, err)
				}

				c := ir.Classify(t)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", t, c, c.CType())
			}
			return nil
		},
	}
)

func init() {
	classifyCmd.Flags().BoolVarP(&classifyOpts.list, "list", "l", false, "list the built-in primitives")
}
