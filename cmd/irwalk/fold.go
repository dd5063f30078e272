package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/irtree/walk/traverse"
	"github.com/irtree/walk/traverse/passes"
)

func newFoldCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fold [file]",
		Short: "fold constant arithmetic and print the resulting tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			tree, err := readTree(path)
			if err != nil {
				return err
			}
			cf := passes.NewConstFold()
			result, err := traverse.ApplyTransform(cf, tree)
			if err != nil {
				return err
			}
			if err := writeTree(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "folded %d expression(s)\n", cf.Folded)
			return nil
		},
	}
	return cmd
}
