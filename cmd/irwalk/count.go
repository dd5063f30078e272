package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"

	"github.com/irtree/walk/ir"
	"github.com/irtree/walk/traverse"
	"github.com/irtree/walk/traverse/passes"
)

func newCountCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "count [file]",
		Short: "count nodes by kind",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				path = args[0]
			}
			tree, err := readTree(path)
			if err != nil {
				return err
			}
			counter := passes.NewNodeCounter()
			if _, err := traverse.ApplyInspector(counter, tree); err != nil {
				return err
			}
			kinds := make([]ir.Kind, 0, len(counter.Counts))
			for k := range counter.Counts {
				kinds = append(kinds, k)
			}
			slices.SortFunc(kinds, func(a, b ir.Kind) bool { return a.String() < b.String() })
			for _, k := range kinds {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", k, counter.Counts[k])
			}
			return nil
		},
	}
	return cmd
}
