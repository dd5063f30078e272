package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	"github.com/irtree/walk/traverse"
	"github.com/irtree/walk/traverse/passes"
)

func newRenameCmd() *cobra.Command {
	var mappings []string
	cmd := &cobra.Command{
		Use:   "rename [file] --map from=to",
		Short: "rename identifiers in place",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			table := make(map[string]string, len(mappings))
			for _, m := range mappings {
				parts := strings.SplitN(m, "=", 2)
				if len(parts) != 2 {
					return xerrors.Errorf("irwalk: invalid --map value %q, want from=to", m)
				}
				table[parts[0]] = parts[1]
			}
			tree, err := readTree(path)
			if err != nil {
				return err
			}
			r := passes.NewRename(table)
			result, err := traverse.ApplyModifier(r, tree)
			if err != nil {
				return err
			}
			if verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "renamed %d identifier(s)\n", r.Renamed)
			}
			return writeTree(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringArrayVar(&mappings, "map", nil, "rename an identifier, from=to (repeatable)")
	return cmd
}
