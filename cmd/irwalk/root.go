package main

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/irtree/walk/encoding/irtext"
	"github.com/irtree/walk/ir"
)

var debug bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "irwalk",
		Short:        "irwalk runs traversal-core passes over an irtext-encoded tree",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "pretty-print the decoded tree before running the pass")
	addGlobalFlags(root.PersistentFlags())
	root.AddCommand(newCountCmd())
	root.AddCommand(newFoldCmd())
	root.AddCommand(newRenameCmd())
	return root
}

func readTree(path string) (ir.Node, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = ioutil.ReadAll(os.Stdin)
	} else {
		data, err = ioutil.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	n, err := irtext.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	if debug {
		pretty.Fprintf(os.Stderr, "%# v\n", n)
	}
	return n, nil
}

func writeTree(w io.Writer, n ir.Node) error {
	data, err := irtext.Marshal(n)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
