// Command irwalk drives the traversal core over a tree written in the
// irtext YAML encoding, the way cue's CLI drives evaluation over CUE
// source: read a file (or stdin), run one pass, print the result.
package main

import (
	"fmt"
	"os"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
