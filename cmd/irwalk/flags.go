package main

import "github.com/spf13/pflag"

// addGlobalFlags registers flags shared by every subcommand directly on
// the flag set, rather than through cobra's PersistentFlags wrapper.
func addGlobalFlags(f *pflag.FlagSet) {
	f.BoolVarP(&verbose, "verbose", "v", false, "print pass statistics to stderr")
}

var verbose bool
