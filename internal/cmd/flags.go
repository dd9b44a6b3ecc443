package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flagAlias registers a hidden flag alias that shares the same underlying value.
// This allows shorter flag names (e.g. --sep for --separator) without
// duplicating the variable binding. The alias is hidden from help output.
func flagAlias(fs *pflag.FlagSet, name, alias string) {
	f := fs.Lookup(name)
	if f == nil {
		return
	}
	fs.AddFlag(&pflag.Flag{
		Name:        alias,
		Usage:       f.Usage,
		Value:       f.Value,
		DefValue:    f.DefValue,
		NoOptDefVal: f.NoOptDefVal,
		Hidden:      true,
	})
}

// commandFlagChanged reports whether name, or one of its aliases, was set on
// cmd or any of its parents.
func commandFlagChanged(cmd *cobra.Command, names ...string) bool {
	for current := cmd; current != nil; current = current.Parent() {
		for _, name := range names {
			if flag := current.Flags().Lookup(name); flag != nil && flag.Changed {
				return true
			}
			if flag := current.PersistentFlags().Lookup(name); flag != nil && flag.Changed {
				return true
			}
		}
	}
	return false
}
