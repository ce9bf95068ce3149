package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fbaltor/generators"
	"github.com/fbaltor/generators/seeding"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the generator kinds a config can use",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, kind := range append(generators.Kinds(), seeding.KindScript) {
			fmt.Fprintln(cmd.OutOrStdout(), kind)
		}
	},
}
