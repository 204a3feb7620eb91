// Package cmd implements the hispano CLI: run and eval HispanoLang
// programs via a cobra root command with subcommands and a
// package-level Version string.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set by build flags (-ldflags "-X ...cmd.Version=...").
var Version = "0.1.0-dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "hispano",
	Short: "HispanoLang interpreter",
	Long: `hispano is a tree-walking interpreter for HispanoLang, a Spanish-
keyword scripting language with variables, functions, classes, arrays,
and control flow.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) error {
	return fmt.Errorf(msg, args...)
}
