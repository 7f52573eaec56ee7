package cmd

import (
	"github.com/spf13/cobra"
)

var caseSensitive bool

var rootCmd = &cobra.Command{
	Use:   "objshell",
	Short: "Inspect the AVM1-style object model core",
	Long: `objshell drives avm1core/pkg/object directly: it builds prototype
chains, virtual properties, and arrays, then runs [[Get]]/[[Set]]/[[Delete]]
against them so the core's behavior can be watched from the command line.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&caseSensitive, "case-sensitive", true, "resolve property names case-sensitively")
}
