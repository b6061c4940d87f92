package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SscSPs/resale_ledger/internal/platform/version"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ledgerctl",
		Short:   "Operator tooling for the resale ledger",
		Version: fmt.Sprintf("%s (commit: %s)", version.Version, version.Commit),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newTaxCommand())
	rootCmd.AddCommand(newChartCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
