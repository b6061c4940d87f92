package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/SscSPs/resale_ledger/internal/core/domain"
	"github.com/SscSPs/resale_ledger/internal/core/services"
	"github.com/SscSPs/resale_ledger/internal/platform/config"
	"github.com/SscSPs/resale_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/resale_ledger/pkg/database"
)

func newChartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print the default chart of accounts seeded by the migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tNAME\tCATEGORY\tNATURE")
			for _, acc := range domain.DefaultChartOfAccounts() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", acc.Code, acc.Name, acc.Category, acc.Nature)
			}
			return tw.Flush()
		},
	}
	cmd.AddCommand(newChartSeedCommand())
	return cmd
}

func newChartSeedCommand() *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Add any default account missing from the database",
		Long:  "Reads PGSQL_URL and inserts the default accounts whose codes are absent. Existing accounts are not modified.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
			if err != nil {
				return err
			}
			defer database.ClosePgxPool(pool)

			chart := services.NewChartOfAccountsService(pgsql.NewRepositoryProvider(pool).AccountRepo)
			added, err := chart.SeedDefaultChart(ctx, actor)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "accounts added: %d\n", added)
			return nil
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "system", "actor recorded in the audit fields")

	return cmd
}
