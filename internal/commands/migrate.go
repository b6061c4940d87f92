package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SscSPs/resale_ledger/internal/platform/config"
	"github.com/SscSPs/resale_ledger/internal/platform/logging"
	"github.com/SscSPs/resale_ledger/internal/platform/migrations"
)

func newMigrateCommand() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back database migrations",
		Long:      "Apply all pending migrations (up, the default) or roll back the latest one (down). Reads PGSQL_URL.",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(migrations.Up), string(migrations.Down)},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := migrations.Up
			if len(args) > 0 {
				dir = migrations.Direction(args[0])
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("PGSQL_URL is not set")
			}
			if source == "" {
				source = cfg.MigrationsPath
			}

			logger := logging.New(os.Stderr, cfg.LogLevel)
			applied, err := migrations.Run(logger, cfg.DatabaseURL, source, dir)
			if err != nil {
				return err
			}
			if applied {
				fmt.Fprintf(cmd.OutOrStdout(), "migrations %s: applied\n", dir)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "migrations %s: no change\n", dir)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "migration source URL (defaults to MIGRATIONS_PATH)")

	return cmd
}
