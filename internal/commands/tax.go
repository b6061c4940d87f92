package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/SscSPs/resale_ledger/internal/core/domain"
	"github.com/SscSPs/resale_ledger/internal/core/services"
	"github.com/SscSPs/resale_ledger/internal/dto"
	"github.com/SscSPs/resale_ledger/internal/platform/config"
	"github.com/SscSPs/resale_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/resale_ledger/internal/utils"
	"github.com/SscSPs/resale_ledger/pkg/database"
)

func newTaxCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Inspect the revenue tax bracket engine",
	}
	cmd.AddCommand(newTaxRateCommand(), newTaxWindowCommand(), newTaxRBT12Command())
	return cmd
}

func newTaxRateCommand() *cobra.Command {
	var rbt12Flag, baseFlag string

	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Print the effective rate for an RBT12 and, optionally, the tax on a base",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rbt12, err := parseAmount("rbt12", rbt12Flag)
			if err != nil {
				return err
			}
			base := decimal.Zero
			if baseFlag != "" {
				if base, err = parseAmount("base", baseFlag); err != nil {
					return err
				}
			}

			tax := services.NewTaxService(nil)
			printComputation(cmd.OutOrStdout(), tax.Compute(cmd.Context(), base, rbt12))
			return nil
		},
	}

	cmd.Flags().StringVar(&rbt12Flag, "rbt12", "", "trailing twelve-month revenue (required)")
	_ = cmd.MarkFlagRequired("rbt12")
	cmd.Flags().StringVar(&baseFlag, "base", "", "taxable base")

	return cmd
}

func newTaxWindowCommand() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Print the RBT12 window for a reference date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := time.Parse(dto.DateLayout, date)
			if err != nil {
				return fmt.Errorf("invalid --date %q: use YYYY-MM-DD", date)
			}
			from, to := services.RollingRevenueWindow(ref)
			fmt.Fprintf(cmd.OutOrStdout(), "window: %s to %s (exclusive)\n", from.Format(dto.DateLayout), to.Format(dto.DateLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", time.Now().UTC().Format(dto.DateLayout), "reference date (YYYY-MM-DD)")

	return cmd
}

func newTaxRBT12Command() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "rbt12",
		Short: "Compute the RBT12 and effective rate from the sales table",
		Long:  "Reads PGSQL_URL and sums the taxable revenue of the twelve months before the month of --date.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := time.Parse(dto.DateLayout, date)
			if err != nil {
				return fmt.Errorf("invalid --date %q: use YYYY-MM-DD", date)
			}

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

			tax := services.NewTaxService(pgsql.NewRepositoryProvider(pool).SaleRepo)
			rbt12, err := tax.GetRollingRevenue(ctx, ref)
			if err != nil {
				return err
			}
			printComputation(cmd.OutOrStdout(), tax.Compute(ctx, decimal.Zero, rbt12))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", time.Now().UTC().Format(dto.DateLayout), "reference date (YYYY-MM-DD)")

	return cmd
}

func parseAmount(name, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", name, value, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("--%s must not be negative", name)
	}
	return d, nil
}

func printComputation(w io.Writer, c domain.TaxComputation) {
	fmt.Fprintf(w, "rbt12:          %s\n", utils.FormatAmount(c.RBT12))
	fmt.Fprintf(w, "bracket:        %d\n", c.Bracket)
	fmt.Fprintf(w, "effective rate: %s (%s)\n", utils.FormatRate(c.EffectiveRate), utils.FormatPercent(c.EffectiveRate))
	if c.AboveTopBracket {
		fmt.Fprintln(w, "warning:        rbt12 exceeds the top bracket")
	}
	if !c.Base.IsZero() {
		fmt.Fprintf(w, "base:           %s\n", utils.FormatAmount(c.Base))
		fmt.Fprintf(w, "tax:            %s\n", utils.FormatAmount(c.Amount))
	}
}
