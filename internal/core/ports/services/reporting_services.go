package services

import (
	"context"
	"time"

	"github.com/SscSPs/resale_ledger/internal/core/domain"
)

// ReportingSvc derives financial statements from ledger lines.
type ReportingSvc interface {
	// GetStatement builds the statement of the given kind. Point-in-time statements
	// use period.To as their date.
	GetStatement(ctx context.Context, kind domain.StatementKind, period domain.Period) (*domain.Statement, error)

	// IncomeStatement generates the DRE for a period
	IncomeStatement(ctx context.Context, period domain.Period) (*domain.IncomeStatement, error)

	// BalanceSheet generates a balance sheet report as of a specific date
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)

	// CashFlow generates the cash-flow statement for a period
	CashFlow(ctx context.Context, period domain.Period) (*domain.CashFlowReport, error)

	// TrialBalance generates a trial balance report as of a specific date
	TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)
}
