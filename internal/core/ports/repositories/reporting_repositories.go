package repositories

import (
	"context"

	"github.com/SscSPs/resale_ledger/internal/core/domain"
)

// ReportingRepository returns raw ledger aggregates. It never applies sign conventions;
// that is left to accounting.AccountBalance.
type ReportingRepository interface {
	// SumMovementsByAccount returns per-account debit and credit totals of every line whose
	// entry date falls in the period (zero From means no lower bound). Accounts without
	// movement are omitted.
	SumMovementsByAccount(ctx context.Context, period domain.Period) ([]domain.AccountMovement, error)

	// SumCounterpartMovements aggregates the lines that touch exactly one of the tracked
	// accounts, grouped by the account on the other side. Lines between two tracked
	// accounts are excluded.
	SumCounterpartMovements(ctx context.Context, trackedAccountIDs []string, period domain.Period) ([]domain.CounterpartMovement, error)
}
