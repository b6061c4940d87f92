package services

import (
	"context"
	"time"

	"github.com/SscSPs/resale_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TaxSvc is the progressive-bracket revenue tax engine.
type TaxSvc interface {
	// GetRollingRevenue returns the taxable revenue of the twelve calendar months before
	// the month of referenceDate.
	GetRollingRevenue(ctx context.Context, referenceDate time.Time) (decimal.Decimal, error)

	// GetEffectiveTaxRate returns the effective rate for an RBT12, rounded to four places.
	GetEffectiveTaxRate(ctx context.Context, rbt12 decimal.Decimal) decimal.Decimal

	// TaxForBase returns the tax for base at the given RBT12 and the rate used.
	TaxForBase(ctx context.Context, base, rbt12 decimal.Decimal) (amount decimal.Decimal, rateUsed decimal.Decimal)

	// Compute is TaxForBase with the bracket details kept.
	Compute(ctx context.Context, base, rbt12 decimal.Decimal) domain.TaxComputation
}
