package accounting

import (
	"fmt"

	"github.com/SscSPs/resale_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountBalance applies the nature-based sign convention to raw debit and credit totals.
// This is the single place the convention lives; every statement goes through it.
//
//	DEBIT nature  (assets, costs, expenses):       debits - credits
//	CREDIT nature (liabilities, equity, revenue):  credits - debits
func AccountBalance(nature domain.AccountNature, debitTotal, creditTotal decimal.Decimal) (decimal.Decimal, error) {
	switch nature {
	case domain.DebitNature:
		return debitTotal.Sub(creditTotal), nil
	case domain.CreditNature:
		return creditTotal.Sub(debitTotal), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account nature '%s'", nature)
	}
}

// MovementBalance is AccountBalance for an aggregated movement.
func MovementBalance(acc domain.Account, m domain.AccountMovement) (decimal.Decimal, error) {
	b, err := AccountBalance(acc.Nature, m.DebitTotal, m.CreditTotal)
	if err != nil {
		return decimal.Zero, fmt.Errorf("account %s: %w", acc.Code, err)
	}
	return b, nil
}

// Round2 rounds a monetary amount to cents, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// PercentOf returns part/whole*100 rounded to two places, or nil when whole is zero.
func PercentOf(part, whole decimal.Decimal) *decimal.Decimal {
	if whole.IsZero() {
		return nil
	}
	p := part.Div(whole).Mul(decimal.NewFromInt(100)).Round(2)
	return &p
}

// AggregateLines folds entry lines into per-account debit/credit totals.
// Used by stores that keep raw lines in memory.
func AggregateLines(lines []domain.EntryLine) map[string]domain.AccountMovement {
	out := make(map[string]domain.AccountMovement)
	for _, l := range lines {
		d := out[l.DebitAccountID]
		d.AccountID = l.DebitAccountID
		d.DebitTotal = d.DebitTotal.Add(l.Amount)
		out[l.DebitAccountID] = d

		c := out[l.CreditAccountID]
		c.AccountID = l.CreditAccountID
		c.CreditTotal = c.CreditTotal.Add(l.Amount)
		out[l.CreditAccountID] = c
	}
	return out
}

// LedgerImbalance returns Σ debits − Σ credits across all movements.
// For any well-formed ledger this is zero.
func LedgerImbalance(movements []domain.AccountMovement) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range movements {
		sum = sum.Add(m.DebitTotal).Sub(m.CreditTotal)
	}
	return sum
}
