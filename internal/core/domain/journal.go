package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind records what produced a journal entry.
type EntryKind string

const (
	KindManual           EntryKind = "MANUAL"
	KindSale             EntryKind = "SALE"
	KindRecurringExpense EntryKind = "RECURRING_EXPENSE"
)

// JournalEntry is one dated accounting event made of one or more lines.
// Entries are never deleted; a sale entry is undone by posting a mirror entry
// that points back to it through ReversalOfID.
type JournalEntry struct {
	EntryID      string      `json:"entryID"`
	EntryDate    time.Time   `json:"entryDate"`
	Description  string      `json:"description"`
	Kind         EntryKind   `json:"kind"`
	SaleID       *string     `json:"saleID,omitempty"`
	ReversalOfID *string     `json:"reversalOfID,omitempty"`
	Reversed     bool        `json:"reversed"`
	ReversedAt   *time.Time  `json:"reversedAt,omitempty"`
	ReversedBy   *string     `json:"reversedBy,omitempty"`
	Lines        []EntryLine `json:"lines"`
	AuditFields
}

// EntryLine is a single debit/credit pair. Each line is balanced by construction.
type EntryLine struct {
	LineID          string          `json:"lineID"`
	EntryID         string          `json:"entryID"`
	DebitAccountID  string          `json:"debitAccountID"`
	CreditAccountID string          `json:"creditAccountID"`
	Amount          decimal.Decimal `json:"amount"`
	Memo            string          `json:"memo,omitempty"`
}

var (
	ErrEntryNoLines      = errors.New("journal entry must have at least one line")
	ErrLineSameAccount   = errors.New("debit and credit accounts must differ")
	ErrLineAmountInvalid = errors.New("line amount must be positive with at most two decimal places")
)

// Validate checks the structural invariants of an entry before it is persisted.
func (e JournalEntry) Validate() error {
	if len(e.Lines) == 0 {
		return ErrEntryNoLines
	}
	for i, l := range e.Lines {
		if l.DebitAccountID == "" || l.CreditAccountID == "" {
			return fmt.Errorf("line %d: both accounts are required", i)
		}
		if l.DebitAccountID == l.CreditAccountID {
			return fmt.Errorf("line %d: %w", i, ErrLineSameAccount)
		}
		if !l.Amount.IsPositive() || !l.Amount.Equal(l.Amount.Round(2)) {
			return fmt.Errorf("line %d (%s): %w", i, l.Amount.String(), ErrLineAmountInvalid)
		}
	}
	return nil
}

// Total is the sum of the entry's line amounts.
func (e JournalEntry) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Amount)
	}
	return total
}

// IsReversible reports whether the entry may still be the target of a sale reversal.
func (e JournalEntry) IsReversible() bool {
	return e.Kind == KindSale && !e.Reversed && e.ReversalOfID == nil
}

// EntryFilter narrows entry listings.
type EntryFilter struct {
	SaleID *string
	Kind   *EntryKind
	From   *time.Time
	To     *time.Time
}
