package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table. Nullable references are pointers.
type JournalEntry struct {
	EntryID      string     `db:"entry_id"`
	EntryDate    time.Time  `db:"entry_date"`
	Description  string     `db:"description"`
	Kind         string     `db:"kind"`
	SaleID       *string    `db:"sale_id"`
	ReversalOfID *string    `db:"reversal_of_id"`
	Reversed     bool       `db:"reversed"`
	ReversedAt   *time.Time `db:"reversed_at"`
	ReversedBy   *string    `db:"reversed_by"`
	AuditFields
}

// EntryLine is a row of the entry_lines table.
type EntryLine struct {
	LineID          string          `db:"line_id"`
	EntryID         string          `db:"entry_id"`
	LineNo          int             `db:"line_no"`
	DebitAccountID  string          `db:"debit_account_id"`
	CreditAccountID string          `db:"credit_account_id"`
	Amount          decimal.Decimal `db:"amount"`
	Memo            *string         `db:"memo"`
}
