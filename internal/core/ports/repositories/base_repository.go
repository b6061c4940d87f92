package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/resale_ledger/internal/core/domain"
)

// LedgerTx is the set of writes that must happen inside one store transaction.
// Implementations are only valid for the lifetime of the WithinTx callback.
type LedgerTx interface {
	// InsertEntries persists entries and their lines.
	InsertEntries(ctx context.Context, entries []domain.JournalEntry) error

	// FindReversibleSaleEntries returns the sale's SALE entries that are neither reversed nor
	// reversals themselves, locking them until the transaction ends.
	FindReversibleSaleEntries(ctx context.Context, saleID string) ([]domain.JournalEntry, error)

	// MarkEntryReversed flips the reversed flag of an entry that is not reversed yet.
	// It returns apperrors.ErrConflict when the entry was already flipped.
	MarkEntryReversed(ctx context.Context, entryID string, actorID string, at time.Time) error
}

// TransactionManager runs a unit of work in a single store transaction.
type TransactionManager interface {
	// WithinTx begins a transaction, calls fn and commits when fn returns nil.
	// Any error from fn rolls the transaction back and is returned unchanged.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error
}
