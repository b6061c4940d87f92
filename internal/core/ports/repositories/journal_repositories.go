package repositories

import (
	"context"

	"github.com/SscSPs/resale_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal entries
type JournalReader interface {
	// FindEntryByID retrieves an entry and its lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntriesBySaleID retrieves every entry linked to a sale, reversals included,
	// ordered by creation.
	FindEntriesBySaleID(ctx context.Context, saleID string) ([]domain.JournalEntry, error)

	// ListEntries retrieves a page of entries matching the filter, newest first, using
	// token-based pagination. It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
