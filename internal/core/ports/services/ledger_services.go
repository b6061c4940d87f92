package services

import (
	"context"

	"github.com/SscSPs/resale_ledger/internal/core/domain"
	"github.com/SscSPs/resale_ledger/internal/dto"
)

// LedgerWriterSvc defines the automatic posting operations driven by the sales lifecycle.
type LedgerWriterSvc interface {
	// PostSaleEntries writes the journal entries for a finalized sale in one transaction
	// and returns their IDs in posting order.
	PostSaleEntries(ctx context.Context, sale domain.SaleSnapshot, actorID string) ([]string, error)

	// ReverseSaleEntries mirrors every still-reversible entry of a sale and flags the
	// originals. It returns the number of entries reversed; zero is not an error.
	ReverseSaleEntries(ctx context.Context, saleID string, actorID string) (int, error)
}

// LedgerReaderSvc defines read operations for journal entries.
type LedgerReaderSvc interface {
	// GetEntry retrieves a specific entry with its lines.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListSaleEntries retrieves every entry of a sale, reversals included, oldest first.
	// A sale with no entries yields an empty slice.
	ListSaleEntries(ctx context.Context, saleID string) ([]domain.JournalEntry, error)

	// ListEntries retrieves a filtered page of entries.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerWriterSvc
	LedgerReaderSvc
}
