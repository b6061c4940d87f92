package pgsql

import (
	portsrepo "github.com/SscSPs/resale_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		SaleRepo:      newPgxSaleRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
	}
}
