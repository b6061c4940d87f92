package services

import (
	portsrepo "github.com/SscSPs/resale_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/resale_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The chart of accounts is built first; every other service shares its cache.
func NewServiceContainer(repos portsrepo.RepositoryProvider, ledgerOpts ...LedgerServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Chart = NewChartOfAccountsService(repos.AccountRepo)
	container.Tax = NewTaxService(repos.SaleRepo)
	container.Ledger = NewLedgerService(repos.JournalRepo, container.Chart, container.Tax, ledgerOpts...)
	container.Reporting = NewReportingService(repos.ReportingRepo, container.Chart)

	return container
}
