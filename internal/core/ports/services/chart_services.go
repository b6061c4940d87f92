package services

import (
	"context"

	"github.com/SscSPs/resale_ledger/internal/core/domain"
)

// ChartOfAccountsSvc resolves account codes to accounts.
type ChartOfAccountsSvc interface {
	// GetAccountByCode resolves a single code. A missing code is apperrors.ErrNotFound.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// ResolveCodes resolves every code, keyed by code. If any code is missing the
	// whole call fails with apperrors.ErrConfiguration naming the missing codes.
	ResolveCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// ListAccounts returns the whole chart ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// SeedDefaultChart saves the default accounts whose codes are missing and returns
	// how many were added.
	SeedDefaultChart(ctx context.Context, actorID string) (int, error)

	// Invalidate drops any cached lookup so the next call reads the store again.
	Invalidate()
}
