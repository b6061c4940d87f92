package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/resale_ledger/internal/apperrors"
	"github.com/SscSPs/resale_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/resale_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/resale_ledger/internal/core/ports/services"
)

// chartOfAccountsService caches the whole chart keyed by code. The chart is seeded by
// migration and codes never change, so the cache is only dropped on Invalidate.
type chartOfAccountsService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade

	mu     sync.RWMutex
	byCode map[string]domain.Account
}

// NewChartOfAccountsService creates the cached chart-of-accounts lookup.
func NewChartOfAccountsService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.ChartOfAccountsSvc {
	return &chartOfAccountsService{accountRepo: accountRepo}
}

var _ portssvc.ChartOfAccountsSvc = (*chartOfAccountsService)(nil)

func (s *chartOfAccountsService) load(ctx context.Context) (map[string]domain.Account, error) {
	s.mu.RLock()
	cached := s.byCode
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byCode != nil {
		return s.byCode, nil
	}

	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load chart of accounts")
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	byCode := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		byCode[acc.Code] = acc
	}
	s.byCode = byCode
	s.LogDebug(ctx, "Chart of accounts loaded", slog.Int("account_count", len(byCode)))
	return byCode, nil
}

// GetAccountByCode resolves a single account code. A cache miss reads through to the
// store, and a hit there drops the stale cache.
func (s *chartOfAccountsService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	byCode, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if acc, ok := byCode[code]; ok {
		return &acc, nil
	}

	acc, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account code %s", apperrors.ErrNotFound, code)
		}
		s.LogError(ctx, err, "Failed to look up account", slog.String("code", code))
		return nil, fmt.Errorf("failed to look up account %s: %w", code, err)
	}
	s.LogInfo(ctx, "Account added after the chart was cached", slog.String("code", code))
	s.Invalidate()
	return acc, nil
}

// ResolveCodes resolves all codes or fails with a configuration error listing every missing one.
func (s *chartOfAccountsService) ResolveCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	byCode, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	resolved := make(map[string]domain.Account, len(codes))
	var missing []string
	for _, code := range codes {
		if _, done := resolved[code]; done {
			continue
		}
		acc, ok := byCode[code]
		if !ok || !acc.IsActive {
			missing = append(missing, code)
			continue
		}
		resolved[code] = acc
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		err := fmt.Errorf("%w: chart of accounts is missing active accounts for codes %s",
			apperrors.ErrConfiguration, strings.Join(missing, ", "))
		s.LogError(ctx, err, "Chart of accounts is not seeded correctly")
		return nil, err
	}
	return resolved, nil
}

// ListAccounts returns a copy of the chart ordered by code.
func (s *chartOfAccountsService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	byCode, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	accounts := make([]domain.Account, 0, len(byCode))
	for _, acc := range byCode {
		accounts = append(accounts, acc)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	return accounts, nil
}

// SeedDefaultChart saves every account of the default chart whose code is missing from
// the store and returns how many were added. Existing accounts are left untouched.
func (s *chartOfAccountsService) SeedDefaultChart(ctx context.Context, actorID string) (int, error) {
	defaults := domain.DefaultChartOfAccounts()
	codes := make([]string, len(defaults))
	for i, acc := range defaults {
		codes[i] = acc.Code
	}

	existing, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		s.LogError(ctx, err, "Failed to read the chart of accounts before seeding")
		return 0, fmt.Errorf("failed to read chart of accounts: %w", err)
	}

	now := time.Now().UTC()
	added := 0
	for _, acc := range defaults {
		if _, ok := existing[acc.Code]; ok {
			continue
		}
		acc.AccountID = uuid.NewString()
		acc.AuditFields = domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID}
		if err := s.accountRepo.SaveAccount(ctx, acc); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				// Seeded concurrently by another process.
				continue
			}
			s.LogError(ctx, err, "Failed to seed account", slog.String("code", acc.Code))
			return added, fmt.Errorf("failed to seed account %s: %w", acc.Code, err)
		}
		added++
	}

	if added > 0 {
		s.Invalidate()
	}
	s.LogInfo(ctx, "Default chart of accounts seeded", slog.Int("added", added), slog.Int("already_present", len(existing)))
	return added, nil
}

// Invalidate drops the cached chart.
func (s *chartOfAccountsService) Invalidate() {
	s.mu.Lock()
	s.byCode = nil
	s.mu.Unlock()
}
