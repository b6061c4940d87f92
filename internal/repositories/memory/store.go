package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/resale_ledger/internal/apperrors"
	"github.com/SscSPs/resale_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/resale_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/resale_ledger/internal/utils/accounting"
	"github.com/SscSPs/resale_ledger/internal/utils/pagination"
)

// Store is an in-process implementation of every repository port. Writers are
// serialized by mu; a transaction holds the write lock for its whole callback and
// only applies its staged writes when the callback succeeds.
type Store struct {
	mu            sync.RWMutex
	accountsByID  map[string]domain.Account
	accountByCode map[string]string
	entriesByID   map[string]domain.JournalEntry
	reversalOf    map[string]string // original entry ID -> reversing entry ID
	salesByID     map[string]domain.SaleRevenue
}

// New returns an empty store.
func New() *Store {
	return &Store{
		accountsByID:  make(map[string]domain.Account),
		accountByCode: make(map[string]string),
		entriesByID:   make(map[string]domain.JournalEntry),
		reversalOf:    make(map[string]string),
		salesByID:     make(map[string]domain.SaleRevenue),
	}
}

// NewSeeded returns a store holding the default chart of accounts.
func NewSeeded() *Store {
	s := New()
	now := time.Now().UTC()
	for _, acc := range domain.DefaultChartOfAccounts() {
		acc.AccountID = uuid.NewString()
		acc.AuditFields = domain.AuditFields{CreatedAt: now, CreatedBy: "system", LastUpdatedAt: now, LastUpdatedBy: "system"}
		s.accountsByID[acc.AccountID] = acc
		s.accountByCode[acc.Code] = acc.AccountID
	}
	return s
}

var (
	_ portsrepo.AccountRepositoryFacade = (*Store)(nil)
	_ portsrepo.JournalRepositoryWithTx = (*Store)(nil)
	_ portsrepo.SaleRevenueReader       = (*Store)(nil)
	_ portsrepo.ReportingRepository     = (*Store)(nil)
)

// Provider exposes the store through every repository port.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   s,
		JournalRepo:   s,
		SaleRepo:      s,
		ReportingRepo: s,
	}
}

// --- accounts ---

func (s *Store) FindAccountByCode(_ context.Context, code string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.accountByCode[code]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	acc := s.accountsByID[id]
	return &acc, nil
}

func (s *Store) FindAccountsByCodes(_ context.Context, codes []string) (map[string]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.Account, len(codes))
	for _, code := range codes {
		if id, ok := s.accountByCode[code]; ok {
			out[code] = s.accountsByID[id]
		}
	}
	return out, nil
}

func (s *Store) ListAccounts(_ context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]domain.Account, 0, len(s.accountsByID))
	for _, acc := range s.accountsByID {
		accounts = append(accounts, acc)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	return accounts, nil
}

func (s *Store) SaveAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if account.AccountID == "" || account.Code == "" {
		return fmt.Errorf("%w: account ID and code are required", apperrors.ErrValidation)
	}
	if _, exists := s.accountByCode[account.Code]; exists {
		return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, account.Code)
	}
	if _, exists := s.accountsByID[account.AccountID]; exists {
		return fmt.Errorf("%w: account ID %s", apperrors.ErrDuplicate, account.AccountID)
	}
	s.accountsByID[account.AccountID] = account
	s.accountByCode[account.Code] = account.AccountID
	return nil
}

// --- sales ---

// PutSale stores or replaces a sale record. The sales module owns this data; the
// ledger only reads it.
func (s *Store) PutSale(sale domain.SaleRevenue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.salesByID[sale.SaleID] = sale
}

func (s *Store) ListSalesInWindow(_ context.Context, from, to time.Time) ([]domain.SaleRevenue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.SaleRevenue, 0)
	for _, sale := range s.salesByID {
		if !sale.SoldAt.Before(from) && sale.SoldAt.Before(to) {
			out = append(out, sale)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SoldAt.Before(out[j].SoldAt) })
	return out, nil
}

// --- journal ---

func (s *Store) FindEntryByID(_ context.Context, entryID string) (*domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entriesByID[entryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	e = copyEntry(e)
	return &e, nil
}

func (s *Store) FindEntriesBySaleID(_ context.Context, saleID string) ([]domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.JournalEntry, 0)
	for _, e := range s.entriesByID {
		if e.SaleID != nil && *e.SaleID == saleID {
			out = append(out, copyEntry(e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].EntryID < out[j].EntryID
	})
	return out, nil
}

func matchesFilter(e domain.JournalEntry, f domain.EntryFilter) bool {
	if f.SaleID != nil && (e.SaleID == nil || *e.SaleID != *f.SaleID) {
		return false
	}
	if f.Kind != nil && e.Kind != *f.Kind {
		return false
	}
	if f.From != nil && e.EntryDate.Before(*f.From) {
		return false
	}
	if f.To != nil && e.EntryDate.After(*f.To) {
		return false
	}
	return true
}

func (s *Store) ListEntries(_ context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	var cursor *pagination.EntryCursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		cursor = &c
	}

	s.mu.RLock()
	matched := make([]domain.JournalEntry, 0)
	for _, e := range s.entriesByID {
		if !matchesFilter(e, filter) {
			continue
		}
		if cursor != nil && !cursor.Before(e.EntryDate, e.CreatedAt, e.EntryID) {
			continue
		}
		matched = append(matched, copyEntry(e))
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		return pagination.EntryCursor{EntryDate: a.EntryDate, CreatedAt: a.CreatedAt, EntryID: a.EntryID}.
			Before(b.EntryDate, b.CreatedAt, b.EntryID)
	})

	if len(matched) <= limit {
		return matched, nil, nil
	}
	page := matched[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(pagination.EntryCursor{EntryDate: last.EntryDate, CreatedAt: last.CreatedAt, EntryID: last.EntryID})
	return page, &token, nil
}

// WithinTx runs fn with the write lock held. Staged writes are applied only if fn succeeds.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{store: s, reversed: make(map[string]reversalMark), reversalOf: make(map[string]string)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	tx.apply()
	return nil
}

type reversalMark struct {
	actorID string
	at      time.Time
}

// memTx stages writes against a locked Store.
type memTx struct {
	store      *Store
	inserts    []domain.JournalEntry
	insertIDs  []string
	reversed   map[string]reversalMark
	reversalOf map[string]string
}

func (t *memTx) hasEntry(id string) bool {
	if _, ok := t.store.entriesByID[id]; ok {
		return true
	}
	return slices.Contains(t.insertIDs, id)
}

func (t *memTx) InsertEntries(_ context.Context, entries []domain.JournalEntry) error {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("%w: entry %s: %w", apperrors.ErrValidation, e.EntryID, err)
		}
		if t.hasEntry(e.EntryID) {
			return fmt.Errorf("%w: entry %s already exists", apperrors.ErrConflict, e.EntryID)
		}
		for _, l := range e.Lines {
			for _, accID := range []string{l.DebitAccountID, l.CreditAccountID} {
				if _, ok := t.store.accountsByID[accID]; !ok {
					return fmt.Errorf("%w: unknown account %s", apperrors.ErrValidation, accID)
				}
			}
		}
		if e.ReversalOfID != nil {
			orig := *e.ReversalOfID
			if !t.hasEntry(orig) {
				return fmt.Errorf("%w: reversed entry %s does not exist", apperrors.ErrValidation, orig)
			}
			_, committed := t.store.reversalOf[orig]
			_, staged := t.reversalOf[orig]
			if committed || staged {
				return fmt.Errorf("%w: entry %s already has a reversal", apperrors.ErrConflict, orig)
			}
			t.reversalOf[orig] = e.EntryID
		}
		t.inserts = append(t.inserts, copyEntry(e))
		t.insertIDs = append(t.insertIDs, e.EntryID)
	}
	return nil
}

func (t *memTx) FindReversibleSaleEntries(_ context.Context, saleID string) ([]domain.JournalEntry, error) {
	out := make([]domain.JournalEntry, 0)
	for _, e := range t.store.entriesByID {
		if e.SaleID == nil || *e.SaleID != saleID {
			continue
		}
		if _, staged := t.reversed[e.EntryID]; staged {
			continue
		}
		if e.IsReversible() {
			out = append(out, copyEntry(e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].EntryID < out[j].EntryID
	})
	return out, nil
}

func (t *memTx) MarkEntryReversed(_ context.Context, entryID string, actorID string, at time.Time) error {
	e, ok := t.store.entriesByID[entryID]
	if !ok {
		return fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entryID)
	}
	if _, staged := t.reversed[entryID]; e.Reversed || staged {
		return fmt.Errorf("%w: entry %s is already reversed", apperrors.ErrConflict, entryID)
	}
	t.reversed[entryID] = reversalMark{actorID: actorID, at: at}
	return nil
}

func (t *memTx) apply() {
	s := t.store
	for _, e := range t.inserts {
		s.entriesByID[e.EntryID] = e
	}
	for orig, rev := range t.reversalOf {
		s.reversalOf[orig] = rev
	}
	for id, mark := range t.reversed {
		e := s.entriesByID[id]
		at, actor := mark.at, mark.actorID
		e.Reversed = true
		e.ReversedAt = &at
		e.ReversedBy = &actor
		e.LastUpdatedAt = at
		e.LastUpdatedBy = actor
		s.entriesByID[id] = e
	}
}

// --- reporting ---

func inPeriod(d time.Time, p domain.Period) bool {
	if !p.From.IsZero() && d.Before(p.From) {
		return false
	}
	return !d.After(p.To)
}

func (s *Store) SumMovementsByAccount(_ context.Context, period domain.Period) ([]domain.AccountMovement, error) {
	s.mu.RLock()
	lines := make([]domain.EntryLine, 0)
	for _, e := range s.entriesByID {
		if inPeriod(e.EntryDate, period) {
			lines = append(lines, e.Lines...)
		}
	}
	s.mu.RUnlock()

	agg := accounting.AggregateLines(lines)
	out := make([]domain.AccountMovement, 0, len(agg))
	for _, m := range agg {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

func (s *Store) SumCounterpartMovements(_ context.Context, trackedAccountIDs []string, period domain.Period) ([]domain.CounterpartMovement, error) {
	tracked := make(map[string]bool, len(trackedAccountIDs))
	for _, id := range trackedAccountIDs {
		tracked[id] = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	byCounterpart := make(map[string]domain.CounterpartMovement)
	for _, e := range s.entriesByID {
		if !inPeriod(e.EntryDate, period) {
			continue
		}
		for _, l := range e.Lines {
			debitTracked, creditTracked := tracked[l.DebitAccountID], tracked[l.CreditAccountID]
			switch {
			case debitTracked && !creditTracked:
				m := byCounterpart[l.CreditAccountID]
				m.CounterpartAccountID = l.CreditAccountID
				m.Inflow = m.Inflow.Add(l.Amount)
				byCounterpart[l.CreditAccountID] = m
			case creditTracked && !debitTracked:
				m := byCounterpart[l.DebitAccountID]
				m.CounterpartAccountID = l.DebitAccountID
				m.Outflow = m.Outflow.Add(l.Amount)
				byCounterpart[l.DebitAccountID] = m
			}
		}
	}

	out := make([]domain.CounterpartMovement, 0, len(byCounterpart))
	for _, m := range byCounterpart {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CounterpartAccountID < out[j].CounterpartAccountID })
	return out, nil
}

func copyEntry(e domain.JournalEntry) domain.JournalEntry {
	e.Lines = slices.Clone(e.Lines)
	return e
}
