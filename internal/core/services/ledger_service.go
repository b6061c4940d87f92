package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/resale_ledger/internal/apperrors"
	"github.com/SscSPs/resale_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/resale_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/resale_ledger/internal/core/ports/services"
	"github.com/SscSPs/resale_ledger/internal/dto"
	"github.com/SscSPs/resale_ledger/internal/platform/metrics"
)

var (
	ErrSaleIDMissing        = errors.New("sale ID is required")
	ErrActorMissing         = errors.New("actor ID is required")
	ErrSaleAmountInvalid    = errors.New("sale amount must be positive")
	ErrNegativeSaleValue    = errors.New("costs, payout and card fee rate must not be negative")
	ErrCardFeeRateTooHigh   = errors.New("card fee rate must not exceed 100 percent")
	ErrPayoutExceedsAmount  = errors.New("supplier payout must not exceed the sale amount")
	ErrAcquisitionTypeValue = errors.New("unknown acquisition type")
)

const defaultListLimit = 20

// ledgerService posts and reverses the automatic entries of the sales lifecycle.
type ledgerService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryWithTx
	chart       portssvc.ChartOfAccountsSvc
	tax         portssvc.TaxSvc
	now         func() time.Time
	newID       func() string
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithClock sets the clock used for audit timestamps and reversal dates.
func WithClock(now func() time.Time) LedgerServiceOption {
	return func(s *ledgerService) {
		s.now = now
	}
}

// WithIDGenerator sets the generator for entry and line IDs.
func WithIDGenerator(newID func() string) LedgerServiceOption {
	return func(s *ledgerService) {
		s.newID = newID
	}
}

// NewLedgerService creates a new ledger service with the provided options
func NewLedgerService(journalRepo portsrepo.JournalRepositoryWithTx, chart portssvc.ChartOfAccountsSvc, tax portssvc.TaxSvc, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		journalRepo: journalRepo,
		chart:       chart,
		tax:         tax,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// normalizeSale validates the snapshot and resolves lenient enum defaults.
func (s *ledgerService) normalizeSale(ctx context.Context, sale domain.SaleSnapshot) (domain.SaleSnapshot, error) {
	if sale.SaleID == "" {
		return sale, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrSaleIDMissing)
	}
	if !sale.Amount.IsPositive() {
		return sale, fmt.Errorf("%w: %w (got %s)", apperrors.ErrValidation, ErrSaleAmountInvalid, sale.Amount.String())
	}
	for _, v := range []decimal.Decimal{sale.CardFeeRate, sale.SupplierPayout, sale.AcquisitionCost, sale.MaintenanceCost} {
		if v.IsNegative() {
			return sale, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNegativeSaleValue)
		}
	}
	if sale.CardFeeRate.GreaterThan(decimal.NewFromInt(100)) {
		return sale, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrCardFeeRateTooHigh)
	}

	acqType, ok := domain.ParseAcquisitionType(string(sale.AcquisitionType))
	if !ok {
		return sale, fmt.Errorf("%w: %w %q", apperrors.ErrValidation, ErrAcquisitionTypeValue, sale.AcquisitionType)
	}
	sale.AcquisitionType = acqType
	if acqType == domain.AcquisitionConsigned && sale.SupplierPayout.GreaterThan(sale.Amount) {
		return sale, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrPayoutExceedsAmount)
	}

	method, ok := domain.ParsePaymentMethod(string(sale.PaymentMethod))
	if !ok {
		s.LogWarn(ctx, "Unknown payment method, defaulting to cash",
			slog.String("sale_id", sale.SaleID), slog.String("payment_method", string(sale.PaymentMethod)))
	}
	sale.PaymentMethod = method

	channel, ok := domain.ParseAcquisitionChannel(string(sale.AcquisitionChannel))
	if !ok && acqType == domain.AcquisitionOwned {
		s.LogWarn(ctx, "Unknown acquisition channel, defaulting to auction",
			slog.String("sale_id", sale.SaleID), slog.String("acquisition_channel", string(sale.AcquisitionChannel)))
	}
	sale.AcquisitionChannel = channel

	return sale, nil
}

// PostSaleEntries writes the automatic entries of a finalized sale. Account codes are
// resolved before anything is built and all entries share one transaction.
func (s *ledgerService) PostSaleEntries(ctx context.Context, sale domain.SaleSnapshot, actorID string) ([]string, error) {
	if actorID == "" {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrActorMissing)
	}
	sale, err := s.normalizeSale(ctx, sale)
	if err != nil {
		s.LogWarn(ctx, "Rejected sale snapshot", slog.String("sale_id", sale.SaleID), slog.String("error", err.Error()))
		metrics.PostingFailures.WithLabelValues("post", "validation").Inc()
		return nil, err
	}

	accounts, err := s.chart.ResolveCodes(ctx, requiredSaleCodes(sale))
	if err != nil {
		metrics.PostingFailures.WithLabelValues("post", "configuration").Inc()
		return nil, err
	}

	rbt12, err := s.tax.GetRollingRevenue(ctx, sale.SaleDate)
	if err != nil {
		metrics.PostingFailures.WithLabelValues("post", "rbt12").Inc()
		return nil, fmt.Errorf("failed to compute rolling revenue for sale %s: %w", sale.SaleID, err)
	}
	// The taxable base is the margin the shop keeps.
	taxComp := s.tax.Compute(ctx, sale.Margin(), rbt12)

	builder := &saleEntryBuilder{
		sale:     sale,
		accounts: accounts,
		actorID:  actorID,
		now:      s.now(),
		newID:    s.newID,
	}
	entries := buildSaleEntries(builder, taxComp)
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
	}

	err = s.journalRepo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		return tx.InsertEntries(ctx, entries)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to persist sale entries", slog.String("sale_id", sale.SaleID))
		metrics.PostingFailures.WithLabelValues("post", failureReason(err)).Inc()
		return nil, fmt.Errorf("failed to persist entries for sale %s: %w", sale.SaleID, err)
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.EntryID
	}
	metrics.EntriesPosted.WithLabelValues(string(domain.KindSale)).Add(float64(len(entries)))
	s.LogInfo(ctx, "Sale entries posted",
		slog.String("sale_id", sale.SaleID),
		slog.Int("entry_count", len(entries)),
		slog.String("tax_rate", taxComp.EffectiveRate.String()),
		slog.String("rbt12", rbt12.String()))
	return ids, nil
}

// ReverseSaleEntries mirrors every reversible entry of the sale inside one transaction.
func (s *ledgerService) ReverseSaleEntries(ctx context.Context, saleID string, actorID string) (int, error) {
	if saleID == "" {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrSaleIDMissing)
	}
	if actorID == "" {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrActorMissing)
	}

	now := s.now().UTC()
	reversed := 0
	err := s.journalRepo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		originals, err := tx.FindReversibleSaleEntries(ctx, saleID)
		if err != nil {
			return fmt.Errorf("failed to find reversible entries: %w", err)
		}
		if len(originals) == 0 {
			return nil
		}

		mirrors := make([]domain.JournalEntry, 0, len(originals))
		for _, orig := range originals {
			if !orig.IsReversible() {
				return fmt.Errorf("%w: entry %s is not reversible", apperrors.ErrConflict, orig.EntryID)
			}
			if err := tx.MarkEntryReversed(ctx, orig.EntryID, actorID, now); err != nil {
				return err
			}
			mirrors = append(mirrors, buildReversal(orig, actorID, now, s.newID))
		}
		if err := tx.InsertEntries(ctx, mirrors); err != nil {
			return err
		}
		reversed = len(mirrors)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to reverse sale entries", slog.String("sale_id", saleID))
		metrics.PostingFailures.WithLabelValues("reverse", failureReason(err)).Inc()
		return 0, fmt.Errorf("failed to reverse entries for sale %s: %w", saleID, err)
	}

	if reversed == 0 {
		s.LogInfo(ctx, "No reversible entries for sale", slog.String("sale_id", saleID))
		return 0, nil
	}
	metrics.EntriesReversed.Add(float64(reversed))
	s.LogInfo(ctx, "Sale entries reversed", slog.String("sale_id", saleID), slog.Int("reversed_count", reversed))
	return reversed, nil
}

// GetEntry retrieves an entry with its lines.
func (s *ledgerService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Entry not found", slog.String("entry_id", entryID))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to retrieve entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve entry: %w", err)
	}
	return entry, nil
}

// ListSaleEntries returns the whole posting history of a sale.
func (s *ledgerService) ListSaleEntries(ctx context.Context, saleID string) ([]domain.JournalEntry, error) {
	if saleID == "" {
		return nil, fmt.Errorf("%w: sale ID is required", apperrors.ErrValidation)
	}
	entries, err := s.journalRepo.FindEntriesBySaleID(ctx, saleID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sale entries", slog.String("sale_id", saleID))
		return nil, fmt.Errorf("failed to list sale entries: %w", err)
	}
	s.LogDebug(ctx, "Listed sale entries", slog.String("sale_id", saleID), slog.Int("count", len(entries)))
	return entries, nil
}

// ListEntries converts query parameters into a filter and returns one page.
func (s *ledgerService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	var filter domain.EntryFilter
	if params.SaleID != "" {
		saleID := params.SaleID
		filter.SaleID = &saleID
	}
	if params.Kind != "" {
		kind := domain.EntryKind(params.Kind)
		filter.Kind = &kind
	}
	if params.FromDate != "" {
		from, err := time.Parse(dto.DateLayout, params.FromDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid fromDate %q", apperrors.ErrValidation, params.FromDate)
		}
		filter.From = &from
	}
	if params.ToDate != "" {
		to, err := time.Parse(dto.DateLayout, params.ToDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid toDate %q", apperrors.ErrValidation, params.ToDate)
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, fmt.Errorf("%w: fromDate is after toDate", apperrors.ErrValidation)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}

	entries, next, err := s.journalRepo.ListEntries(ctx, filter, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to list entries")
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: next,
	}, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrConflict):
		return "conflict"
	case errors.Is(err, apperrors.ErrConfiguration):
		return "configuration"
	case errors.Is(err, apperrors.ErrValidation):
		return "validation"
	default:
		return "internal"
	}
}
