package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/resale_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/resale_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/resale_ledger/internal/core/ports/services"
	"github.com/SscSPs/resale_ledger/internal/platform/metrics"
	"github.com/SscSPs/resale_ledger/internal/utils"
	"github.com/SscSPs/resale_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const ratePlaces = utils.RatePrecision

// taxService implements the progressive revenue-tax bracket engine.
type taxService struct {
	BaseService
	saleRepo portsrepo.SaleRevenueReader
	brackets []domain.TaxBracket
	// floors[i] is the effective rate reached at the upper bound of bracket i-1.
	floors []decimal.Decimal
}

// TaxServiceOption is a functional option for configuring the tax service
type TaxServiceOption func(*taxService)

// WithTaxBrackets replaces the default bracket table. It panics if the table fails
// domain.ValidateTaxBrackets.
func WithTaxBrackets(brackets []domain.TaxBracket) TaxServiceOption {
	if err := domain.ValidateTaxBrackets(brackets); err != nil {
		panic(fmt.Sprintf("invalid tax bracket table: %v", err))
	}
	return func(s *taxService) {
		s.brackets = brackets
	}
}

// NewTaxService creates a new tax service with the provided options
func NewTaxService(saleRepo portsrepo.SaleRevenueReader, options ...TaxServiceOption) portssvc.TaxSvc {
	svc := &taxService{
		saleRepo: saleRepo,
		brackets: domain.DefaultTaxBrackets(),
	}
	for _, option := range options {
		option(svc)
	}
	svc.floors = rateFloors(svc.brackets)
	return svc
}

// rawRate is (rbt12 * nominal - deduction) / rbt12, unrounded.
func rawRate(b domain.TaxBracket, rbt12 decimal.Decimal) decimal.Decimal {
	return rbt12.Mul(b.NominalRate).Sub(b.Deduction).Div(rbt12)
}

// rateFloors carries the effective rate across each boundary so a bracket whose
// deduction overshoots cannot drop the rate below where the previous one ended.
func rateFloors(brackets []domain.TaxBracket) []decimal.Decimal {
	floors := make([]decimal.Decimal, len(brackets))
	for i := 1; i < len(brackets); i++ {
		prev := brackets[i-1]
		reached := decimal.Zero
		if prev.Upper.IsPositive() {
			reached = rawRate(prev, prev.Upper)
		}
		floors[i] = decimal.Max(floors[i-1], reached)
	}
	return floors
}

var _ portssvc.TaxSvc = (*taxService)(nil)

// RollingRevenueWindow returns [from, to) covering the twelve full calendar months
// before the month of referenceDate, in UTC.
func RollingRevenueWindow(referenceDate time.Time) (from, to time.Time) {
	ref := referenceDate.UTC()
	to = time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	from = to.AddDate(0, -12, 0)
	return from, to
}

// GetRollingRevenue sums the taxable revenue of non-canceled sales in the RBT12 window.
func (s *taxService) GetRollingRevenue(ctx context.Context, referenceDate time.Time) (decimal.Decimal, error) {
	from, to := RollingRevenueWindow(referenceDate)
	if s.saleRepo == nil {
		return decimal.Zero, nil
	}

	sales, err := s.saleRepo.ListSalesInWindow(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load sales for rolling revenue",
			slog.Time("window_from", from), slog.Time("window_to", to))
		return decimal.Zero, fmt.Errorf("failed to load sales for rolling revenue: %w", err)
	}

	total := decimal.Zero
	for _, sale := range sales {
		total = total.Add(sale.TaxableRevenue())
	}

	s.LogDebug(ctx, "Rolling revenue computed",
		slog.Time("window_from", from), slog.Time("window_to", to),
		slog.Int("sale_count", len(sales)), slog.String("rbt12", total.String()))
	return total, nil
}

// bracketFor returns the position of the first bracket whose upper bound covers
// rbt12. Above the table the top bracket is returned with above set.
func (s *taxService) bracketFor(rbt12 decimal.Decimal) (i int, above bool) {
	if !rbt12.IsPositive() {
		return 0, false
	}
	for i, b := range s.brackets {
		if b.Upper.GreaterThanOrEqual(rbt12) {
			return i, false
		}
	}
	return len(s.brackets) - 1, true
}

// Compute applies the bracket engine and keeps the details.
func (s *taxService) Compute(ctx context.Context, base, rbt12 decimal.Decimal) domain.TaxComputation {
	i, above := s.bracketFor(rbt12)
	b := s.brackets[i]
	if above {
		metrics.TaxAboveTopBracket.Inc()
		s.LogWarn(ctx, "RBT12 exceeds the top tax bracket, applying top bracket formula",
			slog.String("rbt12", rbt12.String()),
			slog.String("top_bracket_upper", b.Upper.String()))
	}

	var rate decimal.Decimal
	if !rbt12.IsPositive() {
		rate = b.NominalRate.Round(ratePlaces)
	} else {
		raw := rawRate(b, rbt12)
		if raw.LessThan(s.floors[i]) {
			s.LogDebug(ctx, "Effective rate held at previous bracket ceiling",
				slog.Int("bracket", b.Index), slog.String("raw_rate", raw.String()))
			raw = s.floors[i]
		}
		rate = raw.Round(ratePlaces)
	}

	amount := decimal.Zero
	if base.IsPositive() {
		amount = accounting.Round2(base.Mul(rate))
	}

	return domain.TaxComputation{
		Base:            base,
		RBT12:           rbt12,
		Bracket:         b.Index,
		EffectiveRate:   rate,
		Amount:          amount,
		AboveTopBracket: above,
	}
}

// GetEffectiveTaxRate returns the effective rate for rbt12, rounded to four places.
func (s *taxService) GetEffectiveTaxRate(ctx context.Context, rbt12 decimal.Decimal) decimal.Decimal {
	return s.Compute(ctx, decimal.Zero, rbt12).EffectiveRate
}

// TaxForBase returns round2(base * rate) and the rate used.
func (s *taxService) TaxForBase(ctx context.Context, base, rbt12 decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	c := s.Compute(ctx, base, rbt12)
	return c.Amount, c.EffectiveRate
}
