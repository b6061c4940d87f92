package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/resale_ledger/internal/apperrors"
	"github.com/SscSPs/resale_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/resale_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/resale_ledger/internal/core/ports/services"
	"github.com/SscSPs/resale_ledger/internal/core/services"
	"github.com/SscSPs/resale_ledger/internal/dto"
	"github.com/SscSPs/resale_ledger/internal/repositories/memory"
	"github.com/SscSPs/resale_ledger/internal/utils/accounting"
)

const testActor = "actor-1"

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memory.Store
	chart     portssvc.ChartOfAccountsSvc
	tax       portssvc.TaxSvc
	service   portssvc.LedgerSvcFacade
	clock     time.Time
	idCounter atomic.Int64
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewSeeded()
	suite.clock = time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)
	suite.idCounter.Store(0)
	suite.chart = services.NewChartOfAccountsService(suite.store)
	suite.tax = services.NewTaxService(suite.store)
	suite.service = services.NewLedgerService(suite.store, suite.chart, suite.tax,
		services.WithClock(func() time.Time { return suite.clock }),
		services.WithIDGenerator(func() string {
			return fmt.Sprintf("id-%03d", suite.idCounter.Add(1))
		}),
	)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func ownedSale(id string) domain.SaleSnapshot {
	return domain.SaleSnapshot{
		SaleID:             id,
		SaleDate:           time.Date(2025, 3, 15, 14, 0, 0, 0, time.UTC),
		Amount:             d("1000"),
		PaymentMethod:      domain.PaymentCash,
		AcquisitionType:    domain.AcquisitionOwned,
		AcquisitionCost:    d("300"),
		MaintenanceCost:    d("50"),
		AcquisitionChannel: domain.ChannelAuction,
	}
}

func consignedSale(id string) domain.SaleSnapshot {
	return domain.SaleSnapshot{
		SaleID:          id,
		SaleDate:        time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC),
		Amount:          d("1000"),
		PaymentMethod:   domain.PaymentPix,
		AcquisitionType: domain.AcquisitionConsigned,
		SupplierPayout:  d("600"),
	}
}

func (suite *LedgerServiceTestSuite) code(accountID string) string {
	accounts, err := suite.store.ListAccounts(suite.ctx)
	suite.Require().NoError(err)
	for _, acc := range accounts {
		if acc.AccountID == accountID {
			return acc.Code
		}
	}
	suite.FailNow("unknown account " + accountID)
	return ""
}

// postedLines returns the single line of each entry keyed by "debit->credit" codes.
func (suite *LedgerServiceTestSuite) postedLines(saleID string) map[string]domain.EntryLine {
	entries, err := suite.store.FindEntriesBySaleID(suite.ctx, saleID)
	suite.Require().NoError(err)
	out := make(map[string]domain.EntryLine, len(entries))
	for _, e := range entries {
		suite.Require().Len(e.Lines, 1)
		l := e.Lines[0]
		out[suite.code(l.DebitAccountID)+"->"+suite.code(l.CreditAccountID)] = l
	}
	return out
}

func (suite *LedgerServiceTestSuite) TestPostSaleEntries_OwnedStockWithCOGS() {
	ids, err := suite.service.PostSaleEntries(suite.ctx, ownedSale("sale-owned"), testActor)
	suite.Require().NoError(err)
	suite.Len(ids, 4)

	lines := suite.postedLines("sale-owned")
	suite.Len(lines, 4)
	suite.True(lines["1.1.1->4.1.1"].Amount.Equal(d("1000")))
	suite.True(lines["4.2.1->2.1.2"].Amount.Equal(d("40.00")), "tax at the floor rate")
	suite.True(lines["5.1.1->1.1.4"].Amount.Equal(d("300")))
	suite.True(lines["5.1.4->1.1.4"].Amount.Equal(d("50")))

	cogs := lines["5.1.1->1.1.4"].Amount.Add(lines["5.1.4->1.1.4"].Amount)
	suite.True(cogs.Equal(d("350")))

	entry, err := suite.service.GetEntry(suite.ctx, ids[0])
	suite.Require().NoError(err)
	suite.Equal(domain.KindSale, entry.Kind)
	suite.Equal(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), entry.EntryDate)
	suite.Equal(testActor, entry.CreatedBy)
	suite.Require().NotNil(entry.SaleID)
	suite.Equal("sale-owned", *entry.SaleID)
}

func (suite *LedgerServiceTestSuite) TestPostSaleEntries_ConsignmentSplit() {
	_, err := suite.service.PostSaleEntries(suite.ctx, consignedSale("sale-consigned"), testActor)
	suite.Require().NoError(err)

	lines := suite.postedLines("sale-consigned")
	suite.Len(lines, 3)
	margin := lines["1.1.2->4.1.2"].Amount
	payout := lines["1.1.2->2.1.1"].Amount
	suite.True(margin.Equal(d("400")))
	suite.True(payout.Equal(d("600")))
	suite.True(margin.Add(payout).Equal(d("1000")))
	suite.True(lines["4.2.1->2.1.2"].Amount.Equal(d("16.00")), "tax on the margin only")
	for key := range lines {
		suite.False(strings.HasPrefix(key, "5."), "consigned stock never posts COGS")
	}
}

func (suite *LedgerServiceTestSuite) TestPostSaleEntries_ConsignmentFullPayoutSkipsMarginAndTax() {
	sale := consignedSale("sale-zero-margin")
	sale.SupplierPayout = sale.Amount
	ids, err := suite.service.PostSaleEntries(suite.ctx, sale, testActor)
	suite.Require().NoError(err)
	suite.Len(ids, 1)
	lines := suite.postedLines("sale-zero-margin")
	suite.Contains(lines, "1.1.2->2.1.1")
}

func (suite *LedgerServiceTestSuite) TestPostSaleEntries_CardFee() {
	sale := domain.SaleSnapshot{
		SaleID:          "sale-card",
		SaleDate:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Amount:          d("1000"),
		PaymentMethod:   domain.PaymentCreditCard,
		CardFeeRate:     d("4"),
		AcquisitionType: domain.AcquisitionOwned,
	}
	_, err := suite.service.PostSaleEntries(suite.ctx, sale, testActor)
	suite.Require().NoError(err)

	lines := suite.postedLines("sale-card")
	suite.Len(lines, 3)
	suite.True(lines["1.1.3->4.1.1"].Amount.Equal(d("1000")))
	suite.True(lines["6.2.1->1.1.3"].Amount.Equal(d("40.00")))
	suite.Equal("fee rate 4%", lines["6.2.1->1.1.3"].Memo)
}

func (suite *LedgerServiceTestSuite) TestPostSaleEntries_NoFeeForPix() {
	sale := consignedSale("sale-pix")
	sale.CardFeeRate = d("4")
	_, err := suite.service.PostSaleEntries(suite.ctx, sale, testActor)
	suite.Require().NoError(err)

	for key := range suite.postedLines("sale-pix") {
		suite.False(strings.HasPrefix(key, domain.CodeCardFeeExpense), "no fee entry for PIX")
	}
}

func (suite *LedgerServiceTestSuite) TestPostSaleEntries_UsesRollingRevenue() {
	suite.store.PutSale(domain.SaleRevenue{
		SaleID:          "history",
		SoldAt:          time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC),
		Amount:          d("500000"),
		AcquisitionType: domain.AcquisitionOwned,
	})
	suite.store.PutSale(domain.SaleRevenue{
		SaleID:          "same-month",
		SoldAt:          time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		Amount:          d("900000"),
		AcquisitionType: domain.AcquisitionOwned,
	})

	_, err := suite.service.PostSaleEntries(suite.ctx, ownedSale("sale-rbt12"), testActor)
	suite.Require().NoError(err)

	tax := suite.postedLines("sale-rbt12")["4.2.1->2.1.2"]
	suite.True(tax.Amount.Equal(d("67.30")), tax.Amount.String())
	suite.Contains(tax.Memo, "rate 0.0673")
	suite.Contains(tax.Memo, "RBT12 500000.00")
}

func (suite *LedgerServiceTestSuite) TestPostSaleEntries_UnknownEnumsDefault() {
	sale := ownedSale("sale-defaults")
	sale.PaymentMethod = "barter"
	sale.AcquisitionChannel = "garage"
	_, err := suite.service.PostSaleEntries(suite.ctx, sale, testActor)
	suite.Require().NoError(err)

	lines := suite.postedLines("sale-defaults")
	suite.Contains(lines, "1.1.1->4.1.1", "unknown payment method falls back to cash")
	suite.Contains(lines, "5.1.1->1.1.4", "unknown channel falls back to auction")
}

func (suite *LedgerServiceTestSuite) TestPostSaleEntries_ChannelSelectsCOGSAccount() {
	sale := ownedSale("sale-marketplace")
	sale.AcquisitionChannel = domain.ChannelMarketplace
	sale.MaintenanceCost = decimal.Zero
	_, err := suite.service.PostSaleEntries(suite.ctx, sale, testActor)
	suite.Require().NoError(err)

	lines := suite.postedLines("sale-marketplace")
	suite.Len(lines, 3)
	suite.Contains(lines, "5.1.2->1.1.4")
}

func (suite *LedgerServiceTestSuite) TestPostSaleEntries_ValidationErrors() {
	cases := []struct {
		name   string
		mutate func(*domain.SaleSnapshot)
		target error
	}{
		{"missing sale id", func(s *domain.SaleSnapshot) { s.SaleID = "" }, services.ErrSaleIDMissing},
		{"zero amount", func(s *domain.SaleSnapshot) { s.Amount = decimal.Zero }, services.ErrSaleAmountInvalid},
		{"negative cost", func(s *domain.SaleSnapshot) { s.AcquisitionCost = d("-1") }, services.ErrNegativeSaleValue},
		{"fee above 100", func(s *domain.SaleSnapshot) { s.CardFeeRate = d("101") }, services.ErrCardFeeRateTooHigh},
		{"unknown acquisition type", func(s *domain.SaleSnapshot) { s.AcquisitionType = "LEASED" }, services.ErrAcquisitionTypeValue},
		{"payout above amount", func(s *domain.SaleSnapshot) {
			s.AcquisitionType = domain.AcquisitionConsigned
			s.SupplierPayout = d("1000.01")
		}, services.ErrPayoutExceedsAmount},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			sale := ownedSale("sale-invalid")
			tc.mutate(&sale)
			ids, err := suite.service.PostSaleEntries(suite.ctx, sale, testActor)
			suite.Nil(ids)
			suite.ErrorIs(err, apperrors.ErrValidation)
			suite.ErrorIs(err, tc.target)
		})
	}

	_, err := suite.service.PostSaleEntries(suite.ctx, ownedSale("sale-no-actor"), "")
	suite.ErrorIs(err, services.ErrActorMissing)

	entries, err := suite.store.FindEntriesBySaleID(suite.ctx, "sale-invalid")
	suite.Require().NoError(err)
	suite.Empty(entries)
}

func (suite *LedgerServiceTestSuite) TestPostSaleEntries_MissingChartIsConfigurationError() {
	empty := memory.New()
	svc := services.NewLedgerService(empty, services.NewChartOfAccountsService(empty), services.NewTaxService(empty))

	ids, err := svc.PostSaleEntries(suite.ctx, ownedSale("sale-unseeded"), testActor)
	suite.Nil(ids)
	suite.ErrorIs(err, apperrors.ErrConfiguration)

	entries, err := empty.FindEntriesBySaleID(suite.ctx, "sale-unseeded")
	suite.Require().NoError(err)
	suite.Empty(entries)
}

func (suite *LedgerServiceTestSuite) TestPostSaleEntries_RepeatedEntryIDConflicts() {
	_, err := suite.service.PostSaleEntries(suite.ctx, consignedSale("sale-a"), testActor)
	suite.Require().NoError(err)
	suite.idCounter.Store(0)

	_, err = suite.service.PostSaleEntries(suite.ctx, consignedSale("sale-b"), testActor)
	suite.ErrorIs(err, apperrors.ErrConflict)

	entries, err := suite.store.FindEntriesBySaleID(suite.ctx, "sale-b")
	suite.Require().NoError(err)
	suite.Empty(entries, "failed posting leaves nothing behind")
}

func (suite *LedgerServiceTestSuite) TestLedgerBalancesToZero() {
	_, err := suite.service.PostSaleEntries(suite.ctx, ownedSale("s1"), testActor)
	suite.Require().NoError(err)
	_, err = suite.service.PostSaleEntries(suite.ctx, consignedSale("s2"), testActor)
	suite.Require().NoError(err)
	_, err = suite.service.ReverseSaleEntries(suite.ctx, "s1", testActor)
	suite.Require().NoError(err)

	movements, err := suite.store.SumMovementsByAccount(suite.ctx, domain.Period{To: suite.clock})
	suite.Require().NoError(err)
	suite.True(accounting.LedgerImbalance(movements).IsZero())
}

func (suite *LedgerServiceTestSuite) TestReverseSaleEntries_ConcurrentCallsReverseOnce() {
	const sales, reversers = 20, 10

	var posting sync.WaitGroup
	postErrs := make([]error, sales)
	for i := range sales {
		posting.Add(1)
		go func() {
			defer posting.Done()
			_, postErrs[i] = suite.service.PostSaleEntries(suite.ctx, ownedSale(fmt.Sprintf("s-%d", i)), testActor)
		}()
	}
	posting.Wait()
	for _, err := range postErrs {
		suite.Require().NoError(err)
	}

	originals, err := suite.store.FindEntriesBySaleID(suite.ctx, "s-3")
	suite.Require().NoError(err)
	suite.Require().NotEmpty(originals)

	var reversing sync.WaitGroup
	counts := make([]int, reversers)
	revErrs := make([]error, reversers)
	for i := range reversers {
		reversing.Add(1)
		go func() {
			defer reversing.Done()
			counts[i], revErrs[i] = suite.service.ReverseSaleEntries(suite.ctx, "s-3", fmt.Sprintf("canceler-%d", i))
		}()
	}
	reversing.Wait()

	total, winners := 0, 0
	for i := range reversers {
		suite.Require().NoError(revErrs[i])
		total += counts[i]
		if counts[i] > 0 {
			winners++
		}
	}
	suite.Equal(len(originals), total)
	suite.Equal(1, winners, "exactly one call performs the reversal")

	entries, err := suite.store.FindEntriesBySaleID(suite.ctx, "s-3")
	suite.Require().NoError(err)
	suite.Len(entries, 2*len(originals))

	movements, err := suite.store.SumMovementsByAccount(suite.ctx, domain.Period{To: suite.clock})
	suite.Require().NoError(err)
	suite.True(accounting.LedgerImbalance(movements).IsZero())
}

func (suite *LedgerServiceTestSuite) TestListSaleEntries() {
	ids, err := suite.service.PostSaleEntries(suite.ctx, consignedSale("sale-history"), testActor)
	suite.Require().NoError(err)
	_, err = suite.service.ReverseSaleEntries(suite.ctx, "sale-history", testActor)
	suite.Require().NoError(err)

	entries, err := suite.service.ListSaleEntries(suite.ctx, "sale-history")
	suite.Require().NoError(err)
	suite.Len(entries, 2*len(ids))
	for _, e := range entries {
		suite.Require().NotNil(e.SaleID)
		suite.Equal("sale-history", *e.SaleID)
	}

	none, err := suite.service.ListSaleEntries(suite.ctx, "sale-unknown")
	suite.Require().NoError(err)
	suite.Empty(none)

	_, err = suite.service.ListSaleEntries(suite.ctx, "")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestReverseSaleEntries_Idempotent() {
	ids, err := suite.service.PostSaleEntries(suite.ctx, ownedSale("sale-cancel"), testActor)
	suite.Require().NoError(err)

	count, err := suite.service.ReverseSaleEntries(suite.ctx, "sale-cancel", "canceler")
	suite.Require().NoError(err)
	suite.Equal(len(ids), count)

	count, err = suite.service.ReverseSaleEntries(suite.ctx, "sale-cancel", "canceler")
	suite.Require().NoError(err)
	suite.Equal(0, count)

	entries, err := suite.store.FindEntriesBySaleID(suite.ctx, "sale-cancel")
	suite.Require().NoError(err)
	suite.Len(entries, 2*len(ids))

	byID := make(map[string]domain.JournalEntry, len(entries))
	for _, e := range entries {
		byID[e.EntryID] = e
	}
	for _, e := range entries {
		if e.ReversalOfID == nil {
			suite.True(e.Reversed)
			suite.Require().NotNil(e.ReversedBy)
			suite.Equal("canceler", *e.ReversedBy)
			continue
		}
		orig := byID[*e.ReversalOfID]
		suite.False(e.Reversed)
		suite.False(e.IsReversible())
		suite.Equal(time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), e.EntryDate)
		suite.Equal("Reversal of: "+orig.Description, e.Description)
		suite.Equal(orig.Lines[0].DebitAccountID, e.Lines[0].CreditAccountID)
		suite.Equal(orig.Lines[0].CreditAccountID, e.Lines[0].DebitAccountID)
		suite.True(orig.Lines[0].Amount.Equal(e.Lines[0].Amount))
		suite.Equal("Reversal: "+orig.Lines[0].Memo, e.Lines[0].Memo)
	}
}

func (suite *LedgerServiceTestSuite) TestReverseSaleEntries_UnknownSaleIsZero() {
	count, err := suite.service.ReverseSaleEntries(suite.ctx, "never-posted", testActor)
	suite.Require().NoError(err)
	suite.Equal(0, count)

	_, err = suite.service.ReverseSaleEntries(suite.ctx, "", testActor)
	suite.ErrorIs(err, apperrors.ErrValidation)
	_, err = suite.service.ReverseSaleEntries(suite.ctx, "x", "")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestListEntries() {
	_, err := suite.service.PostSaleEntries(suite.ctx, ownedSale("s1"), testActor)
	suite.Require().NoError(err)
	_, err = suite.service.PostSaleEntries(suite.ctx, consignedSale("s2"), testActor)
	suite.Require().NoError(err)

	resp, err := suite.service.ListEntries(suite.ctx, dto.ListEntriesParams{SaleID: "s2"})
	suite.Require().NoError(err)
	suite.Len(resp.Entries, 3)
	suite.Nil(resp.NextToken)

	resp, err = suite.service.ListEntries(suite.ctx, dto.ListEntriesParams{Limit: 5})
	suite.Require().NoError(err)
	suite.Len(resp.Entries, 5)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("2025-03-20", resp.Entries[0].EntryDate)

	next, err := suite.service.ListEntries(suite.ctx, dto.ListEntriesParams{Limit: 5, NextToken: *resp.NextToken})
	suite.Require().NoError(err)
	suite.Len(next.Entries, 2)

	_, err = suite.service.ListEntries(suite.ctx, dto.ListEntriesParams{FromDate: "2025-04-01", ToDate: "2025-03-01"})
	suite.ErrorIs(err, apperrors.ErrValidation)
	_, err = suite.service.ListEntries(suite.ctx, dto.ListEntriesParams{NextToken: "!!"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestGetEntry_NotFound() {
	_, err := suite.service.GetEntry(suite.ctx, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// MockJournalRepository is a mock type for the JournalRepositoryWithTx interface
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntriesBySaleID(ctx context.Context, saleID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.JournalEntry), next, args.Error(2)
}

func (m *MockJournalRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

func (suite *LedgerServiceTestSuite) TestPostSaleEntries_SerializationConflictIsRetryable() {
	journal := new(MockJournalRepository)
	journal.On("WithinTx", suite.ctx, mock.Anything).
		Return(fmt.Errorf("%w: could not serialize access", apperrors.ErrConflict)).Once()
	svc := services.NewLedgerService(journal, suite.chart, suite.tax)

	_, err := svc.PostSaleEntries(suite.ctx, ownedSale("sale-conflict"), testActor)
	suite.ErrorIs(err, apperrors.ErrConflict)
	journal.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetEntry_RepositoryFailureIsWrapped() {
	journal := new(MockJournalRepository)
	journal.On("FindEntryByID", suite.ctx, "e1").Return(nil, errors.New("connection reset")).Once()
	svc := services.NewLedgerService(journal, suite.chart, suite.tax)

	_, err := svc.GetEntry(suite.ctx, "e1")
	suite.Require().Error(err)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
	suite.Contains(err.Error(), "connection reset")
}
