package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/resale_ledger/internal/apperrors"
	"github.com/SscSPs/resale_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/resale_ledger/internal/core/ports/services"
	"github.com/SscSPs/resale_ledger/internal/dto"
	"github.com/SscSPs/resale_ledger/internal/handlers"
	"github.com/SscSPs/resale_ledger/internal/platform/config"
)

// --- Mocks ---

type MockChartService struct {
	mock.Mock
}

func (m *MockChartService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockChartService) ResolveCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}
func (m *MockChartService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockChartService) SeedDefaultChart(ctx context.Context, actorID string) (int, error) {
	args := m.Called(ctx, actorID)
	return args.Int(0), args.Error(1)
}
func (m *MockChartService) Invalidate() { m.Called() }

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) PostSaleEntries(ctx context.Context, sale domain.SaleSnapshot, actorID string) ([]string, error) {
	args := m.Called(ctx, sale, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockLedgerService) ReverseSaleEntries(ctx context.Context, saleID string, actorID string) (int, error) {
	args := m.Called(ctx, saleID, actorID)
	return args.Int(0), args.Error(1)
}
func (m *MockLedgerService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockLedgerService) ListSaleEntries(ctx context.Context, saleID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}
func (m *MockLedgerService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GetStatement(ctx context.Context, kind domain.StatementKind, period domain.Period) (*domain.Statement, error) {
	args := m.Called(ctx, kind, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statement), args.Error(1)
}
func (m *MockReportingService) IncomeStatement(ctx context.Context, period domain.Period) (*domain.IncomeStatement, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatement), args.Error(1)
}
func (m *MockReportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}
func (m *MockReportingService) CashFlow(ctx context.Context, period domain.Period) (*domain.CashFlowReport, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashFlowReport), args.Error(1)
}
func (m *MockReportingService) TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

type MockTaxService struct {
	mock.Mock
}

func (m *MockTaxService) GetRollingRevenue(ctx context.Context, referenceDate time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, referenceDate)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockTaxService) GetEffectiveTaxRate(ctx context.Context, rbt12 decimal.Decimal) decimal.Decimal {
	args := m.Called(ctx, rbt12)
	return args.Get(0).(decimal.Decimal)
}
func (m *MockTaxService) TaxForBase(ctx context.Context, base, rbt12 decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	args := m.Called(ctx, base, rbt12)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal)
}
func (m *MockTaxService) Compute(ctx context.Context, base, rbt12 decimal.Decimal) domain.TaxComputation {
	args := m.Called(ctx, base, rbt12)
	return args.Get(0).(domain.TaxComputation)
}

// --- Suite ---

const (
	testJWTSecret = "handler-test-secret"
	testIssuer    = "resale-ledger"
	testActorID   = "actor-123"
)

type HandlersTestSuite struct {
	suite.Suite
	router    *gin.Engine
	chart     *MockChartService
	ledger    *MockLedgerService
	reporting *MockReportingService
	tax       *MockTaxService
	token     string
}

func (s *HandlersTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(dto.RegisterValidators())

	claims := jwt.RegisteredClaims{
		Subject:   testActorID,
		Issuer:    testIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	s.Require().NoError(err)
	s.token = token
}

func (s *HandlersTestSuite) SetupTest() {
	s.chart = new(MockChartService)
	s.ledger = new(MockLedgerService)
	s.reporting = new(MockReportingService)
	s.tax = new(MockTaxService)

	container := &portssvc.ServiceContainer{
		Chart:     s.chart,
		Tax:       s.tax,
		Ledger:    s.ledger,
		Reporting: s.reporting,
	}
	cfg := &config.Config{JWTSecret: testJWTSecret, JWTIssuer: testIssuer}

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, cfg, container)
}

func (s *HandlersTestSuite) TearDownTest() {
	s.chart.AssertExpectations(s.T())
	s.ledger.AssertExpectations(s.T())
	s.reporting.AssertExpectations(s.T())
	s.tax.AssertExpectations(s.T())
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (s *HandlersTestSuite) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlersTestSuite) decode(w *httptest.ResponseRecorder, v interface{}) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

const validSaleBody = `{
	"saleDate": "2025-03-15",
	"amount": 1000,
	"paymentMethod": "CREDIT_CARD",
	"cardFeeRate": 4,
	"acquisitionType": "OWNED",
	"acquisitionCost": 300,
	"maintenanceCost": 50,
	"acquisitionChannel": "AUCTION"
}`

func (s *HandlersTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "", false)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())
}

func (s *HandlersTestSuite) TestPostSaleEntries_Created() {
	isSnapshot := mock.MatchedBy(func(sale domain.SaleSnapshot) bool {
		return sale.SaleID == "sale-1" &&
			sale.SaleDate.Equal(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)) &&
			sale.Amount.Equal(decimal.NewFromInt(1000)) &&
			sale.CardFeeRate.Equal(decimal.NewFromInt(4)) &&
			sale.AcquisitionType == domain.AcquisitionType("OWNED")
	})
	s.ledger.On("PostSaleEntries", mock.Anything, isSnapshot, testActorID).
		Return([]string{"e1", "e2", "e3"}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/sales/sale-1/entries", validSaleBody, true)

	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.PostSaleEntriesResponse
	s.decode(w, &resp)
	s.Equal("sale-1", resp.SaleID)
	s.Equal([]string{"e1", "e2", "e3"}, resp.EntryIDs)
}

func (s *HandlersTestSuite) TestPostSaleEntries_BadRequests() {
	cases := map[string]string{
		"zero amount":        strings.Replace(validSaleBody, `"amount": 1000`, `"amount": 0`, 1),
		"fee above 100":      strings.Replace(validSaleBody, `"cardFeeRate": 4`, `"cardFeeRate": 101`, 1),
		"negative cost":      strings.Replace(validSaleBody, `"acquisitionCost": 300`, `"acquisitionCost": -1`, 1),
		"unknown type":       strings.Replace(validSaleBody, `"OWNED"`, `"LEASED"`, 1),
		"missing sale date":  strings.Replace(validSaleBody, `"saleDate": "2025-03-15",`, ``, 1),
		"timestamp date":     strings.Replace(validSaleBody, `"2025-03-15"`, `"2025-03-15T10:00:00Z"`, 1),
		"impossible date":    strings.Replace(validSaleBody, `"2025-03-15"`, `"2025-02-30"`, 1),
		"malformed document": `{"amount":`,
	}
	for name, body := range cases {
		s.Run(name, func() {
			w := s.do(http.MethodPost, "/api/v1/sales/sale-1/entries", body, true)
			s.Equal(http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
	s.ledger.AssertNotCalled(s.T(), "PostSaleEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlersTestSuite) TestPostSaleEntries_RequiresToken() {
	w := s.do(http.MethodPost, "/api/v1/sales/sale-1/entries", validSaleBody, false)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlersTestSuite) TestPostSaleEntries_ErrorMapping() {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation), http.StatusBadRequest},
		{"conflict", fmt.Errorf("%w: entry already exists", apperrors.ErrConflict), http.StatusConflict},
		{"configuration", fmt.Errorf("%w: missing account codes 2.1.2", apperrors.ErrConfiguration), http.StatusInternalServerError},
		{"internal", fmt.Errorf("%w: boom", apperrors.ErrInternal), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.ledger.On("PostSaleEntries", mock.Anything, mock.Anything, testActorID).Return(nil, tc.err).Once()
			w := s.do(http.MethodPost, "/api/v1/sales/sale-1/entries", validSaleBody, true)
			s.Equal(tc.status, w.Code)
		})
	}
}

func (s *HandlersTestSuite) TestPostSaleEntries_ConfigurationErrorNamesCodes() {
	s.ledger.On("PostSaleEntries", mock.Anything, mock.Anything, testActorID).
		Return(nil, fmt.Errorf("%w: missing account codes 2.1.2", apperrors.ErrConfiguration)).Once()

	w := s.do(http.MethodPost, "/api/v1/sales/sale-1/entries", validSaleBody, true)
	s.Equal(http.StatusInternalServerError, w.Code)
	s.Contains(w.Body.String(), "2.1.2")
}

func (s *HandlersTestSuite) TestReverseSaleEntries() {
	s.ledger.On("ReverseSaleEntries", mock.Anything, "sale-9", testActorID).Return(3, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/sales/sale-9/reversal", "", true)

	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ReverseSaleEntriesResponse
	s.decode(w, &resp)
	s.Equal(3, resp.ReversedCount)
	s.Equal("sale-9", resp.SaleID)
}

func (s *HandlersTestSuite) TestReverseSaleEntries_Conflict() {
	s.ledger.On("ReverseSaleEntries", mock.Anything, "sale-9", testActorID).
		Return(0, fmt.Errorf("%w: entry e1 already reversed", apperrors.ErrConflict)).Once()

	w := s.do(http.MethodPost, "/api/v1/sales/sale-9/reversal", "", true)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlersTestSuite) TestListSaleEntries() {
	saleID := "sale-9"
	original := domain.JournalEntry{EntryID: "e1", EntryDate: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), Kind: domain.KindSale, SaleID: &saleID, Reversed: true}
	reversal := domain.JournalEntry{EntryID: "e2", EntryDate: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), Kind: domain.KindSale, SaleID: &saleID, ReversalOfID: &original.EntryID}
	s.ledger.On("ListSaleEntries", mock.Anything, "sale-9").Return([]domain.JournalEntry{original, reversal}, nil).Once()
	s.ledger.On("ListSaleEntries", mock.Anything, "sale-0").Return([]domain.JournalEntry{}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/sales/sale-9/entries", "", true)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.SaleEntriesResponse
	s.decode(w, &resp)
	s.Equal("sale-9", resp.SaleID)
	s.Require().Len(resp.Entries, 2)
	s.True(resp.Entries[0].Reversed)
	s.Require().NotNil(resp.Entries[1].ReversalOfID)
	s.Equal("e1", *resp.Entries[1].ReversalOfID)

	w = s.do(http.MethodGet, "/api/v1/sales/sale-0/entries", "", true)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"saleID":"sale-0","entries":[]}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/v1/sales/sale-9/entries", "", false)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlersTestSuite) TestSwaggerServedOutsideProduction() {
	w := s.do(http.MethodGet, "/swagger/doc.json", "", false)
	s.Require().Equal(http.StatusOK, w.Code)

	var doc struct {
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	s.decode(w, &doc)
	s.Equal("/api/v1", doc.BasePath)
	for _, path := range []string{
		"/accounts", "/accounts/{code}",
		"/sales/{saleID}/entries", "/sales/{saleID}/reversal",
		"/entries", "/entries/{entryID}",
		"/reports/dre", "/reports/balance-sheet", "/reports/cash-flow", "/reports/trial-balance", "/reports/statement",
		"/tax/rolling-revenue", "/tax/effective-rate",
	} {
		s.Contains(doc.Paths, path)
	}
}

func (s *HandlersTestSuite) TestSwaggerHiddenInProduction() {
	router := gin.New()
	cfg := &config.Config{JWTSecret: testJWTSecret, JWTIssuer: testIssuer, IsProduction: true}
	handlers.RegisterRoutes(router, cfg, &portssvc.ServiceContainer{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlersTestSuite) TestGetEntry() {
	saleID := "sale-1"
	entry := &domain.JournalEntry{
		EntryID:   "e1",
		EntryDate: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Kind:      domain.KindSale,
		SaleID:    &saleID,
		Lines: []domain.EntryLine{
			{LineID: "l1", DebitAccountID: "a1", CreditAccountID: "a2", Amount: decimal.NewFromInt(1000)},
		},
	}
	s.ledger.On("GetEntry", mock.Anything, "e1").Return(entry, nil).Once()
	s.ledger.On("GetEntry", mock.Anything, "missing").Return(nil, apperrors.NewNotFoundError("entry missing")).Once()

	w := s.do(http.MethodGet, "/api/v1/entries/e1", "", true)
	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.EntryResponse
	s.decode(w, &resp)
	s.Equal("2025-03-15", resp.EntryDate)
	s.True(resp.Total.Equal(decimal.NewFromInt(1000)))

	w = s.do(http.MethodGet, "/api/v1/entries/missing", "", true)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlersTestSuite) TestListEntries() {
	token := "next"
	expected := dto.ListEntriesParams{SaleID: "sale-1", Kind: "SALE", Limit: 2}
	s.ledger.On("ListEntries", mock.Anything, expected).
		Return(&dto.ListEntriesResponse{Entries: []dto.EntryResponse{}, NextToken: &token}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/entries?saleID=sale-1&kind=SALE&limit=2", "", true)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.ListEntriesResponse
	s.decode(w, &resp)
	s.Require().NotNil(resp.NextToken)
	s.Equal("next", *resp.NextToken)

	w = s.do(http.MethodGet, "/api/v1/entries?limit=500", "", true)
	s.Equal(http.StatusBadRequest, w.Code)
	w = s.do(http.MethodGet, "/api/v1/entries?kind=BOGUS", "", true)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestListAccounts() {
	accounts := []domain.Account{{AccountID: "a1", Code: "1.1.1", Name: "Cash", Nature: domain.DebitNature, Category: domain.Asset, IsActive: true}}
	s.chart.On("ListAccounts", mock.Anything).Return(accounts, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/accounts", "", true)
	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	s.decode(w, &resp)
	s.Require().Len(resp.Accounts, 1)
	s.Equal("1.1.1", resp.Accounts[0].Code)
}

func (s *HandlersTestSuite) TestGetAccountByCode_NotFound() {
	s.chart.On("GetAccountByCode", mock.Anything, "9.9.9").Return(nil, apperrors.ErrNotFound).Once()

	w := s.do(http.MethodGet, "/api/v1/accounts/9.9.9", "", true)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlersTestSuite) TestIncomeStatement() {
	period := domain.Period{
		From: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	s.reporting.On("IncomeStatement", mock.Anything, period).
		Return(&domain.IncomeStatement{Period: period}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/dre?fromDate=2025-03-01&toDate=2025-03-31", "", true)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.IncomeStatementResponse
	s.decode(w, &resp)
	s.Equal("2025-03-01", resp.FromDate)
	s.Equal("2025-03-31", resp.ToDate)

	w = s.do(http.MethodGet, "/api/v1/reports/dre?fromDate=2025-03-01", "", true)
	s.Equal(http.StatusBadRequest, w.Code)
	w = s.do(http.MethodGet, "/api/v1/reports/dre?toDate=31-03-2025", "", true)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestIncomeStatement_InvertedPeriod() {
	s.reporting.On("IncomeStatement", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: period start after end", apperrors.ErrValidation)).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/dre?fromDate=2025-04-01&toDate=2025-03-31", "", true)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestBalanceSheet() {
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	report := &domain.BalanceSheetReport{
		AsOf:             asOf,
		TotalAssets:      decimal.NewFromInt(6450),
		TotalLiabilities: decimal.NewFromInt(656),
		TotalEquity:      decimal.NewFromInt(5794),
		Balanced:         true,
	}
	s.reporting.On("BalanceSheet", mock.Anything, asOf).Return(report, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/balance-sheet?asOf=2025-03-31", "", true)
	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.BalanceSheetResponse
	s.decode(w, &resp)
	s.True(resp.Summary.Balanced)
	s.True(resp.Summary.TotalAssets.Equal(decimal.NewFromInt(6450)))

	w = s.do(http.MethodGet, "/api/v1/reports/balance-sheet", "", true)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestCashFlowAndTrialBalance() {
	period := domain.Period{To: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)}
	s.reporting.On("CashFlow", mock.Anything, period).
		Return(&domain.CashFlowReport{Period: period, ClosingBalance: decimal.NewFromInt(4800)}, nil).Once()
	s.reporting.On("TrialBalance", mock.Anything, period.To).
		Return([]domain.TrialBalanceRow{
			{Code: "1.1.1", Debit: decimal.NewFromInt(100)},
			{Code: "3.1.1", Credit: decimal.NewFromInt(100)},
		}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/cash-flow?toDate=2025-03-31", "", true)
	s.Require().Equal(http.StatusOK, w.Code)
	var cf dto.CashFlowResponse
	s.decode(w, &cf)
	s.Empty(cf.FromDate)
	s.True(cf.ClosingBalance.Equal(decimal.NewFromInt(4800)))

	w = s.do(http.MethodGet, "/api/v1/reports/trial-balance?asOf=2025-03-31", "", true)
	s.Require().Equal(http.StatusOK, w.Code)
	var tb dto.TrialBalanceResponse
	s.decode(w, &tb)
	s.True(tb.Totals.Debit.Equal(tb.Totals.Credit))
}

func (s *HandlersTestSuite) TestStatement() {
	period := domain.Period{
		From: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	s.reporting.On("GetStatement", mock.Anything, domain.StatementDRE, period).
		Return(&domain.Statement{Kind: domain.StatementDRE, IncomeStatement: &domain.IncomeStatement{Period: period}}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/statement?kind=DRE&fromDate=2025-03-01&toDate=2025-03-31", "", true)
	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.StatementResponse
	s.decode(w, &resp)
	s.Equal(domain.StatementDRE, resp.Kind)
	s.NotNil(resp.IncomeStatement)
	s.Nil(resp.BalanceSheet)

	w = s.do(http.MethodGet, "/api/v1/reports/statement?kind=BOGUS&toDate=2025-03-31", "", true)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestRollingRevenue() {
	ref := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	s.tax.On("GetRollingRevenue", mock.Anything, ref).Return(decimal.RequireFromString("1400"), nil).Once()

	w := s.do(http.MethodGet, "/api/v1/tax/rolling-revenue?date=2025-04-02", "", true)
	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.RollingRevenueResponse
	s.decode(w, &resp)
	s.Equal("2024-04-01", resp.WindowStart)
	s.Equal("2025-04-01", resp.WindowEnd)
	s.True(resp.RBT12.Equal(decimal.NewFromInt(1400)))

	w = s.do(http.MethodGet, "/api/v1/tax/rolling-revenue", "", true)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestEffectiveRate() {
	decEq := func(v string) interface{} {
		want := decimal.RequireFromString(v)
		return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
	}
	s.tax.On("Compute", mock.Anything, decEq("1000"), decEq("500000")).Return(domain.TaxComputation{
		Base:          decimal.NewFromInt(1000),
		RBT12:         decimal.NewFromInt(500000),
		Bracket:       3,
		EffectiveRate: decimal.RequireFromString("0.0673"),
		Amount:        decimal.RequireFromString("67.30"),
	}).Once()

	w := s.do(http.MethodGet, "/api/v1/tax/effective-rate?rbt12=500000&base=1000", "", true)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.TaxPreviewResponse
	s.decode(w, &resp)
	s.Equal(3, resp.Bracket)
	s.True(resp.EffectiveRate.Equal(decimal.RequireFromString("0.0673")))
	s.True(resp.Amount.Equal(decimal.RequireFromString("67.30")))

	w = s.do(http.MethodGet, "/api/v1/tax/effective-rate?rbt12=-5", "", true)
	s.Equal(http.StatusBadRequest, w.Code)
}
