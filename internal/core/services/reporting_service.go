package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/resale_ledger/internal/apperrors"
	"github.com/SscSPs/resale_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/resale_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/resale_ledger/internal/core/ports/services"
	"github.com/SscSPs/resale_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService derives every statement from raw account movements.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	chart         portssvc.ChartOfAccountsSvc
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.ReportingRepository, chart portssvc.ChartOfAccountsSvc) portssvc.ReportingSvc {
	return &reportingService{
		reportingRepo: repo,
		chart:         chart,
	}
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

// dreGroup maps a code prefix to an income statement row. Deducting groups are shown
// from the debit side and subtracted; the others are shown from the credit side.
type dreGroup struct {
	key       domain.DRERowKey
	label     string
	prefix    string
	deducting bool
}

var dreGroups = []dreGroup{
	{key: domain.RowGrossRevenue, label: "Gross Revenue", prefix: "4.1"},
	{key: domain.RowDeductions, label: "(-) Deductions from Revenue", prefix: "4.2", deducting: true},
	{key: domain.RowCOGS, label: "(-) Cost of Goods Sold", prefix: "5", deducting: true},
	{key: domain.RowOperatingExpenses, label: "(-) Operating Expenses", prefix: "6.1", deducting: true},
	{key: domain.RowFinancialExpenses, label: "(-) Financial Expenses", prefix: "6.2", deducting: true},
	{key: domain.RowNonRecurring, label: "Non-recurring Items", prefix: "7"},
}

func hasCodePrefix(code, prefix string) bool {
	return code == prefix || strings.HasPrefix(code, prefix+".")
}

// groupFor picks the row an income-statement account belongs to. Unmatched codes fall
// into operating expenses (debit nature) or gross revenue (credit nature).
func groupFor(acc domain.Account) dreGroup {
	for _, g := range dreGroups {
		if hasCodePrefix(acc.Code, g.prefix) {
			return g
		}
	}
	if acc.Nature == domain.DebitNature {
		return dreGroups[3]
	}
	return dreGroups[0]
}

// oriented returns an account balance seen from the given side, so that an account of
// the opposite nature counts negatively.
func oriented(acc domain.Account, balance decimal.Decimal, side domain.AccountNature) decimal.Decimal {
	if acc.Nature == side {
		return balance
	}
	return balance.Neg()
}

func (s *reportingService) accountsByID(ctx context.Context) (map[string]domain.Account, error) {
	accounts, err := s.chart.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		byID[acc.AccountID] = acc
	}
	return byID, nil
}

// balancedMovement is a movement joined with its account and signed balance.
type balancedMovement struct {
	account domain.Account
	balance decimal.Decimal
}

// movements loads the period aggregates and applies the sign convention to each.
func (s *reportingService) movements(ctx context.Context, period domain.Period) ([]balancedMovement, error) {
	byID, err := s.accountsByID(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := s.reportingRepo.SumMovementsByAccount(ctx, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate account movements",
			slog.Time("from", period.From), slog.Time("to", period.To))
		return nil, fmt.Errorf("failed to aggregate account movements: %w", err)
	}

	out := make([]balancedMovement, 0, len(raw))
	for _, m := range raw {
		acc, ok := byID[m.AccountID]
		if !ok {
			s.LogWarn(ctx, "Movement for account missing from chart, skipping", slog.String("account_id", m.AccountID))
			continue
		}
		bal, err := accounting.MovementBalance(acc, m)
		if err != nil {
			return nil, err
		}
		out = append(out, balancedMovement{account: acc, balance: bal})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].account.Code < out[j].account.Code })
	return out, nil
}

func validatePeriod(period domain.Period) error {
	if period.To.IsZero() {
		return fmt.Errorf("%w: period end date is required", apperrors.ErrValidation)
	}
	if !period.From.IsZero() && period.From.After(period.To) {
		return fmt.Errorf("%w: period start %s is after end %s", apperrors.ErrValidation,
			period.From.Format(time.DateOnly), period.To.Format(time.DateOnly))
	}
	return nil
}

// IncomeStatement builds the DRE. The net result always equals the sum of credit-nature
// income statement balances minus the sum of debit-nature ones.
func (s *reportingService) IncomeStatement(ctx context.Context, period domain.Period) (*domain.IncomeStatement, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	movements, err := s.movements(ctx, period)
	if err != nil {
		return nil, err
	}

	totals := make(map[domain.DRERowKey]decimal.Decimal, len(dreGroups))
	breakdown := make(map[domain.DRERowKey][]domain.AccountAmount, len(dreGroups))
	for _, g := range dreGroups {
		totals[g.key] = decimal.Zero
	}
	for _, m := range movements {
		if !m.account.Category.IsResult() {
			continue
		}
		g := groupFor(m.account)
		side := domain.CreditNature
		if g.deducting {
			side = domain.DebitNature
		}
		amount := oriented(m.account, m.balance, side)
		totals[g.key] = totals[g.key].Add(amount)
		breakdown[g.key] = append(breakdown[g.key], domain.AccountAmount{
			AccountID: m.account.AccountID,
			Code:      m.account.Code,
			Name:      m.account.Name,
			Amount:    amount,
		})
	}

	netRevenue := totals[domain.RowGrossRevenue].Sub(totals[domain.RowDeductions])
	grossProfit := netRevenue.Sub(totals[domain.RowCOGS])
	operatingResult := grossProfit.Sub(totals[domain.RowOperatingExpenses]).Sub(totals[domain.RowFinancialExpenses])
	netResult := operatingResult.Add(totals[domain.RowNonRecurring])

	group := func(key domain.DRERowKey) domain.StatementRow {
		for _, g := range dreGroups {
			if g.key == key {
				return domain.StatementRow{Key: key, Label: g.label, Amount: totals[key], Accounts: breakdown[key]}
			}
		}
		return domain.StatementRow{Key: key, Amount: decimal.Zero}
	}
	subtotal := func(key domain.DRERowKey, label string, amount decimal.Decimal) domain.StatementRow {
		return domain.StatementRow{Key: key, Label: label, Amount: amount, Subtotal: true}
	}

	rows := []domain.StatementRow{
		group(domain.RowGrossRevenue),
		group(domain.RowDeductions),
		subtotal(domain.RowNetRevenue, "Net Revenue", netRevenue),
		group(domain.RowCOGS),
		subtotal(domain.RowGrossProfit, "Gross Profit", grossProfit),
		group(domain.RowOperatingExpenses),
		group(domain.RowFinancialExpenses),
		subtotal(domain.RowOperatingResult, "Operating Result", operatingResult),
		group(domain.RowNonRecurring),
		subtotal(domain.RowNetResult, "Net Result", netResult),
	}
	for i := range rows {
		rows[i].PercentOfNetRevenue = accounting.PercentOf(rows[i].Amount, netRevenue)
	}

	s.LogInfo(ctx, "Income statement generated",
		slog.Time("from", period.From), slog.Time("to", period.To),
		slog.String("net_result", netResult.String()))
	return &domain.IncomeStatement{Period: period, Rows: rows}, nil
}

// BalanceSheet reports balance accounts as of asOf. The period result to date is
// carried in equity as CurrentResult.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	if asOf.IsZero() {
		return nil, fmt.Errorf("%w: asOf date is required", apperrors.ErrValidation)
	}
	movements, err := s.movements(ctx, domain.Period{To: asOf})
	if err != nil {
		return nil, err
	}

	report := &domain.BalanceSheetReport{
		AsOf:             asOf,
		Assets:           []domain.AccountAmount{},
		Liabilities:      []domain.AccountAmount{},
		Equity:           []domain.AccountAmount{},
		CurrentResult:    decimal.Zero,
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}

	for _, m := range movements {
		acc := m.account
		item := func(side domain.AccountNature) domain.AccountAmount {
			return domain.AccountAmount{AccountID: acc.AccountID, Code: acc.Code, Name: acc.Name, Amount: oriented(acc, m.balance, side)}
		}
		switch acc.Category {
		case domain.Asset:
			a := item(domain.DebitNature)
			report.Assets = append(report.Assets, a)
			report.TotalAssets = report.TotalAssets.Add(a.Amount)
		case domain.Liability:
			a := item(domain.CreditNature)
			report.Liabilities = append(report.Liabilities, a)
			report.TotalLiabilities = report.TotalLiabilities.Add(a.Amount)
		case domain.Equity:
			a := item(domain.CreditNature)
			report.Equity = append(report.Equity, a)
			report.TotalEquity = report.TotalEquity.Add(a.Amount)
		default:
			report.CurrentResult = report.CurrentResult.Add(oriented(acc, m.balance, domain.CreditNature))
		}
	}
	report.TotalEquity = report.TotalEquity.Add(report.CurrentResult)
	report.Balanced = report.TotalAssets.Equal(report.TotalLiabilities.Add(report.TotalEquity))

	if !report.Balanced {
		s.LogWarn(ctx, "Balance sheet does not balance",
			slog.String("total_assets", report.TotalAssets.String()),
			slog.String("total_liabilities", report.TotalLiabilities.String()),
			slog.String("total_equity", report.TotalEquity.String()))
	}
	s.LogInfo(ctx, "Balance sheet generated", slog.Time("as_of", asOf))
	return report, nil
}

func activityFor(acc domain.Account) domain.CashFlowActivity {
	switch acc.Category {
	case domain.Asset:
		// Card receivables settle into the bank as part of the sale cycle.
		if acc.Code == domain.CodeCardReceivables {
			return domain.ActivityOperating
		}
		return domain.ActivityInvesting
	case domain.Equity:
		return domain.ActivityFinancing
	default:
		return domain.ActivityOperating
	}
}

var activityOrder = map[domain.CashFlowActivity]int{
	domain.ActivityOperating: 0,
	domain.ActivityInvesting: 1,
	domain.ActivityFinancing: 2,
}

// CashFlow tracks the cash-equivalent accounts over the period.
func (s *reportingService) CashFlow(ctx context.Context, period domain.Period) (*domain.CashFlowReport, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	byID, err := s.accountsByID(ctx)
	if err != nil {
		return nil, err
	}

	report := &domain.CashFlowReport{
		Period:         period,
		OpeningBalance: decimal.Zero,
		Lines:          []domain.CashFlowLine{},
		ByActivity: map[domain.CashFlowActivity]decimal.Decimal{
			domain.ActivityOperating: decimal.Zero,
			domain.ActivityInvesting: decimal.Zero,
			domain.ActivityFinancing: decimal.Zero,
		},
		TotalInflow:    decimal.Zero,
		TotalOutflow:   decimal.Zero,
		NetChange:      decimal.Zero,
		ClosingBalance: decimal.Zero,
	}

	cashAccounts := make(map[string]domain.Account)
	for _, acc := range byID {
		for _, code := range domain.CashEquivalentCodes {
			if acc.Code == code {
				cashAccounts[acc.AccountID] = acc
			}
		}
	}
	if len(cashAccounts) == 0 {
		s.LogWarn(ctx, "No cash-equivalent accounts in chart, cash flow is empty")
		return report, nil
	}
	cashIDs := make([]string, 0, len(cashAccounts))
	for id := range cashAccounts {
		cashIDs = append(cashIDs, id)
	}
	sort.Strings(cashIDs)

	if !period.From.IsZero() {
		opening, err := s.reportingRepo.SumMovementsByAccount(ctx, domain.Period{To: period.From.AddDate(0, 0, -1)})
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate opening cash balance: %w", err)
		}
		for _, m := range opening {
			acc, ok := cashAccounts[m.AccountID]
			if !ok {
				continue
			}
			bal, err := accounting.MovementBalance(acc, m)
			if err != nil {
				return nil, err
			}
			report.OpeningBalance = report.OpeningBalance.Add(bal)
		}
	}

	counterparts, err := s.reportingRepo.SumCounterpartMovements(ctx, cashIDs, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate cash movements")
		return nil, fmt.Errorf("failed to aggregate cash movements: %w", err)
	}

	for _, cp := range counterparts {
		acc, ok := byID[cp.CounterpartAccountID]
		if !ok {
			acc = domain.Account{AccountID: cp.CounterpartAccountID, Code: "?", Name: "unknown account"}
		}
		activity := activityFor(acc)
		net := cp.Inflow.Sub(cp.Outflow)
		report.Lines = append(report.Lines, domain.CashFlowLine{
			Activity:    activity,
			AccountID:   acc.AccountID,
			Code:        acc.Code,
			Name:        acc.Name,
			Inflow:      cp.Inflow,
			Outflow:     cp.Outflow,
			NetCashFlow: net,
		})
		report.ByActivity[activity] = report.ByActivity[activity].Add(net)
		report.TotalInflow = report.TotalInflow.Add(cp.Inflow)
		report.TotalOutflow = report.TotalOutflow.Add(cp.Outflow)
	}
	sort.Slice(report.Lines, func(i, j int) bool {
		a, b := report.Lines[i], report.Lines[j]
		if activityOrder[a.Activity] != activityOrder[b.Activity] {
			return activityOrder[a.Activity] < activityOrder[b.Activity]
		}
		return a.Code < b.Code
	})

	report.NetChange = report.TotalInflow.Sub(report.TotalOutflow)
	report.ClosingBalance = report.OpeningBalance.Add(report.NetChange)

	s.LogInfo(ctx, "Cash flow statement generated",
		slog.Time("from", period.From), slog.Time("to", period.To),
		slog.String("net_change", report.NetChange.String()))
	return report, nil
}

// TrialBalance lists every account with movement up to asOf.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	if asOf.IsZero() {
		return nil, fmt.Errorf("%w: asOf date is required", apperrors.ErrValidation)
	}
	byID, err := s.accountsByID(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := s.reportingRepo.SumMovementsByAccount(ctx, domain.Period{To: asOf})
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data", slog.Time("as_of", asOf))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	rows := make([]domain.TrialBalanceRow, 0, len(raw))
	for _, m := range raw {
		acc, ok := byID[m.AccountID]
		if !ok {
			continue
		}
		bal, err := accounting.MovementBalance(acc, m)
		if err != nil {
			return nil, err
		}
		rows = append(rows, domain.TrialBalanceRow{
			AccountID:   acc.AccountID,
			Code:        acc.Code,
			AccountName: acc.Name,
			Nature:      acc.Nature,
			Debit:       m.DebitTotal,
			Credit:      m.CreditTotal,
			Balance:     bal,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })

	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.Time("as_of", asOf), slog.Int("row_count", len(rows)))
	return rows, nil
}

// GetStatement dispatches on kind. Point-in-time statements use period.To.
func (s *reportingService) GetStatement(ctx context.Context, kind domain.StatementKind, period domain.Period) (*domain.Statement, error) {
	st := &domain.Statement{Kind: kind}
	switch kind {
	case domain.StatementDRE:
		r, err := s.IncomeStatement(ctx, period)
		if err != nil {
			return nil, err
		}
		st.IncomeStatement = r
	case domain.StatementBalanceSheet:
		r, err := s.BalanceSheet(ctx, period.To)
		if err != nil {
			return nil, err
		}
		st.BalanceSheet = r
	case domain.StatementCashFlow:
		r, err := s.CashFlow(ctx, period)
		if err != nil {
			return nil, err
		}
		st.CashFlow = r
	default:
		return nil, fmt.Errorf("%w: unknown statement kind %q", apperrors.ErrValidation, kind)
	}
	return st, nil
}
