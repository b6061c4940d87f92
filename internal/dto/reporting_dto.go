package dto

import (
	"time"

	"github.com/SscSPs/resale_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of every date-only field.
const DateLayout = "2006-01-02"

// PeriodParams are the query parameters accepted by period reports.
type PeriodParams struct {
	FromDate string `form:"fromDate" binding:"omitempty,datetime=2006-01-02"`
	ToDate   string `form:"toDate" binding:"required,datetime=2006-01-02"`
}

// AsOfParams are the query parameters accepted by point-in-time reports.
type AsOfParams struct {
	AsOf string `form:"asOf" binding:"required,datetime=2006-01-02"`
}

// StatementParams selects a statement kind for the generic statement route.
type StatementParams struct {
	Kind     string `form:"kind" binding:"required,oneof=DRE BALANCE_SHEET CASH_FLOW"`
	FromDate string `form:"fromDate" binding:"omitempty,datetime=2006-01-02"`
	ToDate   string `form:"toDate" binding:"required,datetime=2006-01-02"`
}

// ParsePeriod converts date strings into a domain.Period. An empty from leaves the
// period open at the start.
func ParsePeriod(fromDate, toDate string) (domain.Period, error) {
	var p domain.Period
	to, err := time.Parse(DateLayout, toDate)
	if err != nil {
		return p, err
	}
	p.To = to
	if fromDate != "" {
		from, err := time.Parse(DateLayout, fromDate)
		if err != nil {
			return p, err
		}
		p.From = from
	}
	return p, nil
}

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID   string               `json:"accountID"`
	Code        string               `json:"code"`
	AccountName string               `json:"accountName"`
	Nature      domain.AccountNature `json:"nature"`
	Debit       decimal.Decimal      `json:"debit"`
	Credit      decimal.Decimal      `json:"credit"`
	Balance     decimal.Decimal      `json:"balance"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// ToTrialBalanceResponse converts domain trial balance rows to a DTO response
func ToTrialBalanceResponse(rows []domain.TrialBalanceRow, asOf time.Time) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf: asOf.Format(DateLayout),
		Rows: make([]TrialBalanceRowResponse, len(rows)),
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	for i, row := range rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			Code:        row.Code,
			AccountName: row.AccountName,
			Nature:      row.Nature,
			Debit:       row.Debit,
			Credit:      row.Credit,
			Balance:     row.Balance,
		}

		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}

	response.Totals.Debit = totalDebit
	response.Totals.Credit = totalCredit

	return response
}

// IncomeStatementResponse represents the DRE report response
type IncomeStatementResponse struct {
	FromDate string                `json:"fromDate,omitempty"`
	ToDate   string                `json:"toDate"`
	Rows     []domain.StatementRow `json:"rows"`
}

// ToIncomeStatementResponse converts a domain income statement to a DTO response
func ToIncomeStatementResponse(s *domain.IncomeStatement) IncomeStatementResponse {
	resp := IncomeStatementResponse{
		ToDate: s.Period.To.Format(DateLayout),
		Rows:   s.Rows,
	}
	if !s.Period.From.IsZero() {
		resp.FromDate = s.Period.From.Format(DateLayout)
	}
	return resp
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	AsOf        string                 `json:"asOf"`
	Assets      []domain.AccountAmount `json:"assets"`
	Liabilities []domain.AccountAmount `json:"liabilities"`
	Equity      []domain.AccountAmount `json:"equity"`
	Summary     struct {
		CurrentResult    decimal.Decimal `json:"currentResult"`
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		TotalEquity      decimal.Decimal `json:"totalEquity"`
		Balanced         bool            `json:"balanced"`
	} `json:"summary"`
}

// ToBalanceSheetResponse converts a domain balance sheet report to a DTO response
func ToBalanceSheetResponse(report *domain.BalanceSheetReport) BalanceSheetResponse {
	response := BalanceSheetResponse{
		AsOf:        report.AsOf.Format(DateLayout),
		Assets:      report.Assets,
		Liabilities: report.Liabilities,
		Equity:      report.Equity,
	}

	response.Summary.CurrentResult = report.CurrentResult
	response.Summary.TotalAssets = report.TotalAssets
	response.Summary.TotalLiabilities = report.TotalLiabilities
	response.Summary.TotalEquity = report.TotalEquity
	response.Summary.Balanced = report.Balanced

	return response
}

// CashFlowResponse represents the cash-flow statement response
type CashFlowResponse struct {
	FromDate       string                                      `json:"fromDate,omitempty"`
	ToDate         string                                      `json:"toDate"`
	OpeningBalance decimal.Decimal                             `json:"openingBalance"`
	Lines          []domain.CashFlowLine                       `json:"lines"`
	ByActivity     map[domain.CashFlowActivity]decimal.Decimal `json:"byActivity"`
	TotalInflow    decimal.Decimal                             `json:"totalInflow"`
	TotalOutflow   decimal.Decimal                             `json:"totalOutflow"`
	NetChange      decimal.Decimal                             `json:"netChange"`
	ClosingBalance decimal.Decimal                             `json:"closingBalance"`
}

// ToCashFlowResponse converts a domain cash-flow report to a DTO response
func ToCashFlowResponse(r *domain.CashFlowReport) CashFlowResponse {
	resp := CashFlowResponse{
		ToDate:         r.Period.To.Format(DateLayout),
		OpeningBalance: r.OpeningBalance,
		Lines:          r.Lines,
		ByActivity:     r.ByActivity,
		TotalInflow:    r.TotalInflow,
		TotalOutflow:   r.TotalOutflow,
		NetChange:      r.NetChange,
		ClosingBalance: r.ClosingBalance,
	}
	if !r.Period.From.IsZero() {
		resp.FromDate = r.Period.From.Format(DateLayout)
	}
	return resp
}

// StatementResponse is the kind-tagged body of the generic statement route.
type StatementResponse struct {
	Kind            domain.StatementKind     `json:"kind"`
	IncomeStatement *IncomeStatementResponse `json:"incomeStatement,omitempty"`
	BalanceSheet    *BalanceSheetResponse    `json:"balanceSheet,omitempty"`
	CashFlow        *CashFlowResponse        `json:"cashFlow,omitempty"`
}

// ToStatementResponse converts a domain.Statement, keeping only the populated report.
func ToStatementResponse(s *domain.Statement) StatementResponse {
	resp := StatementResponse{Kind: s.Kind}
	if s.IncomeStatement != nil {
		r := ToIncomeStatementResponse(s.IncomeStatement)
		resp.IncomeStatement = &r
	}
	if s.BalanceSheet != nil {
		r := ToBalanceSheetResponse(s.BalanceSheet)
		resp.BalanceSheet = &r
	}
	if s.CashFlow != nil {
		r := ToCashFlowResponse(s.CashFlow)
		resp.CashFlow = &r
	}
	return resp
}
