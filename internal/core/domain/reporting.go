package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is an inclusive date range. A zero From means "since the first entry".
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// AccountMovement is the raw per-account aggregate every statement is built from.
type AccountMovement struct {
	AccountID   string          `json:"accountID"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
}

// CounterpartMovement aggregates lines touching a tracked account set, grouped by
// the account on the other side of the line.
type CounterpartMovement struct {
	CounterpartAccountID string          `json:"counterpartAccountID"`
	Inflow               decimal.Decimal `json:"inflow"`  // tracked side debited
	Outflow              decimal.Decimal `json:"outflow"` // tracked side credited
}

// StatementKind selects one of the derived financial statements.
type StatementKind string

const (
	StatementDRE          StatementKind = "DRE"
	StatementBalanceSheet StatementKind = "BALANCE_SHEET"
	StatementCashFlow     StatementKind = "CASH_FLOW"
)

// AccountAmount is an account with its signed balance in a report.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// DRERowKey identifies a row of the income statement.
type DRERowKey string

const (
	RowGrossRevenue      DRERowKey = "GROSS_REVENUE"
	RowDeductions        DRERowKey = "DEDUCTIONS"
	RowNetRevenue        DRERowKey = "NET_REVENUE"
	RowCOGS              DRERowKey = "COGS"
	RowGrossProfit       DRERowKey = "GROSS_PROFIT"
	RowOperatingExpenses DRERowKey = "OPERATING_EXPENSES"
	RowFinancialExpenses DRERowKey = "FINANCIAL_EXPENSES"
	RowOperatingResult   DRERowKey = "OPERATING_RESULT"
	RowNonRecurring      DRERowKey = "NON_RECURRING"
	RowNetResult         DRERowKey = "NET_RESULT"
)

// StatementRow is one line of the income statement.
type StatementRow struct {
	Key                 DRERowKey        `json:"key"`
	Label               string           `json:"label"`
	Amount              decimal.Decimal  `json:"amount"`
	PercentOfNetRevenue *decimal.Decimal `json:"percentOfNetRevenue,omitempty"`
	Subtotal            bool             `json:"subtotal"`
	Accounts            []AccountAmount  `json:"accounts,omitempty"`
}

// IncomeStatement (DRE) for a period.
type IncomeStatement struct {
	Period Period         `json:"period"`
	Rows   []StatementRow `json:"rows"`
}

// Row returns the row with the given key, or a zero row.
func (s IncomeStatement) Row(key DRERowKey) StatementRow {
	for _, r := range s.Rows {
		if r.Key == key {
			return r
		}
	}
	return StatementRow{Key: key, Amount: decimal.Zero}
}

// BalanceSheetReport is the position of every balance account at a point in time.
type BalanceSheetReport struct {
	AsOf             time.Time       `json:"asOf"`
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	CurrentResult    decimal.Decimal `json:"currentResult"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	Balanced         bool            `json:"balanced"`
}

// CashFlowActivity classifies a cash movement by its counterpart account.
type CashFlowActivity string

const (
	ActivityOperating CashFlowActivity = "OPERATING"
	ActivityInvesting CashFlowActivity = "INVESTING"
	ActivityFinancing CashFlowActivity = "FINANCING"
)

// CashFlowLine is the net cash effect of one counterpart account.
type CashFlowLine struct {
	Activity    CashFlowActivity `json:"activity"`
	AccountID   string           `json:"accountID"`
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	Inflow      decimal.Decimal  `json:"inflow"`
	Outflow     decimal.Decimal  `json:"outflow"`
	NetCashFlow decimal.Decimal  `json:"netCashFlow"`
}

// CashFlowReport tracks cash-equivalent accounts over a period.
type CashFlowReport struct {
	Period         Period                               `json:"period"`
	OpeningBalance decimal.Decimal                      `json:"openingBalance"`
	Lines          []CashFlowLine                       `json:"lines"`
	ByActivity     map[CashFlowActivity]decimal.Decimal `json:"byActivity"`
	TotalInflow    decimal.Decimal                      `json:"totalInflow"`
	TotalOutflow   decimal.Decimal                      `json:"totalOutflow"`
	NetChange      decimal.Decimal                      `json:"netChange"`
	ClosingBalance decimal.Decimal                      `json:"closingBalance"`
}

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	Nature      AccountNature   `json:"nature"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// Statement is the kind-tagged result of a generic statement request. Exactly one
// of the report pointers is set, matching Kind.
type Statement struct {
	Kind            StatementKind       `json:"kind"`
	IncomeStatement *IncomeStatement    `json:"incomeStatement,omitempty"`
	BalanceSheet    *BalanceSheetReport `json:"balanceSheet,omitempty"`
	CashFlow        *CashFlowReport     `json:"cashFlow,omitempty"`
}
