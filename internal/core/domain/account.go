package domain

// AccountNature says which side of an entry line increases the account balance.
type AccountNature string

const (
	DebitNature  AccountNature = "DEBIT"
	CreditNature AccountNature = "CREDIT"
)

// AccountCategory defines the fundamental accounting category of an account.
type AccountCategory string

const (
	Asset     AccountCategory = "ASSET"
	Liability AccountCategory = "LIABILITY"
	Equity    AccountCategory = "EQUITY"
	Revenue   AccountCategory = "REVENUE"
	Expense   AccountCategory = "EXPENSE"
	Cost      AccountCategory = "COST"
)

// IsResult reports whether the category belongs to the income statement.
func (c AccountCategory) IsResult() bool {
	switch c {
	case Revenue, Expense, Cost:
		return true
	}
	return false
}

// Account is one line item of the chart of accounts.
type Account struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"` // hierarchical, e.g. "4.1.1"; unique and immutable
	Name      string          `json:"name"`
	Nature    AccountNature   `json:"nature"`
	Category  AccountCategory `json:"category"`
	IsActive  bool            `json:"isActive"`
	AuditFields
}

// Account codes the sale posting rules depend on. They must be seeded before any posting.
const (
	CodeCash                 = "1.1.1"
	CodeBank                 = "1.1.2"
	CodeCardReceivables      = "1.1.3"
	CodeInventory            = "1.1.4"
	CodeConsignmentPayable   = "2.1.1"
	CodeRevenueTaxPayable    = "2.1.2"
	CodeRevenueOwnedStock    = "4.1.1"
	CodeRevenueConsignment   = "4.1.2"
	CodeRevenueTaxExpense    = "4.2.1"
	CodeCOGSAuction          = "5.1.1"
	CodeCOGSMarketplace      = "5.1.2"
	CodeCOGSIndividualSeller = "5.1.3"
	CodeCOGSMaintenance      = "5.1.4"
	CodeCardFeeExpense       = "6.2.1"
)

// CashEquivalentCodes are the accounts the cash-flow statement tracks.
var CashEquivalentCodes = []string{CodeCash, CodeBank}

// DefaultChartOfAccounts is the seeded chart. Account IDs and audit fields are left
// for the store to assign.
func DefaultChartOfAccounts() []Account {
	acc := func(code, name string, category AccountCategory, nature AccountNature) Account {
		return Account{Code: code, Name: name, Category: category, Nature: nature, IsActive: true}
	}
	return []Account{
		acc(CodeCash, "Cash", Asset, DebitNature),
		acc(CodeBank, "Bank / PIX", Asset, DebitNature),
		acc(CodeCardReceivables, "Card Receivables", Asset, DebitNature),
		acc(CodeInventory, "Inventory", Asset, DebitNature),
		acc(CodeConsignmentPayable, "Consignment Payout Payable", Liability, CreditNature),
		acc(CodeRevenueTaxPayable, "Revenue Tax Payable", Liability, CreditNature),
		acc("3.1.1", "Owner's Capital", Equity, CreditNature),
		acc("3.2.1", "Retained Earnings", Equity, CreditNature),
		acc(CodeRevenueOwnedStock, "Revenue - Owned Stock", Revenue, CreditNature),
		acc(CodeRevenueConsignment, "Revenue - Consignment", Revenue, CreditNature),
		acc(CodeRevenueTaxExpense, "Revenue Tax Expense", Expense, DebitNature),
		acc(CodeCOGSAuction, "COGS - Auction", Cost, DebitNature),
		acc(CodeCOGSMarketplace, "COGS - Marketplace", Cost, DebitNature),
		acc(CodeCOGSIndividualSeller, "COGS - Individual Seller", Cost, DebitNature),
		acc(CodeCOGSMaintenance, "COGS - Maintenance", Cost, DebitNature),
		acc("6.1.1", "Rent", Expense, DebitNature),
		acc("6.1.2", "Marketing", Expense, DebitNature),
		acc(CodeCardFeeExpense, "Card Fee Expense", Expense, DebitNature),
		acc("6.2.2", "Bank Fees", Expense, DebitNature),
		acc("7.1.1", "Non-recurring Income", Revenue, CreditNature),
		acc("7.2.1", "Non-recurring Expense", Expense, DebitNature),
	}
}
