package models

// Account is a row of the accounts table.
type Account struct {
	AccountID string `db:"account_id"`
	Code      string `db:"code"`
	Name      string `db:"name"`
	Nature    string `db:"nature"`   // DEBIT | CREDIT
	Category  string `db:"category"` // ASSET, LIABILITY, EQUITY, REVENUE, EXPENSE, COST
	IsActive  bool   `db:"is_active"`
	AuditFields
}
