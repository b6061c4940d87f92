package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is the slice of the sales table the revenue window reads.
type Sale struct {
	SaleID          string          `db:"sale_id"`
	SoldAt          time.Time       `db:"sold_at"`
	Amount          decimal.Decimal `db:"amount"`
	AcquisitionType string          `db:"acquisition_type"`
	SupplierPayout  decimal.Decimal `db:"supplier_payout"`
	Canceled        bool            `db:"canceled"`
}
