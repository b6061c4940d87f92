package dto

import (
	"github.com/SscSPs/resale_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RollingRevenueParams are the query parameters of the RBT12 route.
type RollingRevenueParams struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

// RollingRevenueResponse reports the trailing twelve-month revenue for a reference date.
type RollingRevenueResponse struct {
	ReferenceDate string          `json:"referenceDate"`
	WindowStart   string          `json:"windowStart"`
	WindowEnd     string          `json:"windowEnd"` // exclusive
	RBT12         decimal.Decimal `json:"rbt12"`
}

// EffectiveRateParams are the query parameters of the effective-rate route.
// Base is optional; when present the response also carries the tax amount.
type EffectiveRateParams struct {
	RBT12 decimal.Decimal `form:"rbt12" binding:"dgte0"`
	Base  decimal.Decimal `form:"base" binding:"dgte0"`
}

// TaxPreviewResponse is the outcome of the bracket engine for a given RBT12 and base.
type TaxPreviewResponse struct {
	RBT12           decimal.Decimal `json:"rbt12"`
	Bracket         int             `json:"bracket"`
	EffectiveRate   decimal.Decimal `json:"effectiveRate"`
	Base            decimal.Decimal `json:"base"`
	Amount          decimal.Decimal `json:"amount"`
	AboveTopBracket bool            `json:"aboveTopBracket"`
}

// ToTaxPreviewResponse converts a domain.TaxComputation to its DTO.
func ToTaxPreviewResponse(c domain.TaxComputation) TaxPreviewResponse {
	return TaxPreviewResponse{
		RBT12:           c.RBT12,
		Bracket:         c.Bracket,
		EffectiveRate:   c.EffectiveRate,
		Base:            c.Base,
		Amount:          c.Amount,
		AboveTopBracket: c.AboveTopBracket,
	}
}
