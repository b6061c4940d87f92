package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer paid for a sale.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentPix          PaymentMethod = "PIX"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentCreditCard   PaymentMethod = "CREDIT_CARD"
)

// ParsePaymentMethod maps free text to a PaymentMethod. Unknown values fall back
// to PaymentCash and ok is false so the caller can log the substitution.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(strings.ToUpper(strings.TrimSpace(s))) {
	case PaymentCash:
		return PaymentCash, true
	case PaymentPix:
		return PaymentPix, true
	case PaymentBankTransfer:
		return PaymentBankTransfer, true
	case PaymentDebitCard:
		return PaymentDebitCard, true
	case PaymentCreditCard:
		return PaymentCreditCard, true
	default:
		return PaymentCash, false
	}
}

// IsCard reports whether the method is subject to card processing fees.
func (p PaymentMethod) IsCard() bool {
	return p == PaymentDebitCard || p == PaymentCreditCard
}

// InflowAccountCode is the asset account that receives the sale proceeds.
// Card payments become a receivable; everything else lands in a cash equivalent.
func (p PaymentMethod) InflowAccountCode() string {
	switch p {
	case PaymentDebitCard, PaymentCreditCard:
		return CodeCardReceivables
	case PaymentPix, PaymentBankTransfer:
		return CodeBank
	case PaymentCash:
		return CodeCash
	default:
		return CodeCash
	}
}

// AcquisitionType says whether the shop owned the item or sold it on consignment.
type AcquisitionType string

const (
	AcquisitionOwned     AcquisitionType = "OWNED"
	AcquisitionConsigned AcquisitionType = "CONSIGNED"
)

// ParseAcquisitionType is strict: the type changes totals, so there is no default.
func ParseAcquisitionType(s string) (AcquisitionType, bool) {
	switch AcquisitionType(strings.ToUpper(strings.TrimSpace(s))) {
	case AcquisitionOwned:
		return AcquisitionOwned, true
	case AcquisitionConsigned:
		return AcquisitionConsigned, true
	default:
		return "", false
	}
}

// AcquisitionChannel is where owned stock was bought. It only selects the COGS sub-account.
type AcquisitionChannel string

const (
	ChannelAuction          AcquisitionChannel = "AUCTION"
	ChannelMarketplace      AcquisitionChannel = "MARKETPLACE"
	ChannelIndividualSeller AcquisitionChannel = "INDIVIDUAL_SELLER"
)

// ParseAcquisitionChannel falls back to ChannelAuction for unknown values (ok is false).
func ParseAcquisitionChannel(s string) (AcquisitionChannel, bool) {
	switch AcquisitionChannel(strings.ToUpper(strings.TrimSpace(s))) {
	case ChannelAuction:
		return ChannelAuction, true
	case ChannelMarketplace:
		return ChannelMarketplace, true
	case ChannelIndividualSeller:
		return ChannelIndividualSeller, true
	default:
		return ChannelAuction, false
	}
}

// COGSAccountCode selects the cost-of-goods-sold account for the channel.
func (c AcquisitionChannel) COGSAccountCode() string {
	switch c {
	case ChannelMarketplace:
		return CodeCOGSMarketplace
	case ChannelIndividualSeller:
		return CodeCOGSIndividualSeller
	case ChannelAuction:
		return CodeCOGSAuction
	default:
		return CodeCOGSAuction
	}
}

// SaleSnapshot is the finalized sale handed to the ledger by the sales module.
type SaleSnapshot struct {
	SaleID             string
	SaleDate           time.Time
	Amount             decimal.Decimal
	PaymentMethod      PaymentMethod
	CardFeeRate        decimal.Decimal // percent, e.g. 4 for 4%
	AcquisitionType    AcquisitionType
	SupplierPayout     decimal.Decimal // consigned only
	AcquisitionCost    decimal.Decimal // owned only
	MaintenanceCost    decimal.Decimal // owned only
	AcquisitionChannel AcquisitionChannel
}

// Margin is the part of the sale the shop keeps. For owned stock it is the full amount.
func (s SaleSnapshot) Margin() decimal.Decimal {
	if s.AcquisitionType == AcquisitionConsigned {
		return s.Amount.Sub(s.SupplierPayout)
	}
	return s.Amount
}

// SaleRevenue is the read model the RBT12 window scans.
type SaleRevenue struct {
	SaleID          string
	SoldAt          time.Time
	Amount          decimal.Decimal
	AcquisitionType AcquisitionType
	SupplierPayout  decimal.Decimal
	Canceled        bool
}

// TaxableRevenue is the full amount for owned stock and the margin for consigned stock.
// Canceled sales contribute nothing.
func (s SaleRevenue) TaxableRevenue() decimal.Decimal {
	if s.Canceled {
		return decimal.Zero
	}
	if s.AcquisitionType == AcquisitionConsigned {
		return s.Amount.Sub(s.SupplierPayout)
	}
	return s.Amount
}
