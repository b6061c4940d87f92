package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/resale_ledger/internal/apperrors"
	"github.com/SscSPs/resale_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostSaleEntriesRequest is the finalized sale snapshot sent by the sales module.
// The sale ID comes from the path.
type PostSaleEntriesRequest struct {
	SaleDate           string          `json:"saleDate" binding:"required,datetime=2006-01-02"` // YYYY-MM-DD
	Amount             decimal.Decimal `json:"amount" binding:"dgt0"`
	PaymentMethod      string          `json:"paymentMethod" binding:"required"`
	CardFeeRate        decimal.Decimal `json:"cardFeeRate" binding:"dgte0,dlte100"` // percent
	AcquisitionType    string          `json:"acquisitionType" binding:"required,oneof=OWNED CONSIGNED"`
	SupplierPayout     decimal.Decimal `json:"supplierPayout" binding:"dgte0"`
	AcquisitionCost    decimal.Decimal `json:"acquisitionCost" binding:"dgte0"`
	MaintenanceCost    decimal.Decimal `json:"maintenanceCost" binding:"dgte0"`
	AcquisitionChannel string          `json:"acquisitionChannel"` // optional, defaults to AUCTION
}

// ToSaleSnapshot converts the request into the domain snapshot. Enum values are
// passed through untouched; normalisation happens in the ledger service.
func (r PostSaleEntriesRequest) ToSaleSnapshot(saleID string) (domain.SaleSnapshot, error) {
	saleDate, err := time.Parse(DateLayout, r.SaleDate)
	if err != nil {
		return domain.SaleSnapshot{}, fmt.Errorf("%w: saleDate %q must be YYYY-MM-DD", apperrors.ErrValidation, r.SaleDate)
	}
	return domain.SaleSnapshot{
		SaleID:             saleID,
		SaleDate:           saleDate,
		Amount:             r.Amount,
		PaymentMethod:      domain.PaymentMethod(r.PaymentMethod),
		CardFeeRate:        r.CardFeeRate,
		AcquisitionType:    domain.AcquisitionType(r.AcquisitionType),
		SupplierPayout:     r.SupplierPayout,
		AcquisitionCost:    r.AcquisitionCost,
		MaintenanceCost:    r.MaintenanceCost,
		AcquisitionChannel: domain.AcquisitionChannel(r.AcquisitionChannel),
	}, nil
}

// PostSaleEntriesResponse lists the IDs of the entries written, in posting order.
type PostSaleEntriesResponse struct {
	SaleID   string   `json:"saleID"`
	EntryIDs []string `json:"entryIDs"`
}

// ReverseSaleEntriesResponse reports how many entries were reversed.
type ReverseSaleEntriesResponse struct {
	SaleID        string `json:"saleID"`
	ReversedCount int    `json:"reversedCount"`
}

// EntryLineResponse defines the data returned for an entry line.
type EntryLineResponse struct {
	LineID          string          `json:"lineID"`
	DebitAccountID  string          `json:"debitAccountID"`
	CreditAccountID string          `json:"creditAccountID"`
	Amount          decimal.Decimal `json:"amount"`
	Memo            string          `json:"memo,omitempty"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID      string              `json:"entryID"`
	EntryDate    string              `json:"entryDate"`
	Description  string              `json:"description"`
	Kind         domain.EntryKind    `json:"kind"`
	SaleID       *string             `json:"saleID,omitempty"`
	ReversalOfID *string             `json:"reversalOfID,omitempty"`
	Reversed     bool                `json:"reversed"`
	ReversedAt   *time.Time          `json:"reversedAt,omitempty"`
	ReversedBy   *string             `json:"reversedBy,omitempty"`
	Total        decimal.Decimal     `json:"total"`
	Lines        []EntryLineResponse `json:"lines"`
	CreatedAt    time.Time           `json:"createdAt"`
	CreatedBy    string              `json:"createdBy"`
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	lines := make([]EntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = EntryLineResponse{
			LineID:          l.LineID,
			DebitAccountID:  l.DebitAccountID,
			CreditAccountID: l.CreditAccountID,
			Amount:          l.Amount,
			Memo:            l.Memo,
		}
	}
	return EntryResponse{
		EntryID:      e.EntryID,
		EntryDate:    e.EntryDate.Format(DateLayout),
		Description:  e.Description,
		Kind:         e.Kind,
		SaleID:       e.SaleID,
		ReversalOfID: e.ReversalOfID,
		Reversed:     e.Reversed,
		ReversedAt:   e.ReversedAt,
		ReversedBy:   e.ReversedBy,
		Total:        e.Total(),
		Lines:        lines,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
}

// ToEntryResponses converts a slice of domain.JournalEntry to []EntryResponse.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}

// ListEntriesParams defines query parameters for listing entries.
type ListEntriesParams struct {
	SaleID    string `form:"saleID"`
	Kind      string `form:"kind" binding:"omitempty,oneof=MANUAL SALE RECURRING_EXPENSE"`
	FromDate  string `form:"fromDate" binding:"omitempty,datetime=2006-01-02"`
	ToDate    string `form:"toDate" binding:"omitempty,datetime=2006-01-02"`
	Limit     int    `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// SaleEntriesResponse is the posting history of one sale.
type SaleEntriesResponse struct {
	SaleID  string          `json:"saleID"`
	Entries []EntryResponse `json:"entries"`
}

// ToSaleEntriesResponse converts a sale's entries, keeping their order.
func ToSaleEntriesResponse(saleID string, entries []domain.JournalEntry) SaleEntriesResponse {
	return SaleEntriesResponse{SaleID: saleID, Entries: ToEntryResponses(entries)}
}

// ListEntriesResponse is one page of entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
