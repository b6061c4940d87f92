package services

import (
	"fmt"
	"time"

	"github.com/SscSPs/resale_ledger/internal/core/domain"
	"github.com/SscSPs/resale_ledger/internal/utils"
	"github.com/shopspring/decimal"
)

const reversalMemoPrefix = "Reversal: "

// requiredSaleCodes lists every account code a sale of this shape may post to.
// All of them are resolved before anything is built.
func requiredSaleCodes(sale domain.SaleSnapshot) []string {
	codes := []string{
		sale.PaymentMethod.InflowAccountCode(),
		domain.CodeRevenueTaxExpense,
		domain.CodeRevenueTaxPayable,
	}
	switch sale.AcquisitionType {
	case domain.AcquisitionConsigned:
		codes = append(codes, domain.CodeRevenueConsignment, domain.CodeConsignmentPayable)
	case domain.AcquisitionOwned:
		codes = append(codes, domain.CodeRevenueOwnedStock, domain.CodeInventory)
		if sale.AcquisitionCost.IsPositive() {
			codes = append(codes, sale.AcquisitionChannel.COGSAccountCode())
		}
		if sale.MaintenanceCost.IsPositive() {
			codes = append(codes, domain.CodeCOGSMaintenance)
		}
	}
	if sale.PaymentMethod.IsCard() && sale.CardFeeRate.IsPositive() {
		codes = append(codes, domain.CodeCardFeeExpense)
	}
	return codes
}

// saleEntryBuilder accumulates the single-line entries of one sale.
type saleEntryBuilder struct {
	sale     domain.SaleSnapshot
	accounts map[string]domain.Account
	actorID  string
	now      time.Time
	newID    func() string
	entries  []domain.JournalEntry
}

// add appends a one-line entry. Non-positive amounts produce no entry.
func (b *saleEntryBuilder) add(description, debitCode, creditCode string, amount decimal.Decimal, memo string) {
	if !amount.IsPositive() {
		return
	}
	entryID := b.newID()
	saleID := b.sale.SaleID
	b.entries = append(b.entries, domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   dateOnly(b.sale.SaleDate),
		Description: fmt.Sprintf("Sale %s: %s", b.sale.SaleID, description),
		Kind:        domain.KindSale,
		SaleID:      &saleID,
		Lines: []domain.EntryLine{{
			LineID:          b.newID(),
			EntryID:         entryID,
			DebitAccountID:  b.accounts[debitCode].AccountID,
			CreditAccountID: b.accounts[creditCode].AccountID,
			Amount:          amount,
			Memo:            memo,
		}},
		AuditFields: domain.AuditFields{
			CreatedAt:     b.now,
			CreatedBy:     b.actorID,
			LastUpdatedAt: b.now,
			LastUpdatedBy: b.actorID,
		},
	})
}

// buildSaleEntries produces the entries of a normalized sale in posting order:
// revenue recognition, card fee, tax accrual, cost of goods sold.
func buildSaleEntries(b *saleEntryBuilder, tax domain.TaxComputation) []domain.JournalEntry {
	sale := b.sale
	inflow := sale.PaymentMethod.InflowAccountCode()

	switch sale.AcquisitionType {
	case domain.AcquisitionOwned:
		b.add("revenue recognition (owned stock)", inflow, domain.CodeRevenueOwnedStock, sale.Amount, "")
	case domain.AcquisitionConsigned:
		b.add("revenue recognition (consignment margin)", inflow, domain.CodeRevenueConsignment, sale.Margin(), "")
		b.add("consignment payout owed", inflow, domain.CodeConsignmentPayable, sale.SupplierPayout, "")
	}

	if sale.PaymentMethod.IsCard() && sale.CardFeeRate.IsPositive() {
		fee := sale.Amount.Mul(sale.CardFeeRate).Div(decimal.NewFromInt(100)).Round(2)
		b.add("card processing fee", domain.CodeCardFeeExpense, inflow, fee,
			fmt.Sprintf("fee rate %s%%", sale.CardFeeRate.String()))
	}

	b.add("revenue tax accrual", domain.CodeRevenueTaxExpense, domain.CodeRevenueTaxPayable, tax.Amount,
		fmt.Sprintf("rate %s on base %s, RBT12 %s", utils.FormatRate(tax.EffectiveRate), utils.FormatAmount(tax.Base), utils.FormatAmount(tax.RBT12)))

	if sale.AcquisitionType == domain.AcquisitionOwned {
		b.add("cost of goods sold", sale.AcquisitionChannel.COGSAccountCode(), domain.CodeInventory, sale.AcquisitionCost,
			fmt.Sprintf("channel %s", sale.AcquisitionChannel))
		b.add("maintenance cost of goods sold", domain.CodeCOGSMaintenance, domain.CodeInventory, sale.MaintenanceCost, "")
	}

	return b.entries
}

// buildReversal mirrors an entry: same amounts, debit and credit swapped.
func buildReversal(orig domain.JournalEntry, actorID string, now time.Time, newID func() string) domain.JournalEntry {
	entryID := newID()
	origID := orig.EntryID
	lines := make([]domain.EntryLine, len(orig.Lines))
	for i, l := range orig.Lines {
		lines[i] = domain.EntryLine{
			LineID:          newID(),
			EntryID:         entryID,
			DebitAccountID:  l.CreditAccountID,
			CreditAccountID: l.DebitAccountID,
			Amount:          l.Amount,
			Memo:            reversalMemoPrefix + l.Memo,
		}
	}
	return domain.JournalEntry{
		EntryID:      entryID,
		EntryDate:    dateOnly(now),
		Description:  "Reversal of: " + orig.Description,
		Kind:         orig.Kind,
		SaleID:       orig.SaleID,
		ReversalOfID: &origID,
		Lines:        lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
}

// dateOnly truncates t to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
