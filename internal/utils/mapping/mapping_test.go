package mapping_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/resale_ledger/internal/core/domain"
	"github.com/SscSPs/resale_ledger/internal/utils/mapping"
)

func TestJournalEntryMappingKeepsLineOrderAndOptionalMemo(t *testing.T) {
	saleID := "sale-1"
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	entry := domain.JournalEntry{
		EntryID:   "e1",
		EntryDate: now,
		Kind:      domain.KindSale,
		SaleID:    &saleID,
		Lines: []domain.EntryLine{
			{LineID: "l1", DebitAccountID: "a", CreditAccountID: "b", Amount: decimal.NewFromInt(10)},
			{LineID: "l2", DebitAccountID: "b", CreditAccountID: "c", Amount: decimal.NewFromInt(5), Memo: "fee"},
		},
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: "u"},
	}

	header := mapping.ToModelJournalEntry(entry)
	lines := mapping.ToModelEntryLines(entry.EntryID, entry.Lines)
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].LineNo)
	assert.Equal(t, 2, lines[1].LineNo)
	assert.Nil(t, lines[0].Memo)
	require.NotNil(t, lines[1].Memo)
	assert.Equal(t, "e1", lines[1].EntryID)

	back := mapping.ToDomainJournalEntry(header, lines)
	assert.Equal(t, domain.KindSale, back.Kind)
	assert.Equal(t, "u", back.CreatedBy)
	require.NotNil(t, back.SaleID)
	assert.Equal(t, saleID, *back.SaleID)
	assert.Equal(t, "", back.Lines[0].Memo)
	assert.Equal(t, "fee", back.Lines[1].Memo)
	assert.Equal(t, "e1", back.Lines[0].EntryID)
}

func TestAccountMapping(t *testing.T) {
	acc := domain.Account{AccountID: "id", Code: "1.1.1", Name: "Cash", Nature: domain.DebitNature, Category: domain.Asset, IsActive: true}
	m := mapping.ToModelAccount(acc)
	assert.Equal(t, "DEBIT", m.Nature)
	assert.Equal(t, "ASSET", m.Category)
	assert.Equal(t, acc, mapping.ToDomainAccount(m))
}
