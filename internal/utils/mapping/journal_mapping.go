package mapping

import (
	"github.com/SscSPs/resale_ledger/internal/core/domain"
	"github.com/SscSPs/resale_ledger/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry.
// Lines are mapped separately with ToModelEntryLines.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:      d.EntryID,
		EntryDate:    d.EntryDate,
		Description:  d.Description,
		Kind:         string(d.Kind),
		SaleID:       d.SaleID,
		ReversalOfID: d.ReversalOfID,
		Reversed:     d.Reversed,
		ReversedAt:   d.ReversedAt,
		ReversedBy:   d.ReversedBy,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry and its lines to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry, lines []models.EntryLine) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:      m.EntryID,
		EntryDate:    m.EntryDate,
		Description:  m.Description,
		Kind:         domain.EntryKind(m.Kind),
		SaleID:       m.SaleID,
		ReversalOfID: m.ReversalOfID,
		Reversed:     m.Reversed,
		ReversedAt:   m.ReversedAt,
		ReversedBy:   m.ReversedBy,
		Lines:        ToDomainEntryLines(lines),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEntryLines numbers the lines in order so they read back the same way.
func ToModelEntryLines(entryID string, ds []domain.EntryLine) []models.EntryLine {
	ms := make([]models.EntryLine, len(ds))
	for i, d := range ds {
		var memo *string
		if d.Memo != "" {
			m := d.Memo
			memo = &m
		}
		ms[i] = models.EntryLine{
			LineID:          d.LineID,
			EntryID:         entryID,
			LineNo:          i + 1,
			DebitAccountID:  d.DebitAccountID,
			CreditAccountID: d.CreditAccountID,
			Amount:          d.Amount,
			Memo:            memo,
		}
	}
	return ms
}

// ToDomainEntryLines converts a slice of model EntryLines to a slice of domain EntryLines
func ToDomainEntryLines(ms []models.EntryLine) []domain.EntryLine {
	ds := make([]domain.EntryLine, len(ms))
	for i, m := range ms {
		ds[i] = domain.EntryLine{
			LineID:          m.LineID,
			EntryID:         m.EntryID,
			DebitAccountID:  m.DebitAccountID,
			CreditAccountID: m.CreditAccountID,
			Amount:          m.Amount,
		}
		if m.Memo != nil {
			ds[i].Memo = *m.Memo
		}
	}
	return ds
}
