package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/resale_ledger/internal/apperrors"
	"github.com/SscSPs/resale_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/resale_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/resale_ledger/internal/models"
	"github.com/SscSPs/resale_ledger/internal/utils/mapping"
	"github.com/SscSPs/resale_ledger/internal/utils/pagination"
)

const entryColumns = `entry_id, entry_date, description, kind, sale_id, reversal_of_id, reversed, reversed_at, reversed_by,
		created_at, created_by, last_updated_at, last_updated_by`

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their lines.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

func scanEntryHeader(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryDate,
		&m.Description,
		&m.Kind,
		&m.SaleID,
		&m.ReversalOfID,
		&m.Reversed,
		&m.ReversedAt,
		&m.ReversedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// queryEntries runs a header query and attaches the lines of every returned entry.
func queryEntries(ctx context.Context, q querier, query string, args ...any) ([]domain.JournalEntry, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to query journal entries")
	}
	headers := []models.JournalEntry{}
	for rows.Next() {
		m, err := scanEntryHeader(rows)
		if err != nil {
			rows.Close()
			return nil, mapPgError(err, "failed to scan journal entry row")
		}
		headers = append(headers, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating journal entry rows")
	}
	if len(headers) == 0 {
		return []domain.JournalEntry{}, nil
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.EntryID
	}
	lines, err := loadLines(ctx, q, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.JournalEntry, len(headers))
	for i, h := range headers {
		entries[i] = mapping.ToDomainJournalEntry(h, lines[h.EntryID])
	}
	return entries, nil
}

func loadLines(ctx context.Context, q querier, entryIDs []string) (map[string][]models.EntryLine, error) {
	query := `
		SELECT line_id, entry_id, line_no, debit_account_id, credit_account_id, amount, memo
		FROM entry_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_no;
	`
	rows, err := q.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, mapPgError(err, "failed to query entry lines")
	}
	defer rows.Close()

	out := make(map[string][]models.EntryLine, len(entryIDs))
	for rows.Next() {
		var l models.EntryLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.LineNo, &l.DebitAccountID, &l.CreditAccountID, &l.Amount, &l.Memo); err != nil {
			return nil, mapPgError(err, "failed to scan entry line row")
		}
		out[l.EntryID] = append(out[l.EntryID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating entry line rows")
	}
	return out, nil
}

// FindEntryByID retrieves an entry and its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entries, err := queryEntries(ctx, r.Pool, `SELECT `+entryColumns+` FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &entries[0], nil
}

// FindEntriesBySaleID retrieves every entry of a sale, reversals included.
func (r *PgxJournalRepository) FindEntriesBySaleID(ctx context.Context, saleID string) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE sale_id = $1 ORDER BY created_at, entry_id;`
	return queryEntries(ctx, r.Pool, query, saleID)
}

// ListEntries retrieves a page of entries, newest first, using token-based pagination.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells us whether there is a next page.
	fetchLimit := limit + 1

	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.SaleID != nil {
		conds = append(conds, "sale_id = "+arg(*filter.SaleID))
	}
	if filter.Kind != nil {
		conds = append(conds, "kind = "+arg(string(*filter.Kind)))
	}
	if filter.From != nil {
		conds = append(conds, "entry_date >= "+arg(*filter.From))
	}
	if filter.To != nil {
		conds = append(conds, "entry_date <= "+arg(*filter.To))
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %w", apperrors.ErrValidation, err)
		}
		// Tuple comparison is concise and efficient in Postgres
		conds = append(conds, fmt.Sprintf("(entry_date, created_at, entry_id) < (%s, %s, %s)",
			arg(cursor.EntryDate), arg(cursor.CreatedAt), arg(cursor.EntryID)))
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY entry_date DESC, created_at DESC, entry_id DESC LIMIT " + arg(fetchLimit) + ";"

	entries, err := queryEntries(ctx, r.Pool, query, args...)
	if err != nil {
		return nil, nil, err
	}
	if len(entries) <= limit {
		return entries, nil, nil
	}

	// The token points to the last item included in this page.
	last := entries[limit-1]
	token := pagination.EncodeToken(pagination.EntryCursor{EntryDate: last.EntryDate, CreatedAt: last.CreatedAt, EntryID: last.EntryID})
	return entries[:limit], &token, nil
}

// WithinTx runs fn inside one transaction, committing only if fn succeeds.
func (r *PgxJournalRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored once the transaction is committed
	defer r.Rollback(ctx, tx)

	if err := fn(ctx, &pgxLedgerTx{tx: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// pgxLedgerTx is the write side of the journal bound to one pgx.Tx.
type pgxLedgerTx struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

// InsertEntries writes the headers and lines of every entry in one batch.
func (t *pgxLedgerTx) InsertEntries(ctx context.Context, entries []domain.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	lineQuery := `
		INSERT INTO entry_lines (line_id, entry_id, line_no, debit_account_id, credit_account_id, amount, memo)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	batch := &pgx.Batch{}
	for _, e := range entries {
		m := mapping.ToModelJournalEntry(e)
		batch.Queue(entryQuery,
			m.EntryID,
			m.EntryDate,
			m.Description,
			m.Kind,
			m.SaleID,
			m.ReversalOfID,
			m.Reversed,
			m.ReversedAt,
			m.ReversedBy,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		for _, l := range mapping.ToModelEntryLines(e.EntryID, e.Lines) {
			batch.Queue(lineQuery, l.LineID, l.EntryID, l.LineNo, l.DebitAccountID, l.CreditAccountID, l.Amount, l.Memo)
		}
	}

	// Closing the batch surfaces the first failed statement
	if err := t.tx.SendBatch(ctx, batch).Close(); err != nil {
		return mapPgError(err, "failed to insert journal entries")
	}
	return nil
}

// FindReversibleSaleEntries locks and returns the live, non-reversal sale entries of a sale.
func (t *pgxLedgerTx) FindReversibleSaleEntries(ctx context.Context, saleID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE sale_id = $1 AND kind = $2 AND reversed = FALSE AND reversal_of_id IS NULL
		ORDER BY created_at, entry_id
		FOR UPDATE;
	`
	return queryEntries(ctx, t.tx, query, saleID, string(domain.KindSale))
}

// MarkEntryReversed flips the reversed flag. It fails with ErrConflict if another
// transaction already flipped it.
func (t *pgxLedgerTx) MarkEntryReversed(ctx context.Context, entryID string, actorID string, at time.Time) error {
	query := `
		UPDATE journal_entries
		SET reversed = TRUE, reversed_at = $2, reversed_by = $3, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $1 AND reversed = FALSE;
	`
	tag, err := t.tx.Exec(ctx, query, entryID, at, actorID)
	if err != nil {
		return mapPgError(err, "failed to mark entry "+entryID+" reversed")
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := t.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE entry_id = $1);`, entryID).Scan(&exists); err != nil {
		return mapPgError(err, "failed to check entry "+entryID)
	}
	if !exists {
		return fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entryID)
	}
	return fmt.Errorf("%w: entry %s is already reversed", apperrors.ErrConflict, entryID)
}
