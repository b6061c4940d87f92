package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/resale_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/resale_ledger/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// periodBounds turns a zero From into an open lower bound.
func periodBounds(p domain.Period) (*time.Time, time.Time) {
	if p.From.IsZero() {
		return nil, p.To
	}
	from := p.From
	return &from, p.To
}

// SumMovementsByAccount aggregates debit and credit totals per account over the period.
func (r *reportingRepository) SumMovementsByAccount(ctx context.Context, period domain.Period) ([]domain.AccountMovement, error) {
	query := `
		SELECT
			m.account_id,
			SUM(m.debit) AS total_debit,
			SUM(m.credit) AS total_credit
		FROM (
			SELECT l.debit_account_id AS account_id, l.amount AS debit, 0 AS credit
			FROM entry_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
			WHERE ($1::date IS NULL OR e.entry_date >= $1) AND e.entry_date <= $2
			UNION ALL
			SELECT l.credit_account_id, 0, l.amount
			FROM entry_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
			WHERE ($1::date IS NULL OR e.entry_date >= $1) AND e.entry_date <= $2
		) m
		GROUP BY m.account_id
		ORDER BY m.account_id;
	`
	from, to := periodBounds(period)
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, mapPgError(err, "error querying account movements")
	}
	defer rows.Close()

	result := []domain.AccountMovement{}
	for rows.Next() {
		var m domain.AccountMovement
		if err := rows.Scan(&m.AccountID, &m.DebitTotal, &m.CreditTotal); err != nil {
			return nil, mapPgError(err, "error scanning account movement row")
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating account movement rows")
	}
	return result, nil
}

// SumCounterpartMovements aggregates the lines touching the tracked accounts by the
// account on the other side. Lines between two tracked accounts are transfers and excluded.
func (r *reportingRepository) SumCounterpartMovements(ctx context.Context, trackedAccountIDs []string, period domain.Period) ([]domain.CounterpartMovement, error) {
	if len(trackedAccountIDs) == 0 {
		return []domain.CounterpartMovement{}, nil
	}
	query := `
		SELECT
			CASE WHEN l.debit_account_id = ANY($1) THEN l.credit_account_id ELSE l.debit_account_id END AS counterpart_id,
			SUM(CASE WHEN l.debit_account_id = ANY($1) THEN l.amount ELSE 0 END) AS inflow,
			SUM(CASE WHEN l.credit_account_id = ANY($1) THEN l.amount ELSE 0 END) AS outflow
		FROM entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE ($2::date IS NULL OR e.entry_date >= $2) AND e.entry_date <= $3
			AND (l.debit_account_id = ANY($1)) <> (l.credit_account_id = ANY($1))
		GROUP BY counterpart_id
		ORDER BY counterpart_id;
	`
	from, to := periodBounds(period)
	rows, err := r.Pool.Query(ctx, query, trackedAccountIDs, from, to)
	if err != nil {
		return nil, mapPgError(err, "error querying counterpart movements")
	}
	defer rows.Close()

	result := []domain.CounterpartMovement{}
	for rows.Next() {
		var m domain.CounterpartMovement
		if err := rows.Scan(&m.CounterpartAccountID, &m.Inflow, &m.Outflow); err != nil {
			return nil, mapPgError(err, "error scanning counterpart movement row")
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating counterpart movement rows")
	}
	return result, nil
}
