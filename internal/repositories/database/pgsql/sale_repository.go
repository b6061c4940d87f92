package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/resale_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/resale_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/resale_ledger/internal/models"
	"github.com/SscSPs/resale_ledger/internal/utils/mapping"
)

// PgxSaleRepository reads the sales table owned by the sales module.
type PgxSaleRepository struct {
	BaseRepository
}

func newPgxSaleRepository(pool *pgxpool.Pool) portsrepo.SaleRevenueReader {
	return &PgxSaleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SaleRevenueReader = (*PgxSaleRepository)(nil)

// ListSalesInWindow returns the sales sold in [from, to), canceled ones included.
func (r *PgxSaleRepository) ListSalesInWindow(ctx context.Context, from, to time.Time) ([]domain.SaleRevenue, error) {
	query := `
		SELECT sale_id, sold_at, amount, acquisition_type, supplier_payout, canceled
		FROM sales
		WHERE sold_at >= $1 AND sold_at < $2
		ORDER BY sold_at;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, mapPgError(err, "failed to query sales in window")
	}
	defer rows.Close()

	out := []domain.SaleRevenue{}
	for rows.Next() {
		var m models.Sale
		if err := rows.Scan(&m.SaleID, &m.SoldAt, &m.Amount, &m.AcquisitionType, &m.SupplierPayout, &m.Canceled); err != nil {
			return nil, mapPgError(err, "failed to scan sale row")
		}
		out = append(out, mapping.ToDomainSaleRevenue(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating sale rows")
	}
	return out, nil
}
