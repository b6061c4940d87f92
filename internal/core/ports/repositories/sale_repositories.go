package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/resale_ledger/internal/core/domain"
)

// SaleRevenueReader reads the sales collaborator's data for the RBT12 window.
type SaleRevenueReader interface {
	// ListSalesInWindow returns the sales with from <= sold_at < to, canceled ones included.
	ListSalesInWindow(ctx context.Context, from, to time.Time) ([]domain.SaleRevenue, error)
}
