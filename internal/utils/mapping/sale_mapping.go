package mapping

import (
	"github.com/SscSPs/resale_ledger/internal/core/domain"
	"github.com/SscSPs/resale_ledger/internal/models"
)

// ToDomainSaleRevenue converts a model Sale to the revenue read model
func ToDomainSaleRevenue(m models.Sale) domain.SaleRevenue {
	return domain.SaleRevenue{
		SaleID:          m.SaleID,
		SoldAt:          m.SoldAt,
		Amount:          m.Amount,
		AcquisitionType: domain.AcquisitionType(m.AcquisitionType),
		SupplierPayout:  m.SupplierPayout,
		Canceled:        m.Canceled,
	}
}
