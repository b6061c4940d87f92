package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/resale_ledger/internal/core/ports/services"
	"github.com/SscSPs/resale_ledger/internal/core/services"
	"github.com/SscSPs/resale_ledger/internal/dto"
	"github.com/SscSPs/resale_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// taxHandler exposes the bracket engine for previews and reconciliation.
type taxHandler struct {
	tax portssvc.TaxSvc
}

func newTaxHandler(tax portssvc.TaxSvc) *taxHandler {
	return &taxHandler{tax: tax}
}

func registerTaxRoutes(rg *gin.RouterGroup, tax portssvc.TaxSvc) {
	h := newTaxHandler(tax)

	taxGroup := rg.Group("/tax")
	{
		taxGroup.GET("/rolling-revenue", h.getRollingRevenue)
		taxGroup.GET("/effective-rate", h.getEffectiveRate)
	}
}

// getRollingRevenue returns the RBT12 for the month of the given date.
// @Summary Compute the trailing twelve-month revenue (RBT12)
// @Description Sums the taxable revenue of the twelve calendar months before the month of date
// @Tags tax
// @Produce  json
// @Security BearerAuth
// @Param   date query string true "Reference date (YYYY-MM-DD)"
// @Success 200 {object} dto.RollingRevenueResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute rolling revenue"
// @Router /tax/rolling-revenue [get]
func (h *taxHandler) getRollingRevenue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.RollingRevenueParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for RollingRevenue", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	// Already checked by the binding tag.
	ref, _ := time.Parse(dto.DateLayout, params.Date)

	rbt12, err := h.tax.GetRollingRevenue(c.Request.Context(), ref)
	if err != nil {
		respondError(c, logger, err, "compute rolling revenue")
		return
	}

	from, to := services.RollingRevenueWindow(ref)
	c.JSON(http.StatusOK, dto.RollingRevenueResponse{
		ReferenceDate: params.Date,
		WindowStart:   from.Format(dto.DateLayout),
		WindowEnd:     to.Format(dto.DateLayout),
		RBT12:         rbt12,
	})
}

// getEffectiveRate previews the bracket outcome for an RBT12 and an optional base.
// @Summary Preview the effective tax rate
// @Description Applies the bracket table to an RBT12 and an optional taxable base
// @Tags tax
// @Produce  json
// @Security BearerAuth
// @Param   rbt12 query string false "Trailing twelve-month revenue"
// @Param   base query string false "Taxable base"
// @Success 200 {object} dto.TaxPreviewResponse
// @Failure 400 {object} map[string]string "Invalid amounts"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /tax/effective-rate [get]
func (h *taxHandler) getEffectiveRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.EffectiveRateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for EffectiveRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	computation := h.tax.Compute(c.Request.Context(), params.Base, params.RBT12)
	c.JSON(http.StatusOK, dto.ToTaxPreviewResponse(computation))
}
