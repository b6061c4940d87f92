package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/resale_ledger/internal/core/ports/services"
	"github.com/SscSPs/resale_ledger/internal/dto"
	"github.com/SscSPs/resale_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler receives the sales lifecycle events that drive automatic posting
// and serves the resulting per-sale history.
type ledgerHandler struct {
	ledger portssvc.LedgerSvcFacade
}

func newLedgerHandler(ledger portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledger: ledger}
}

// registerLedgerRoutes registers the per-sale posting routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledger)

	sales := rg.Group("/sales/:saleID")
	{
		sales.GET("/entries", h.listSaleEntries)
		sales.POST("/entries", h.postSaleEntries)
		sales.POST("/reversal", h.reverseSaleEntries)
	}
}

// postSaleEntries books the entries of a finalized sale.
// Responds 201 with the entry IDs in posting order.
// @Summary Post the entries of a finalized sale
// @Description Writes the revenue, consignment, fee, tax and cost entries of a sale in one transaction
// @Tags ledger
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   saleID path string true "Sale ID"
// @Param   sale body dto.PostSaleEntriesRequest true "Sale snapshot"
// @Success 201 {object} dto.PostSaleEntriesResponse
// @Failure 400 {object} map[string]string "Invalid sale snapshot"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Concurrent update, retry"
// @Failure 500 {object} map[string]string "Chart of accounts not seeded or internal error"
// @Router /sales/{saleID}/entries [post]
func (h *ledgerHandler) postSaleEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("saleID")

	var req dto.PostSaleEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostSaleEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("sale_id", saleID))
	logger.Info("Received request to post sale entries",
		slog.String("amount", req.Amount.String()),
		slog.String("acquisition_type", req.AcquisitionType),
		slog.String("payment_method", req.PaymentMethod))

	sale, err := req.ToSaleSnapshot(saleID)
	if err != nil {
		respondError(c, logger, err, "post sale entries")
		return
	}

	entryIDs, err := h.ledger.PostSaleEntries(c.Request.Context(), sale, actorID)
	if err != nil {
		respondError(c, logger, err, "post sale entries")
		return
	}

	c.JSON(http.StatusCreated, dto.PostSaleEntriesResponse{SaleID: saleID, EntryIDs: entryIDs})
}

// reverseSaleEntries mirrors every still-reversible entry of a sale. Calling it again
// for the same sale is a no-op that reports zero.
// @Summary Reverse the entries of a canceled sale
// @Description Mirrors every still-reversible entry of a sale. Repeating the call reports zero
// @Tags ledger
// @Produce  json
// @Security BearerAuth
// @Param   saleID path string true "Sale ID"
// @Success 200 {object} dto.ReverseSaleEntriesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Concurrent reversal, retry"
// @Failure 500 {object} map[string]string "Failed to reverse sale entries"
// @Router /sales/{saleID}/reversal [post]
func (h *ledgerHandler) reverseSaleEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("saleID")

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("sale_id", saleID))
	logger.Info("Received request to reverse sale entries")

	count, err := h.ledger.ReverseSaleEntries(c.Request.Context(), saleID, actorID)
	if err != nil {
		respondError(c, logger, err, "reverse sale entries")
		return
	}

	c.JSON(http.StatusOK, dto.ReverseSaleEntriesResponse{SaleID: saleID, ReversedCount: count})
}

// @Summary List the entries of a sale
// @Description Returns every entry booked for a sale, reversals included, oldest first
// @Tags ledger
// @Produce  json
// @Security BearerAuth
// @Param   saleID path string true "Sale ID"
// @Success 200 {object} dto.SaleEntriesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list sale entries"
// @Router /sales/{saleID}/entries [get]
func (h *ledgerHandler) listSaleEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("saleID")

	entries, err := h.ledger.ListSaleEntries(c.Request.Context(), saleID)
	if err != nil {
		respondError(c, logger.With(slog.String("sale_id", saleID)), err, "list sale entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleEntriesResponse(saleID, entries))
}
