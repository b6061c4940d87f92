package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/resale_ledger/internal/core/ports/services"
	"github.com/SscSPs/resale_ledger/internal/dto"
	"github.com/SscSPs/resale_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler serves read access to journal entries.
type journalHandler struct {
	ledger portssvc.LedgerReaderSvc
}

func newJournalHandler(ledger portssvc.LedgerReaderSvc) *journalHandler {
	return &journalHandler{ledger: ledger}
}

func registerJournalRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerReaderSvc) {
	h := newJournalHandler(ledger)

	entries := rg.Group("/entries")
	{
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
	}
}

// @Summary Get a journal entry
// @Description Retrieves an entry and its lines by entry ID
// @Tags entries
// @Produce  json
// @Security BearerAuth
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to get entry"
// @Router /entries/{entryID} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.ledger.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		respondError(c, logger.With(slog.String("entry_id", entryID)), err, "get entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// listEntries returns one page of entries, newest first. Pass the returned nextToken
// back to fetch the following page.
// @Summary List journal entries
// @Description Returns one page of entries, newest first
// @Tags entries
// @Produce  json
// @Security BearerAuth
// @Param   saleID query string false "Filter by sale"
// @Param   kind query string false "Filter by kind" Enums(MANUAL, SALE, RECURRING_EXPENSE)
// @Param   fromDate query string false "Start date (YYYY-MM-DD)"
// @Param   toDate query string false "End date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" minimum(1) maximum(100) default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ledger.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "list entries")
		return
	}

	logger.Debug("Listed entries", slog.Int("count", len(resp.Entries)), slog.Bool("has_more", resp.NextToken != nil))
	c.JSON(http.StatusOK, resp)
}
