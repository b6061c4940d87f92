package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/resale_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/resale_ledger/internal/core/ports/services"
	"github.com/SscSPs/resale_ledger/internal/dto"
	"github.com/SscSPs/resale_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/dre", h.getIncomeStatement)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/cash-flow", h.getCashFlow)
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/statement", h.getStatement)
	}
}

// bindPeriod reads fromDate/toDate. It writes a 400 and returns false on bad input.
func bindPeriod(c *gin.Context, logger *slog.Logger) (domain.Period, bool) {
	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid period parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return domain.Period{}, false
	}
	period, err := dto.ParsePeriod(params.FromDate, params.ToDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return domain.Period{}, false
	}
	return period, true
}

func bindAsOf(c *gin.Context, logger *slog.Logger) (time.Time, bool) {
	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid asOf parameter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return time.Time{}, false
	}
	asOf, _ := time.Parse(dto.DateLayout, params.AsOf)
	return asOf, true
}

// getIncomeStatement generates the DRE for a period.
// @Summary Generate the income statement
// @Description Generates the DRE for a period
// @Tags reports
// @Produce  json
// @Security BearerAuth
// @Param   fromDate query string false "Start date (YYYY-MM-DD), open when omitted"
// @Param   toDate query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.IncomeStatementResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate income statement"
// @Router /reports/dre [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period, ok := bindPeriod(c, logger)
	if !ok {
		return
	}

	report, err := h.reportingService.IncomeStatement(c.Request.Context(), period)
	if err != nil {
		respondError(c, logger, err, "generate income statement")
		return
	}

	logger.Info("Income statement generated successfully", slog.Int("row_count", len(report.Rows)))
	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(report))
}

// getBalanceSheet generates a balance sheet as of a date.
// @Summary Generate the balance sheet
// @Description Generates a balance sheet as of a specific date
// @Tags reports
// @Produce  json
// @Security BearerAuth
// @Param   asOf query string true "Report date (YYYY-MM-DD)"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate balance sheet"
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	asOf, ok := bindAsOf(c, logger)
	if !ok {
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, logger, err, "generate balance sheet")
		return
	}

	if !report.Balanced {
		logger.Warn("Balance sheet is not balanced",
			slog.String("total_assets", report.TotalAssets.String()),
			slog.String("total_liabilities_and_equity", report.TotalLiabilities.Add(report.TotalEquity).String()))
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

// @Summary Generate the cash-flow statement
// @Description Generates the cash-flow statement of the cash-equivalent accounts for a period
// @Tags reports
// @Produce  json
// @Security BearerAuth
// @Param   fromDate query string false "Start date (YYYY-MM-DD), open when omitted"
// @Param   toDate query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.CashFlowResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate cash flow"
// @Router /reports/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period, ok := bindPeriod(c, logger)
	if !ok {
		return
	}

	report, err := h.reportingService.CashFlow(c.Request.Context(), period)
	if err != nil {
		respondError(c, logger, err, "generate cash flow")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashFlowResponse(report))
}

// getTrialBalance generates a trial balance as of a date.
// @Summary Generate trial balance report
// @Description Generates a trial balance report as of a specific date
// @Tags reports
// @Produce  json
// @Security BearerAuth
// @Param   asOf query string true "Report date (YYYY-MM-DD)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate trial balance report"
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	asOf, ok := bindAsOf(c, logger)
	if !ok {
		return
	}

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, logger, err, "generate trial balance report")
		return
	}

	logger.Info("Trial balance report generated successfully", slog.Int("row_count", len(rows)))
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(rows, asOf))
}

// getStatement builds the statement named by the kind parameter.
// @Summary Generate a statement by kind
// @Description Builds the statement named by kind. Point-in-time statements use toDate
// @Tags reports
// @Produce  json
// @Security BearerAuth
// @Param   kind query string true "Statement kind" Enums(DRE, BALANCE_SHEET, CASH_FLOW)
// @Param   fromDate query string false "Start date (YYYY-MM-DD), open when omitted"
// @Param   toDate query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate statement"
// @Router /reports/statement [get]
func (h *reportingHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.StatementParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid statement parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	period, err := dto.ParsePeriod(params.FromDate, params.ToDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	statement, err := h.reportingService.GetStatement(c.Request.Context(), domain.StatementKind(params.Kind), period)
	if err != nil {
		respondError(c, logger.With(slog.String("kind", params.Kind)), err, "generate statement")
		return
	}
	c.JSON(http.StatusOK, dto.ToStatementResponse(statement))
}
