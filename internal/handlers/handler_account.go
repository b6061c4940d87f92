package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/resale_ledger/internal/core/ports/services"
	"github.com/SscSPs/resale_ledger/internal/dto"
	"github.com/SscSPs/resale_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler exposes the chart of accounts.
type accountHandler struct {
	chart portssvc.ChartOfAccountsSvc
}

func newAccountHandler(chart portssvc.ChartOfAccountsSvc) *accountHandler {
	return &accountHandler{chart: chart}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, chart portssvc.ChartOfAccountsSvc) {
	h := newAccountHandler(chart)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.GET("/:code", h.getAccountByCode)
	}
}

// listAccounts returns the whole chart ordered by code.
// @Summary List the chart of accounts
// @Description Returns every account ordered by code
// @Tags accounts
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accounts, err := h.chart.ListAccounts(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "list accounts")
		return
	}

	logger.Debug("Listed chart of accounts", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// @Summary Get an account by code
// @Description Resolves a single hierarchical account code
// @Tags accounts
// @Produce  json
// @Security BearerAuth
// @Param   code path string true "Account code, e.g. 4.1.1"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{code} [get]
func (h *accountHandler) getAccountByCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	account, err := h.chart.GetAccountByCode(c.Request.Context(), code)
	if err != nil {
		respondError(c, logger.With(slog.String("code", code)), err, "get account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
