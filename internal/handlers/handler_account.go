package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bankman-core/bankman/internal/core/ports/services"
	"github.com/bankman-core/bankman/internal/dto"
	"github.com/bankman-core/bankman/internal/middleware"
)

// accountHandler handles HTTP requests for account views.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(accountService portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: accountService,
	}
}

// getAccount godoc
// @Summary Get an account
// @Description Retrieves an account by its account number
// @Tags accounts
// @Produce json
// @Param accountNumber path string true "Account number"
// @Success 200 {object} dto.AccountResponse "The account"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountNumber} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	acc, err := h.accountService.GetAccountByNumber(c.Request.Context(), accountNumber)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(acc))
}

// getBalances godoc
// @Summary Get account balances
// @Description Retrieves the ledger, available and locked balances of an account
// @Tags accounts
// @Produce json
// @Param accountNumber path string true "Account number"
// @Success 200 {object} dto.BalanceResponse "The balance triplet"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountNumber}/balances [get]
func (h *accountHandler) getBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	balances, err := h.accountService.GetBalances(c.Request.Context(), accountNumber)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to retrieve balances")
		return
	}

	c.JSON(http.StatusOK, balances)
}

// listBalanceHistory godoc
// @Summary List the balance history of an account
// @Description Retrieves the paginated balance audit trail, newest first
// @Tags accounts
// @Produce json
// @Param accountNumber path string true "Account number"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListBalanceHistoryResponse "A page of balance history rows"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountNumber}/balance-history [get]
func (h *accountHandler) listBalanceHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	var params dto.ListBalanceHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for balance history", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}

	page, err := h.accountService.ListBalanceHistory(c.Request.Context(), accountNumber, params)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to list balance history")
		return
	}

	c.JSON(http.StatusOK, page)
}
