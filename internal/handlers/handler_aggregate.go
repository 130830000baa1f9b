package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bankman-core/bankman/internal/core/ports/services"
	"github.com/bankman-core/bankman/internal/middleware"
)

// aggregateHandler handles HTTP requests for daily transaction rollups.
type aggregateHandler struct {
	aggregateService portssvc.AggregateSvcFacade
	accountService   portssvc.AccountReaderSvc
}

// newAggregateHandler creates a new aggregateHandler.
func newAggregateHandler(aggregateService portssvc.AggregateSvcFacade, accountService portssvc.AccountReaderSvc) *aggregateHandler {
	return &aggregateHandler{
		aggregateService: aggregateService,
		accountService:   accountService,
	}
}

// getDailyAggregate godoc
// @Summary Get the daily rollup for an account
// @Description Retrieves total, collections and disbursements for an account and date; a day with no activity returns zeros
// @Tags aggregates
// @Produce json
// @Param accountNumber path string true "Account number"
// @Param date query string false "Date in YYYY-MM-DD format, defaults to today"
// @Success 200 {object} dto.DailyAggregateResponse "The daily rollup"
// @Failure 400 {object} map[string]string "Invalid date format"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountNumber}/aggregates/daily [get]
func (h *aggregateHandler) getDailyAggregate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	date := time.Now().UTC()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			logger.Warn("Invalid date for daily aggregate", slog.String("date", dateStr))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	acc, err := h.accountService.GetAccountByNumber(c.Request.Context(), accountNumber)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to retrieve account")
		return
	}

	aggregate, err := h.aggregateService.GetDailyAggregate(c.Request.Context(), acc.AccountID, date)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to retrieve daily aggregate")
		return
	}

	c.JSON(http.StatusOK, aggregate)
}
