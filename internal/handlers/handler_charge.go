package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bankman-core/bankman/internal/core/ports/services"
	"github.com/bankman-core/bankman/internal/dto"
	"github.com/bankman-core/bankman/internal/middleware"
)

// chargeHandler handles HTTP requests for fee quotes.
type chargeHandler struct {
	chargeService portssvc.ChargeSvcFacade
}

// newChargeHandler creates a new chargeHandler.
func newChargeHandler(chargeService portssvc.ChargeSvcFacade) *chargeHandler {
	return &chargeHandler{
		chargeService: chargeService,
	}
}

// previewCharges godoc
// @Summary Preview the fees a transaction would incur
// @Description Computes the fee breakdown for a prospective transaction without applying anything
// @Tags charges
// @Accept json
// @Produce json
// @Param preview body dto.ChargePreviewRequest true "Prospective transaction"
// @Success 200 {object} dto.ChargePreviewResponse "The fee breakdown"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /charges/preview [post]
func (h *chargeHandler) previewCharges(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ChargePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for charge preview", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	preview, err := h.chargeService.PreviewCharges(c.Request.Context(), req)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to preview charges")
		return
	}

	c.JSON(http.StatusOK, preview)
}
