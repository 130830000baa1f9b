package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bankman-core/bankman/internal/core/ports/services"
	"github.com/bankman-core/bankman/internal/dto"
	"github.com/bankman-core/bankman/internal/middleware"
)

// lienHandler handles HTTP requests for the lien lifecycle.
type lienHandler struct {
	lienService portssvc.LienSvc
}

// newLienHandler creates a new lienHandler.
func newLienHandler(lienService portssvc.LienSvc) *lienHandler {
	return &lienHandler{
		lienService: lienService,
	}
}

// placeLien godoc
// @Summary Lock funds on an account
// @Description Moves funds from available to locked without changing the ledger balance
// @Tags liens
// @Accept json
// @Produce json
// @Param lien body dto.PlaceLienRequest true "Lien details"
// @Success 201 {object} dto.TransactionResponse "The lien transaction"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Duplicate external reference"
// @Failure 422 {object} map[string]string "Insufficient available funds"
// @Router /liens [post]
func (h *lienHandler) placeLien(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PlaceLienRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for lien", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.lienService.PlaceLien(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to place lien")
		return
	}

	logger.Info("Lien placed", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// releaseLien godoc
// @Summary Release locked funds
// @Description Queues the release of a lien; the funds move back from locked to available in the background and the outcome is delivered to the webhook URL
// @Tags liens
// @Accept json
// @Produce json
// @Param release body dto.ReleaseLienRequest true "Release details"
// @Success 202 {object} dto.JobAcceptedResponse "The queued job"
// @Failure 404 {object} map[string]string "Lien not found"
// @Failure 409 {object} map[string]string "Lien already released or not releasable"
// @Router /liens/release [post]
func (h *lienHandler) releaseLien(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReleaseLienRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for lien release", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ack, err := h.lienService.QueueReleaseLien(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to queue lien release")
		return
	}

	logger.Info("Lien release queued",
		slog.String("lien_transaction_id", req.LienTransactionID),
		slog.String("job_id", ack.JobID))
	c.JSON(http.StatusAccepted, ack)
}

// releaseAndWithdraw godoc
// @Summary Release a lien and withdraw the amount
// @Description Queues the atomic release-and-withdraw as a background job; the outcome is delivered to the webhook URL
// @Tags liens
// @Accept json
// @Produce json
// @Param release body dto.ReleaseAndWithdrawRequest true "Release and withdrawal details"
// @Success 202 {object} dto.JobAcceptedResponse "The queued job"
// @Failure 404 {object} map[string]string "Lien not found"
// @Failure 409 {object} map[string]string "Lien already released or duplicate external reference"
// @Router /liens/release-and-withdraw [post]
func (h *lienHandler) releaseAndWithdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReleaseAndWithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for release and withdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ack, err := h.lienService.QueueReleaseAndWithdraw(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to queue release and withdraw")
		return
	}

	logger.Info("Release and withdraw queued",
		slog.String("lien_transaction_id", req.LienTransactionID),
		slog.String("job_id", ack.JobID))
	c.JSON(http.StatusAccepted, ack)
}
