package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bankman-core/bankman/internal/apperrors"
)

// respondWithServiceError translates service-layer errors into HTTP
// responses. Funds and limit rejections carry their figures in the body so
// callers can explain the rejection without a second lookup.
func respondWithServiceError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	var insufficientFunds *apperrors.InsufficientFundsError
	if errors.As(err, &insufficientFunds) {
		logger.Warn("Insufficient funds", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":            insufficientFunds.Error(),
			"requiredAmount":   insufficientFunds.RequiredAmount,
			"charges":          insufficientFunds.Charges,
			"availableBalance": insufficientFunds.AvailableBalance,
			"overdraftLimit":   insufficientFunds.OverdraftLimit,
		})
		return
	}

	var limitExceeded *apperrors.LimitExceededError
	if errors.As(err, &limitExceeded) {
		logger.Warn("Limit exceeded", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     limitExceeded.Error(),
			"limitKind": limitExceeded.Kind,
			"limit":     limitExceeded.Limit,
			"attempted": limitExceeded.Attempted,
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate request", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrInvalidLienState):
		logger.Warn("Conflicting state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConcurrentModification):
		logger.Warn("Concurrent modification, client should retry", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "retryable": true})
	case errors.Is(err, apperrors.ErrAccountNotActive):
		logger.Warn("Account not active", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}
