package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bankman-core/bankman/internal/core/ports/services"
	"github.com/bankman-core/bankman/internal/dto"
	"github.com/bankman-core/bankman/internal/middleware"
)

// journalHandler handles HTTP requests for journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// getEntryForTransaction godoc
// @Summary Get the journal entry for a transaction
// @Description Retrieves the double-entry journal record posted for a transaction, with its debit and credit items
// @Tags journals
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.JournalEntryResponse "The journal entry"
// @Failure 404 {object} map[string]string "No journal entry for this transaction"
// @Router /transactions/{transactionID}/journal-entry [get]
func (h *journalHandler) getEntryForTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	entry, err := h.journalService.GetEntryForTransaction(c.Request.Context(), transactionID)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to retrieve journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// voidEntry godoc
// @Summary Void a posted journal entry
// @Description Marks the entry voided with the given reason and backs its amounts out of the GL running balances
// @Tags journals
// @Accept json
// @Produce json
// @Param entryID path string true "Journal entry ID"
// @Param void body dto.VoidEntryRequest true "Void reason"
// @Success 200 {object} dto.JournalEntryResponse "The voided entry"
// @Failure 400 {object} map[string]string "Missing reason"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not posted"
// @Router /journal-entries/{entryID}/void [post]
func (h *journalHandler) voidEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.VoidEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for void", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.VoidEntry(c.Request.Context(), entryID, req.Reason, actorID)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to void journal entry")
		return
	}

	logger.Info("Journal entry voided", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}
