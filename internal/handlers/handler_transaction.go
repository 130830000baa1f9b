package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bankman-core/bankman/internal/core/ports/services"
	"github.com/bankman-core/bankman/internal/dto"
	"github.com/bankman-core/bankman/internal/middleware"
)

// transactionHandler handles HTTP requests for the transaction engine.
type transactionHandler struct {
	txnService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(txnService portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		txnService: txnService,
	}
}

// deposit godoc
// @Summary Credit an account
// @Description Credits the account's ledger and available balances and posts the matching journal entry
// @Tags transactions
// @Accept json
// @Produce json
// @Param deposit body dto.DepositRequest true "Deposit details"
// @Success 201 {object} dto.TransactionResponse "The completed transaction"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Duplicate external reference"
// @Failure 422 {object} map[string]string "Account not active"
// @Router /transactions/deposit [post]
func (h *transactionHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for deposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.txnService.ProcessDeposit(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to process deposit")
		return
	}

	logger.Info("Deposit completed", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// withdraw godoc
// @Summary Debit an account
// @Description Debits the account after funds, limit and product checks
// @Tags transactions
// @Accept json
// @Produce json
// @Param withdrawal body dto.WithdrawalRequest true "Withdrawal details"
// @Success 201 {object} dto.TransactionResponse "The completed transaction"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Duplicate external reference"
// @Failure 422 {object} map[string]string "Insufficient funds or limit exceeded"
// @Router /transactions/withdrawal [post]
func (h *transactionHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for withdrawal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.txnService.ProcessWithdrawal(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to process withdrawal")
		return
	}

	logger.Info("Withdrawal completed", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// transfer godoc
// @Summary Move funds between two accounts
// @Description Debits the source and credits the destination atomically
// @Tags transactions
// @Accept json
// @Produce json
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransactionResponse "The completed transaction"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Duplicate external reference"
// @Failure 422 {object} map[string]string "Insufficient funds or inactive account"
// @Router /transactions/transfer [post]
func (h *transactionHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.txnService.ProcessTransfer(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to process transfer")
		return
	}

	logger.Info("Transfer completed", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// reverse godoc
// @Summary Reverse a completed transaction
// @Description Creates and applies the compensating transaction; each transaction can be reversed at most once
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param reversal body dto.ReversalRequest true "Reversal reason"
// @Success 201 {object} dto.TransactionResponse "The reversal transaction"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Already reversed or not reversible"
// @Failure 422 {object} map[string]string "Insufficient funds to reverse"
// @Router /transactions/{transactionID}/reverse [post]
func (h *transactionHandler) reverse(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	var req dto.ReversalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reversal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.txnService.CreateReversal(c.Request.Context(), transactionID, req, actorID)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to reverse transaction")
		return
	}

	logger.Info("Reversal completed",
		slog.String("original_transaction_id", transactionID),
		slog.String("reversal_transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Retrieves a transaction by its ID, including balance snapshots
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse "The transaction"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	txn, err := h.txnService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listAccountTransactions godoc
// @Summary List transactions for an account
// @Description Retrieves the paginated statement of an account, newest first
// @Tags transactions
// @Produce json
// @Param accountNumber path string true "Account number"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse "A page of transactions"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountNumber}/transactions [get]
func (h *transactionHandler) listAccountTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for transaction list", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}

	page, err := h.txnService.ListTransactionsByAccount(c.Request.Context(), accountNumber, params)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, page)
}
