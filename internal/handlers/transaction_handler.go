package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "piggybank/internal/errors"
	"piggybank/internal/models"
	"piggybank/internal/patch"
	"piggybank/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
// The type is validated by the service so that a missing goal is reported first.
type CreateTransactionRequest struct {
	GoalID          uint     `json:"goal_id" binding:"required"`
	Amount          *float64 `json:"amount" binding:"required"`
	TransactionType string   `json:"transaction_type" binding:"required"`
	Description     *string  `json:"description"`
}

// UpdateTransactionRequest represents a partial transaction update.
type UpdateTransactionRequest struct {
	GoalID          patch.Field[uint]                   `json:"goal_id" swaggertype:"integer"`
	Amount          patch.Field[float64]                `json:"amount" swaggertype:"number"`
	TransactionType patch.Field[models.TransactionType] `json:"transaction_type" swaggertype:"string"`
	Description     patch.Field[string]                 `json:"description" swaggertype:"string"`
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record a deposit or withdrawal against a goal and recalculate its balance
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     200 {object} models.Transaction
// @Failure     400 {object} ErrorResponse "Invalid input or transaction type"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidBody(err))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(services.TransactionInput{
		GoalID:          req.GoalID,
		Amount:          *req.Amount,
		TransactionType: models.TransactionType(req.TransactionType),
		Description:     req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{
			"goal_id":          transaction.GoalID,
			"amount":           transaction.Amount,
			"transaction_type": transaction.TransactionType,
		})

	c.JSON(http.StatusOK, transaction)
}

// ListTransactions handles the retrieval of transactions, newest first
// @Summary     List transactions
// @Tags        transactions
// @Produce     json
// @Param       skip             query int    false "Offset (default 0)"
// @Param       limit            query int    false "Page size (default 100, max 1000)"
// @Param       goal_id          query int    false "Filter by goal ID"
// @Param       transaction_type query string false "Filter by type (deposit, withdrawal)"
// @Success     200 {array}  models.Transaction
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.ListTransactions(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// transactionListQuery holds the optional list filters.
type transactionListQuery struct {
	GoalID          *uint  `form:"goal_id"`
	TransactionType string `form:"transaction_type" binding:"omitempty,transaction_type"`
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	var q transactionListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return filter, apperrors.WithMessage(apperrors.ErrInvalidInput,
			"invalid filter, goal_id must be an integer and transaction_type deposit or withdrawal")
	}

	filter.GoalID = q.GoalID
	if q.TransactionType != "" {
		txType := models.TransactionType(q.TransactionType)
		filter.Type = &txType
	}

	return filter, nil
}

// GetTransaction handles the retrieval of a single transaction
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Param       id path int true "Transaction ID"
// @Success     200 {object} models.Transaction
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransaction(transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// UpdateTransaction handles a partial update of a transaction
// @Summary     Update a transaction
// @Description Update the fields present in the body and recalculate the affected goal balances
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path int                      true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} models.Transaction
// @Failure     400 {object} ErrorResponse "Invalid input or transaction type"
// @Failure     404 {object} ErrorResponse "Transaction or goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidBody(err))
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(transactionID, services.TransactionPatch{
		GoalID:          req.GoalID,
		Amount:          req.Amount,
		TransactionType: req.TransactionType,
		Description:     req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(), changedFields(map[string]interface{}{
		"goal_id":          req.GoalID,
		"amount":           req.Amount,
		"transaction_type": req.TransactionType,
		"description":      req.Description,
	}))

	c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction handles the deletion of a transaction
// @Summary     Delete a transaction
// @Description Delete a transaction and recalculate its goal's balance
// @Tags        transactions
// @Produce     json
// @Param       id path int true "Transaction ID"
// @Success     200 {object} MessageResponse
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_TRANSACTION", "transaction", transactionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Transaction deleted successfully"})
}
