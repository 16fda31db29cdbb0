package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cardledger/internal/service"
)

// TransactionHandler handles ledger history endpoints.
type TransactionHandler struct {
	ledger service.LedgerService
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(ledger service.LedgerService) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// List godoc
// @Summary List entries across the caller's cards, newest first
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} TransactionResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /transactions [get]
func (h *TransactionHandler) List(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	txns, err := h.ledger.TransactionsByOwner(c.Request().Context(), caller.OwnerID)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, toTransactionResponses(txns))
}

// ListByCard godoc
// @Summary List one card's entries, newest first
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param number path string true "Card number"
// @Success 200 {array} TransactionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cards/{number}/transactions [get]
func (h *TransactionHandler) ListByCard(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	txns, err := h.ledger.TransactionsByCard(c.Request().Context(), caller.OwnerID, c.Param("number"))
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, toTransactionResponses(txns))
}

// ListAll godoc
// @Summary List every entry in the ledger
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} TransactionResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/transactions [get]
func (h *TransactionHandler) ListAll(c echo.Context) error {
	txns, err := h.ledger.AllTransactions(c.Request().Context())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, toTransactionResponses(txns))
}
