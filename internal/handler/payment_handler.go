package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cardledger/internal/service"
)

// PaymentHandler handles payment endpoints.
type PaymentHandler struct {
	ledger service.LedgerService
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(ledger service.LedgerService) *PaymentHandler {
	return &PaymentHandler{ledger: ledger}
}

// CardPaymentRequest represents a card payment request.
type CardPaymentRequest struct {
	CardNumber string `json:"card_number" validate:"required"`
	Amount     string `json:"amount" validate:"required"`
}

// ProcessPayment godoc
// @Summary Pay from a card
// @Description A payment that empties the card deletes the card and its history.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CardPaymentRequest true "Payment data"
// @Success 200 {object} OutcomeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /payments [post]
func (h *PaymentHandler) ProcessPayment(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req CardPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		return err
	}

	out, err := h.ledger.ProcessPayment(c.Request().Context(), caller, req.CardNumber, amount)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, toOutcomeResponse(out))
}
