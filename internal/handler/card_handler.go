package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cardledger/internal/errors"
	"cardledger/internal/model"
	"cardledger/internal/service"
)

// CardHandler handles card endpoints.
type CardHandler struct {
	ledger service.LedgerService
}

// NewCardHandler creates a new card handler.
func NewCardHandler(ledger service.LedgerService) *CardHandler {
	return &CardHandler{ledger: ledger}
}

// IssueCardRequest represents a card issue request.
type IssueCardRequest struct {
	InitialBalance string `json:"initial_balance" validate:"required"`
}

// IssueBatchRequest represents a batch issue request.
type IssueBatchRequest struct {
	Count          int    `json:"count"`
	InitialBalance string `json:"initial_balance" validate:"required"`
}

// IssueBatchResponse lists the cards a batch issued.
type IssueBatchResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Cards   []CardResponse `json:"cards"`
}

// AdjustBalanceRequest represents a balance adjustment request.
type AdjustBalanceRequest struct {
	Balance string `json:"balance" validate:"required"`
}

// Issue godoc
// @Summary Issue a card
// @Tags cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body IssueCardRequest true "Initial balance"
// @Success 201 {object} CardResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /cards [post]
func (h *CardHandler) Issue(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req IssueCardRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	balance, err := parseAmount("initial_balance", req.InitialBalance)
	if err != nil {
		return err
	}

	card, err := h.ledger.Issue(c.Request().Context(), caller, balance)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, toCardResponse(card))
}

// IssueBatch godoc
// @Summary Issue up to 100 cards with the same balance
// @Tags cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body IssueBatchRequest true "Count and initial balance"
// @Success 201 {object} IssueBatchResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /cards/batch [post]
func (h *CardHandler) IssueBatch(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req IssueBatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	balance, err := parseAmount("initial_balance", req.InitialBalance)
	if err != nil {
		return err
	}

	cards, err := h.ledger.IssueBatch(c.Request().Context(), caller, req.Count, balance)
	if err != nil {
		if len(cards) == 0 {
			return errorResponse(err)
		}
		// Cards issued before the failure exist; report them with the error.
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, IssueBatchResponse{
			Success: false,
			Message: httpErr.Message,
			Cards:   toCardResponses(cards),
		})
	}

	return c.JSON(http.StatusCreated, IssueBatchResponse{
		Success: true,
		Message: "cards issued",
		Cards:   toCardResponses(cards),
	})
}

// List godoc
// @Summary List the caller's cards, newest first
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Success 200 {array} CardResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /cards [get]
func (h *CardHandler) List(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	cards, err := h.ledger.CardsByOwner(c.Request().Context(), caller.OwnerID)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, toCardResponses(cards))
}

// Get godoc
// @Summary Get one of the caller's cards
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Param number path string true "Card number"
// @Success 200 {object} CardResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cards/{number} [get]
func (h *CardHandler) Get(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	card, err := h.ledger.Card(c.Request().Context(), caller.OwnerID, c.Param("number"))
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, toCardResponse(card))
}

// AdjustBalance godoc
// @Summary Set a card balance; zero deletes the card
// @Tags cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param number path string true "Card number"
// @Param request body AdjustBalanceRequest true "New balance"
// @Success 200 {object} OutcomeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /cards/{number}/balance [put]
func (h *CardHandler) AdjustBalance(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req AdjustBalanceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	balance, err := parseAmount("balance", req.Balance)
	if err != nil {
		return err
	}

	out, err := h.ledger.AdjustBalance(c.Request().Context(), caller, c.Param("number"), balance)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, toOutcomeResponse(out))
}

// ToggleStatus godoc
// @Summary Activate or deactivate a card
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Param number path string true "Card number"
// @Success 200 {object} OutcomeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cards/{number}/toggle [post]
func (h *CardHandler) ToggleStatus(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	out, err := h.ledger.ToggleStatus(c.Request().Context(), caller, c.Param("number"))
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, toOutcomeResponse(out))
}

// Delete godoc
// @Summary Delete a card and its history
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Param number path string true "Card number"
// @Success 200 {object} OutcomeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cards/{number} [delete]
func (h *CardHandler) Delete(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	out, err := h.ledger.Delete(c.Request().Context(), caller, c.Param("number"))
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, toOutcomeResponse(out))
}

// ListAll godoc
// @Summary List every card in the ledger
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} CardResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/cards [get]
func (h *CardHandler) ListAll(c echo.Context) error {
	cards, err := h.ledger.AllCards(c.Request().Context())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, toCardResponses(cards))
}

// StatsResponse summarises the whole ledger.
type StatsResponse struct {
	TotalCards         int64                  `json:"total_cards"`
	ActiveCards        int64                  `json:"active_cards"`
	TotalTransactions  int64                  `json:"total_transactions"`
	TransactionsToday  int64                  `json:"transactions_today"`
	OutstandingBalance string                 `json:"outstanding_balance"`
	CardsByOwner       []model.OwnerCardCount `json:"cards_by_owner"`
}

// Stats godoc
// @Summary Summarise card counts, balances and today's activity
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/stats [get]
func (h *CardHandler) Stats(c echo.Context) error {
	stats, err := h.ledger.Stats(c.Request().Context())
	if err != nil {
		return errorResponse(err)
	}
	owners := stats.CardsByOwner
	if owners == nil {
		owners = []model.OwnerCardCount{}
	}
	return c.JSON(http.StatusOK, StatsResponse{
		TotalCards:         stats.TotalCards,
		ActiveCards:        stats.ActiveCards,
		TotalTransactions:  stats.TotalTransactions,
		TransactionsToday:  stats.TransactionsSince,
		OutstandingBalance: stats.OutstandingBalance.StringFixed(2),
		CardsByOwner:       owners,
	})
}
