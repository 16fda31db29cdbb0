package handler

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"cardledger/internal/auth"
	"cardledger/internal/errors"
	"cardledger/internal/model"
	"cardledger/internal/service"
)

// CardResponse represents a card. Money is rendered with two decimals.
type CardResponse struct {
	CardNumber     string    `json:"card_number"`
	Balance        string    `json:"balance"`
	InitialBalance string    `json:"initial_balance"`
	IsActive       bool      `json:"is_active"`
	OwnerID        string    `json:"owner_id"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TransactionResponse represents a ledger entry.
type TransactionResponse struct {
	ID              uint64    `json:"id"`
	CardNumber      string    `json:"card_number"`
	TransactionType string    `json:"transaction_type"`
	Amount          string    `json:"amount"`
	BalanceBefore   string    `json:"balance_before"`
	BalanceAfter    string    `json:"balance_after"`
	TransactionDate time.Time `json:"transaction_date"`
	ProcessedBy     string    `json:"processed_by"`
	SourceAddress   string    `json:"source_address,omitempty"`
	Notes           string    `json:"notes,omitempty"`
}

// OutcomeResponse reports a committed mutation.
type OutcomeResponse struct {
	Success     bool                 `json:"success"`
	Message     string               `json:"message"`
	Deleted     bool                 `json:"deleted"`
	Card        *CardResponse        `json:"card,omitempty"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

func toCardResponse(card *model.Card) CardResponse {
	return CardResponse{
		CardNumber:     card.CardNumber,
		Balance:        card.Balance.StringFixed(2),
		InitialBalance: card.InitialBalance.StringFixed(2),
		IsActive:       card.IsActive,
		OwnerID:        card.OwnerID,
		CreatedBy:      card.CreatedBy,
		CreatedAt:      card.CreatedAt,
		UpdatedAt:      card.UpdatedAt,
	}
}

func toCardResponses(cards []model.Card) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for i := range cards {
		out = append(out, toCardResponse(&cards[i]))
	}
	return out
}

func toTransactionResponse(txn *model.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              txn.ID,
		CardNumber:      txn.CardNumber,
		TransactionType: string(txn.TransactionType),
		Amount:          txn.Amount.StringFixed(2),
		BalanceBefore:   txn.BalanceBefore.StringFixed(2),
		BalanceAfter:    txn.BalanceAfter.StringFixed(2),
		TransactionDate: txn.TransactionDate,
		ProcessedBy:     txn.ProcessedBy,
		SourceAddress:   txn.SourceAddress,
		Notes:           txn.Notes,
	}
}

func toTransactionResponses(txns []model.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, toTransactionResponse(&txns[i]))
	}
	return out
}

func toOutcomeResponse(out *service.Outcome) OutcomeResponse {
	resp := OutcomeResponse{
		Success: true,
		Message: out.Message,
		Deleted: out.Deleted,
	}
	if out.Card != nil {
		card := toCardResponse(out.Card)
		resp.Card = &card
	}
	if out.Transaction != nil {
		txn := toTransactionResponse(out.Transaction)
		resp.Transaction = &txn
	}
	return resp
}

// errorResponse maps a service error onto the standard error body.
func errorResponse(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message, code string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// bindAndValidate decodes the request body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}
	return nil
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, badRequest("invalid "+field, "INVALID_AMOUNT")
	}
	return amount, nil
}

// claimsFrom returns the claims echojwt parsed for this request.
func claimsFrom(c echo.Context) (*auth.Claims, error) {
	token, ok := c.Get(auth.ContextKey).(*jwt.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "missing token",
			Code:  "UNAUTHORIZED",
		})
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok || claims.OwnerID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "invalid token claims",
			Code:  "UNAUTHORIZED",
		})
	}
	return claims, nil
}

// callerFrom builds the service caller from the token and the client address.
func callerFrom(c echo.Context) (service.Caller, error) {
	claims, err := claimsFrom(c)
	if err != nil {
		return service.Caller{}, err
	}
	actor := claims.Actor
	if actor == "" {
		actor = claims.OwnerID
	}
	return service.Caller{
		OwnerID:       claims.OwnerID,
		Actor:         actor,
		SourceAddress: c.RealIP(),
	}, nil
}
