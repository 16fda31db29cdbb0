package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"cardledger/internal/auth"
	"cardledger/internal/errors"
)

// AuthHandler handles session endpoints for bearer tokens.
type AuthHandler struct {
	tokens auth.TokenStoreInterface
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(tokens auth.TokenStoreInterface) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// MeResponse describes the identity a token carries.
type MeResponse struct {
	OwnerID   string    `json:"owner_id"`
	Actor     string    `json:"actor"`
	Role      string    `json:"role,omitempty"`
	TokenID   string    `json:"token_id,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Me godoc
// @Summary Show the identity of the current token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MeResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}

	resp := MeResponse{
		OwnerID: claims.OwnerID,
		Actor:   claims.Actor,
		Role:    claims.Role,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Revoke the current token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}
	if claims.ID == "" {
		return badRequest("token has no id and cannot be revoked", "INVALID_TOKEN")
	}

	ttl := auth.AccessTokenExpiry
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := h.tokens.RevokeAccessToken(c.Request().Context(), claims.ID, ttl); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to logout",
			Code:  "LOGOUT_FAILED",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}
