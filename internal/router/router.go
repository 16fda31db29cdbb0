package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"cardledger/internal/auth"
	"cardledger/internal/config"
	"cardledger/internal/errors"
	"cardledger/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *zap.Logger,
	tokens auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	cardHandler *handler.CardHandler,
	paymentHandler *handler.PaymentHandler,
	transactionHandler *handler.TransactionHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(cfg.JWTSecret),
		SigningMethod: jwt.SigningMethodHS256.Alg(),
		ContextKey:    auth.ContextKey,
		TokenLookup:   "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}), rejectRevoked(tokens))

	secured.GET("/me", authHandler.Me)
	secured.POST("/auth/logout", authHandler.Logout)

	// Card routes
	secured.POST("/cards", cardHandler.Issue)
	secured.POST("/cards/batch", cardHandler.IssueBatch)
	secured.GET("/cards", cardHandler.List)
	secured.GET("/cards/:number", cardHandler.Get)
	secured.PUT("/cards/:number/balance", cardHandler.AdjustBalance)
	secured.POST("/cards/:number/toggle", cardHandler.ToggleStatus)
	secured.DELETE("/cards/:number", cardHandler.Delete)
	secured.GET("/cards/:number/transactions", transactionHandler.ListByCard)

	// Payment routes
	secured.POST("/payments", paymentHandler.ProcessPayment)

	// Transaction routes
	secured.GET("/transactions", transactionHandler.List)

	// Admin routes
	admin := secured.Group("/admin", requireRole(auth.RoleAdmin))
	admin.GET("/cards", cardHandler.ListAll)
	admin.GET("/transactions", transactionHandler.ListAll)
	admin.GET("/stats", cardHandler.Stats)
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				log.Warn("request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	})
}

func tokenClaims(c echo.Context) (*auth.Claims, bool) {
	token, ok := c.Get(auth.ContextKey).(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(*auth.Claims)
	return claims, ok
}

// rejectRevoked refuses tokens revoked through logout.
func rejectRevoked(tokens auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := tokenClaims(c)
			if ok && claims.ID != "" && tokens.IsAccessTokenRevoked(c.Request().Context(), claims.ID) {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "token has been revoked",
					Code:  "TOKEN_REVOKED",
				})
			}
			return next(c)
		}
	}
}

func requireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := tokenClaims(c)
			if !ok || claims.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
					Error: "insufficient role",
					Code:  "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
