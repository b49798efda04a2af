package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"footprint/internal/core/ports"
	"footprint/internal/pkg/logging"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// HeaderActorID carries the operator id set by the upstream auth gateway.
const HeaderActorID = "X-Actor-ID"

// RequestID assigns or propagates X-Request-ID and stores it in the request
// context so every log record of the request carries it.
func RequestID() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		RequestIDHandler: func(c echo.Context, id string) {
			req := c.Request()
			c.SetRequest(req.WithContext(logging.WithRequestID(req.Context(), id)))
		},
	})
}

// RequireActor rejects requests without an operator id.
func RequireActor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := strings.TrimSpace(c.Request().Header.Get(HeaderActorID))
			if actor == "" {
				return c.JSON(http.StatusBadRequest, errorResponse{Error: errorDetail{
					Code:    codeValidation,
					Message: "missing " + HeaderActorID + " header",
					Field:   HeaderActorID,
				}})
			}

			req := c.Request()
			c.SetRequest(req.WithContext(logging.WithActorID(req.Context(), actor)))
			return next(c)
		}
	}
}

func actorOf(c echo.Context) string {
	return logging.ActorID(c.Request().Context())
}

func rateLimited(c echo.Context) error {
	return c.JSON(http.StatusTooManyRequests, errorResponse{Error: errorDetail{
		Code:    codeRateLimited,
		Message: "too many bulk operations, try again in a minute",
	}})
}

// RateLimit admits a request when limiter allows one more unit for the actor.
// When the limiter itself fails the request is let through and the failure is
// logged; the bulk endpoint stays usable while Redis is down.
func RateLimit(limiter ports.RateLimiter, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			allowed, err := limiter.Allow(ctx, actorOf(c))
			if err != nil {
				logger.WarnContext(ctx, "rate limiter unavailable, admitting request", slog.Any("error", err))
				return next(c)
			}
			if !allowed {
				return rateLimited(c)
			}
			return next(c)
		}
	}
}

// MemoryRateLimit is the single-process fallback for RateLimit: perMinute
// operations per actor with a burst of the same size.
func MemoryRateLimit(perMinute int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(perMinute) / time.Minute.Seconds()),
		Burst:     perMinute,
		ExpiresIn: 3 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return actorOf(c), nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return rateLimited(c)
		},
	})
}
