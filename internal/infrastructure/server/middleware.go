package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/todoapp/core/internal/adapters/gateway"
	"github.com/todoapp/core/internal/infrastructure/config"
)

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"request_id", values.RequestID,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Debugw("HTTP request", fields...)
			}

			return nil
		},
	}))

	if s.metrics != nil && s.config.Metrics.Enabled {
		s.echo.Use(s.metrics.Middleware())
	}

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.config.Security.AllowedOrigins(),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
	}))

	// Rate limiting middleware
	s.echo.Use(middleware.RateLimiterWithConfig(rateLimiterConfig(s.config.Security)))

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))
}

// rateLimiterConfig allows RateLimitRequests per RateLimitWindow for each client,
// with the whole window's allowance available as a burst.
func rateLimiterConfig(cfg config.SecurityConfig) middleware.RateLimiterConfig {
	limit := rate.Limit(cfg.RateLimitRequests)
	if cfg.RateLimitWindow > 0 {
		limit = rate.Limit(float64(cfg.RateLimitRequests) / cfg.RateLimitWindow.Seconds())
	}

	return middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: limit, Burst: cfg.RateLimitRequests, ExpiresIn: cfg.RateLimitWindow},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, gateway.Fail[struct{}]("rate limit exceeded"))
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, gateway.Fail[struct{}]("rate limit exceeded"))
		},
	}
}
