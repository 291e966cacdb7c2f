package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/todoapp/core/docs"
	httpHandlers "github.com/todoapp/core/internal/adapters/http"
	"github.com/todoapp/core/internal/adapters/gateway"
	"github.com/todoapp/core/internal/infrastructure/config"
	"github.com/todoapp/core/internal/infrastructure/logger"
	"github.com/todoapp/core/internal/infrastructure/metrics"
)

// Server is the loopback HTTP bridge between the UI and the gateway
type Server struct {
	echo    *echo.Echo
	config  *config.Config
	logger  *logger.Logger
	metrics *metrics.Metrics
	dataDir string
}

// New creates a new server instance. m may be nil when metrics are disabled.
func New(cfg *config.Config, gw *gateway.Gateway, m *metrics.Metrics, appLogger *logger.Logger) (*Server, error) {
	if gw == nil {
		return nil, errors.New("server requires a gateway")
	}

	e := echo.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.App.IsDevelopment()
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger, e.Debug)

	server := &Server{
		echo:    e,
		config:  cfg,
		logger:  appLogger.WithComponent("server"),
		metrics: m,
		dataDir: gw.GetDataDirPath(context.Background()).Value(),
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes(
		httpHandlers.NewTaskHandler(gw),
		httpHandlers.NewSettingsHandler(gw),
		httpHandlers.NewDataHandler(gw),
	)

	return server, nil
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(taskHandler *httpHandlers.TaskHandler, settingsHandler *httpHandlers.SettingsHandler, dataHandler *httpHandlers.DataHandler) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)

	if s.metrics != nil && s.config.Metrics.Enabled {
		s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	}

	if s.config.Docs.Enabled {
		s.echo.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	taskGroup := v1.Group("/tasks")
	taskGroup.GET("", taskHandler.ListTasks)
	taskGroup.POST("", taskHandler.CreateTask)
	taskGroup.GET("/stats", taskHandler.GetStats)
	taskGroup.PATCH("/:id", taskHandler.UpdateTask)
	taskGroup.DELETE("/:id", taskHandler.DeleteTask)

	settingsGroup := v1.Group("/settings")
	settingsGroup.GET("", settingsHandler.GetSettings)
	settingsGroup.PUT("", settingsHandler.UpdateSettings)

	dataGroup := v1.Group("/data")
	dataGroup.GET("/export", dataHandler.Export)
	dataGroup.POST("/import", dataHandler.Import)
	dataGroup.DELETE("", dataHandler.Clear)
	dataGroup.GET("/dir", dataHandler.DataDir)

	v1.POST("/files/open", dataHandler.OpenFile)
}

// Health check handler
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":   "ok",
		"time":     time.Now().UTC().Format(time.RFC3339),
		"version":  s.config.App.Version,
		"data_dir": s.dataDir,
	})
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server and blocks until it stops. A graceful
// shutdown is not reported as an error.
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)
	if err := s.echo.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler renders router and middleware errors as failed envelopes.
// With debug set, internal errors are reported with their cause.
func customErrorHandler(logger *logger.Logger, debug bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  = http.StatusText(http.StatusInternalServerError)
		)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			msg = fmt.Sprint(he.Message)
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if debug {
			msg = err.Error()
		}

		if code == http.StatusInternalServerError {
			logger.WithError(err).Errorw("Internal server error", "path", c.Request().URL.Path)
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, gateway.Fail[struct{}](msg))
			}
			if err != nil {
				logger.WithError(err).Errorw("Error sending response")
			}
		}
	}
}
