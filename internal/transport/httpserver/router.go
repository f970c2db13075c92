// Package httpserver provides HTTP server and routing.
package httpserver

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"smart-queue-service/internal/app/service"
	"smart-queue-service/internal/transport/httpserver/handler"
	"smart-queue-service/internal/transport/httpserver/middleware"
	"smart-queue-service/internal/validator"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	AppName   string
	Port      int
	BodyLimit int
	Debug     bool
}

// Server wraps the Fiber app with its handlers.
type Server struct {
	App    *fiber.App
	Logger *zap.Logger
}

// NewServer creates a new HTTP server with all routes configured. The ready
// probe feeds /readyz and should report backend reachability.
func NewServer(
	cfg ServerConfig,
	scoringSvc *service.ScoringService,
	rankingSvc *service.RankingService,
	refreshSvc *service.RefreshService,
	ready func() bool,
	v *validator.Validator,
	logger *zap.Logger,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler(logger),
	})

	// Health check middleware MUST be registered BEFORE other middleware
	// for Kubernetes probes to work even during high load
	app.Use(middleware.NewHealthCheck(ready))

	// Global middleware
	app.Use(requestid.New())
	app.Use(middleware.Recover(logger))
	app.Use(middleware.Logger(logger))
	app.Use(cors.New())
	app.Use(compress.New())

	// Create handlers
	queueHandler := handler.NewQueueHandler(rankingSvc, v, logger)
	videoHandler := handler.NewVideoHandler(scoringSvc, rankingSvc, v, logger)
	adminHandler := handler.NewAdminHandler(refreshSvc, logger)

	registerRoutes(app, queueHandler, videoHandler, adminHandler)

	return &Server{
		App:    app,
		Logger: logger,
	}
}

// registerRoutes sets up all API routes.
func registerRoutes(
	app *fiber.App,
	queueHandler *handler.QueueHandler,
	videoHandler *handler.VideoHandler,
	adminHandler *handler.AdminHandler,
) {
	// Health checks are handled by middleware (/livez, /readyz)

	// API v1 routes
	v1 := app.Group("/api/v1")

	// Ranked queue and stats
	v1.Get("/queue", queueHandler.GetQueue)
	v1.Get("/stats", queueHandler.GetStats)

	// Videos
	videos := v1.Group("/videos")
	videos.Get("/:id", videoHandler.GetVideo)
	videos.Put("/:id/metadata", videoHandler.UpdateMetadata)
	videos.Post("/:id/plays", videoHandler.RecordPlay)

	// Playlists
	v1.Post("/playlists/:id/samples", videoHandler.RecordPlaylistSample)

	// Admin routes
	admin := v1.Group("/admin")
	admin.Post("/refresh", adminHandler.RefreshAll)
	admin.Post("/refresh/:source", adminHandler.RefreshSource)
	admin.Get("/sources", adminHandler.GetSources)
}

// errorHandler returns a custom error handler that logs based on HTTP status code.
// 404s are logged at DEBUG level (expected client behavior), 4xx at WARN, 5xx at ERROR.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		switch {
		case code == fiber.StatusNotFound:
			logger.Debug("resource not found",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
		case code >= 500:
			logger.Error("server error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		case code >= 400:
			logger.Warn("client error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		default:
			logger.Error("unhandled error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "UNHANDLED_ERROR",
		})
	}
}

// Start starts the HTTP server.
func (s *Server) Start(port int) error {
	s.Logger.Info("starting HTTP server", zap.Int("port", port))

	return s.App.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.Logger.Info("shutting down HTTP server")

	return s.App.Shutdown()
}
