package server

import (
	"log"
	"time"

	"portfolio-terminal/internal/bootstrap"
	"portfolio-terminal/internal/config"
	"portfolio-terminal/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	// Initialize Fiber App
	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024, // commands and chat messages are small
	})

	// Middleware
	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	if cfg.Tracing.Enabled {
		app.Use(otelfiber.Middleware())
	}

	// Request logging stays on the console sink (Debug); the file sink is
	// reserved for app events the admin API reads back.
	app.Use(func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()
		container.Logger.Debug("HTTP", "Request handled", map[string]interface{}{
			"method":      ctx.Method(),
			"path":        ctx.Path(),
			"status":      ctx.Response().StatusCode(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return err
	})

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Routes
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	// Terminal endpoints live at the root; the client contract carries no
	// /api prefix.
	c.TerminalController.RegisterRoutes(app)
	c.ChatController.RegisterRoutes(app)

	api := app.Group("/api")

	// The activity feed authenticates inside its handshake, so it registers
	// ahead of the admin JWT middleware.
	c.ActivityHandler.RegisterRoutes(api)
	c.AdminController.RegisterRoutes(api)
}
