package main

import (
	"context"
	"log"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"teamtrack/config"
	"teamtrack/middleware"
	"teamtrack/routes"
	"teamtrack/utils"
	"teamtrack/worker"
)

func main() {
	logger := log.New(os.Stdout, "TEAMTRACK: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Error reporting
	if dsn := config.AppConfig.SentryDSN; dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         dsn,
			Environment: config.AppConfig.Environment,
		}); err != nil {
			logger.Printf("Sentry init failed: %v", err)
		}
	}

	// Initialize database connection
	if err := config.ConnectDB(); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Create Fiber app with a top-level error handler: unexpected errors
	// are logged and reported, the client gets a generic 500
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				utils.LogError("unhandled_request_error", err, map[string]interface{}{
					"method": c.Method(),
					"path":   c.Path(),
				})
				return c.Status(code).JSON(fiber.Map{
					"error": "Internal server error",
				})
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	// Add CORS middleware
	app.Use(middleware.CORS())

	// Optional self-ping loop for hosts that idle sleeping services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	keepAlive := worker.NewKeepAliveWorker(config.AppConfig.KeepAliveURL,
		log.New(os.Stdout, "KEEPALIVE: ", log.LstdFlags))
	go keepAlive.Start(ctx)

	// Setup routes
	routes.SetupRoutes(app, config.DB)

	// Start server
	logrus.WithField("port", config.AppConfig.ServerPort).Info("Server starting")
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
