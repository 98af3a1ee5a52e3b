package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"

	"vidconv/internal/authclient"
	"vidconv/internal/config"
	handlers "vidconv/internal/http/handler"
	"vidconv/internal/http/middleware"
	"vidconv/internal/otel"
	"vidconv/internal/queue"
	"vidconv/internal/service"
	"vidconv/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, "gateway")
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Connect to the broker and declare the durable work queue up front so
	// publish failures at request time are never about a missing queue.
	pub, err := queue.NewAMQP(cfg.AMQP)
	if err != nil {
		log.Fatalf("failed to connect to message broker: %v", err)
	}
	defer pub.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	auth := authclient.New(
		cfg.Auth.ServiceAddress,
		time.Duration(cfg.UpstreamTimeoutSec)*time.Second,
	)
	uploadSvc := service.NewUploadService(
		objStore,
		pub,
		logger,
		time.Duration(cfg.StorageTimeoutSec)*time.Second,
		time.Duration(cfg.PublishTimeoutSec)*time.Second,
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger("gateway"))

	reg := prometheus.NewRegistry()
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", handlers.Metrics(reg))

	// Register HTTP routes with injected services
	handlers.RegisterGatewayRoutes(app, auth, uploadSvc)

	addr := ":" + cfg.GatewayPort

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
