package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docinsight/internal/config"
	handlers "docinsight/internal/http/handler"
	"docinsight/internal/http/middleware"
	"docinsight/internal/insight"
	"docinsight/internal/otel"
	"docinsight/internal/repository/memory"
	"docinsight/internal/service"
	"docinsight/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	ctx := context.Background()

	// Initialize tracing (degrades to noop when no collector is configured)
	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	// Build the mock analyzer from the embedded fixtures
	analyzer, err := insight.NewCanned(cfg.Analyzer)
	if err != nil {
		log.Fatalf("failed to initialize analyzer: %v", err)
	}

	// In-memory history, optionally pre-populated with seed records
	repo := memory.NewDocumentMemory()
	if cfg.SeedHistory {
		seeds, err := insight.SeedHistory(time.Now().UTC(), uuid.NewString)
		if err != nil {
			log.Fatalf("failed to build seed history: %v", err)
		}
		for i := range seeds {
			if _, err := repo.Create(ctx, &seeds[i]); err != nil {
				log.Fatalf("failed to seed history: %v", err)
			}
		}
	}

	docSvc := service.NewDocumentService(storage.NewDiscard(), analyzer, repo, cfg.Upload.MaxBytes)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Headroom over the upload cap so multipart framing does not trip
		// fiber's body limit before our own size validation runs.
		BodyLimit: int(cfg.Upload.MaxBytes) + 1024*1024,
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.Origins(), ","),
		AllowMethods: "GET,POST,DELETE,OPTIONS",
	}))

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to initialize metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with the injected service
	handlers.RegisterRoutes(app, docSvc)

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
