package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docflow/internal/auth"
	"docflow/internal/config"
	"docflow/internal/database"
	"docflow/internal/database/migration"
	"docflow/internal/drive"
	handlers "docflow/internal/http/handler"
	"docflow/internal/http/middleware"
	"docflow/internal/otel"
	"docflow/internal/repository/postgres"
	"docflow/internal/service"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := time.UTC

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing is optional; Init degrades to a noop provider on exporter errors
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Repositories
	userRepo := postgres.NewUserPostgres(db)
	docRepo := postgres.NewDocumentPostgres(db)
	reqRepo := postgres.NewRequestPostgres(db)
	compRepo := postgres.NewCompanyPostgres(db)

	// Auth primitives
	hasher := auth.NewHasher()
	tokens := auth.NewTokenManager(cfg.JWT)

	// Remote drive client and background relay
	tokenSource := drive.NewClientCredentialsSource(cfg.Drive, nil)
	driveClient := drive.NewClient(cfg.Drive, nil, tokenSource)
	relayer := drive.NewRelayer(driveClient, docRepo, loc)
	go func() {
		if err := relayer.Start(ctx); err != nil && ctx.Err() == nil {
			log.Printf("relay worker stopped: %v", err)
		}
	}()

	// Services
	authSvc := service.NewAuthService(userRepo, hasher, tokens)
	docSvc := service.NewDocumentService(docRepo, reqRepo, relayer, cfg.Upload)
	reqSvc := service.NewRequestService(reqRepo, userRepo)
	compSvc := service.NewCompanyService(compRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Uploads stream through the handler; the service enforces its own
		// size ceiling mid-stream.
		StreamRequestBody: true,
		BodyLimit:         int(cfg.Upload.MaxSizeBytes) * 2,
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMW.Handler())

	// Register HTTP routes with injected services
	protect := middleware.Protect(tokens, userRepo)
	handlers.RegisterRoutes(app, db, authSvc, docSvc, reqSvc, compSvc, driveClient, tokens, protect)

	// Metrics are served on their own listener so the API surface stays clean
	metricsAddr := ":" + getEnv("METRICS_PORT", "9090")
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		if err := http.ListenAndServe(metricsAddr, mux); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server stopped: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = app.ShutdownWithContext(shutdownCtx)
	}()

	addr := ":" + cfg.Port
	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
