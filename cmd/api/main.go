package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"guestbook/docs"
	"guestbook/internal/cache"
	"guestbook/internal/config"
	"guestbook/internal/database"
	"guestbook/internal/database/migration"
	handlers "guestbook/internal/http/handler"
	"guestbook/internal/http/middleware"
	"guestbook/internal/otel"
	"guestbook/internal/repository/postgres"
	"guestbook/internal/service"
	"guestbook/internal/storage"
)

// @title Guestbook API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := time.UTC

	ctx := context.Background()

	// Initialize OpenTelemetry tracing (noop when OTEL_SDK_DISABLED=true)
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	// Apply schema migrations before accepting traffic
	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Redis cache is optional; an empty REDIS_ADDR disables listing cache.
	var entryCache cache.EntryCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisEntryCache(cfg.Redis)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer rc.Close()
		entryCache = rc
	}

	// Object storage is optional; an empty MINIO_ENDPOINT disables exports.
	var objStore storage.Storage
	if cfg.MinIO.Endpoint != "" {
		objStore, err = storage.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Fatalf("failed to initialize object storage: %v", err)
		}
	}

	// Initialize repositories and services
	entryRepo := postgres.NewEntryPostgres(db)
	userRepo := postgres.NewUserPostgres(db)
	entrySvc := service.NewEntryService(entryRepo, entryCache, objStore)
	authSvc := service.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.JWTExpiryMinutes)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(loc))
	// Trace every request through the global tracer provider
	app.Use(otelfiber.Middleware())

	// Prometheus HTTP metrics, exposed on /metrics
	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, entrySvc, authSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
