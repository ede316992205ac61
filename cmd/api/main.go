package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"projectapi/docs"
	"projectapi/internal/config"
	"projectapi/internal/database"
	"projectapi/internal/database/migration"
	handlers "projectapi/internal/http/handler"
	"projectapi/internal/http/middleware"
	"projectapi/internal/logger"
	"projectapi/internal/otel"
	"projectapi/internal/repository/postgres"
	"projectapi/internal/service"
	"projectapi/internal/storage"
)

// @title Project API
// @version 1.0
// @description Portfolio projects and their thumbnail images.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.Location)
	if err != nil {
		loc = time.UTC
	}
	log := logger.New(cfg.LogLevel, loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.EnsureMigrated(ctx, db, log, database.Host(cfg.Database)); err != nil {
			log.WithError(err).Fatal("failed to migrate database")
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	mediaHost, err := storage.New(cfg.Media)
	if err != nil {
		log.WithError(err).WithField("backend", cfg.Media.Backend).Fatal("failed to initialize media host")
	}
	mediaHost, err = storage.WithMetrics(mediaHost, reg)
	if err != nil {
		log.WithError(err).Fatal("failed to register media host metrics")
	}

	fileRepo := postgres.NewFilePostgres(db)
	projectRepo := postgres.NewProjectPostgres(db)
	fileSvc := service.NewFileService(mediaHost, fileRepo, cfg.Media.ThumbnailFolder, log)
	projectSvc := service.NewProjectService(mediaHost, projectRepo, fileRepo, cfg.Media.ThumbnailFolder, log)

	var limiterStore fiber.Storage
	if cfg.RateLimit.Enabled && cfg.RateLimit.RedisURL != "" {
		rs, err := middleware.NewRedisStorage(cfg.RateLimit.RedisURL)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to redis")
		}
		defer rs.Close()
		limiterStore = rs
	}

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.WithError(err).Fatal("failed to register http metrics")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(log),
		// Data URI uploads are larger than the decoded image.
		BodyLimit: 16 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, handlers.Dependencies{
		DB:       db,
		Files:    fileSvc,
		Projects: projectSvc,
		Limiters: middleware.NewLimiters(cfg.RateLimit.Enabled, limiterStore),
		Metrics:  reg,
		Log:      log,
	})

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

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
	}()

	addr := ":" + cfg.Port
	log.WithFields(logrus.Fields{"addr": addr, "media_backend": cfg.Media.Backend}).Info("listening")

	if err := app.Listen(addr); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}
