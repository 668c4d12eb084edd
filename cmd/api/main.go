package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/vetcard/internal/audit"
	"github.com/BruksfildServices01/vetcard/internal/config"
	dbpkg "github.com/BruksfildServices01/vetcard/internal/db"
	"github.com/BruksfildServices01/vetcard/internal/directory"
	"github.com/BruksfildServices01/vetcard/internal/infra/kv"
	"github.com/BruksfildServices01/vetcard/internal/logx"
	"github.com/BruksfildServices01/vetcard/internal/mapping"
	"github.com/BruksfildServices01/vetcard/internal/otelx"
	"github.com/BruksfildServices01/vetcard/internal/routes"
	"github.com/BruksfildServices01/vetcard/internal/storage"
	"github.com/BruksfildServices01/vetcard/internal/timezone"
	"github.com/BruksfildServices01/vetcard/internal/usecase/booking"
)

const serviceName = "vetcard-api"

func main() {

	cfg := config.Load()
	logger := logx.New(serviceName, cfg.IsDevelopment())
	slog.SetDefault(logger)

	ctx := context.Background()

	shutdownTracing, err := otelx.Setup(ctx, otelx.Config{
		Enabled:      cfg.Otel.Enabled,
		ServiceName:  serviceName,
		OTLPEndpoint: cfg.Otel.OTLPEndpoint,
		SampleRatio:  cfg.Otel.SampleRatio,
	})
	if err != nil {
		logger.Error("otel.setup_failed", "err", err)
		os.Exit(1)
	}

	// ======================================================
	// STORAGE
	// ======================================================
	var (
		backend storage.KV
		db      *gorm.DB
		closers []func() error
	)
	switch cfg.Storage {
	case config.StoragePostgres:
		db = dbpkg.NewDB(cfg)
		backend = kv.NewGorm(db)
	case config.StorageRedis:
		rdb, err := kv.NewRedisFromURL(cfg.RedisURL, cfg.VisitorTTL)
		if err != nil {
			logger.Error("redis.config_invalid", "err", err)
			os.Exit(1)
		}
		if err := rdb.Ping(ctx); err != nil {
			logger.Error("redis.unreachable", "err", err)
			os.Exit(1)
		}
		backend = rdb
		closers = append(closers, rdb.Close)
	default:
		backend = kv.NewMemory()
	}
	logger.Info("storage.ready", "driver", cfg.Storage)

	visitors, err := storage.NewRegistry(backend, cfg.VisitorSize, logger)
	if err != nil {
		logger.Error("registry.init_failed", "err", err)
		os.Exit(1)
	}

	events := audit.NewDispatcher(audit.New(db, logger), logger)

	// ======================================================
	// DIRECTORY
	// ======================================================
	tenants := loadMapping(ctx, cfg, logger)

	client := directory.NewClient(directory.Options{
		BaseURL:     cfg.APIBaseURL,
		Development: cfg.IsDevelopment(),
		Tenants:     tenants,
		Timeout:     cfg.HTTPClientTimeout,
		Logger:      logger,
	})

	loc := timezone.Location(cfg.Timezone)
	workflow := booking.NewWorkflow(client, events, loc, logger,
		booking.WithRedirectDelay(cfg.SuccessRedirectDelay),
	)

	// ======================================================
	// HTTP
	// ======================================================
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Config:    cfg,
		Directory: client,
		Workflow:  workflow,
		Visitors:  visitors,
		Events:    events,
		Location:  loc,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http.listening", "addr", cfg.Addr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http.listen_failed", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("http.shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http.shutdown_failed", "err", err)
	}
	if err := events.Close(shutdownCtx); err != nil {
		logger.Warn("audit.drain_incomplete", "err", err)
	}
	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			logger.Warn("storage.close_failed", "err", err)
		}
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("otel.shutdown_failed", "err", err)
	}
}

// loadMapping reads the slug table from S3 when a bucket is configured and
// from the local file otherwise. Development never needs one.
func loadMapping(ctx context.Context, cfg *config.Config, logger *slog.Logger) map[string]string {
	if cfg.IsDevelopment() {
		return nil
	}

	if cfg.Mapping.S3Bucket != "" {
		store := mapping.NewS3Store(mapping.S3Config{
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.Mapping.S3Bucket,
			Key:       cfg.Mapping.S3Key,
		})
		t, err := store.Get(ctx)
		if err == nil {
			logger.Info("mapping.loaded", "source", "s3", "clinics", len(t))
			return t
		}
		logger.Warn("mapping.s3_failed", "fallback", "file", "err", err)
	}

	t, err := mapping.ReadFile(cfg.Mapping.File)
	if err != nil {
		logger.Warn("mapping.file_failed", "fallback", "base_url", "err", err)
		return nil
	}
	logger.Info("mapping.loaded", "source", "file", "clinics", len(t))
	return t
}
