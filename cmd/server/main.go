package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/schema-scout/backend/internal/api"
	"github.com/schema-scout/backend/internal/cache"
	"github.com/schema-scout/backend/internal/config"
	"github.com/schema-scout/backend/internal/history"
	"github.com/schema-scout/backend/internal/logger"
	"github.com/schema-scout/backend/internal/metrics"
	"github.com/schema-scout/backend/internal/storage"
	"go.uber.org/zap"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Printf("Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging)
	defer log.Sync()

	// Initialize storage
	fileStore, err := storage.NewLocalStore(cfg.GetUploadDir())
	if err != nil {
		log.Fatal("failed to initialize storage", zap.Error(err))
	}

	// Initialize processing history
	historyStore, err := history.NewStore(cfg.Storage.DataDir)
	if err != nil {
		log.Warn("history disabled", zap.Error(err))
		historyStore = nil
	} else {
		defer historyStore.Close()
	}

	// Initialize optional result cache
	var resultCache *cache.ResultCache
	if cfg.Cache.Enabled {
		resultCache = cache.New(cache.Options{
			Addr:     cfg.Cache.Address,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
			TTL:      time.Duration(cfg.Cache.TTLSeconds) * time.Second,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := resultCache.Ping(ctx); err != nil {
			log.Warn("result cache unreachable, disabling", zap.Error(err))
			resultCache.Close()
			resultCache = nil
		}
		cancel()
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	h := api.NewHandler(api.Dependencies{
		Store:            fileStore,
		Cache:            resultCache,
		History:          historyStore,
		Metrics:          m,
		Logger:           log,
		Version:          Version,
		DefaultThreshold: cfg.Processing.DefaultThreshold,
	})

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.ErrorHandler

	// Configure middleware
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			if !cfg.Server.EnableRequestLogging {
				return true
			}
			path := c.Request().URL.Path
			return path == "/api/health" || path == "/metrics"
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))

	if cfg.Server.EnableCompression {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
			Skipper: func(c echo.Context) bool {
				return c.Request().URL.Path == "/metrics"
			},
		}))
	}

	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	if cfg.Server.EnableCORS {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.Server.AllowOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	api.RegisterRoutes(e, h)

	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	log.Info("schema scout server starting",
		zap.String("version", Version),
		zap.String("buildTime", BuildTime),
		zap.String("listen", cfg.GetServerAddr()),
		zap.String("dataDir", cfg.Storage.DataDir),
		zap.Bool("cache", resultCache != nil),
		zap.Bool("history", historyStore != nil),
	)

	e.Logger.Fatal(e.StartServer(s))
}
