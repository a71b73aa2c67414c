package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"news-curator/internal/adapter/authhub"
	"news-curator/internal/adapter/cache"
	"news-curator/internal/adapter/embedder"
	"news-curator/internal/adapter/newsapi"
	"news-curator/internal/adapter/repository"
	"news-curator/internal/adapter/rest"
	"news-curator/internal/adapter/rssfeed"
	"news-curator/internal/infra"
	"news-curator/internal/infra/config"
	"news-curator/internal/infra/logger"
	"news-curator/internal/infra/otelinit"
	"news-curator/internal/middleware"
	"news-curator/internal/usecase"
	"news-curator/internal/worker"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	// 2. Initialize Telemetry & Logger
	otelCfg := otelinit.ConfigFromEnv()
	otelShutdown, err := otelinit.InitProvider(context.Background(), otelCfg)
	if err != nil {
		slog.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(ctx); err != nil {
			slog.Error("telemetry shutdown failed", "error", err)
		}
	}()

	log := logger.NewWithOTel(otelCfg.Enabled)
	slog.SetDefault(log)

	// 3. Initialize DB
	dbPool, err := infra.NewPostgresDB(context.Background(), cfg.DatabaseURL())
	if err != nil {
		log.Error("failed to connect to db", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Initialize Adapters
	articleRepo := repository.NewArticleRepository(dbPool)
	activityRepo := repository.NewActivityRepository(dbPool)

	httpEmbedder := embedder.NewHTTPEmbedder(cfg.EmbeddingURL, cfg.EmbeddingModel,
		cfg.EmbeddingAPIKey, cfg.EmbeddingTimeout)
	encoder, err := embedder.NewCachingEncoder(httpEmbedder, cfg.EmbeddingCacheSize)
	if err != nil {
		log.Error("failed to build embedding cache", "error", err)
		os.Exit(1)
	}

	recCache, err := cache.NewRecommendationCache(cfg.RedisURL, cfg.RecommendCacheTTL, log)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	newsClient := newsapi.NewClient(cfg.NewsAPIURL, cfg.NewsAPIKey, cfg.NewsAPITimeout)
	feedClient := rssfeed.NewClient(cfg.NewsAPITimeout)
	authClient := authhub.NewClient(cfg.AuthHubURL, cfg.AuthHubTimeout)

	// 5. Initialize Usecases
	recommendUsecase := usecase.NewRecommendArticlesUsecase(
		articleRepo, activityRepo, recCache, cfg.TopLabels, log)
	searchUsecase := usecase.NewSearchArticlesUsecase(articleRepo, encoder, log)
	recordUsecase := usecase.NewRecordActivityUsecase(activityRepo, recCache, log)
	ingestUsecase := usecase.NewIngestArticlesUsecase(
		articleRepo, newsClient, feedClient, cfg.NewsQuery, cfg.RSSFeedURLs, log)

	// 6. Initialize & Start Worker
	if cfg.IngestInterval > 0 {
		ingestWorker := worker.NewIngestWorker(ingestUsecase,
			time.Duration(cfg.IngestInterval)*time.Second,
			logger.NewContextLogger("news-curator"))
		ingestWorker.Start()
		defer ingestWorker.Stop()
	}

	// 7. Initialize Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
			)
			return nil
		},
	}))
	e.Use(echomw.Recover())

	// 8. Register Handlers
	authMiddleware := middleware.NewAuthMiddleware(authClient, log)
	handler := rest.NewHandler(recommendUsecase, searchUsecase, recordUsecase, ingestUsecase, log)
	handler.RegisterRoutes(e, authMiddleware)

	// 9. Health Checks
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/readyz", func(c echo.Context) error {
		if err := dbPool.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "db down", "error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	})

	// 10. Start Server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Info("Starting server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	// 11. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
