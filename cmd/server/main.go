package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"miraiz/internal/catalog"
	"miraiz/internal/config"
	"miraiz/internal/handler"
	"miraiz/internal/llm"
	"miraiz/internal/nlq"
	"miraiz/internal/query"
	"miraiz/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	logger := cfg.NewLogger()

	logger.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}).Info("Miraiz property backend starting")

	gin.SetMode(cfg.Server.GinMode)

	// Interaction store: in-memory unless a Postgres DSN is configured.
	var interactions store.InteractionStore
	switch cfg.Store.Driver {
	case "postgres":
		interactions, err = store.NewPostgresStore(cfg.Store.DSN)
		if err != nil {
			logger.WithError(err).Fatal("Failed to connect interaction store")
		}
		logger.Info("Using Postgres interaction store")
	default:
		interactions = store.NewMemoryStore()
		logger.Info("Using in-memory interaction store")
	}
	defer interactions.Close()

	// Completion provider: OpenAI-compatible API when configured, the
	// offline mock otherwise.
	var client llm.Client
	if cfg.LLM.Provider == "openai" && cfg.LLM.APIKey != "" {
		client = llm.NewOpenAIClient(cfg.LLM, logger)
		logger.WithFields(logrus.Fields{
			"api_base": cfg.LLM.APIBase,
			"model":    cfg.LLM.Model,
		}).Info("Using OpenAI completion provider")
	} else {
		client = llm.NewMockClient()
		logger.Warn("No LLM API key configured, using mock completion provider")
	}

	// Services
	fetcher := catalog.NewFetcher(cfg.Catalog, logger)
	catalogSvc := catalog.NewService(fetcher, time.Duration(cfg.Catalog.CacheSeconds)*time.Second)
	querySvc := query.NewService(catalogSvc, logger)
	translator := nlq.NewTranslator(client, catalogSvc, logger)

	// Handlers
	propertyHandler := handler.NewPropertyHandler(catalogSvc, querySvc, cfg.Catalog.CacheSeconds, logger)
	nlqHandler := handler.NewNLQHandler(translator, cfg.Search.DefaultLimit, logger)
	interactionHandler := handler.NewInteractionHandler(interactions, client, catalogSvc, logger)

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "miraiz-property-backend",
			"version": Version,
		})
	})

	router.GET("/properties", propertyHandler.GetProperties)
	router.GET("/api/propiedades/miraiz-lite", propertyHandler.GetPropertiesLite)
	router.POST("/api/nlq", handler.RateLimit(cfg.Server.NLQRatePerMin), nlqHandler.Run)

	protected := router.Group("/", handler.APIKeyAuth(cfg.Server.APIKey))
	{
		protected.GET("/interactions", interactionHandler.List)
		protected.POST("/interactions", interactionHandler.Create)
		protected.GET("/metrics/interactions", interactionHandler.Metrics)
		protected.POST("/properties/refresh", propertyHandler.Refresh)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.WithField("addr", addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Graceful shutdown failed")
	}
	logger.Info("Server stopped")
}
