package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/knowhealth/backend/internal/adapters/cache"
	"github.com/knowhealth/backend/internal/adapters/database"
	"github.com/knowhealth/backend/internal/adapters/events"
	"github.com/knowhealth/backend/internal/adapters/search"
	"github.com/knowhealth/backend/internal/api/handlers"
	"github.com/knowhealth/backend/internal/api/middleware"
	"github.com/knowhealth/backend/internal/api/routes"
	"github.com/knowhealth/backend/internal/application/services"
	"github.com/knowhealth/backend/internal/auth"
	"github.com/knowhealth/backend/internal/domain/providers"
	"github.com/knowhealth/backend/internal/infrastructure/clients/openai"
	"github.com/knowhealth/backend/internal/infrastructure/clients/postgres"
	"github.com/knowhealth/backend/internal/infrastructure/clients/redis"
	"github.com/knowhealth/backend/internal/infrastructure/clients/typesense"
	"github.com/knowhealth/backend/internal/infrastructure/observability"
	"github.com/knowhealth/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// OpenTelemetry export is optional; the no-op global providers serve
	// metrics and spans when it is off.
	var otelShutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		otelShutdown, err = observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
			otelShutdown = nil
		} else {
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// The database is the only hard dependency, and even it is allowed to
	// be absent: an unconfigured database yields a nil client and the
	// directory serves empty reads and refuses writes.
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	if pgClient != nil {
		defer pgClient.Close()
	}

	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client; caching and events disabled")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized")
	}

	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Typesense client; search falls back to database filtering")
		typesenseClient = nil
	}

	// Adapters
	providerAdapter := database.NewProviderAdapter(pgClient)
	facilityAdapter := database.NewFacilityAdapter(pgClient)
	reviewAdapter := database.NewReviewAdapter(pgClient)
	reportAdapter := database.NewReportAdapter(pgClient)
	messageAdapter := database.NewMessageAdapter(pgClient)
	userAdapter := database.NewUserAdapter(pgClient)
	imageAdapter := database.NewImageAdapter(pgClient)

	var searchRepo providers.DirectorySearchRepository
	if typesenseClient != nil {
		if err := typesenseClient.InitSchema(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to init Typesense schema")
		}
		searchRepo = search.NewTypesenseAdapter(typesenseClient)
	}

	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
	}

	var summarizer providers.ReviewSummarizer
	if cfg.OpenAI.APIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is not set; review summaries disabled")
	} else {
		openaiClient, err := openai.NewClient(&cfg.OpenAI)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize OpenAI client")
		} else {
			summarizer = openaiClient
		}
	}

	// Services
	userService := services.NewUserService(userAdapter)
	providerService := services.NewProviderService(providerAdapter, searchRepo)
	facilityService := services.NewFacilityService(facilityAdapter, searchRepo)
	reviewService := services.NewReviewService(reviewAdapter, providerAdapter, facilityAdapter)
	moderationService := services.NewModerationService(reviewAdapter, reportAdapter, providerAdapter, facilityAdapter, eventBus)
	summaryService := services.NewSummaryService(reviewAdapter, summarizer)
	messageService := services.NewMessageService(messageAdapter)
	imageService := services.NewImageService(imageAdapter)
	dashboardService := services.NewDashboardService(providerAdapter, facilityAdapter, reviewAdapter, userAdapter, messageAdapter)

	var cacheInvalidation *services.CacheInvalidationService
	if cacheProvider != nil && eventBus != nil {
		cacheInvalidation = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := cacheInvalidation.Start(); err != nil {
			log.Warn().Err(err).Msg("failed to start cache invalidation service")
			cacheInvalidation = nil
		}
	}

	tokenManager := auth.NewTokenManager(&cfg.Auth)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, tokenManager)
	providerHandler := handlers.NewProviderHandler(providerService)
	facilityHandler := handlers.NewFacilityHandler(facilityService)
	reviewHandler := handlers.NewReviewHandler(reviewService, moderationService)
	moderationHandler := handlers.NewModerationHandler(moderationService)
	messageHandler := handlers.NewMessageHandler(messageService, cacheProvider)
	imageHandler := handlers.NewImageHandler(imageService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	searchHandler := handlers.NewSearchHandler(searchRepo, providerService, facilityService)

	authMiddleware := middleware.NewAuthMiddleware(tokenManager, userService)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
	}

	router := routes.NewRouter(
		authHandler,
		providerHandler,
		facilityHandler,
		reviewHandler,
		moderationHandler,
		messageHandler,
		imageHandler,
		summaryHandler,
		dashboardHandler,
		searchHandler,
		authMiddleware,
		cacheMiddleware,
		metrics,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	if cacheInvalidation != nil {
		cacheInvalidation.Stop()
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("error closing event bus")
		}
	}

	if otelShutdown != nil {
		if err := otelShutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("error shutting down OpenTelemetry")
		}
	}

	log.Info().Msg("server stopped")
}
