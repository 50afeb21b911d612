package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/lingobridge/api/internal/dictionary"
	"github.com/lingobridge/api/internal/handlers"
	"github.com/lingobridge/api/internal/matching"
	"github.com/lingobridge/api/internal/platform/config"
	pfirestore "github.com/lingobridge/api/internal/platform/firestore"
	"github.com/lingobridge/api/internal/platform/observability"
	firestoreRepo "github.com/lingobridge/api/internal/repositories/firestore"
	"github.com/lingobridge/api/internal/services"
)

func main() {
	ctx := context.Background()

	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("api")
	ctx = observability.WithLogger(ctx, logger)

	cfg, err := config.Load()
	if err != nil {
		var validation *config.ValidationError
		if errors.As(err, &validation) {
			logger.Fatal("invalid configuration", zap.Strings("fields", validation.Fields()))
		}
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	dict, err := dictionary.Load(cfg.Dictionary.Path)
	if err != nil {
		logger.Fatal("failed to load dictionary corpus", zap.Error(err))
	}
	logger.Info("dictionary loaded", zap.Strings("pairs", dict.SupportedPairs()))

	firestoreProvider := pfirestore.NewProvider(cfg.Firestore)
	if _, err := firestoreProvider.Client(ctx); err != nil {
		logger.Fatal("failed to initialise firestore client", zap.Error(err))
	}

	registry, err := firestoreRepo.NewRegistry(firestoreProvider)
	if err != nil {
		logger.Fatal("failed to initialise repositories", zap.Error(err))
	}
	defer func() {
		if err := registry.Close(); err != nil {
			logger.Warn("firestore close error", zap.Error(err))
		}
	}()

	translationService, err := services.NewTranslationService(services.TranslationServiceDeps{
		Dictionary:    dict,
		Matcher:       matching.NewWeightedRatioMatcher(),
		Contributions: registry.Contributions(),
	})
	if err != nil {
		logger.Fatal("failed to initialise translation service", zap.Error(err))
	}

	contributionService, err := services.NewContributionService(services.ContributionServiceDeps{
		Dictionary:    dict,
		Contributions: registry.Contributions(),
		LanguagePairs: registry.LanguagePairs(),
		Clock:         time.Now,
	})
	if err != nil {
		logger.Fatal("failed to initialise contribution service", zap.Error(err))
	}

	translationHandlers, err := handlers.NewTranslationHandlers(translationService)
	if err != nil {
		logger.Fatal("failed to initialise translation handlers", zap.Error(err))
	}
	contributionHandlers, err := handlers.NewContributionHandlers(contributionService)
	if err != nil {
		logger.Fatal("failed to initialise contribution handlers", zap.Error(err))
	}
	healthHandlers := handlers.NewHealthHandlers(
		handlers.WithSupportedPairs(translationService.SupportedPairs),
		handlers.WithStoreCheck(registry.Health()),
	)

	corsMiddleware := cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})

	router := handlers.NewRouter(
		handlers.WithMiddlewares(
			corsMiddleware,
			observability.InjectLoggerMiddleware(logger),
			observability.TraceMiddleware(cfg.Firestore.ProjectID),
			observability.RecoveryMiddleware(logger),
			observability.RequestLoggerMiddleware(cfg.Firestore.ProjectID),
		),
		handlers.WithHealthHandlers(healthHandlers),
		handlers.WithTranslationHandlers(translationHandlers),
		handlers.WithContributionHandlers(contributionHandlers),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("lingobridge api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
