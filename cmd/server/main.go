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

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	natsAdapter "github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/adapter/messaging/nats"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/adapter/repository/cache"
	mongoRepo "github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/adapter/repository/mongodb"
	pgRepo "github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/adapter/repository/postgres"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/adapter/rest"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/adapter/storage/s3"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/config"
	enquiryDomain "github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/enquiry/domain"
	enquiryUsecase "github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/enquiry/usecase"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/listing/domain"
	listingUsecase "github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/listing/usecase"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/mailer"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/logger"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/metrics"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/tracer"
	subscriptionUsecase "github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/subscription/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	// 1. Configuration, logged through a bootstrap logger
	bootLogger := logger.NewLogger(nil)
	cfg, err := config.LoadConfig(bootLogger)
	if err != nil {
		bootLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	_ = bootLogger.Sync()

	// 2. Logger
	appLogger := logger.NewLogger(cfg.Logging())
	defer func() { _ = appLogger.Sync() }()
	appLogger.Info("Application starting...", zap.String("service_name", cfg.ServiceName))

	// 3. Tracer
	var tp *sdktrace.TracerProvider
	if cfg.OTExporterOTLPEndpoint != "" {
		tp = tracer.InitTracer(cfg.ServiceName, cfg.OTExporterOTLPEndpoint, appLogger)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	} else {
		appLogger.Info("OpenTelemetry tracer not initialized (OTEL_EXPORTER_OTLP_ENDPOINT not set).")
	}

	// 4. MongoDB
	mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := mongoClient.Ping(pingCtx, readpref.Primary()); err != nil {
		cancelPing()
		appLogger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}
	cancelPing()
	appLogger.Info("Successfully connected and pinged MongoDB.")
	db := mongoClient.Database(cfg.MongoDatabase)

	// 5. Listing store
	var listingRepo domain.ListingRepository
	switch cfg.ListingStore {
	case config.StorePostgres:
		gormDB, err := pgRepo.Open(cfg.PostgresDSN, cfg.LogLevel == "debug", appLogger)
		if err != nil {
			appLogger.Fatal("Failed to open Postgres", zap.Error(err))
		}
		if sqlDB, err := gormDB.DB(); err == nil {
			defer sqlDB.Close()
		}
		listingRepo = pgRepo.NewListingRepository(gormDB, appLogger)
	default:
		listingRepo = mongoRepo.NewListingRepository(db, appLogger)
	}
	appLogger.Info("Listing store initialized.", zap.String("store", cfg.ListingStore))

	var authors domain.AuthorDirectory = mongoRepo.NewUserRepository(db, appLogger)
	enquiryRepo := mongoRepo.NewEnquiryRepository(db, appLogger)
	subscriptionRepo := mongoRepo.NewSubscriptionRepository(db, appLogger)

	// 6. Redis cache, optional
	var listingCache domain.ListingCache
	redisCtx, cancelRedis := context.WithTimeout(context.Background(), 3*time.Second)
	redisClient, err := cache.NewRedisClient(redisCtx, cfg.RedisAddress)
	cancelRedis()
	if err != nil {
		appLogger.Warn("Redis unavailable, caching disabled", zap.String("address", cfg.RedisAddress), zap.Error(err))
	} else {
		defer redisClient.Close()
		c := cache.NewListingCache(redisClient, cfg.RedisCacheTTL, appLogger)
		listingCache = c
		authors = cache.NewAuthorDirectory(authors, c)
		appLogger.Info("Redis cache initialized.", zap.Duration("ttl", cfg.RedisCacheTTL))
	}

	// 7. NATS, optional
	var publisher domain.EventPublisher = natsAdapter.NopPublisher{}
	if cfg.NATSURL != "" {
		natsPublisher, err := natsAdapter.NewPublisher(cfg.NATSURL, appLogger, cfg.ServiceName)
		if err != nil {
			appLogger.Warn("NATS unavailable, events will be dropped", zap.Error(err))
		} else {
			defer natsPublisher.Close()
			publisher = natsPublisher
		}
	}

	// 8. Object storage
	storageCtx, cancelStorage := context.WithTimeout(context.Background(), 10*time.Second)
	storage, err := s3.NewS3Storage(storageCtx, s3.Config{
		Endpoint:      cfg.MinIOEndpoint,
		AccessKey:     cfg.MinIOAccessKey,
		SecretKey:     cfg.MinIOSecretKey,
		Bucket:        cfg.MinIOBucket,
		UseSSL:        cfg.MinIOUseSSL,
		PublicBaseURL: cfg.MinIOPublicURL,
	}, appLogger)
	cancelStorage()
	if err != nil {
		appLogger.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// 9. Mailer, optional
	var smtpMailer *mailer.SMTPMailer
	if cfg.SMTPEmail != "" {
		smtpMailer = mailer.NewSMTPMailer(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			From:     cfg.SMTPEmail,
			Password: cfg.SMTPPassword,
		}, appLogger)
	} else {
		appLogger.Info("SMTP_EMAIL not set, email notifications disabled.")
	}

	// 10. Usecases
	metricsManager := metrics.NewMetricsManager(cfg.ServiceName)

	subscriptions := subscriptionUsecase.NewSubscriptionUsecase(subscriptionRepo, listingRepo, publisher, appLogger)
	deps := listingUsecase.Deps{
		Repo:      listingRepo,
		Storage:   storage,
		Cache:     listingCache,
		Authors:   authors,
		Publisher: publisher,
		Metrics:   metricsManager,
		Folder:    cfg.StorageFolder,
	}
	if cfg.SubscriptionRequired {
		deps.Policy = subscriptions
	}
	var enquiryNotifier enquiryDomain.Notifier
	if smtpMailer != nil {
		deps.Notifier = smtpMailer
		enquiryNotifier = smtpMailer
	}
	listings := listingUsecase.NewListingUsecase(deps, appLogger)

	enquiries := enquiryUsecase.NewEnquiryUsecase(enquiryRepo, listingRepo, authors, publisher, enquiryNotifier, metricsManager, appLogger)

	// 11. HTTP server
	handlers := rest.Handlers{
		Listings:      rest.NewListingHandler(listings, cfg.MaxUploadMB<<20, appLogger),
		Enquiries:     rest.NewEnquiryHandler(enquiries, appLogger),
		Subscriptions: rest.NewSubscriptionHandler(subscriptions, appLogger),
		Health: func(ctx context.Context) error {
			return mongoClient.Ping(ctx, readpref.Primary())
		},
	}
	if cfg.PrometheusMetricsPort == "" {
		handlers.Metrics = metricsManager
	}
	router := rest.NewRouter(rest.RouterConfig{
		ServiceName:    cfg.ServiceName,
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins(),
	}, handlers, appLogger)

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", cfg.HTTPPort))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// 12. Prometheus metrics server
	if cfg.PrometheusMetricsPort != "" {
		go func() {
			if err := metrics.StartMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Error("Prometheus metrics server failed", zap.Error(err))
			}
		}()
	}

	// 13. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	appLogger.Info("Application shutting down...")
}
