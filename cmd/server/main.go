package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shopsy-platform/service-analytics/internal/clients"
	"github.com/shopsy-platform/service-analytics/internal/config"
	"github.com/shopsy-platform/service-analytics/internal/events"
	"github.com/shopsy-platform/service-analytics/internal/handlers"
	"github.com/shopsy-platform/service-analytics/internal/logger"
	"github.com/shopsy-platform/service-analytics/internal/middleware"
	"github.com/shopsy-platform/service-analytics/internal/monitoring"
	"github.com/shopsy-platform/service-analytics/internal/routes"
	"github.com/shopsy-platform/service-analytics/internal/services"
)

func main() {
	// Load .env file in development
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Initialize Sentry for error tracking
	sentryMonitor, err := monitoring.NewSentryMonitor(&monitoring.SentryConfig{
		DSN:              cfg.Sentry.DSN,
		Environment:      cfg.Sentry.Environment,
		Release:          cfg.Sentry.Release,
		ServiceName:      cfg.App.Name,
		TracesSampleRate: 0.1,
	}, zapLogger)
	if err != nil {
		zapLogger.Warn("Failed to initialize Sentry", zap.Error(err))
	}
	defer sentryMonitor.Flush(2 * time.Second)

	// Connect to Redis for the report cache (optional)
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			zapLogger.Warn("Failed to connect to Redis, report caching disabled", zap.Error(err))
			redisClient = nil
		} else {
			zapLogger.Info("Connected to Redis", zap.String("host", cfg.Redis.Host))
			defer redisClient.Close()
		}
		cancel()
	}

	// Connect to NATS (optional - only if configured)
	var natsConn *nats.Conn
	var eventPublisher *events.Publisher
	if cfg.NATS.URL != "" {
		natsConn, err = nats.Connect(cfg.NATS.URL)
		if err != nil {
			zapLogger.Warn("Failed to connect to NATS, order events disabled", zap.Error(err))
		} else {
			zapLogger.Info("Connected to NATS", zap.String("url", cfg.NATS.URL))
			eventPublisher = events.NewPublisher(natsConn, zapLogger)
			defer natsConn.Close()
		}
	}

	// Initialize upstream clients
	orderClient := clients.NewOrderClient(cfg.Upstream.OrdersURL, zapLogger)
	notificationClient := clients.NewNotificationClient(cfg.Upstream.NotificationsURL, zapLogger)

	// Initialize services
	reportCache := services.NewReportCache(redisClient, cfg.Reports.CacheTTL, zapLogger)
	reportService := services.NewReportService(orderClient, reportCache, eventPublisher, zapLogger)
	notificationService := services.NewNotificationService(notificationClient, zapLogger)

	// Start NATS subscriber so upstream order changes refresh the snapshot
	var eventSubscriber *events.Subscriber
	if natsConn != nil {
		eventSubscriber = events.NewSubscriber(natsConn, reportService, zapLogger)
		if err := eventSubscriber.Start(); err != nil {
			zapLogger.Warn("Failed to start event subscriber", zap.Error(err))
		}
	}

	// Start the poller for periodic snapshot refresh
	poller := services.NewPoller(reportService, cfg.Reports.PollInterval, zapLogger)
	if err := poller.Start(); err != nil {
		zapLogger.Fatal("Failed to start report poller", zap.Error(err))
	}

	// Initialize handlers
	analyticsHandler := handlers.NewAnalyticsHandler(reportService, zapLogger)
	orderHandler := handlers.NewOrderHandler(orderClient, reportService, zapLogger)
	notificationHandler := handlers.NewNotificationHandler(notificationService, zapLogger)

	// Set Gin mode
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := gin.New()

	// Apply global middleware
	router.Use(sentryMonitor.GinMiddleware())
	router.Use(sentryMonitor.RecoveryMiddleware())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORSWithOrigins(cfg.App.AllowedOrigins))
	router.Use(middleware.SecurityHeaders())

	// Setup routes using the routes package
	routes.SetupRoutes(router, &routes.RouteConfig{
		AnalyticsHandler:    analyticsHandler,
		OrderHandler:        orderHandler,
		NotificationHandler: notificationHandler,
		JWTSecret:           cfg.JWT.Secret,
	})

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		zapLogger.Info("🚀 Analytics service starting on port " + cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	poller.Stop()
	if eventSubscriber != nil {
		eventSubscriber.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}
