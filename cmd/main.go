package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-service/internal/config"
	"catalog-service/internal/events"
	"catalog-service/internal/handlers"
	"catalog-service/internal/middleware"
	"catalog-service/internal/repository"
	"catalog-service/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	gosharedmw "github.com/Tesseract-Nexus/go-shared/middleware"
	"github.com/Tesseract-Nexus/go-shared/secrets"
	"github.com/Tesseract-Nexus/go-shared/tracing"
)

// @title Catalog API
// @version 1.0.0
// @description Product catalog, stock ledger, carts, orders and wallets

// @contact.name Catalog API Support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8090
// @BasePath /api/v1

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.IsProduction() {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	// Redis backs the read cache; the service still works without it
	var redisClient *redis.Client
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("WARNING: Failed to parse Redis URL: %v (caching will be disabled)", err)
	} else {
		if password := secrets.GetRedisPassword(); password != "" {
			redisOpts.Password = password
		}
		redisClient = redis.NewClient(redisOpts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("WARNING: Failed to connect to Redis: %v (caching will be disabled)", err)
			redisClient.Close()
			redisClient = nil
		} else {
			log.Println("✓ Redis connected successfully")
		}
		cancel()
	}

	repo := repository.NewRepository(db, redisClient)

	// Events are optional
	var publisher services.EventPublisher
	if cfg.NATSURL != "" {
		eventsPublisher, err := events.NewPublisher(cfg.NATSURL, cfg.TenantID, logger)
		if err != nil {
			log.Printf("WARNING: Failed to initialize events publisher: %v (continuing without event publishing)", err)
		} else {
			log.Println("✓ Events publisher initialized (NATS connected)")
			publisher = eventsPublisher
			defer eventsPublisher.Close()
		}
	} else {
		log.Println("NATS_URL not set, skipping event publishing initialization")
	}

	catalogService := services.NewCatalogService(repo, logger)
	productService := services.NewProductService(repo, publisher, logger, cfg.DefaultLowStockThreshold)
	inventoryService := services.NewInventoryService(repo, publisher, logger)
	walletService := services.NewWalletService(repo, logger)
	promotionService := services.NewPromotionService(repo, logger)
	cartService := services.NewCartService(repo, logger)
	orderService := services.NewOrderService(repo, publisher, logger)
	receiptService := services.NewReceiptService(orderService, cfg.StoreName)
	reviewService := services.NewReviewService(repo, logger)

	paging := handlers.Paging{DefaultLimit: cfg.DefaultPageSize, MaxLimit: cfg.MaxPageSize}
	healthHandler := handlers.NewHealthHandler(repo)
	catalogHandler := handlers.NewCatalogHandler(catalogService, paging)
	productHandler := handlers.NewProductHandler(productService, inventoryService, paging)
	promotionHandler := handlers.NewPromotionHandler(promotionService)
	reviewHandler := handlers.NewReviewHandler(reviewService, paging)
	accountHandler := handlers.NewAccountHandler(cartService, orderService, receiptService, walletService, paging)

	var tracerProvider *tracing.TracerProvider
	if cfg.IsProduction() {
		tracerProvider, err = tracing.InitTracer(tracing.ProductionConfig("catalog-service"))
	} else {
		tracerProvider, err = tracing.InitTracer(tracing.DefaultConfig("catalog-service"))
	}
	if err != nil {
		log.Printf("WARNING: Failed to initialize tracing: %v (continuing without tracing)", err)
	} else {
		log.Println("✓ OpenTelemetry tracing initialized")
	}

	metrics := gosharedmw.InitGlobalMetrics("tesseract", "catalog_service")
	log.Println("✓ Prometheus metrics initialized")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(metrics.Middleware())
	router.Use(tracing.GinMiddleware("catalog-service"))
	router.Use(gosharedmw.CompressionMiddleware())
	router.Use(middleware.CORS())

	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/metrics", gosharedmw.Handler())

	api := router.Group("/api/v1")
	if cfg.RateLimitRPS > 0 {
		api.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware())
	}
	catalogHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api)
	promotionHandler.RegisterRoutes(api)
	reviewHandler.RegisterRoutes(api)
	accountHandler.RegisterRoutes(api)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Catalog service starting on port %s", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-quit
	log.Println("Shutting down catalog-service...")

	if tracerProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}
	if redisClient != nil {
		redisClient.Close()
	}

	log.Println("catalog-service stopped")
}
