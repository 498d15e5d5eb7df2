package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"karesave-backend/configs"
	"karesave-backend/internal/cart"
	"karesave-backend/internal/catalog"
	"karesave-backend/internal/chatbot"
	"karesave-backend/internal/handlers"
	"karesave-backend/internal/middleware"
	"karesave-backend/internal/models"
	"karesave-backend/internal/repositories"
	"karesave-backend/internal/services"
	"karesave-backend/pkg/auth"
	"karesave-backend/pkg/cache"
	"karesave-backend/pkg/database"
	"karesave-backend/pkg/logger"
	"karesave-backend/pkg/messaging"
	"karesave-backend/pkg/money"
)

const serviceName = "karesave-backend"

func main() {
	config := configs.LoadConfig()

	gin.SetMode(config.Server.Mode)
	log := logger.Must(config.Server.Mode)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize databases
	db, err := database.NewDatabase(ctx, config.Database.PostgresURL, config.Database.MongoURL, config.Database.MongoDBName, log)
	if err != nil {
		log.Fatal("failed to connect to databases", zap.Error(err))
	}
	defer db.Close()

	if config.Database.AutoMigrate {
		if err := db.Migrate(models.AllPostgresModels()...); err != nil {
			log.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	// Redis is optional: without it carts live only in memory.
	var sideStore cart.SideStore
	redisCache, err := cache.NewRedisCache(ctx, config.Redis.URL, config.Redis.Password, config.Redis.DB)
	if err != nil {
		log.Warn("Redis unavailable, cart mirror disabled", zap.Error(err))
	} else {
		defer redisCache.Close()
		sideStore = cart.NewRedisSideStore(redisCache, config.Cart.MirrorTTL)
	}

	// Initialize repositories
	pgRepos := repositories.NewGormRepos(db.Postgres)
	txManager := repositories.NewTxManagerGorm(db.Postgres)
	adminRepo := repositories.NewAdminUserRepository(db.Postgres)
	outboxRepo := repositories.NewOutboxRepository(db.Postgres)

	var (
		productRepo repositories.ProductRepository
		messageRepo repositories.ChatMessageRepository
		inboxRepo   repositories.InboxRepository
	)
	if db.MongoDB != nil {
		productRepo = repositories.NewProductRepository(db.MongoDB)
		messageRepo = repositories.NewChatMessageRepository(db.MongoDB)
		inboxRepo = repositories.NewInboxRepository(db.MongoDB)
	}

	// Catalog and carts
	products := services.NewCatalogService(productRepo, catalog.SeedProducts(), log).Load(ctx)
	pricing := cart.Pricing{
		FreeShippingThreshold: money.Rupees(config.Cart.FreeShippingThreshold),
		DeliveryFee:           money.Rupees(config.Cart.DeliveryFee),
	}
	carts := cart.NewManager(products, pricing, sideStore, config.Cart.SaveTimeout, log.Named("cart"))
	carts.StartJanitor(ctx, config.Cart.JanitorInterval, config.Cart.SessionIdleTTL)

	// Initialize services
	jwtManager := auth.NewJWTManager(config.JWT.SecretKey, config.JWT.ExpiryHours, config.JWT.RefreshExpiryDays)

	authService := services.NewAuthService(adminRepo, jwtManager, log)
	if err := authService.EnsureAdmin(ctx, config.Admin.Name, config.Admin.Email, config.Admin.Password); err != nil {
		log.Error("failed to bootstrap admin user", zap.Error(err))
	}
	checkoutService := services.NewCheckoutService(carts, txManager, pgRepos.Orders(), log)
	outreachService := services.NewOutreachService(txManager, log)
	chatService := services.NewChatService(chatbot.NewResponder(chatbot.DefaultLanguages()), messageRepo, log)
	adminService := services.NewAdminService(pgRepos, inboxRepo, log)

	// Event pipeline
	if config.Kafka.Enabled {
		producer := messaging.NewKafkaProducer(config.Kafka.Brokers)
		defer producer.Close()

		relay := services.NewOutboxRelay(outboxRepo, producer, config.Kafka.TopicPrefix,
			config.Outbox.PollInterval, config.Outbox.BatchSize, log.Named("outbox"))
		relay.Start(ctx)
		defer relay.Stop()

		if inboxRepo != nil {
			consumer := messaging.NewKafkaConsumer(config.Kafka.Brokers, config.Kafka.GroupID, log.Named("kafka"))
			defer consumer.Close()

			projector := services.NewInboxProjector(consumer, inboxRepo, config.Kafka.TopicPrefix, log.Named("inbox"))
			go func() {
				if err := projector.Run(ctx); err != nil {
					log.Error("inbox projector stopped", zap.Error(err))
				}
			}()
		}
	} else {
		log.Warn("Kafka disabled, outbox events stay unpublished")
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	// Initialize handlers
	healthChecks := map[string]handlers.HealthCheck{"postgres": db.PingPostgres}
	if db.MongoDB != nil {
		healthChecks["mongodb"] = db.PingMongo
	}
	if redisCache != nil {
		healthChecks["redis"] = redisCache.Ping
	}
	healthHandler := handlers.NewHealthHandler(serviceName, healthChecks)
	productHandler := handlers.NewProductHandler(products)
	cartHandler := handlers.NewCartHandler(carts, products)
	orderHandler := handlers.NewOrderHandler(checkoutService)
	outreachHandler := handlers.NewOutreachHandler(outreachService)
	chatHandler := handlers.NewChatHandler(chatService)
	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.CORSMiddleware(config.Server.AllowedOrigins))

	healthHandler.RegisterRoutes(router)

	api := router.Group("/api/v1")
	productHandler.RegisterRoutes(api)
	authHandler.RegisterRoutes(api)
	adminHandler.RegisterRoutes(api, authMiddleware)

	// Storefront routes carry a browsing session
	shop := api.Group("", middleware.SessionMiddleware(config.Server.Mode == gin.ReleaseMode))
	cartHandler.RegisterRoutes(shop)
	orderHandler.RegisterRoutes(shop)
	outreachHandler.RegisterRoutes(shop)
	chatHandler.RegisterRoutes(shop)

	srv := &http.Server{
		Addr:              net.JoinHostPort(config.Server.Host, config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr), zap.String("mode", config.Server.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	if err := carts.Flush(shutdownCtx); err != nil {
		log.Warn("cart mirror flush incomplete", zap.Error(err))
	}
	log.Info("server stopped")
}
