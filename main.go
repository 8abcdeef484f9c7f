package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"styledecor/config"
	"styledecor/cron"
	"styledecor/database"
	"styledecor/database/repository"
	"styledecor/database/repository/memory"
	"styledecor/handlers"
	"styledecor/routes"
	"styledecor/services/analytics"
	"styledecor/services/auth"
	"styledecor/services/booking"
	"styledecor/services/catalog"
	"styledecor/services/notification"
	"styledecor/services/payment"
	"styledecor/services/storage"
	"styledecor/services/user"
	"styledecor/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Storage backend.
	var repos *repository.Repositories
	var mongoClient *mongo.Client
	if config.UsesMemoryStore() {
		logger.Warn("Using the in-memory store; data is lost on restart")
		repos = repository.NewMemoryRepositories(memory.NewStore())
	} else {
		client, err := database.Connect(ctx, config.AppConfig.DatabaseURL)
		if err != nil {
			logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
		}
		mongoClient = client
		repos = repository.NewMongoRepositories(client.Database(config.AppConfig.DatabaseName))
	}

	// Identity: provider tokens first, then self-issued tokens.
	var verifiers []auth.Verifier
	var fcm *messaging.Client
	if app, err := utils.NewFirebaseApp(ctx); err != nil {
		logger.Warn("Firebase disabled; only self-issued tokens are accepted", zap.Error(err))
	} else {
		authClient, err := app.Auth(ctx)
		if err != nil {
			logger.Fatal("main: failed to init Firebase auth", zap.Error(err))
		}
		verifiers = append(verifiers, auth.NewFirebaseVerifier(authClient, repos.Users))
		if fcm, err = app.Messaging(ctx); err != nil {
			logger.Warn("Firebase messaging disabled", zap.Error(err))
			fcm = nil
		}
	}
	verifiers = append(verifiers, auth.NewJWTVerifier(config.AppConfig.JWTSecret, repos.Users))

	var redisClients []*redis.Client
	var tokenCache auth.TokenCache
	authCache, err := utils.NewAuthCacheClient()
	if err != nil {
		logger.Warn("Auth cache disabled", zap.Error(err))
	} else if authCache != nil {
		tokenCache = auth.NewRedisTokenCache(authCache)
		redisClients = append(redisClients, authCache)
	}
	resolver := auth.NewResolver(repos.Users, tokenCache, verifiers...)

	// Notifications go through the queue only when there is a worker able to deliver them.
	var publisher notification.Publisher = notification.NopPublisher{}
	var worker *asynq.Server
	var queueClient *asynq.Client
	if config.AppConfig.RedisAddr != "" && fcm != nil {
		queueClient = asynq.NewClient(cron.QueueRedisOpt())
		publisher = notification.NewQueuePublisher(queueClient)
		push := notification.NewPushService(repos.Users, fcm, logger.Named("push"))
		worker = cron.InitNotificationWorker(push)
	} else {
		logger.Info("Push notifications disabled")
	}

	if config.AppConfig.StripeSecretKey == "" {
		logger.Warn("STRIPE_SECRET_KEY is not set; checkout requests will fail")
	}
	gateway := payment.NewStripeGateway(config.AppConfig.StripeSecretKey)

	var images storage.ImageStore
	if cld, err := utils.NewCloudinary(); err != nil {
		logger.Warn("Image uploads disabled", zap.Error(err))
	} else {
		images = storage.NewCloudinaryStore(cld, config.AppConfig.CloudinaryFolder)
	}

	// Services.
	services := handlers.Services{
		Bookings: booking.NewBookingService(repos.Bookings, repos.Services, repos.Users, publisher),
		Payments: payment.NewPaymentService(repos.Bookings, repos.Payments, gateway, publisher,
			config.AppConfig.ClientURL, config.AppConfig.StripeCurrency),
		Catalog:   catalog.NewCatalogService(repos.Services, images),
		Users:     user.NewUserService(repos.Users, config.AppConfig.JWTSecret, config.AppConfig.JWTExpiry),
		Analytics: analytics.NewAnalyticsService(repos.Analytics, repos.Services, repos.Users),
		Resolver:  resolver,
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.RegisterRoutes(router, handlers.NewHandlerBundle(services), config.AppConfig.MaxRequestsPerMin)

	go utils.StartHealthMonitor(ctx, redisClients, mongoClient)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.AppConfig.AppPort,
		Handler: router,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("env", config.GetEnv()))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	if queueClient != nil {
		_ = queueClient.Close()
	}
	for _, c := range redisClients {
		_ = c.Close()
	}
	if mongoClient != nil {
		_ = mongoClient.Disconnect(shutdownCtx)
	}

	logger.Info("main: server stopped gracefully")
}
