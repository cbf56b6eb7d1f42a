// File: deskhive/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deskhive/config"
	"deskhive/cron"
	"deskhive/database"
	catalogRepo "deskhive/database/repository/catalog"
	orderRepo "deskhive/database/repository/order"
	"deskhive/handlers"
	"deskhive/middleware"
	"deskhive/routes"
	"deskhive/services/catalog"
	"deskhive/services/checkout"
	"deskhive/services/payment"
	"deskhive/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// Payment gateway.
	var gateway payment.Gateway
	switch config.AppConfig.PaymentGateway {
	case "stripe":
		stripe.Key = config.AppConfig.StripeKey
		gateway = payment.NewStripeGateway()
	default:
		gateway = payment.NewHostedGateway(
			config.AppConfig.GatewayBaseURL,
			config.AppConfig.GatewayKeyID,
			config.AppConfig.GatewayKeySecret,
		)
	}

	// Repositories.
	catRepo := catalogRepo.NewMongoCatalogRepo()
	ordRepo := orderRepo.NewMongoOrderRepo()

	// Services.
	catalogService := &catalog.DefaultCatalogService{
		Repo:     catRepo,
		Cache:    utils.GetCacheClient(),
		CacheTTL: 5 * time.Minute,
		Logger:   logger,
	}

	scheduler := cron.NewScheduler()
	checkoutService := &checkout.DefaultCheckoutService{
		Catalog:    catRepo,
		Orders:     ordRepo,
		Gateway:    gateway,
		Sessions:   checkout.NewRedisSessionStore(utils.GetSessionCacheClient()),
		Scheduler:  scheduler,
		Logger:     logger,
		SessionTTL: time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute,
	}

	cron.InitExpiryWorker(checkoutService)

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Catalog:  handlers.NewCatalogHandler(catalogService),
		Checkout: handlers.NewCheckoutHandler(checkoutService, logger),
		Admin:    handlers.NewAdminHandler(catalogService),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
