package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"studiobook/config"
	"studiobook/database"
	"studiobook/database/repository"
	"studiobook/handlers"
	"studiobook/middleware"
	"studiobook/routes"
	"studiobook/services/booking"
	"studiobook/services/crm"
	"studiobook/services/payment"
	"studiobook/services/webhook"
	"studiobook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	db := database.InitDB()
	utils.InitCache()

	vatRate, err := decimal.NewFromString(config.AppConfig.VATRatePercent)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid VAT_RATE_PERCENT %q: %v", config.AppConfig.VATRatePercent, err)
	}

	if status := payment.CheckPaymentServiceConfig(); !status.Configured {
		logger.Sugar().Warnf("main: payment service not fully configured, missing: %v", status.Missing)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	store := repository.NewGormStore(db)

	// services.
	providerClient := payment.NewProviderClient(
		config.AppConfig.PaymentAPIBase,
		config.AppConfig.PaymentAPIKey,
		logger,
	)
	paymentGateway := &payment.Gateway{
		Payments:      store.Payments(),
		OrderPayments: store.OrderPayments(),
		Provider:      providerClient,
		Logger:        logger,
		ReturnURL:     config.AppConfig.PaymentReturnURL,
		FailureURL:    config.AppConfig.PaymentFailureURL,
	}

	var crmNotifier crm.Notifier = crm.NoopNotifier{}
	if config.AppConfig.CRMWebhookURL != "" {
		crmNotifier = crm.NewHTTPNotifier(config.AppConfig.CRMWebhookURL, config.AppConfig.CRMAPIToken, logger)
	}

	bookingService := &booking.DefaultBookingService{
		Tx:           store,
		Store:        store,
		PaymentLinks: paymentGateway,
		CRM:          crmNotifier,
		Cache:        utils.GetCacheClient(),
		Logger:       logger,
		VATRate:      vatRate,
		TxTimeout:    15 * time.Second,
	}

	reconciler := &webhook.Reconciler{
		Reservations:  store.Reservations(),
		Orders:        store.Orders(),
		Payments:      store.Payments(),
		OrderPayments: store.OrderPayments(),
		Events:        store.WebhookEvents(),
		Logger:        logger,
		Secret:        config.AppConfig.PaymentWebhookSecret,
	}

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Booking: handlers.NewBookingHandler(bookingService, logger),
		Studio:  handlers.NewStudioHandler(store.Studios()),
		Payment: handlers.NewPaymentHandler(paymentGateway),
		Webhook: handlers.NewWebhookHandler(reconciler, logger),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(utils.GetCacheClient(), db)

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
