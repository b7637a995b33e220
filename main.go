package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"slotbook/config"
	"slotbook/database"
	"slotbook/handlers"
	"slotbook/routes"
	"slotbook/services/booking"
	"slotbook/services/provider"
	"slotbook/services/slots"
	"slotbook/utils"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := database.OpenStore(ctx, config.AppConfig)
	if err != nil {
		logger.Fatal("main: failed to open availability store", zap.Error(err))
	}
	defer store.Close()

	policy, err := slots.ParseRemainderPolicy(config.AppConfig.SlotRemainderPolicy)
	if err != nil {
		logger.Fatal("main: invalid slot remainder policy", zap.Error(err))
	}
	loc := config.AppConfig.Location()

	// services.
	generator := slots.NewGenerator(store.Repo, policy)
	bookingService := booking.NewBookingService(store.Repo, generator,
		booking.WithLocation(loc),
		booking.WithMetrics(booking.NewMetrics(prometheus.DefaultRegisterer)),
		booking.WithLogger(logger),
	)
	providerService := provider.NewProviderService(store.Repo, generator, time.Now, loc)

	utils.StartHealthMonitor(ctx, store.Checks, utils.HealthCheckInterval)

	router := gin.New()
	router.Use(gin.Recovery())
	routes.RegisterRoutes(router, handlers.NewHandlerBundle(bookingService, providerService), config.AppConfig, prometheus.DefaultGatherer)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting server",
		zap.String("addr", srv.Addr),
		zap.String("store", config.AppConfig.StoreDriver),
		zap.String("timezone", loc.String()),
		zap.String("remainderPolicy", string(policy)),
	)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	logger.Info("main: server stopped gracefully")
}
