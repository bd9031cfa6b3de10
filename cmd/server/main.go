package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/myorders/internal/api"
	"github.com/jafarshop/myorders/internal/catalog"
	"github.com/jafarshop/myorders/internal/config"
	"github.com/jafarshop/myorders/internal/customerservice"
	"github.com/jafarshop/myorders/internal/erp"
	"github.com/jafarshop/myorders/internal/logger"
	"github.com/jafarshop/myorders/internal/metrics"
	"github.com/jafarshop/myorders/internal/repository/postgres"
	"github.com/jafarshop/myorders/internal/service"
	"github.com/jafarshop/myorders/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(logger.ForEnvironment(cfg.Environment, cfg.LogLevel))
	defer log.Sync()

	// Connect to the configuration store
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	repos := postgres.NewRepositories(db, log)

	// Session store
	var sessions session.Store
	if cfg.Redis.Addr == "" {
		log.Warn("REDIS_ADDR not set, sessions are kept in memory")
		sessions = session.NewMemoryStore()
	} else {
		redisStore, err := session.NewRedisStore(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to session store", zap.Error(err))
		}
		defer redisStore.Close()
		sessions = redisStore
	}

	reg := metrics.NewRegistry()
	erpClient := erp.NewClient(cfg.ERP, reg, log)
	csClient := customerservice.NewClient(cfg.CustomerService, reg, log)
	catalogClient := catalog.NewClient(cfg.Catalog, reg, log)

	orders := service.NewOrdersQueryService(service.Dependencies{
		Orders:   erpClient,
		Products: catalogClient,
		Comments: csClient,
		States:   csClient,
		Repos:    repos,
		Sessions: sessions,
		Metrics:  reg,
	}, log)

	router := api.NewRouter(cfg, orders, sessions, reg, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
}
