package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/spm-engineering/billing-service/internal/auth"
	"github.com/spm-engineering/billing-service/internal/config"
	"github.com/spm-engineering/billing-service/internal/events"
	"github.com/spm-engineering/billing-service/internal/handlers"
	"github.com/spm-engineering/billing-service/internal/logging"
	"github.com/spm-engineering/billing-service/internal/repository"
	"github.com/spm-engineering/billing-service/internal/server"
	"github.com/spm-engineering/billing-service/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()
	logging.Configure(cfg.Log.Level, cfg.Log.Format)

	logger := logging.NewLogger("billing-service")
	logging.Infof("Starting billing-service on port %d", cfg.Server.Port)

	db, err := initDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", logging.Fields{"error": err.Error()})
	}
	defer db.Close()

	if cfg.Features.AutoMigrate {
		if err := repository.Migrate(context.Background(), db); err != nil {
			logger.Fatal("Failed to apply schema", logging.Fields{"error": err.Error()})
		}
		logger.Info("Schema applied")
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	defer redisClient.Close()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Warn("Redis unreachable, invoice caching disabled", logging.Fields{"error": err.Error()})
		cfg.Features.EnableInvoiceCaching = false
	}

	invoiceRepo := repository.NewPostgresInvoiceRepository(db, logger)
	customerRepo := repository.NewPostgresCustomerRepository(db, logger)
	itemRepo := repository.NewPostgresItemRepository(db, logger)
	statsRepo := repository.NewPostgresStatsRepository(db, logger)
	cache := repository.NewRedisInvoiceCache(redisClient, cfg.Redis)
	locker := service.NewRedisLocker(redisClient)

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Features.EnableInvoiceEvents {
		publisher = events.NewKafkaPublisher(cfg.Kafka, logger)
	}
	defer publisher.Close()

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		// Tokens then stop validating after a restart.
		secret = uuid.NewString()
		logger.Warn("AUTH_JWT_SECRET not set, using a random secret")
	}
	tokens := auth.NewTokenIssuer(secret, cfg.Auth.TokenTTL)

	h := handlers.NewHandlers(handlers.Services{
		Invoices:  service.NewInvoiceService(invoiceRepo, cache, publisher, locker, cfg),
		Customers: service.NewCustomerService(customerRepo),
		Items:     service.NewItemService(itemRepo),
		Dashboard: service.NewDashboardService(statsRepo, cache, cfg),
		Auth:      service.NewAuthService(cfg.Auth.PinHash, tokens),
	}, cfg, map[string]handlers.ReadinessCheck{
		"postgres": db.PingContext,
		"redis": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	})

	srv := server.New(h, cfg, server.Options{
		RateStore: redisClient,
		Tokens:    tokens,
	})

	go func() {
		logger.Info("Server starting", logging.Fields{
			"port":                   cfg.Server.Port,
			"environment":            cfg.Server.Environment,
			"enable_invoice_caching": cfg.Features.EnableInvoiceCaching,
			"enable_invoice_events":  cfg.Features.EnableInvoiceEvents,
			"require_auth":           cfg.Features.RequireAuth,
		})
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", logging.Fields{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", logging.Fields{"error": err.Error()})
	}

	logger.Info("Server exited")
}

func initDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	logging.Info("Database connected", logging.Fields{
		"host": cfg.Database.Host,
		"name": cfg.Database.Name,
	})

	return db, nil
}
