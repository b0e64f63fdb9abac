package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"welfare-ledger/internal/api"
	mw "welfare-ledger/internal/api/middleware"
	"welfare-ledger/internal/batch"
	"welfare-ledger/internal/bridge"
	"welfare-ledger/internal/config"
	"welfare-ledger/internal/domain/account"
	"welfare-ledger/internal/domain/customer"
	"welfare-ledger/internal/domain/ledger"
	"welfare-ledger/internal/domain/loan"
	"welfare-ledger/internal/domain/seniority"
	"welfare-ledger/internal/domain/subscription"
	"welfare-ledger/internal/domain/trash"
	"welfare-ledger/internal/event"
	"welfare-ledger/internal/export"
	"welfare-ledger/internal/infrastructure/database/postgres"
	"welfare-ledger/internal/notification"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the bridge socket and the trash purge schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := initializeApp(cfgPath)
		if err != nil {
			return err
		}
		return serve(cfg, logger)
	},
}

// app holds what must be closed on shutdown.
type app struct {
	dbPool *pgxpool.Pool
	redis  *redis.Client
	rabbit *amqp.Connection
	hub    *bridge.Hub
}

func (a *app) close(logger *slog.Logger) {
	if a.hub != nil {
		logger.Info("Closing bridge connections...", "devices", a.hub.Count())
		a.hub.CloseAll()
	}
	if a.rabbit != nil {
		if err := a.rabbit.Close(); err != nil {
			logger.Warn("RabbitMQ close failed", "error", err)
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.Warn("Redis close failed", "error", err)
		}
	}
	if a.dbPool != nil {
		logger.Info("Closing database connection pool...")
		a.dbPool.Close()
	}
}

func serve(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := &app{}
	defer a.close(logger)

	dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	a.dbPool = dbPool
	if _, err := postgres.Migrate(ctx, dbPool, logger); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	a.redis = initializeRedis(ctx, cfg.Redis, logger)
	publisher, rabbit := initializePublisher(cfg.RabbitMQ, logger)
	a.rabbit = rabbit

	svc, trashService := initializeServices(dbPool, publisher, cfg, logger)

	var sessions bridge.SessionStore = bridge.NewMemorySessionStore()
	var limiterStore redis.Cmdable
	if a.redis != nil {
		sessions = bridge.NewRedisSessionStore(a.redis)
		limiterStore = a.redis
	}
	a.hub = bridge.NewHub(logger)
	svc.DeepLinks = a.hub
	svc.BridgeSocket = bridge.NewServer(a.hub, bridge.Deps{
		Sessions:   sessions,
		PushTokens: postgres.NewPushTokenRepository(dbPool, logger),
		Tokens:     svc.Tokens,
		Files:      export.NewLinker(cfg.Bridge.PublicBaseURL),
	}, cfg.Bridge, logger)

	var rateLimiter *mw.RateLimiterMiddleware
	if cfg.Server.RateLimit.Enabled {
		rateLimiter = mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, limiterStore, logger)
		rateLimiter.StartCleanup(ctx)
	}

	purgeJob := batch.NewTrashPurgeJob(trashService, cfg.Batch.TrashRetentionDays, logger)
	cronScheduler, err := batch.StartScheduler(cfg.Batch, purgeJob, logger)
	if err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	router := api.SetupRouter(svc, rateLimiter, cfg, logger)
	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, shutdownChan, serverErrors, logger)
	return nil
}

func initializeRedis(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) *redis.Client {
	if cfg.Addr == "" {
		logger.Info("Redis not configured; bridge sessions and rate limits stay in memory")
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis unreachable; falling back to in-memory stores", "addr", cfg.Addr, "error", err)
		_ = client.Close()
		return nil
	}
	logger.Info("Connected to Redis", "addr", cfg.Addr)
	return client
}

func initializePublisher(cfg config.RabbitMQConfig, logger *slog.Logger) (event.EventPublisher, *amqp.Connection) {
	if !cfg.Enabled {
		return event.NewNoopEventPublisher(logger), nil
	}
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		logger.Warn("RabbitMQ unreachable; domain events will not be published", "error", err)
		return event.NewNoopEventPublisher(logger), nil
	}
	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.ExchangeName, logger)
	if err != nil {
		logger.Warn("RabbitMQ publisher setup failed; domain events will not be published", "error", err)
		_ = conn.Close()
		return event.NewNoopEventPublisher(logger), nil
	}
	return publisher, conn
}

func initializeServices(dbPool *pgxpool.Pool, publisher event.EventPublisher, cfg *config.Config, logger *slog.Logger) (api.Services, trash.Service) {
	logger.Info("Initializing application components...")
	customerService := customer.NewCustomerService(postgres.NewCustomerRepository(dbPool, logger), publisher, logger)
	loanService := loan.NewLoanService(postgres.NewLoanRepository(dbPool, logger), customerService, publisher, logger)
	subscriptionService := subscription.NewSubscriptionService(postgres.NewSubscriptionRepository(dbPool, logger), customerService, logger)
	ledgerService := ledger.NewLedgerService(postgres.NewDataEntryRepository(dbPool, logger), logger)
	trashService := trash.NewTrashService(postgres.NewTrashRepository(dbPool, logger), logger)
	tokens := account.NewTokenIssuer(cfg.Server.Auth.JWTSecret, cfg.Server.Auth.TokenTTL)

	return api.Services{
		Accounts: account.NewAccountService(
			postgres.NewAccountRepository(dbPool, logger),
			customerService,
			tokens,
			notification.NewMailer(cfg.Mail, logger),
			logger,
		),
		Customers:     customerService,
		Loans:         loanService,
		Subscriptions: subscriptionService,
		Ledger:        ledgerService,
		Seniority:     seniority.NewSeniorityService(postgres.NewSeniorityRepository(dbPool, logger), customerService, loanService, logger),
		Trash:         trashService,
		Export:        export.NewService(customerService, loanService, subscriptionService, ledgerService, cfg.Export.FontDir, logger),
		Tokens:        tokens,
	}, trashService
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Waiting for signal or server error...")

	select {
	case sig := <-shutdownChan:
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil {
			logger.Error("Server exited unexpectedly", "error", err)
		}
		batch.StopScheduler(cronScheduler, 15*time.Second, logger)
		return
	}

	batch.StopScheduler(cronScheduler, 15*time.Second, logger)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	}

	select {
	case err := <-serverErrors:
		if err != nil {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}

	logger.Info("Application shutdown process complete.")
}
