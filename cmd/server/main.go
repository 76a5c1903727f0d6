package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	financeapp "github.com/abdelhalimemara/debrah-exp-v5.8/internal/application/finance"
	notificationapp "github.com/abdelhalimemara/debrah-exp-v5.8/internal/application/notification"
	propertyapp "github.com/abdelhalimemara/debrah-exp-v5.8/internal/application/property"
	reportapp "github.com/abdelhalimemara/debrah-exp-v5.8/internal/application/report"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/auth"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/cache"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/config"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/event"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/logger"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/persistence"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/printing"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/scheduler"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/spreadsheet"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/storage"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/telemetry"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/interfaces/http/handler"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/interfaces/http/middleware"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// changeFeed is a notification change feed owned by the process
type changeFeed interface {
	notificationapp.ChangeFeed
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting finance service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()
	metrics := telemetry.NewMetrics("debrah")

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), 200*time.Millisecond)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if db.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to create sqlite schema", zap.Error(err))
		}
	}
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBName:          cfg.Database.DBName,
		WithVariables:   cfg.App.Env != "production",
		SlowQueryThresh: 200 * time.Millisecond,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected", zap.String("driver", db.Driver))

	// Redis backs the redis change feed and token revocation
	var redisClient *redis.Client
	if cfg.Event.Broker == "redis" {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
	}

	// Repositories
	payableRepo := persistence.NewGormPayableRepository(db.DB)
	payoutRepo := persistence.NewGormOwnerPayoutRepository(db.DB)
	financeRepo := persistence.NewGormOfficeFinanceRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	contractRepo := persistence.NewGormContractRepository(db.DB)
	officeRepo := persistence.NewGormOfficeRepository(db.DB)
	ownerRepo := persistence.NewGormOwnerRepository(db.DB)

	// Event bus and notification change feed
	eventBus := event.NewInMemoryEventBus(log).WithObserver(metrics)
	feed, err := newChangeFeed(ctx, cfg.Event, redisClient, log)
	if err != nil {
		log.Fatal("Failed to start notification feed", zap.Error(err))
	}
	defer func() {
		if err := feed.Close(); err != nil {
			log.Error("Error closing notification feed", zap.Error(err))
		}
	}()
	log.Info("Notification feed ready", zap.String("broker", cfg.Event.Broker))

	// Attachment storage
	var attachments financeapp.AttachmentStorage
	var localFiles *storage.MemoryStorage
	if cfg.Storage.Enabled {
		s3, err := storage.NewS3Storage(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize attachment storage", zap.Error(err))
		}
		if cfg.App.Env != "production" {
			if err := s3.EnsureBucket(ctx); err != nil {
				log.Warn("Attachment bucket not ready", zap.String("bucket", s3.Bucket()), zap.Error(err))
			}
		}
		attachments = s3
	} else {
		localFiles = storage.NewMemoryStorage(fmt.Sprintf("http://localhost:%s/files", cfg.App.Port))
		attachments = localFiles
		log.Warn("Object storage disabled, attachments are kept in memory")
	}

	// Printing and export encoders
	encoders := map[reportapp.Format]reportapp.Encoder{
		reportapp.FormatExcel: spreadsheet.NewExcelEncoder(),
	}
	var receipts reportapp.ReceiptRenderer
	if cfg.Printing.Enabled {
		renderer := printing.NewChromedpRenderer(printing.ChromedpConfig{
			RemoteURL: cfg.Printing.RemoteURL,
			Timeout:   cfg.Printing.Timeout,
			NoSandbox: true,
			Logger:    log,
		})
		defer renderer.Close()
		receipts = printing.NewReceiptPrinter(renderer)
		encoders[reportapp.FormatPDF] = printing.NewPDFEncoder(renderer)
	} else {
		log.Warn("PDF printing disabled")
	}

	// Application services
	payableService := financeapp.NewPayableService(payableRepo, attachments, eventBus, log)
	payoutService := financeapp.NewPayoutService(payoutRepo, eventBus, log)
	financeService := financeapp.NewOfficeFinanceService(financeRepo, eventBus, log)
	notificationService := notificationapp.NewService(notificationRepo, feed, log)
	contractService := propertyapp.NewContractService(contractRepo, eventBus, log)
	reportService := reportapp.NewService(payableService, payoutService, financeService, log)
	exportService := reportapp.NewExportService(reportService, encoders, log)
	documentService := reportapp.NewDocumentService(payableService, payoutService, officeRepo, ownerRepo, receipts, log)

	notificationHandler := notificationapp.NewEventHandler(notificationService, log)
	eventBus.Subscribe(notificationHandler)
	log.Info("Event handlers registered", zap.Strings("notification_events", notificationHandler.EventTypes()))

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := eventBus.Stop(stopCtx); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Ledger scheduler
	if cfg.Scheduler.Enabled {
		ledger := financeapp.NewLedgerJobs(payableService, financeService, notificationService, log)
		ledgerScheduler, err := scheduler.NewScheduler(cfg.Scheduler, scheduler.NewLedgerExecutor(ledger), log)
		if err != nil {
			log.Fatal("Failed to create ledger scheduler", zap.Error(err))
		}
		ledgerScheduler.WithObserver(metrics)
		if err := ledgerScheduler.Start(ctx); err != nil {
			log.Fatal("Failed to start ledger scheduler", zap.Error(err))
		}
		trigger := scheduler.NewCronTrigger(scheduler.CronTriggerConfig{
			DailyHour:     cfg.Scheduler.DailyHour,
			DailyMinute:   cfg.Scheduler.DailyMinute,
			CheckInterval: cfg.Scheduler.CheckInterval,
		}, ledgerScheduler, officeRepo, log)
		if err := trigger.Start(ctx); err != nil {
			log.Fatal("Failed to start ledger trigger", zap.Error(err))
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), cfg.Scheduler.JobTimeout)
			defer cancel()
			if err := trigger.Stop(stopCtx); err != nil {
				log.Error("Error stopping ledger trigger", zap.Error(err))
			}
			if err := ledgerScheduler.Stop(stopCtx); err != nil {
				log.Error("Error stopping ledger scheduler", zap.Error(err))
			}
		}()
		log.Info("Ledger scheduler started",
			zap.Int("daily_hour", cfg.Scheduler.DailyHour),
			zap.Int("daily_minute", cfg.Scheduler.DailyMinute),
			zap.Int("max_concurrent_jobs", cfg.Scheduler.MaxConcurrentJobs),
		)
	}

	// Session resolution
	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient, "debrah:revoked:")
	}
	session := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		Validator: auth.NewTokenValidator(cfg.JWT),
		Blacklist: blacklist,
		Logger:    log,
	})

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	checks := map[string]handler.HealthChecker{"database": db.Ping}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	engine, err := router.NewEngine(router.EngineConfig{
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: cfg.Telemetry.Enabled,
		Logger:         log,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		CORS:           middleware.CORSConfigFrom(cfg.HTTP),
		MaxBodyBytes:   cfg.HTTP.MaxUploadSize + 1<<20,
		Session:        session,
		RateLimiter:    middleware.NewRateLimiter(ctx, cfg.HTTP.RateLimit, cfg.HTTP.RateWindow),
		HTTPObserver:   metrics,
		MetricsHandler: metrics.Handler(),
	},
		handler.NewSystemHandler(cfg.App.Name, version, checks),
		router.Handlers{
			Payables:       handler.NewPayableHandler(payableService, reportService, documentService, cfg.HTTP.MaxUploadSize),
			Payouts:        handler.NewPayoutHandler(payoutService),
			OfficeFinances: handler.NewOfficeFinanceHandler(financeService),
			Reports:        handler.NewReportHandler(reportService, exportService, documentService, metrics),
			Contracts:      handler.NewContractHandler(contractService),
			Notifications: handler.NewNotificationHandler(notificationService,
				handler.WithStreamLogger(log),
				handler.WithStreamHeartbeat(cfg.SSE.HeartbeatInterval),
				handler.WithStreamMaxClients(cfg.SSE.MaxClients),
				handler.WithStreamObserver(metrics),
			),
		},
	)
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}
	if localFiles != nil {
		engine.GET("/files/*key", gin.WrapH(http.StripPrefix("/files/", localFiles)))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
		BaseContext:    func(net.Listener) context.Context { return ctx },
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		log.Error("Server failed", zap.Error(err))
	}
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}

// newChangeFeed builds the configured notification change feed
func newChangeFeed(ctx context.Context, cfg config.EventConfig, client *redis.Client, log *zap.Logger) (changeFeed, error) {
	switch cfg.Broker {
	case "redis":
		f := event.NewRedisChangeFeed(client, cfg.RedisChannel, log)
		if err := f.Start(ctx); err != nil {
			return nil, err
		}
		return f, nil
	case "amqp":
		f, err := event.NewAMQPChangeFeed(cfg.AMQPURL, cfg.AMQPExchange, log)
		if err != nil {
			return nil, err
		}
		if err := f.Start(ctx); err != nil {
			_ = f.Close()
			return nil, err
		}
		return f, nil
	default:
		return hubFeed{event.NewChangeHub()}, nil
	}
}

// hubFeed is the in-process feed; it holds no connection to close
type hubFeed struct {
	*event.ChangeHub
}

func (hubFeed) Close() error { return nil }
