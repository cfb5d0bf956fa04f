package appServer

import (
	"context"
	"crypto/tls"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ds124wfegd/boxoffice/config"
	"github.com/ds124wfegd/boxoffice/internal/catalog"
	repository "github.com/ds124wfegd/boxoffice/internal/database/postgres"
	cache "github.com/ds124wfegd/boxoffice/internal/database/redis"
	"github.com/ds124wfegd/boxoffice/internal/service"
	"github.com/ds124wfegd/boxoffice/internal/transport"
	"github.com/ds124wfegd/boxoffice/internal/worker"

	"github.com/ds124wfegd/boxoffice/pkg/kafka"
	"github.com/ds124wfegd/boxoffice/pkg/postgres"
	"github.com/ds124wfegd/boxoffice/pkg/queue"
	"github.com/ds124wfegd/boxoffice/pkg/rabbitMQ"
	"github.com/ds124wfegd/boxoffice/pkg/redis"
	"github.com/ds124wfegd/boxoffice/pkg/scheduler"
	"github.com/ds124wfegd/boxoffice/pkg/telegram"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// infra holds the optional backends. Disabled or unreachable ones stay nil.
type infra struct {
	db       *sql.DB
	redis    *goredis.Client
	producer kafka.Producer
	rabbit   *rabbitMQ.RabbitMQ
	bot      *telegram.Bot
}

func connectInfra(ctx context.Context, cfg *config.Config) *infra {
	in := &infra{}

	if cfg.Database.Enabled {
		db, err := postgres.NewPostgresDB(&cfg.Database)
		if err != nil {
			logrus.WithError(err).Warn("Postgres unavailable, sale ledger disabled")
		} else if err := postgres.RunMigrations(ctx, db); err != nil {
			logrus.WithError(err).Warn("Failed to run migrations, sale ledger disabled")
			db.Close()
		} else {
			in.db = db
		}
	}

	if cfg.Redis.Enabled {
		client, err := redis.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			logrus.WithError(err).Warn("Redis unavailable, cache and dead letter queue disabled")
		} else {
			in.redis = client
		}
	}

	if cfg.Kafka.Enabled {
		in.producer = kafka.NewProducer(&cfg.Kafka)
	}

	if cfg.RabbitMQ.Enabled {
		mq, err := rabbitMQ.NewRabbitMQ(&cfg.RabbitMQ)
		if err != nil {
			logrus.WithError(err).Warn("RabbitMQ unavailable, customer notifications disabled")
		} else {
			in.rabbit = mq
		}
	}

	if cfg.Telegram.Enabled && cfg.Telegram.BotToken != "" {
		in.bot = telegram.NewBot(cfg.Telegram.BotToken)
		logrus.Info("Telegram bot initialized")
	} else {
		logrus.Warn("Telegram bot disabled, notifications are logged only")
	}

	return in
}

// healthChecks covers the backends that are connected. Disabled ones are not reported.
func (in *infra) healthChecks() map[string]transport.HealthCheck {
	checks := make(map[string]transport.HealthCheck)
	if in.db != nil {
		checks["postgres"] = in.db.PingContext
	}
	if in.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return in.redis.Ping(ctx).Err()
		}
	}
	if in.rabbit != nil {
		checks["rabbitmq"] = func(ctx context.Context) error {
			return in.rabbit.HealthCheck()
		}
	}
	return checks
}

func (in *infra) close() {
	if in.rabbit != nil {
		if err := in.rabbit.Close(); err != nil {
			logrus.WithError(err).Error("Failed to close RabbitMQ")
		}
	}
	if in.producer != nil {
		if err := in.producer.Close(); err != nil {
			logrus.WithError(err).Error("Failed to close Kafka producer")
		}
	}
	if in.redis != nil {
		in.redis.Close()
	}
	if in.db != nil {
		in.db.Close()
	}
}

func NewServer(cfg *config.Config) {

	logrus.SetOutput(os.Stdout)
	if cfg.Server.Mode == gin.DebugMode {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize catalog
	manager, err := catalog.NewManager(cfg.App.CompanyName,
		catalog.WithUniqueKeys(cfg.App.EnforceUniqueKeys),
		catalog.WithSellableStatusCheck(cfg.App.RejectUnsellable),
	)
	if err != nil {
		logrus.Fatalf("Failed to initialize catalog: %v", err)
	}
	if cfg.App.SeedDemoData {
		if err := catalog.SeedDemo(manager); err != nil {
			logrus.Fatalf("Failed to seed demo data: %v", err)
		}
		logrus.Info("Demo catalog loaded")
	}

	in := connectInfra(ctx, cfg)
	defer in.close()

	// Optional dependencies are passed as untyped nil so the services skip them
	var (
		saleRepo   repository.SaleRepository
		cacheRepo  repository.CacheRepository
		publisher  service.SalePublisher
		notifier   service.Notifier
		dlqHandler queue.DLQHandler
		sender     worker.MessageSender
	)
	if in.db != nil {
		saleRepo = repository.NewSaleRepository(in.db)
	}
	if in.redis != nil {
		cacheRepo = cache.NewCacheRepository(in.redis)
		dlqHandler = queue.NewRedisDLQHandler(in.redis, queue.DefaultDLQKey)
	}
	if in.producer != nil {
		publisher = service.NewKafkaSalePublisher(in.producer)
	}
	if in.rabbit != nil {
		notifier = service.NewQueueNotifier(in.rabbit)
	}
	if in.bot != nil {
		sender = in.bot
	}

	// Initialize services
	catalogService := service.NewCatalogService(manager, cacheRepo)
	salesService := service.NewSalesService(manager, saleRepo, cacheRepo, publisher, notifier,
		&service.SalesServiceConfig{CacheTTL: cfg.App.ReportCacheTTL})
	notificationService := service.NewNotificationService(dlqHandler, notifier)

	if err := salesService.SyncPopularity(ctx); err != nil {
		logrus.WithError(err).Warn("Popularity ranking not synced")
	}

	// Start notification worker if the queue is available
	if in.rabbit != nil {
		retryManager := queue.NewRetryManager(cfg.Worker.MaxRetries, cfg.Worker.RetryBaseDelay)
		notificationWorker := worker.NewNotificationWorker(in.rabbit, sender, cfg.Telegram.ChatID, retryManager, dlqHandler)
		if err := notificationWorker.Start(ctx); err != nil {
			logrus.WithError(err).Error("Notification worker not started")
		}
	}

	// Initialize and start scheduler
	snapshotScheduler := scheduler.NewScheduler(salesService, cfg.Worker.SnapshotInterval)
	go snapshotScheduler.Start(ctx)

	// Initialize handlers
	handlers := transport.Handlers{
		Items:         transport.NewItemHandler(catalogService),
		Customers:     transport.NewCustomerHandler(catalogService, salesService),
		Sales:         transport.NewSaleHandler(salesService),
		Reports:       transport.NewReportHandler(salesService),
		Notifications: transport.NewNotificationHandler(notificationService),
		Health:        transport.NewHealthHandler(in.healthChecks()),
	}

	if cfg.Server.Mode == gin.ReleaseMode || cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(handlers, cfg.Server.RequestTimeout)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.WithFields(logrus.Fields{
		"port":    cfg.Server.Port,
		"company": cfg.App.CompanyName,
		"version": cfg.Server.AppVersion,
	}).Info("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Info("App Shutting Down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
