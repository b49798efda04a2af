package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"footprint/cmd"
	httpin "footprint/internal/adapters/in/http"
	"footprint/internal/adapters/out/postgres/auditrepo"
	"footprint/internal/adapters/out/postgres/historyrepo"
	"footprint/internal/adapters/out/postgres/orderrepo"
	"footprint/internal/adapters/out/r2"
	"footprint/internal/adapters/out/rabbitmq"
	"footprint/internal/pkg/logging"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := cmd.LoadConfig()
	logger := logging.New(os.Stderr, logging.ParseLevel(configs.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB := openDatabase(configs)

	storageClient, err := r2.NewClient(r2.Config{
		AccountID:       configs.R2AccountID,
		AccessKeyID:     configs.R2AccessKeyID,
		SecretAccessKey: configs.R2SecretAccessKey,
		Bucket:          configs.R2Bucket,
		Endpoint:        configs.R2Endpoint,
	})
	if err != nil {
		log.Fatalf("Error configuring R2 storage: %v", err)
	}

	infra := cmd.Infrastructure{
		Events:  rabbitmq.NewNoopPublisher(logger),
		Storage: r2.NewStorage(storageClient, configs.R2Bucket),
	}

	if configs.RabbitMQURL != "" {
		publisher, dialErr := rabbitmq.Dial(configs.RabbitMQURL, rabbitmq.DefaultBreakerConfig(), logger)
		if dialErr != nil {
			log.Fatalf("Error connecting to RabbitMQ: %v", dialErr)
		}
		defer publisher.Close()
		infra.Events = publisher
	}

	if configs.RedisURL != "" {
		opt, parseErr := redis.ParseURL(configs.RedisURL)
		if parseErr != nil {
			log.Fatalf("Error parsing REDIS_URL: %v", parseErr)
		}
		client := redis.NewClient(opt)
		defer client.Close()
		if pingErr := client.Ping(ctx).Err(); pingErr != nil {
			log.Fatalf("Error connecting to Redis: %v", pingErr)
		}
		infra.Redis = client
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, infra, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, &app, configs)
}

func openDatabase(configs cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &historyrepo.StatusHistoryDTO{}, &auditrepo.AuditEntryDTO{})
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	return gormDB
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config) {
	bulkLimit, err := app.CreateBulkRateLimit()
	if err != nil {
		log.Fatalf("Error configuring rate limit: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpin.ErrorHandler(app.Logger())
	e.Use(middleware.Recover())
	e.Use(httpin.RequestID())

	doc, err := httpin.LoadOpenAPI(ctx)
	if err != nil {
		log.Fatalf("Error loading API description: %v", err)
	}

	httpin.RegisterRoutes(e, app.CreateServer(), bulkLimit)
	httpin.RegisterOpenAPI(e, doc)

	go func() {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); startErr != nil &&
			!errors.Is(startErr, http.ErrServerClosed) {
			e.Logger.Fatal(startErr)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.ShutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
