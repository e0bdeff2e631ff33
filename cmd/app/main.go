package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"escrow/cmd"
	httpin "escrow/internal/adapters/in/http"
	"escrow/internal/adapters/out/postgres"
	"escrow/internal/adapters/out/postgres/orderrepo"
	"escrow/internal/adapters/out/postgres/transferrepo"
	_ "escrow/internal/api/docs"
	"escrow/internal/api/servers"
	"escrow/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &transferrepo.TransferDTO{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	escrowMetrics := metrics.NewEscrowMetrics(registry)

	app, err := cmd.NewCompositionRoot(configs, gormDB, escrowMetrics, logger)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	transferer, err := app.CreateValueTransferer()
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer transferer.Close()

	listener, err := postgres.NewTransferListener(configs.DSN(), logger)
	if err != nil {
		log.Fatalf("failed to listen for transfers: %v", err)
	}
	defer listener.Close()

	jobManager := app.CreateJobManager(transferer, listener.Wakeups())
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startWebServer(ctx, app, registry, escrowMetrics, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config := cmd.Config{
		HTTPPort:             os.Getenv("HTTP_PORT"),
		DBHost:               os.Getenv("DB_HOST"),
		DBPort:               os.Getenv("DB_PORT"),
		DBUser:               os.Getenv("DB_USER"),
		DBPassword:           os.Getenv("DB_PASSWORD"),
		DBName:               os.Getenv("DB_NAME"),
		DBSslMode:            os.Getenv("DB_SSLMODE"),
		EscrowOwnerID:        os.Getenv("ESCROW_OWNER_ID"),
		OrderIDCollision:     os.Getenv("ORDER_ID_COLLISION"),
		TransferDispatchSize: os.Getenv("TRANSFER_DISPATCH_BATCH"),
		TransferBroker:       os.Getenv("TRANSFER_BROKER"),
		RabbitMQURL:          os.Getenv("RABBITMQ_URL"),
		RabbitMQQueue:        os.Getenv("RABBITMQ_QUEUE"),
		NATSURL:              os.Getenv("NATS_URL"),
		NATSSubject:          os.Getenv("NATS_SUBJECT"),
	}
	return config
}

func startWebServer(
	ctx context.Context,
	app cmd.CompositionRoot,
	registry *prometheus.Registry,
	escrowMetrics *metrics.EscrowMetrics,
	port string,
	logger *slog.Logger,
) {
	swagger, err := servers.GetSwagger()
	if err != nil {
		log.Fatalf("failed to load OpenAPI document: %v", err)
	}
	validator, err := httpin.RequestValidator(swagger)
	if err != nil {
		log.Fatalf("failed to build request validator: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(httpin.RequestMetrics(escrowMetrics))
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, app.CreateHTTPServer())

	started := make(chan error, 1)
	go func() {
		started <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case <-ctx.Done():
	case err := <-started:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server stopped", "error", err)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
