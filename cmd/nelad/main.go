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

	"github.com/scatauk/nela-api/internal/application/usecase"
	"github.com/scatauk/nela-api/internal/domain/port"
	"github.com/scatauk/nela-api/internal/domain/schema"
	"github.com/scatauk/nela-api/internal/domain/service"
	"github.com/scatauk/nela-api/internal/infrastructure/config"
	"github.com/scatauk/nela-api/internal/infrastructure/kafka"
	"github.com/scatauk/nela-api/internal/infrastructure/messaging"
	"github.com/scatauk/nela-api/internal/infrastructure/metrics"
	grpcpresentation "github.com/scatauk/nela-api/internal/presentation/grpc"
	"github.com/scatauk/nela-api/internal/presentation/rest"
	pkgkafka "github.com/scatauk/nela-api/pkg/kafka"
	"github.com/scatauk/nela-api/pkg/observability"
)

const serviceName = "nela-api"

func main() {
	if err := run(); err != nil {
		slog.Error("nela-api exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	logCfg := observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}
	logger := observability.InitLogger(logCfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("starting nela-api",
		slog.String("http_port", cfg.HTTPPort),
		slog.String("grpc_port", cfg.GRPCPort),
		slog.Bool("strict_field_order", cfg.StrictOrder),
	)

	// Initialize tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		Endpoint:    cfg.OTLPEndpoint,
		Enabled:     cfg.TracingEnabled,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", slog.String("error", err.Error()))
	} else {
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				logger.Warn("tracer shutdown error", slog.String("error", err.Error()))
			}
		}()
	}

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: serviceName,
	})
	if err != nil {
		return fmt.Errorf("initializing metrics: %w", err)
	}
	defer meterProvider.Shutdown(context.Background())

	recorder, err := metrics.NewRecorder(meterProvider.Meter(serviceName))
	if err != nil {
		return fmt.Errorf("creating metrics recorder: %w", err)
	}

	// Wire domain services.
	var schemaOpts []schema.Option
	if cfg.StrictOrder {
		schemaOpts = append(schemaOpts, schema.WithStrictOrder())
	}
	validator, err := schema.Default(schemaOpts...)
	if err != nil {
		return fmt.Errorf("loading input schema: %w", err)
	}
	calculator := service.NewRiskCalculator(validator,
		service.WithDiagnostics(observability.DiagnosticLogger(cfg.NelaDebug, logCfg)),
	)

	// Wire infrastructure adapters.
	readiness := map[string]rest.ReadinessCheck{
		"schema": rest.SchemaReadiness(validator),
	}

	var publisher port.EventPublisher
	if cfg.KafkaEnabled() {
		kafkaCfg := pkgkafka.Config{
			Brokers:       cfg.KafkaBrokers,
			ClientID:      cfg.KafkaClientID,
			TLS:           cfg.KafkaTLS,
			SASLEnabled:   cfg.KafkaSASLEnabled(),
			SASLMechanism: cfg.KafkaSASLMechanism,
			SASLUsername:  cfg.KafkaSASLUsername,
			SASLPassword:  cfg.KafkaSASLPassword,
			WriteTimeout:  5 * time.Second,
		}
		producer, err := pkgkafka.NewProducer(kafkaCfg)
		if err != nil {
			return fmt.Errorf("creating kafka producer: %w", err)
		}
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Warn("kafka producer close error", slog.String("error", err.Error()))
			}
		}()
		publisher = kafka.NewPublisher(producer, cfg.KafkaTopic, logger)
		readiness["kafka"] = func(ctx context.Context) error {
			return pkgkafka.Ping(ctx, kafkaCfg)
		}
		logger.Info("publishing risk events to kafka", slog.String("topic", cfg.KafkaTopic))
	} else {
		publisher = messaging.NewLogPublisher(cfg.KafkaTopic, logger)
		logger.Info("KAFKA_BROKERS not set, risk events will be logged")
	}

	// Wire use cases.
	calculateRisk := usecase.NewCalculateRisk(calculator, publisher, recorder, logger)

	// gRPC server.
	grpcServer, err := grpcpresentation.NewServer(
		grpcpresentation.NewNelaRiskHandler(calculateRisk, logger),
		grpcpresentation.ServerConfig{
			Address:     cfg.GRPCAddress(),
			TLSCertFile: cfg.GRPCTLSCert,
			TLSKeyFile:  cfg.GRPCTLSKey,
			Reflection:  cfg.GRPCReflection,
		},
		logger,
	)
	if err != nil {
		return err
	}

	// HTTP server.
	router := rest.NewRouter(rest.RouterConfig{
		Logger:    logger,
		Risk:      rest.NewRiskHandler(calculateRisk, logger),
		Schema:    rest.NewSchemaHandler(validator.Document()),
		Health:    rest.NewHealthHandler(logger, readiness),
		Metrics:   metricsHandler,
		RateLimit: cfg.RateLimit,
	})

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", slog.String("address", cfg.HTTPAddress()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("nela-api started",
		slog.String("grpc_address", cfg.GRPCAddress()),
		slog.String("http_address", cfg.HTTPAddress()),
		slog.String("environment", cfg.Environment),
	)

	// Wait for shutdown signal.
	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server error", slog.String("error", serveErr.Error()))
	}

	// Graceful shutdown.
	logger.Info("shutting down nela-api")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}
	grpcServer.Stop()

	logger.Info("nela-api stopped")
	return serveErr
}
