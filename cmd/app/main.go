package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deliverus/cmd"
	api "deliverus/internal/adapters/in/http"
	"deliverus/internal/adapters/out/postgres"
	"deliverus/internal/pkg/logger"

	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	zapLogger, err := logger.New(configs.LogLevel)
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}

	os.Exit(exitCode(run(configs, zapLogger), zapLogger))
}

// exitCode logs err and flushes the logger before the process exits.
func exitCode(err error, zapLogger *zap.Logger) int {
	code := 0
	if err != nil {
		zapLogger.Error("application stopped", zap.Error(err))
		code = 1
	}
	_ = zapLogger.Sync()
	return code
}

func run(configs cmd.Config, zapLogger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := openDatabase(configs)
	if err != nil {
		return err
	}
	if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
		defer func() {
			_ = sqlDB.Close()
		}()
	}

	if configs.DBAutoMigrate {
		if err = postgres.Migrate(gormDB); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
		zapLogger.Info("schema migrated")
	}

	var redisClient *redis.Client
	if configs.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
		defer func() {
			_ = redisClient.Close()
		}()
		if pingErr := redisClient.Ping(ctx).Err(); pingErr != nil {
			zapLogger.Warn("redis is unreachable, analytics will be computed on every request", zap.Error(pingErr))
		}
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, redisClient, zapLogger)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, &app, configs.HTTPPort, zapLogger)
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	gormDB, err := gorm.Open(gorm_postgres.Open(configs.DSN()), &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(configs.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(configs.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(configs.DBConnMaxLifetime)

	return gormDB, nil
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, zapLogger *zap.Logger) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	metrics, err := api.NewMetrics(registry)
	if err != nil {
		return err
	}
	doc, err := api.LoadOpenAPI()
	if err != nil {
		return err
	}

	e := api.NewRouter(api.NewServer(app.CreateHandlers()), api.RouterConfig{
		Logger:   zapLogger,
		Metrics:  metrics,
		Gatherer: registry,
		Doc:      doc,
	})

	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("http server listening", zap.String("port", port))
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	zapLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
