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

	"cafedelivery/cmd"
	httpadapter "cafedelivery/internal/adapters/in/http"
	"cafedelivery/internal/adapters/out/postgres"
	"cafedelivery/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configs := getConfigs()

	appLogger := logger.New(configs.LogLevel)
	defer func() { _ = appLogger.Sync() }()

	if err := run(configs, appLogger); err != nil {
		appLogger.Fatal("Application stopped with error", zap.Error(err))
	}
}

func getConfigs() cmd.Config {
	// A missing .env is fine: the process environment is used as is.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(1)
	}

	config, err := cmd.LoadConfig(os.LookupEnv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return config
}

func run(configs cmd.Config, appLogger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connect to %s: %w", configs.RedactedDSN(), err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	appLogger.Info("Database ready", zap.String("dsn", configs.RedactedDSN()))

	app, err := cmd.NewCompositionRoot(configs, gormDB, appLogger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			appLogger.Warn("Failed to close Kafka producer", zap.Error(closeErr))
		}
	}()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := httpadapter.NewEcho(ctx, app.CreateHTTPServer(), appLogger, echoLogLevel(configs.LogLevel))
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		appLogger.Info("HTTP server listening", zap.String("addr", addr))
		if startErr := e.Start(addr); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		appLogger.Info("Shutting down")
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// echoLogLevel maps LOG_LEVEL to echo's own logger, which only reports
// framework messages.
func echoLogLevel(level string) log.Lvl {
	switch logger.ParseLevel(level) {
	case zapcore.DebugLevel:
		return log.DEBUG
	case zapcore.InfoLevel:
		return log.INFO
	case zapcore.WarnLevel:
		return log.WARN
	default:
		return log.ERROR
	}
}
