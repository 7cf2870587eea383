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

	"bakery/api"
	"bakery/cmd"
	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/pkg/logger"
	"bakery/internal/pkg/metrics"

	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configs, err := cmd.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	appLogger := logger.New(os.Stdout, configs.LogLevel)
	slog.SetDefault(appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	uowFactory, closeStorage, err := cmd.OpenStorage(configs)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if closeErr := closeStorage(); closeErr != nil {
			appLogger.Error("close storage", "error", closeErr)
		}
	}()

	notifier, closeNotifier, err := cmd.OpenNotifier(configs, appLogger)
	if err != nil {
		return fmt.Errorf("open notifier: %w", err)
	}
	defer closeNotifier()

	app := cmd.NewCompositionRoot(configs, uowFactory, notifier, metrics.New(), appLogger)

	if err = bootstrapAdmin(ctx, app, configs); err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	appLogger.Info("starting bakery",
		"storage", configs.StorageBackend,
		"port", configs.HTTPPort,
		"rabbitmq", configs.RabbitMQURL != "",
	)
	return startWebServer(ctx, app, configs)
}

func bootstrapAdmin(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config) error {
	if configs.BootstrapAdminEmail == "" {
		return nil
	}
	command, err := commands.NewRegisterUserCommand("Administrator", configs.BootstrapAdminEmail, configs.BootstrapAdminPassword)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	handler := app.CreateBootstrapAdminCommandHandler()
	if _, err = handler.Handle(ctx, command); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	return nil
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config) error {
	doc, err := api.Load()
	if err != nil {
		return err
	}
	if err = api.RegisterSwagger(doc); err != nil {
		return err
	}

	e, err := app.CreateHTTPServer().Router(doc, app.CreateRateLimiter())
	if err != nil {
		return err
	}
	e.Logger.SetLevel(echoLevel(configs.LogLevel))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func echoLevel(level slog.Level) log.Lvl {
	switch {
	case level <= slog.LevelDebug:
		return log.DEBUG
	case level <= slog.LevelInfo:
		return log.INFO
	case level <= slog.LevelWarn:
		return log.WARN
	default:
		return log.ERROR
	}
}
