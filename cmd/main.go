package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"school-store/internal/app"
	"school-store/internal/config"
)

const (
	envDev   = "dev"
	envProd  = "prod"
	envLocal = "local"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Server.Env)

	log.Info("starting school store", "env", cfg.Server.Env)

	application := app.New(
		log,
		cfg.Server.Address,
		cfg.Database.PostgresConn,
		cfg.Session.Secret,
		cfg.Session.TTLHours,
		cfg.Server.AllowedOrigin,
	)

	go application.HTTPServer.MustRun()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	sign := <-stop

	log.Info("application stopped", slog.String("signal", sign.String()))

	if err := application.HTTPServer.Stop(context.Background()); err != nil {
		log.Error("failed to stop http server", slog.String("error", err.Error()))
	}
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case envDev, envLocal:
		fallthrough
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
