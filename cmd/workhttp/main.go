package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/indigo-web/workhttp"
	"github.com/indigo-web/workhttp/config"
	"github.com/indigo-web/workhttp/internal/telemetry"
	"github.com/sirupsen/logrus"
)

const (
	defaultHost = "127.0.0.1"
	defaultPort = 3000

	metricsInterval = 15 * time.Second
)

func env(key, or string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return or
}

func setupLogger() *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(env("LOG_LEVEL", "info"))
	if err != nil {
		log.WithError(err).Warn("bad LOG_LEVEL, falling back to info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if env("LOG_FORMAT", "text") == "json" {
		log.SetFormatter(new(logrus.JSONFormatter))
	}

	return log
}

func port(log logrus.FieldLogger) int {
	raw, ok := os.LookupEnv("PORT")
	if !ok {
		return defaultPort
	}

	p, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		log.WithError(err).WithField("value", raw).Warn("bad PORT, using the default one")
		return defaultPort
	}

	return int(p)
}

func main() {
	log := setupLogger()

	if err := run(log); err != nil {
		log.WithError(err).Fatal("server failed")
	}
}

func run(log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, ok := os.LookupEnv("OTEL_EXPORTER_OTLP_ENDPOINT"); ok {
		shutdown, err := telemetry.Setup(ctx, metricsInterval)
		if err != nil {
			return fmt.Errorf("metrics exporter: %w", err)
		}

		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := shutdown(flushCtx); err != nil {
				log.WithError(err).Error("cannot flush metrics")
			}
		}()
	}

	p, err := loadPages(env("STATIC_DIR", "."), log)
	if err != nil {
		return fmt.Errorf("pages: %w", err)
	}

	cfg := config.FromEnv(config.Default(), log)
	cfg.Responses.NotFound = p.NotFound

	addr := net.JoinHostPort(env("HOST", defaultHost), strconv.Itoa(port(log)))
	app := workhttp.New(addr).
		Tune(cfg).
		Logger(log)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		app.Stop()
	}()

	return app.Serve(newRouter(p, fibIterations, sleepFor, app.Stats))
}
