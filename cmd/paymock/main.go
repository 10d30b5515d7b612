// Command paymock serves the in-memory payments emulator over HTTP. Tests
// point their client's base URL at it instead of the real service. All
// state is process-local and vanishes on exit.
package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/xraph/paymock"
	"github.com/xraph/paymock/httpapi"
)

type config struct {
	Addr     string     `env:"PAYMOCK_ADDR" envDefault:":12111"`
	IDLength int        `env:"PAYMOCK_ID_LENGTH" envDefault:"14"`
	LogLevel slog.Level `env:"PAYMOCK_LOG_LEVEL" envDefault:"info"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		slog.Error("parse config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	backend := paymock.New(
		paymock.WithLogger(logger),
		paymock.WithIDLength(cfg.IDLength),
	)
	srv := httpapi.New(backend, logger)

	logger.Info("listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv.Handler()); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
