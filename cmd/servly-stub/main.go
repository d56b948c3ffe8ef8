// servly-stub serves the marketplace API surface from in-memory fixtures,
// for local development and demos of the servly CLI.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/servly-app/servly/internal/config"
	"github.com/servly-app/servly/internal/stubapi"
	"github.com/servly-app/servly/internal/telemetry"
)

func main() {
	cfg := config.MustLoad()
	log := config.NewLogger(cfg)

	shutdown := telemetry.Init(telemetry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
	})
	defer shutdown()

	router := stubapi.NewRouter(stubapi.NewServer(), log)
	srv := &http.Server{
		Addr:    ":" + cfg.StubPort,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("stub API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
