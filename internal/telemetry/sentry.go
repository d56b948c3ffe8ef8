// Package telemetry provides optional Sentry error reporting.
package telemetry

import (
	"log"
	"time"

	"github.com/getsentry/sentry-go"
)

// Config holds the configuration for Sentry initialization.
type Config struct {
	DSN         string
	Environment string
	Debug       bool
}

// Init initializes Sentry and returns a shutdown function that flushes
// pending events. An empty DSN yields a no-op shutdown function.
func Init(cfg Config) func() {
	if cfg.DSN == "" {
		return func() {}
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Debug:       cfg.Debug,
		ServerName:  "servly",
	})
	if err != nil {
		log.Printf("sentry: failed to initialize (continuing without reporting): %v", err)
		return func() {}
	}

	return func() {
		sentry.Flush(2 * time.Second)
	}
}

// CaptureError reports an error when Sentry is initialized.
func CaptureError(err error) {
	if err == nil {
		return
	}
	sentry.CaptureException(err)
}
