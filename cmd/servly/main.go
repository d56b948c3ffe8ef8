package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/servly-app/servly/internal/cli"
	"github.com/servly-app/servly/internal/config"
	"github.com/servly-app/servly/internal/telemetry"
)

var version = "dev"

func main() {
	cfg := config.MustLoad()
	shutdown := telemetry.Init(telemetry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
	})
	defer shutdown()

	rootCmd := &cobra.Command{
		Use:   "servly",
		Short: "Servly CLI - local services marketplace client",
		Long: `Servly lets you search and book local services and manage a
provider dashboard from the terminal.

Environment variables:
  SERVLY_API_URL          API base URL (default: http://localhost:8080)
  SERVLY_STORAGE_BACKEND  Session storage backend: file or redis (default: file)
  SERVLY_STATE_DIR        Override the session state directory`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env and config)")

	rootCmd.AddCommand(cli.AuthCmd())
	rootCmd.AddCommand(cli.SearchCmd())
	rootCmd.AddCommand(cli.CartCmd())
	rootCmd.AddCommand(cli.BookCmd())
	rootCmd.AddCommand(cli.ProviderCmd())
	rootCmd.AddCommand(cli.ProfileCmd())

	if err := rootCmd.Execute(); err != nil {
		telemetry.CaptureError(err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
