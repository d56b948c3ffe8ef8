// Package cli implements the servly command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/servly-app/servly/internal/api"
	"github.com/servly-app/servly/internal/cart"
	"github.com/servly-app/servly/internal/config"
	"github.com/servly-app/servly/internal/session"
	"github.com/servly-app/servly/internal/storage"
)

// Env bundles everything a command needs: config, logger, durable store,
// API client, and the hydrated cart.
type Env struct {
	Cfg     *config.Config
	Log     zerolog.Logger
	Store   storage.Store
	API     *api.Client
	Cart    *cart.Store
	Session *session.Bridge
}

// logNotifier surfaces transient request failures as a warning the user
// sees, detached from the returned error.
type logNotifier struct {
	log zerolog.Logger
}

func (n logNotifier) Notify(message string) {
	n.log.Warn().Msg(message)
}

// newEnv loads config, opens the durable store and hydrates the cart.
// The --api-url flag, when set, overrides the configured base URL.
func newEnv(ctx context.Context, cmd *cobra.Command) (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := config.NewLogger(cfg)

	store, err := cfg.NewStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open session storage: %w", err)
	}

	apiURL := cfg.APIURL
	if cmd != nil {
		if flagURL, err := cmd.Flags().GetString("api-url"); err == nil && flagURL != "" {
			apiURL = flagURL
		}
	}

	client := api.NewClient(apiURL, store,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithNotifier(logNotifier{log: log}),
	)

	bridge := session.NewBridge(store, log)
	cartStore := cart.NewStore()
	bridge.AttachCart(ctx, cartStore)

	return &Env{
		Cfg:     cfg,
		Log:     log,
		Store:   store,
		API:     client,
		Cart:    cartStore,
		Session: bridge,
	}, nil
}
