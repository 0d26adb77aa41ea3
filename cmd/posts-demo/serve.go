package main

import (
	"context"

	"github.com/spf13/cobra"

	"task-middleware/api/server"
	"task-middleware/logger"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			lg := logger.New(cfg.LogLevel, cmd.OutOrStdout())
			lg.Info("Starting posts service", map[string]any{
				"version":   cfg.Version,
				"port":      cfg.ServerPort,
				"log_level": cfg.LogLevel,
			})

			a, err := newApp(cfg, lg)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			hydrateCtx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
			state, err := a.hydrate(hydrateCtx)
			cancel()
			if err != nil {
				return err
			}
			lg.Info("Hydrated posts from storage", map[string]any{
				"count": len(state.Posts),
				"error": state.LastError,
			})

			return server.New(a.store, a.services, cfg, lg).Start(ctx)
		},
	}
}
