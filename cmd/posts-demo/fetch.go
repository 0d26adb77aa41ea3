package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"task-middleware/config"
	"task-middleware/logger"
)

type fetchOptions struct {
	url string
}

func newFetchCmd(opts *rootOptions) *cobra.Command {
	fopts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Hydrate from storage, refresh once and print the posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if fopts.url != "" {
				cfg.PostsURL = fopts.url
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runFetch(ctx, cfg, logger.New(cfg.LogLevel, cmd.ErrOrStderr()), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&fopts.url, "url", "", "fetch from this URL instead of the configured one")
	return cmd
}

func runFetch(ctx context.Context, cfg *config.Config, lg *logger.Logger, out io.Writer) error {
	a, err := newApp(cfg, lg)
	if err != nil {
		return err
	}
	defer a.Close()

	// Hydration and refresh each get the fetch timeout plus slack for storage.
	ctx, cancel := context.WithTimeout(ctx, 2*cfg.FetchTimeout)
	defer cancel()

	cached, err := a.hydrate(ctx)
	if err != nil {
		return fmt.Errorf("hydrate: %w", err)
	}
	lg.Info("Hydrated posts from storage", map[string]any{
		"count": len(cached.Posts),
	})

	state, err := a.refresh(ctx, cfg.PostsURL)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	if state.LastError != "" {
		return fmt.Errorf("refresh %s: %s", cfg.PostsURL, state.LastError)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(state.Posts)
}
