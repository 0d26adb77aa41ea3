package main

import (
	"github.com/spf13/cobra"

	"task-middleware/config"
)

type rootOptions struct {
	configPath string
}

func (o *rootOptions) load() (*config.Config, error) {
	return config.LoadConfigFile(o.configPath)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "posts-demo",
		Short: "Posts pipeline driven by effect-task middleware",
		Long: `posts-demo fetches a list of posts over HTTP, caches it in key/value
storage and keeps it in a store updated only through dispatched messages.

Configuration comes from an optional YAML file (--config) overridden by
environment variables (PORT, LOG_LEVEL, POSTS_URL, STORAGE_BACKEND,
STORAGE_KEY, REDIS_URL, FETCH_TIMEOUT, SHUTDOWN_TIMEOUT, VERSION).`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newFetchCmd(opts))

	return cmd
}
