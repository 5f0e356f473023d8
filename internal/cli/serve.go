package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bulletins/pkg/api"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		metrics bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Storage, draft and cache backends are taken from the config file and
BULLETINS_* environment variables; --addr and --metrics override them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("metrics") {
				cfg.Metrics.Enabled = metrics
			}
			c.SetLogLevel(configLevel(cfg.Log.Level, c.Logger.GetLevel() == log.DebugLevel))

			ctx := cmd.Context()
			b, err := openBackends(ctx, cfg, c.Logger)
			if err != nil {
				return err
			}
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := b.Close(closeCtx); err != nil {
					c.Logger.Warn("close backends", "err", err)
				}
			}()

			printInfo("Listening on %s", StyleHighlight.Render(cfg.Server.Addr))
			printDetail("storage %s · drafts %s · cache %s", cfg.Storage.Backend, cfg.Drafts.Backend, cfg.Cache.Backend)
			if cfg.Metrics.Enabled {
				printDetail("metrics at %s", cfg.Metrics.Path)
			}

			srv := api.New(b.svc, b.apiConfig(cfg), c.Logger)
			if err := srv.Run(ctx); err != nil {
				return err
			}
			printSuccess("Server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "expose Prometheus metrics")
	return cmd
}
