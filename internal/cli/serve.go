package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sketchpad/internal/server"
	"github.com/matzehuels/sketchpad/pkg/cache"
	"github.com/matzehuels/sketchpad/pkg/session"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		cacheDir string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve editor sessions over HTTP",
		Long: `Serve editor sessions over HTTP.

Each client creates a session, posts pointer events and commands to it, and
fetches frames or exports. Sessions idle longer than --session-ttl are
dropped. Exports are cached in memory, or on disk with --cache-dir.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("cache-dir") {
				cfg.Server.CacheDir = cacheDir
			}

			opts := []server.Option{server.WithSessionTTL(ttl)}
			if cfg.Server.CacheDir != "" {
				fc, err := cache.NewFileCache(cfg.Server.CacheDir)
				if err != nil {
					return err
				}
				opts = append(opts, server.WithCache(fc))
			}

			srv := server.New(cfg, c.Logger, opts...)
			printInfo("Serving on %s", StyleHighlight.Render(cfg.Server.Addr))
			printKeyValue("sessions", fmt.Sprintf("max %d, idle ttl %s", cfg.Server.MaxSessions, ttl))
			if cfg.Server.CacheDir != "" {
				printKeyValue("cache", cfg.Server.CacheDir)
			}
			printNextStep("Create a session", "curl -X POST http://localhost"+portOf(cfg.Server.Addr)+"/sessions")

			err = srv.ListenAndServe(contextOrBackground(cmd.Context()))
			if errors.Is(err, http.ErrServerClosed) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "cache exports on disk in this directory")
	cmd.Flags().DurationVar(&ttl, "session-ttl", session.DefaultTTL, "drop sessions idle this long (0 keeps them)")

	return cmd
}

// portOf returns the ":port" part of a listen address.
func portOf(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		return ""
	}
	return ":" + port
}
