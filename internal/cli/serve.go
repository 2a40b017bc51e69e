package cli

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/stackview/pkg/cache"
	"github.com/matzehuels/stackview/pkg/server"
)

// apiVersion scopes cache keys so a response format change never serves
// stale entries.
const apiVersion = "v1:"

// serveCommand creates the command running the layout HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts over HTTP",
		Long: `Serve layouts over HTTP.

Endpoints:
  GET /healthz
  GET /v1/layouts?count=3&width=1200&height=800[&lookahead=false][&policy=equal]
  GET /v1/viewport?count=3&width=1200&height=800[&animating=true]

Responses are cached in the backend selected by the [cache] section of the
configuration file (none, file or redis).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), cmd.ErrOrStderr(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: from config, :8080)")

	return cmd
}

// runServe serves until ctx is cancelled, then shuts down gracefully. A nil
// error is returned for a shutdown caused by ctx.
func (c *CLI) runServe(ctx context.Context, w io.Writer, addr string) error {
	logger := loggerFromContext(ctx)

	prog := newProgress(logger)
	store, err := c.newCache(ctx, w)
	if err != nil {
		return err
	}
	defer store.Close()
	prog.done("Cache ready: " + c.Config.Cache.Backend)

	api := server.New(server.Options{
		Cache:             store,
		Keyer:             cache.NewScopedKeyer(cache.NewDefaultKeyer(), apiVersion),
		TTL:               c.Config.Cache.TTL.Std(),
		WidthPolicy:       c.Config.Layout.WidthPolicy,
		MinPanelWidth:     c.Config.Layout.MinPanelWidth,
		AnimationDuration: c.Config.Animation.Duration.Std(),
		Logger:            logger,
	})
	srv := api.HTTPServer(addr, c.Config.Server.ReadTimeout.Std())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.Config.Server.ShutdownTimeout.Std())
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
