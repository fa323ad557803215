package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/brooklinpub/brooklin/pkg/server"
	"github.com/brooklinpub/brooklin/pkg/specials"
)

type serveOpts struct {
	addr     string
	specials bool
	watch    bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve hotspot placements over HTTP",
		Long: `Start the placement API used by the site's rendering layer.

  GET /placements?count=N&width=W&height=H[&format=json|svg]
  GET /specials/active
  GET /healthz

Rendered placements share the configured cache backend with the specials
client.
With --watch the active specials are polled and new ones are logged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, :8090)")
	cmd.Flags().BoolVar(&opts.specials, "specials", true, "label hotspots with active specials")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "poll for new specials and log them")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	addr := opts.addr
	if addr == "" {
		addr = c.Config.Server.Addr
	}

	backend, err := c.newCache(ctx, false)
	if err != nil {
		return err
	}
	defer backend.Close()

	srvOpts := server.Options{
		Path:      c.Config.Placement.Path,
		Placement: c.Config.Placement.Options,
		Cache:     backend,
		TTL:       c.Config.Specials.TTL,
		Logger:    c.Logger,
	}

	var client *specials.Client
	if opts.specials || opts.watch {
		if client, err = c.specialsClient(backend); err != nil {
			return err
		}
		if opts.specials {
			srvOpts.Specials = client
		}
	}

	srv, err := server.New(srvOpts)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(ctx, addr)
	})
	if opts.watch {
		bus := specials.NewBus()
		bus.Subscribe(func(e specials.Event) {
			c.Logger.Info("special "+string(e.Type), "id", e.Special.ID, "title", e.Special.Title)
		})
		w := specials.NewWatcher(client, bus, c.Config.Specials.PollInterval, c.Logger)
		g.Go(func() error {
			return w.Run(ctx)
		})
	}

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
