package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/brooklinpub/brooklin/pkg/specials"
)

type specialsOpts struct {
	refresh bool
	noCache bool
	jsonOut bool
}

// specialsCommand creates the specials command.
func (c *CLI) specialsCommand() *cobra.Command {
	var opts specialsOpts

	cmd := &cobra.Command{
		Use:   "specials",
		Short: "Read the specials API",
		Long: `Read specials from the API configured as specials.api_url (or
BROOKLIN_API_URL). Responses are cached for specials.ttl.`,
	}

	cmd.PersistentFlags().BoolVar(&opts.refresh, "refresh", false, "bypass cached responses and store fresh ones")
	cmd.PersistentFlags().BoolVar(&opts.noCache, "no-cache", false, "disable the cache entirely")
	cmd.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "print JSON instead of a table")

	cmd.AddCommand(c.specialsListCommand(&opts, "list", "List all specials", func(ctx context.Context, cl *specials.Client, refresh bool) ([]specials.Special, error) {
		return cl.List(ctx, refresh)
	}))
	cmd.AddCommand(c.specialsListCommand(&opts, "active", "List the specials running now", func(ctx context.Context, cl *specials.Client, refresh bool) ([]specials.Special, error) {
		return cl.Active(ctx, refresh)
	}))
	cmd.AddCommand(c.specialsGetCommand(&opts))
	cmd.AddCommand(c.specialsWatchCommand(&opts))

	return cmd
}

type fetchFunc func(ctx context.Context, cl *specials.Client, refresh bool) ([]specials.Special, error)

func (c *CLI) specialsListCommand(opts *specialsOpts, use, short string, fetch fetchFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, closeCache, err := c.newSpecialsClient(ctx, opts.noCache)
			if err != nil {
				return err
			}
			defer closeCache()

			spin := newSpinnerWithContext(ctx, "Fetching specials...")
			spin.Start()
			list, err := fetch(ctx, client, opts.refresh)
			spin.Stop()
			if err != nil {
				return fmt.Errorf("fetch specials: %w", err)
			}

			if opts.jsonOut {
				return printJSON(list)
			}
			if len(list) == 0 {
				printInfo("No specials")
				return nil
			}
			fmt.Fprintln(stdout, renderTable([]string{"ID", "Title", "Price", "Window", "Active"}, specialRows(list, time.Now())))
			return nil
		},
	}
}

func (c *CLI) specialsGetCommand(opts *specialsOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one special",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, closeCache, err := c.newSpecialsClient(ctx, opts.noCache)
			if err != nil {
				return err
			}
			defer closeCache()

			s, err := client.Get(ctx, args[0], opts.refresh)
			if err != nil {
				return fmt.Errorf("get special %s: %w", args[0], err)
			}
			if opts.jsonOut {
				return printJSON(s)
			}
			fmt.Fprintln(stdout, StyleTitle.Render(s.Title))
			if s.Description != "" {
				fmt.Fprintln(stdout, s.Description)
			}
			printNewline()
			printKeyValue("ID", s.ID)
			if s.Price > 0 {
				printKeyValue("Price", fmt.Sprintf("%.2f", s.Price))
			}
			printKeyValue("Window", specialWindow(s))
			printKeyValue("Active now", fmt.Sprint(s.ActiveAt(time.Now())))
			return nil
		},
	}
}

func (c *CLI) specialsWatchCommand(opts *specialsOpts) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print specials as they start and end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, closeCache, err := c.newSpecialsClient(ctx, opts.noCache)
			if err != nil {
				return err
			}
			defer closeCache()

			if interval <= 0 {
				interval = c.Config.Specials.PollInterval
			}
			bus := specials.NewBus()
			bus.Subscribe(func(e specials.Event) {
				if opts.jsonOut {
					_ = printJSON(map[string]any{"event": e.Type, "special": e.Special})
					return
				}
				switch e.Type {
				case specials.EventNew:
					printSuccess("New special: %s", StyleHighlight.Render(e.Special.Title))
				case specials.EventEnded:
					printDetail("Ended: %s", e.Special.Title)
				}
			})

			printInfo("Watching %s every %s (ctrl+c to stop)", StyleLink.Render(client.BaseURL()), interval)
			return specials.NewWatcher(client, bus, interval, c.Logger).Run(ctx)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "poll interval (default from config, 1m)")
	return cmd
}

func specialRows(list []specials.Special, now time.Time) [][]string {
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		price := ""
		if s.Price > 0 {
			price = fmt.Sprintf("%.2f", s.Price)
		}
		active := ""
		if s.ActiveAt(now) {
			active = iconSuccess
		}
		rows = append(rows, []string{s.ID, s.Title, price, specialWindow(&s), active})
	}
	return rows
}

// specialWindow formats the start and end bounds, either of which may be open.
func specialWindow(s *specials.Special) string {
	const layout = "Jan 2 15:04"
	var parts []string
	if s.StartsAt != nil {
		parts = append(parts, "from "+s.StartsAt.Local().Format(layout))
	}
	if s.EndsAt != nil {
		parts = append(parts, "until "+s.EndsAt.Local().Format(layout))
	}
	if len(parts) == 0 {
		return "always"
	}
	return strings.Join(parts, " ")
}

func printJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
