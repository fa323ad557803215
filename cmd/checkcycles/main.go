// Command checkcycles fails a build when the emitted modules import each
// other in a circle.
//
// It scans the configured build output directory (dist/assets unless
// overridden by brooklin.toml or BROOKLIN_CYCLES_DIR), prints every cycle to
// stderr as "a.js -> b.js -> a.js" and exits 0 when there are none, 1 when
// there are and 2 when the directory does not exist. It takes no arguments.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brooklinpub/brooklin/internal/cli"
	"github.com/brooklinpub/brooklin/pkg/config"
	bkerrors "github.com/brooklinpub/brooklin/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := newCommand().ExecuteContext(ctx)
	switch {
	case err == nil:
		return
	case errors.Is(err, context.Canceled):
		os.Exit(bkerrors.ExitInterrupted)
	case bkerrors.Is(err, bkerrors.ErrCodeCyclesFound):
		fmt.Fprintln(os.Stderr, "Circular imports found:", bkerrors.UserMessage(err))
	default:
		fmt.Fprintln(os.Stderr, bkerrors.UserMessage(err))
	}
	os.Exit(bkerrors.ExitCode(err))
}

func newCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "checkcycles",
		Short:         "Fail when build output modules import each other in a circle",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load("")
			if err != nil {
				return err
			}
			_, err = cli.CheckCycles(cmd.Context(), cfg.Cycles.Dir, cli.CheckOptions{
				Ext:    cfg.Cycles.Ext,
				Stdout: os.Stdout,
				Stderr: os.Stderr,
			})
			return err
		},
	}
}
