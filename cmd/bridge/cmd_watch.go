package main

import (
	"os"
	"os/signal"
	"syscall"

	"cathedral-bridge/infrastructure/watcher"

	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <dir>",
		Short: "Validate every .json document written into a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			w := watcher.NewDocumentWatcher(args[0], a.container.Manager,
				func(r watcher.Result) { printVerdict(out, r.Path, r.Err) },
				a.container.Logger,
				watcher.WithMaxBytes(a.cfg.MaxPayloadBytes),
			)
			return w.Run(ctx)
		},
	}
}
