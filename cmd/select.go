package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var errNoSelection = errors.New("no camera reports a focus distance")

// CreateSelectCmd creates the select command.
func CreateSelectCmd(rt *Runtime) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Print the ID of the camera with the closest focus",
		Long: `Probes every video input device and prints the ID of the one with the smallest ` +
			`minimum focus distance. Exits non-zero when no camera reports a focus distance. ` +
			`With --watch, keeps running and prints the ID again whenever device changes alter ` +
			`the selection; an empty line means the selection was lost.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if watch {
				return watchSelection(ctx, rt, cmd.OutOrStdout())
			}
			return runSelect(ctx, rt, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-run the selection when video devices change")

	return cmd
}

func runSelect(ctx context.Context, rt *Runtime, out io.Writer) error {
	id, ok := rt.Selector.SelectBestFocusDevice(ctx)
	if !ok {
		return errNoSelection
	}
	_, err := fmt.Fprintln(out, id)
	return err
}

// watchSelection prints the current selection, then a new line each time it
// changes, until ctx is done.
func watchSelection(ctx context.Context, rt *Runtime, out io.Writer) error {
	changes := make(chan struct{}, 1)

	watcher := rt.NewWatcher()
	unsubscribe := watcher.OnChange(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to watch %s: %w", rt.WatchDir, err)
	}
	defer watcher.Stop()

	current, _ := rt.Selector.SelectBestFocusDevice(ctx)
	if _, err := fmt.Fprintln(out, current); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			id, _ := rt.Selector.SelectBestFocusDevice(ctx)
			if id == current {
				continue
			}
			current = id
			if _, err := fmt.Fprintln(out, current); err != nil {
				return err
			}
		}
	}
}
