package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/jsphweid/musictools/melody"
	"github.com/jsphweid/musictools/settings"
	"github.com/spf13/cobra"
)

var (
	watchOut   string
	watchDelay time.Duration
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchOut, "output", "o", "", "midi file to rewrite on every change (required)")
	watchCmd.Flags().DurationVar(&watchDelay, "delay", 300*time.Millisecond, "wait this long after the last change")
	watchCmd.MarkFlagRequired("output")
}

var watchCmd = &cobra.Command{
	Use:   "watch <settings>",
	Short: "Regenerates a melody whenever its settings file changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watch(ctx, args[0], watchOut, watchDelay)
	},
}

func regenerate(path, out string) {
	s, err := settings.LoadFile(path)
	if err != nil {
		slog.Error("could not load settings", "path", path, "error", err)
		return
	}
	events, err := render(s, out)
	if err != nil {
		slog.Error("generation failed", "error", err)
		return
	}
	fmt.Printf("Wrote %v notes (%v beats) to %v\n", len(events), melody.Beats(events), out)
}

// watch watches the directory rather than the file, since editors often
// replace a file instead of writing it in place.
func watch(ctx context.Context, path, out string, delay time.Duration) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	regenerate(abs, out)
	debounced := debounce.New(delay)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				slog.Debug("settings changed", "op", ev.Op.String())
				debounced(func() { regenerate(abs, out) })
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)
		}
	}
}
