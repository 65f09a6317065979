package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/obsidianstack/schedhealth/internal/source"
	"github.com/obsidianstack/schedhealth/pkg/types"
)

func newWatchCmd(g *globals) *cobra.Command {
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   "watch [project-file]",
		Short: "Regenerate the report every time the project file changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(g.cfg); err != nil {
				return fmt.Errorf("config: %w", err)
			}
			path, err := inputPath(g.cfg, args)
			if err != nil {
				return err
			}
			r, err := newRunner(g.cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return watch(ctx, path, g.cfg.Watch.Debounce, r)
		},
	}
	flags.register(cmd)
	return cmd
}

// watch produces an initial report and then one per change of path until
// ctx is cancelled. A broken file at startup is logged, not fatal: the
// watcher keeps waiting for a valid save.
func watch(ctx context.Context, path string, debounce time.Duration, r *runner) error {
	if p, err := source.Load(path); err != nil {
		slog.Error("initial load failed, waiting for changes", "path", path, "err", err)
	} else if _, err := r.run(p); err != nil {
		return err
	}

	err := source.Watch(ctx, path, debounce, func(p *types.Project) {
		if _, err := r.run(p); err != nil {
			slog.Error("report failed", "path", path, "err", err)
		}
	})
	slog.Info("schedhealth watch shutting down")
	return err
}
