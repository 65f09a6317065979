package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/obsidianstack/schedhealth/internal/alerts"
	"github.com/obsidianstack/schedhealth/internal/config"
	"github.com/obsidianstack/schedhealth/internal/health"
	"github.com/obsidianstack/schedhealth/internal/render"
	"github.com/obsidianstack/schedhealth/internal/source"
	"github.com/obsidianstack/schedhealth/pkg/types"
)

// ErrAlertsFired is returned by report --fail-on-alert when any rule fired.
var ErrAlertsFired = errors.New("alert rules fired")

// outputFlags are the per-command overrides of the output config.
type outputFlags struct {
	format      string
	out         string
	outDir      string
	textfile    string
	failOnAlert bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: summary | json | yaml | metrics")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().StringVar(&f.outDir, "out-dir", "", "write the report to <dir>/schedule-report-<project>.<ext>")
	cmd.Flags().StringVar(&f.textfile, "metrics-textfile", "", "also write Prometheus metrics to this file")
}

// apply copies the flags that were set onto cfg.
func (f *outputFlags) apply(cfg *config.Config) error {
	if f.format != "" {
		cfg.Output.Format = f.format
	}
	if f.out != "" {
		cfg.Output.Path = f.out
	}
	if f.outDir != "" {
		cfg.Output.Dir = f.outDir
	}
	if f.textfile != "" {
		cfg.Metrics.Textfile = f.textfile
	}
	return cfg.Validate()
}

// inputPath resolves the project file from the positional argument or the
// config file.
func inputPath(cfg *config.Config, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input != "" {
		return cfg.Input, nil
	}
	return "", errors.New("no project file: pass one as an argument or set input in the config file")
}

func newReportCmd(g *globals) *cobra.Command {
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   "report [project-file]",
		Short: "Generate a schedule-health report once",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(g.cfg); err != nil {
				return fmt.Errorf("config: %w", err)
			}
			path, err := inputPath(g.cfg, args)
			if err != nil {
				return err
			}
			p, err := source.Load(path)
			if err != nil {
				return err
			}
			r, err := newRunner(g.cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			fired, err := r.run(p)
			if err != nil {
				return err
			}
			if flags.failOnAlert && len(fired) > 0 {
				return fmt.Errorf("%w: %d", ErrAlertsFired, len(fired))
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.failOnAlert, "fail-on-alert", false, "exit non-zero when any alert rule fires")
	return cmd
}

// runner generates and writes one report per project it is handed.
type runner struct {
	cfg    *config.Config
	alerts *alerts.Engine
	stdout io.Writer
	now    func() time.Time // injectable for deterministic tests
}

func newRunner(cfg *config.Config, stdout io.Writer) (*runner, error) {
	engine, err := alerts.New(cfg.Alerts)
	if err != nil {
		return nil, err
	}
	return &runner{cfg: cfg, alerts: engine, stdout: stdout, now: time.Now}, nil
}

// run analyses p, writes the configured outputs and returns the fired alerts.
func (r *runner) run(p *types.Project) ([]alerts.Alert, error) {
	rep := health.Generate(p.Activities)
	fired := r.alerts.Track(rep)

	slog.Info("report generated",
		"project", p.Name,
		"activities", len(rep.Activities),
		"weighted_mean_spi", rep.WeightedMeanSPI,
		"standard_deviation", rep.StandardDeviation,
		"percent_at_risk", rep.PercentAtRisk,
		"alerts", len(fired),
	)

	out := r.cfg.Output
	dest := out.Path
	if dest == "" && out.Dir != "" {
		dest = filepath.Join(out.Dir, render.FileName(p.Name, out.Format))
	}

	if dest == "" {
		if err := render.Render(r.stdout, out.Format, r.cfg.Metrics.Namespace, p, rep, fired, r.now()); err != nil {
			return fired, err
		}
	} else {
		var buf bytes.Buffer
		if err := render.Render(&buf, out.Format, r.cfg.Metrics.Namespace, p, rep, fired, r.now()); err != nil {
			return fired, err
		}
		if err := render.WriteFileAtomic(dest, buf.Bytes(), 0o644); err != nil {
			return fired, err
		}
		slog.Info("report written", "path", dest, "format", out.Format)
	}

	if tf := r.cfg.Metrics.Textfile; tf != "" {
		if err := render.WriteTextfile(tf, r.cfg.Metrics.Namespace, p, rep); err != nil {
			return fired, err
		}
		slog.Debug("metrics textfile written", "path", tf)
	}
	return fired, nil
}
