// Package cli contains the schedhealth commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/obsidianstack/schedhealth/internal/config"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// globals holds the persistent flags shared by every command.
type globals struct {
	configPath string
	logLevel   string

	cfg *config.Config
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree. Each call returns an independent tree
// so tests can run commands without sharing flag state.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "schedhealth",
		Short: "Schedule-health analytics for project activities",
		Long: `schedhealth computes schedule performance indices (SPI) and variances
for every activity of a project, classifies each activity as on track, at
risk or delayed, and aggregates the results into a portfolio health report.

Examples:
  schedhealth report project.yaml                  # terminal summary
  schedhealth report project.yaml -f json -o r.json
  schedhealth report project.yaml -f metrics --metrics-textfile /var/lib/node_exporter/schedule.prom
  schedhealth watch project.yaml                   # re-run on every save`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.setup(cmd.ErrOrStderr(), cmd.Flags().Changed("config"))
		},
	}

	root.PersistentFlags().StringVar(&g.configPath, "config", "schedhealth.yaml", "path to config file (optional)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level: debug | info | warn | error (overrides config)")

	root.AddCommand(newReportCmd(g), newWatchCmd(g), newVersionCmd())
	return root
}

// setup loads the config file and installs the JSON logger. Logs go to
// stderr so stdout stays clean for the report itself.
//
// Only the default config path may be absent; a path passed with --config
// must exist.
func (g *globals) setup(logOut io.Writer, explicit bool) error {
	load := config.LoadOrDefault
	if explicit {
		load = config.Load
	}
	cfg, err := load(g.configPath)
	if err != nil {
		return err
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	g.cfg = cfg

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(logger)

	slog.Debug("config loaded",
		"config", g.configPath,
		"format", cfg.Output.Format,
		"rules", len(cfg.Alerts.Rules),
	)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the schedhealth version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "schedhealth", Version)
			return err
		},
	}
}
