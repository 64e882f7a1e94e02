package main

import (
	"context"
	"skipmark/internal/config"
	"skipmark/internal/marker"
	"skipmark/pkg/domain"
	"skipmark/pkg/logger"
	"skipmark/pkg/metrics"
	"skipmark/pkg/serrors"
	"skipmark/pkg/storage/fs"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// markFlags holds the command-line values of the root command.
type markFlags struct {
	configPath  string
	inPlace     bool
	out         string
	token       string
	check       bool
	quiet       bool
	metricsFile string
}

// newRootCommand constructs the skipmark command. Configuration is loaded once
// cobra has parsed the flags, so the config path can appear anywhere on the line.
func newRootCommand() *cobra.Command {
	var (
		flags markFlags
		cfg   *config.Config
	)

	cmd := &cobra.Command{
		Use:   "skipmark [flags] SOURCE REF",
		Short: "Prefixes lines of SOURCE that are listed in REF with a marker",
		Long: `skipmark marks every line of SOURCE whose trimmed content appears in REF.
Blank lines and lines starting with '#' in REF are ignored. Lines that already
carry the marker are left alone, so running skipmark twice changes nothing.`,
		Args:          badRequestArgs(cobra.ExactArgs(2)),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(flags.configPath)
			if err != nil {
				return serrors.Wrap(serrors.ErrBadRequest, err, "could not load config")
			}
			cfg = loaded
			logger.Setup(cfg.Environment, flags.quiet)

			if cmd.Flags().Changed("marker") {
				cfg.Marker = flags.token
			}
			if flags.metricsFile != "" {
				cfg.Metrics.Textfile = flags.metricsFile
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logger.WithFields(cmd.Context(), zap.String("run_id", uuid.New().String()))

			req := marker.Request{
				Source:      args[0],
				Reference:   args[1],
				Destination: domain.ResolveDestination(flags.inPlace, flags.out),
				Check:       flags.check,
			}
			if flags.inPlace && flags.out != "" {
				logger.Warn(ctx, "--out is ignored when --in-place is set", zap.String("out", flags.out))
			}

			return runMark(ctx, cfg, cmd, req)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid flags")
	})

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "config.yml", "Config File Path")
	cmd.Flags().BoolVarP(&flags.inPlace, "in-place", "i", false, "Overwrite SOURCE with the result")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "Write the result to this path instead of standard output")
	cmd.Flags().StringVarP(&flags.token, "marker", "m", marker.DefaultToken, "Marker token prefixed to referenced lines")
	cmd.Flags().BoolVar(&flags.check, "check", false, "Write nothing; fail if any line still needs the marker")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "Only log warnings and errors")
	cmd.Flags().StringVar(&flags.metricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this path")

	return cmd
}

// badRequestArgs classifies argument validation failures as bad requests.
func badRequestArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return serrors.Wrap(serrors.ErrBadRequest, err, "invalid arguments")
		}

		return nil
	}
}

// runMark wires storage, marker and metrics from cfg and performs one run.
func runMark(ctx context.Context, cfg *config.Config, cmd *cobra.Command, req marker.Request) error {
	st := fs.New(fs.Options{
		FileMode: cfg.Output.FileMode.Perm(),
		Sync:     !cfg.Output.NoSync,
	})

	opts := marker.NewOptions(cfg)
	opts.Stream = cmd.OutOrStdout()
	m, err := marker.New(st, opts)
	if err != nil {
		return err
	}

	report, err := m.MarkFile(ctx, req)

	if cfg.Metrics.Textfile != "" {
		exportMetrics(ctx, cfg.Metrics.Textfile, report)
	}

	if err != nil {
		return err
	}
	if req.Check && report.Changed() {
		return serrors.With(serrors.ErrUnmarked, "%d line(s) of %s still need the marker", report.Marked, req.Source)
	}

	return nil
}

// exportMetrics writes the run metrics textfile. Failures are logged only:
// metrics never change the outcome of a run.
func exportMetrics(ctx context.Context, path string, report *domain.Report) {
	recorder, err := metrics.New()
	if err != nil {
		logger.Warn(ctx, "could not create metrics recorder", zap.Error(err))

		return
	}
	defer func() {
		if err := recorder.Shutdown(ctx); err != nil {
			logger.Warn(ctx, "could not shut down metrics recorder", zap.Error(err))
		}
	}()

	recorder.Record(ctx, report)
	if err := recorder.WriteTextfile(path); err != nil {
		logger.Warn(ctx, "could not export metrics", zap.String("path", path), zap.Error(err))
	}
}
