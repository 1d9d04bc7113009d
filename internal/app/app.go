// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"exoparam/internal/appcore"
	"exoparam/internal/cli"
	"exoparam/internal/cmdutil"
	"exoparam/internal/config"
	"exoparam/internal/dataset"
	"exoparam/internal/metrics"
)

const name = "exoparam"

// ErrNoStudies means the dataset files (after filtering) held nothing to resolve.
var ErrNoStudies = errors.New("no studies to resolve")

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	o := cli.Defaults()
	code := -1
	cmd := cli.NewCommand(name, &o, func(cmd *cobra.Command, o *cli.Options) error {
		code = run(cmd.Context(), cmd, o, stdout, stderr)
		return nil
	})
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if len(argv) == 0 {
		argv = []string{"--help"}
	}
	cmd.SetArgs(argv)

	if err := cmd.ExecuteContext(parent); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\nRun '%s --help' for usage.\n", err, name)
		return appcore.ExitUsage
	}
	if code < 0 {
		// --help or --version
		return appcore.ExitOK
	}
	return code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func run(ctx context.Context, cmd *cobra.Command, o *cli.Options, stdout, stderr io.Writer) int {
	cfg, err := config.Load(o.Config)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return appcore.ExitUsage
	}
	cli.ApplyConfig(cmd.Flags(), o, cfg)
	if err := o.Validate(); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\nRun '%s --help' for usage.\n", err, name)
		return appcore.ExitUsage
	}

	base, err := cmdutil.NewLogger(stderr, o.EffectiveLogLevel(), o.LogFormat)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return appcore.ExitUsage
	}
	runID := uuid.NewString()
	log := base.With("run_id", runID)

	inputs, err := loadInputs(o, log)
	if err != nil {
		log.Error("cannot load studies", "error", err)
		return appcore.ExitUsage
	}

	return appcore.Run(ctx, stdout, appcore.Options{
		Threads:      o.Threads,
		FailExitCode: o.FailExitCode,
		RunID:        runID,
		Logger:       log,
		Metrics:      metrics.New(),
		MetricsFile:  o.MetricsFile,
	}, inputs, appcore.NewReportWriterFactory(o.Output, !o.NoHeader))
}

// loadInputs reads every dataset, applies the --study filter and the
// --scale-heights override.
func loadInputs(o *cli.Options, log *slog.Logger) ([]appcore.Input, error) {
	var inputs []appcore.Input
	matched := map[string]bool{}
	for _, path := range o.Datasets {
		studies, err := dataset.LoadFile(path)
		if err != nil {
			return nil, err
		}
		log.Debug("dataset loaded", "path", path, "studies", len(studies))
		for _, s := range studies {
			if len(o.Studies) > 0 && !slices.Contains(o.Studies, s.Name()) {
				continue
			}
			matched[s.Name()] = true
			if o.ScaleHeights > 0 {
				if s, err = s.WithScaleHeightCount(o.ScaleHeights); err != nil {
					return nil, err
				}
			}
			inputs = append(inputs, appcore.Input{Study: s, Source: path})
		}
	}
	for _, n := range o.Studies {
		if !matched[n] {
			return nil, fmt.Errorf("%w: no study named %q", ErrNoStudies, n)
		}
	}
	if len(inputs) == 0 {
		return nil, ErrNoStudies
	}
	return inputs, nil
}
