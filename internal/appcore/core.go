// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime"

	"exoparam/core/engine"
	"exoparam/core/study"
	"exoparam/internal/cmdutil"
	"exoparam/internal/metrics"
	"exoparam/internal/output"
	"exoparam/internal/pipeline"
	"exoparam/internal/writers"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitUsage     = 2
	ExitWrite     = 3
	ExitCancelled = 130
)

// Input is one study and the dataset file it came from.
type Input struct {
	Study  study.Study
	Source string
}

type Options struct {
	Threads      int
	FailExitCode int

	RunID       string
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
	MetricsFile string
}

type WriterFactory interface {
	Streaming() bool
	Start(out io.Writer, bufSize int) (chan<- output.Report, <-chan error, error)
}

// Run resolves inputs and writes one report per input, in order. It returns
// the process exit code.
func Run(
	parent context.Context,
	stdout io.Writer,
	o Options,
	inputs []Input,
	wf WriterFactory,
) int {
	log := o.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	outw := bufio.NewWriter(stdout)

	thr := o.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	eng := engine.New(engine.Config{Observer: o.Metrics.ObserveValue})

	inCh, writeErr, err := wf.Start(outw, thr*4)
	if err != nil {
		log.Error("cannot start writer", "error", err)
		return ExitUsage
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	studies := make([]study.Study, len(inputs))
	for i, in := range inputs {
		studies[i] = in.Study
	}
	log.Debug("resolving", "studies", len(studies), "threads", thr, "streaming", wf.Streaming())

	failed, perr := cmdutil.RunStream(ctx, pipeline.Config{Threads: thr}, studies, eng,
		func(oc pipeline.Outcome) error {
			stage := engine.StageOf(oc.Err)
			o.Metrics.ObserveStudy(oc.OK(), stage, oc.Elapsed)
			src := inputs[oc.Index].Source
			if oc.OK() {
				log.Debug("study resolved", "study", oc.Study.Name(), "source", src, "elapsed", oc.Elapsed)
			} else {
				log.Warn("study failed", "study", oc.Study.Name(), "source", src, "stage", stage, "error", oc.Err)
			}
			r := output.Report{
				Study:  oc.Study,
				Result: oc.Result,
				Prov:   oc.Prov,
				Err:    oc.Err,
				RunID:  o.RunID,
				Source: src,
			}
			select {
			case inCh <- r:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)

	close(inCh)

	code := ExitOK
	if werr := <-writeErr; werr != nil && !writers.IsBrokenPipe(werr) {
		log.Error("write failed", "error", werr)
		code = ExitWrite
	} else if e := outw.Flush(); e != nil && !writers.IsBrokenPipe(e) {
		log.Error("write failed", "error", e)
		code = ExitWrite
	}

	if o.MetricsFile != "" && o.Metrics != nil {
		if err := o.Metrics.WriteFile(o.MetricsFile); err != nil {
			log.Error("cannot write metrics", "path", o.MetricsFile, "error", err)
			if code == ExitOK {
				code = ExitWrite
			}
		}
	}

	switch {
	case code != ExitOK:
		return code
	case perr != nil:
		if errors.Is(perr, context.Canceled) {
			return ExitCancelled
		}
		log.Error("run failed", "error", perr)
		return ExitWrite
	case failed > 0:
		log.Info("run finished with failures", "failed", failed, "total", len(inputs))
		return o.FailExitCode
	}
	log.Info("run finished", "total", len(inputs))
	return ExitOK
}
