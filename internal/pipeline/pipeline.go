// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"exoparam/core/engine"
	"exoparam/core/study"
)

// Config controls the batch pipeline.
type Config struct {
	Threads int // concurrent resolutions; <=0 means runtime.NumCPU()
}

// Outcome is one study's result or error. Exactly one of (Result, Prov) or
// Err is meaningful.
type Outcome struct {
	Index   int
	Study   study.Study
	Result  engine.Result
	Prov    engine.Provenance
	Err     error
	Elapsed time.Duration
}

// OK reports whether the study resolved.
func (o Outcome) OK() bool { return o.Err == nil }

func resolveOne(r engine.Resolver, i int, s study.Study) Outcome {
	start := time.Now()
	res, prov, err := r.Resolve(s)
	return Outcome{Index: i, Study: s, Result: res, Prov: prov, Err: err, Elapsed: time.Since(start)}
}

// ForEachOutcome resolves studies concurrently and calls visit once per study,
// in input order, from the calling goroutine. A failing study does not stop
// the batch; its error is carried in Outcome.Err. The batch stops early only
// when visit returns an error or ctx is cancelled, and that error is returned.
func ForEachOutcome(
	parent context.Context,
	cfg Config,
	studies []study.Study,
	r engine.Resolver,
	visit func(Outcome) error,
) error {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	slots := make([]Outcome, len(studies))
	ready := make(chan int, len(studies))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	var werr error
	go func() {
		defer close(ready)
		for i, s := range studies {
			if gctx.Err() != nil {
				break
			}
			i, s := i, s
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				slots[i] = resolveOne(r, i, s)
				ready <- i
				return nil
			})
		}
		werr = g.Wait()
	}()

	// Collector: release outcomes strictly in input order.
	var (
		verr error
		next int
		done = make([]bool, len(studies))
	)
	for i := range ready {
		done[i] = true
		for next < len(studies) && done[next] {
			if verr == nil {
				if err := visit(slots[next]); err != nil {
					verr = err
					cancel()
				}
			}
			next++
		}
	}

	if verr != nil {
		return verr
	}
	if err := parent.Err(); err != nil {
		return err
	}
	return werr
}

// Run resolves every study and returns the outcomes in input order.
func Run(ctx context.Context, cfg Config, studies []study.Study, r engine.Resolver) ([]Outcome, error) {
	out := make([]Outcome, 0, len(studies))
	err := ForEachOutcome(ctx, cfg, studies, r, func(o Outcome) error {
		out = append(out, o)
		return nil
	})
	return out, err
}
