package cmdutil

import (
	"context"

	"exoparam/core/engine"
	"exoparam/core/study"
	"exoparam/internal/pipeline"
)

// RunStream runs the shared pipeline and streams every outcome via send, in
// input order. It returns the number of failed studies and the first batch
// error (cancellation or a send failure).
func RunStream(
	ctx context.Context,
	cfg pipeline.Config,
	studies []study.Study,
	r engine.Resolver,
	send func(pipeline.Outcome) error,
) (int, error) {
	failed := 0
	err := pipeline.ForEachOutcome(ctx, cfg, studies, r, func(o pipeline.Outcome) error {
		if !o.OK() {
			failed++
		}
		return send(o)
	})
	return failed, err
}
