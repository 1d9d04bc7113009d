// core/engine/engine.go
package engine

import (
	"errors"
	"fmt"

	"exoparam/core/quantity"
	"exoparam/core/study"
)

// ErrIncomplete means the stage table finished without resolving every
// output field. It indicates a bug in the table, not in the input.
var ErrIncomplete = errors.New("incomplete resolution")

// ErrNonFinite means a stage produced a NaN or infinite value or uncertainty,
// e.g. (1-α)^(1/4) at α = 1 or a mass divided by sin i = 0.
var ErrNonFinite = errors.New("non-finite value")

// StageError wraps a failure raised inside a stage that is not an input
// problem: dimension mismatches from the quantity substrate, or a value the
// stage's formula drove to NaN or ±Inf.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Observer is told about every value a stage records. It must not block.
type Observer func(stage string, f study.Field, inputs []study.Field)

// Config tunes an Engine. The zero value is valid.
type Config struct {
	Observer Observer
}

// Resolver turns one study into a resolved result.
type Resolver interface {
	Resolve(study.Study) (Result, Provenance, error)
}

// Engine runs the fixed stage table. It holds no per-study state and is safe
// for concurrent use.
type Engine struct {
	cfg    Config
	stages []stage
}

// New returns an engine over the standard stage table.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg, stages: defaultStages}
}

var std = New(Config{})

// Resolve runs the standard engine on s.
func Resolve(s study.Study) (Result, Provenance, error) { return std.Resolve(s) }

// Resolve runs every stage in order. It returns either a complete result with
// provenance for every field, or an error and zero values.
func (e *Engine) Resolve(s study.Study) (res Result, prov Provenance, err error) {
	st := newState(s, e.cfg.Observer)
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var de *quantity.DimensionError
		if rerr, ok := r.(error); ok && errors.As(rerr, &de) {
			res, prov = Result{}, Provenance{}
			err = fmt.Errorf("study %q: %w", s.Name(), &StageError{Stage: st.stage, Err: de})
			return
		}
		panic(r)
	}()

	for _, stg := range e.stages {
		st.stage = stg.name
		if err := stg.run(st); err != nil {
			return Result{}, Provenance{}, fmt.Errorf("study %q: %w", s.Name(), err)
		}
		for _, f := range stg.fields {
			q, ok := st.vals[f]
			if !ok {
				return Result{}, Provenance{}, fmt.Errorf("study %q: %w: stage %s left %s unresolved", s.Name(), ErrIncomplete, stg.name, f)
			}
			if !q.IsFinite() {
				return Result{}, Provenance{}, fmt.Errorf("study %q: %w", s.Name(), nonFinite(stg.name, f, q))
			}
		}
	}
	res, prov, err = st.seal()
	if err != nil {
		return Result{}, Provenance{}, fmt.Errorf("study %q: %w", s.Name(), err)
	}
	return res, prov, nil
}

func nonFinite(stage string, f study.Field, q quantity.Quantity) *StageError {
	return &StageError{Stage: stage, Err: fmt.Errorf("%s = %s: %w", f, q, ErrNonFinite)}
}

// StageInfo describes one entry of the stage table.
type StageInfo struct {
	Name     string
	Resolves []study.Field
}

// Stages lists the stage table in execution order.
func (e *Engine) Stages() []StageInfo {
	out := make([]StageInfo, len(e.stages))
	for i, s := range e.stages {
		out[i] = StageInfo{Name: s.name, Resolves: append([]study.Field(nil), s.fields...)}
	}
	return out
}

// StageOf extracts the failing stage name from a Resolve error, or "".
func StageOf(err error) string {
	var mi *MissingInputError
	if errors.As(err, &mi) {
		return mi.Stage
	}
	var ci *ConflictingInputsError
	if errors.As(err, &ci) {
		return ci.Stage
	}
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
