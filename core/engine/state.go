package engine

import (
	"fmt"

	"exoparam/core/quantity"
	"exoparam/core/study"
)

// state is the resolved-so-far context threaded through the stage table.
type state struct {
	study study.Study
	stage string
	vals  map[study.Field]quantity.Quantity
	prov  map[study.Field][]study.Field
	from  map[study.Field]string
	obs   Observer
}

func newState(s study.Study, obs Observer) *state {
	return &state{
		study: s,
		vals:  make(map[study.Field]quantity.Quantity, len(OutputFields)),
		prov:  make(map[study.Field][]study.Field, len(OutputFields)),
		from:  make(map[study.Field]string, len(OutputFields)),
		obs:   obs,
	}
}

// given looks at the raw study only.
func (s *state) given(f study.Field) (quantity.Quantity, bool) { return s.study.Lookup(f) }

// get returns a value resolved by an earlier stage.
func (s *state) get(f study.Field) quantity.Quantity {
	q, ok := s.vals[f]
	if !ok {
		panic(fmt.Sprintf("engine: stage %s read %s before it was resolved", s.stage, f))
	}
	return q
}

// put records f with the inputs its formula consumed. A field is written once.
func (s *state) put(f study.Field, q quantity.Quantity, inputs ...study.Field) {
	if _, dup := s.vals[f]; dup {
		panic(fmt.Sprintf("engine: stage %s wrote %s twice", s.stage, f))
	}
	if len(inputs) == 0 {
		panic(fmt.Sprintf("engine: stage %s wrote %s without inputs", s.stage, f))
	}
	s.vals[f] = q
	s.prov[f] = inputs
	s.from[f] = s.stage
	if s.obs != nil {
		s.obs(s.stage, f, append([]study.Field(nil), inputs...))
	}
}

// direct copies f from the study when present.
func (s *state) direct(f study.Field) bool {
	q, ok := s.given(f)
	if ok {
		s.put(f, q, f)
	}
	return ok
}

func (s *state) seal() (Result, Provenance, error) {
	res := Result{Name: s.study.Name(), ScaleHeightCount: s.study.ScaleHeightCount()}
	for _, f := range OutputFields {
		q, ok := s.vals[f]
		if !ok {
			return Result{}, Provenance{}, fmt.Errorf("%w: %s was never resolved", ErrIncomplete, f)
		}
		if q.Dim() != f.Dim() {
			return Result{}, Provenance{}, &StageError{Stage: "seal", Err: fmt.Errorf("%s: %w: [%s], want [%s]",
				f, quantity.ErrDimensionMismatch, q.Dim(), f.Dim())}
		}
		if !q.IsFinite() {
			return Result{}, Provenance{}, nonFinite(s.from[f], f, q)
		}
		*res.slot(f) = q
	}
	if len(s.vals) != len(OutputFields) {
		return Result{}, Provenance{}, fmt.Errorf("%w: %d values for %d fields", ErrIncomplete, len(s.vals), len(OutputFields))
	}
	return res, Provenance{inputs: s.prov}, nil
}
