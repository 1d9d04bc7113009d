// internal/output/api_conv.go
package output

import (
	"exoparam/core/engine"
	"exoparam/core/study"
	"exoparam/pkg/api"
)

// Report is one resolved (or failed) study tagged with where it came from.
type Report struct {
	Study  study.Study
	Result engine.Result
	Prov   engine.Provenance
	Err    error

	RunID  string
	Source string
}

// OK reports whether the study resolved.
func (r Report) OK() bool { return r.Err == nil }

// ToAPIResult converts a report to the stable wire schema (v1).
func ToAPIResult(r Report) api.ResultV1 {
	v := api.ResultV1{
		RunID:            r.RunID,
		Name:             r.Study.Name(),
		SourceFile:       r.Source,
		OK:               r.OK(),
		ScaleHeightCount: r.Study.ScaleHeightCount(),
	}
	if !r.OK() {
		v.Error = r.Err.Error()
		v.Stage = engine.StageOf(r.Err)
		return v
	}
	v.ScaleHeightCount = r.Result.ScaleHeightCount
	v.Fields = make([]api.FieldV1, 0, len(engine.OutputFields))
	for _, f := range engine.OutputFields {
		q, _ := r.Result.Get(f)
		val, unc, unit, err := Present(f, q)
		if err != nil {
			// Result fields always carry their field's dimension.
			panic(err)
		}
		in := r.Prov.Inputs(f)
		names := make([]string, len(in))
		for i, x := range in {
			names[i] = string(x)
		}
		v.Fields = append(v.Fields, api.FieldV1{
			Name:   string(f),
			Label:  f.Label(),
			Value:  val,
			Unc:    unc,
			Unit:   unit,
			Direct: r.Prov.Direct(f),
			Inputs: names,
		})
	}
	s := r.Result.SignalPPM()
	v.Signal = &api.ValueV1{Value: s.Value(), Unc: s.Uncertainty(), Unit: "ppm"}
	return v
}

// ToAPIResults converts a batch in order.
func ToAPIResults(list []Report) []api.ResultV1 {
	out := make([]api.ResultV1, 0, len(list))
	for _, r := range list {
		out = append(out, ToAPIResult(r))
	}
	return out
}
