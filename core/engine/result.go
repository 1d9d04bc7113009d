// core/engine/result.go
package engine

import (
	"exoparam/core/quantity"
	"exoparam/core/study"
)

// OutputFields is every field a Result carries, in stage order.
var OutputFields = []study.Field{
	study.StellarRadius, study.StellarTemperature, study.StellarLuminosity,
	study.RadiusRatio, study.PlanetRadius,
	study.Period,
	study.StellarDensity, study.ScaledSemiMajor, study.SemiMajorAxis,
	study.StellarMass,
	study.Inclination, study.RVSemiAmplitude, study.Albedo,
	study.ImpactParameter,
	study.PlanetMass,
	study.PlanetTemperature,
	study.StellarGravity, study.PlanetGravity,
	study.PlanetDensity,
	study.MeanMolecularWeight,
	study.ScaleHeight, study.SignalDepth,
}

// Result is a fully resolved parameter set. Every quantity is populated.
type Result struct {
	Name             string
	ScaleHeightCount float64

	// Star
	Ts, RhoS, Ms, Rs, Gs, Ls quantity.Quantity
	// Orbit
	RpRs, ARs, A, B, P, K, I quantity.Quantity
	// Planet
	Mu, Alpha, Tp, RhoP, Mp, Rp, Gp quantity.Quantity
	// Atmosphere
	H, DD quantity.Quantity
}

func (r *Result) slot(f study.Field) *quantity.Quantity {
	switch f {
	case study.StellarTemperature:
		return &r.Ts
	case study.StellarDensity:
		return &r.RhoS
	case study.StellarMass:
		return &r.Ms
	case study.StellarRadius:
		return &r.Rs
	case study.StellarGravity:
		return &r.Gs
	case study.StellarLuminosity:
		return &r.Ls
	case study.RadiusRatio:
		return &r.RpRs
	case study.ScaledSemiMajor:
		return &r.ARs
	case study.SemiMajorAxis:
		return &r.A
	case study.ImpactParameter:
		return &r.B
	case study.Period:
		return &r.P
	case study.RVSemiAmplitude:
		return &r.K
	case study.Inclination:
		return &r.I
	case study.MeanMolecularWeight:
		return &r.Mu
	case study.Albedo:
		return &r.Alpha
	case study.PlanetTemperature:
		return &r.Tp
	case study.PlanetDensity:
		return &r.RhoP
	case study.PlanetMass:
		return &r.Mp
	case study.PlanetRadius:
		return &r.Rp
	case study.PlanetGravity:
		return &r.Gp
	case study.ScaleHeight:
		return &r.H
	case study.SignalDepth:
		return &r.DD
	}
	return nil
}

// Get returns the resolved value of f. ok is false for unknown fields.
func (r Result) Get(f study.Field) (quantity.Quantity, bool) {
	p := r.slot(f)
	if p == nil {
		return quantity.Quantity{}, false
	}
	return *p, true
}

// SignalPPM is the transmission signal over ScaleHeightCount scale heights,
// in parts per million.
func (r Result) SignalPPM() quantity.Quantity {
	return r.DD.Scale(r.ScaleHeightCount * 1e6)
}

// Provenance maps each resolved field to the inputs its formula consumed.
type Provenance struct {
	inputs map[study.Field][]study.Field
}

// Inputs returns the ordered input names for f (a copy), or nil.
func (p Provenance) Inputs(f study.Field) []study.Field {
	in, ok := p.inputs[f]
	if !ok {
		return nil
	}
	return append([]study.Field(nil), in...)
}

// Direct reports whether f was taken verbatim from the study.
func (p Provenance) Direct(f study.Field) bool {
	in := p.inputs[f]
	return len(in) == 1 && in[0] == f
}

// Fields lists the recorded fields in stage order.
func (p Provenance) Fields() []study.Field {
	out := make([]study.Field, 0, len(p.inputs))
	for _, f := range OutputFields {
		if _, ok := p.inputs[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Len is the number of recorded fields.
func (p Provenance) Len() int { return len(p.inputs) }
