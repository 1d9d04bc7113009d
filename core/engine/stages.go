// core/engine/stages.go
// The fixed stage table. Each stage reads the raw study and values resolved
// by earlier stages, picks exactly one formula variant, and records the
// inputs that variant consumed.

package engine

import (
	"exoparam/core/quantity"
	"exoparam/core/study"
)

type stage struct {
	name   string
	fields []study.Field
	run    func(*state) error
}

// Stage names, in execution order.
const (
	StagePhotosphere  = "photosphere"
	StageRadiusRatio  = "radius-ratio"
	StagePeriod       = "period"
	StageOrbitalScale = "orbital-scale"
	StageStellarMass  = "stellar-mass"
	StageDirects      = "directs"
	StageImpact       = "impact-parameter"
	StagePlanetMass   = "planet-mass"
	StageEquilibrium  = "equilibrium-temperature"
	StageGravity      = "gravity"
	StagePlanetDens   = "planet-density"
	StageMolecular    = "mean-molecular-weight"
	StageAtmosphere   = "scale-height"
)

var defaultStages = []stage{
	{StagePhotosphere, []study.Field{study.StellarRadius, study.StellarTemperature, study.StellarLuminosity}, resolvePhotosphere},
	{StageRadiusRatio, []study.Field{study.RadiusRatio, study.PlanetRadius}, resolveRadiusRatio},
	{StagePeriod, []study.Field{study.Period}, resolvePeriod},
	{StageOrbitalScale, []study.Field{study.StellarDensity, study.ScaledSemiMajor, study.SemiMajorAxis}, resolveOrbitalScale},
	{StageStellarMass, []study.Field{study.StellarMass}, resolveStellarMass},
	{StageDirects, []study.Field{study.Inclination, study.RVSemiAmplitude, study.Albedo}, resolveDirects},
	{StageImpact, []study.Field{study.ImpactParameter}, resolveImpact},
	{StagePlanetMass, []study.Field{study.PlanetMass}, resolvePlanetMass},
	{StageEquilibrium, []study.Field{study.PlanetTemperature}, resolveEquilibrium},
	{StageGravity, []study.Field{study.StellarGravity, study.PlanetGravity}, resolveGravity},
	{StagePlanetDens, []study.Field{study.PlanetDensity}, resolvePlanetDensity},
	{StageMolecular, []study.Field{study.MeanMolecularWeight}, resolveMolecularWeight},
	{StageAtmosphere, []study.Field{study.ScaleHeight, study.SignalDepth}, resolveAtmosphere},
}

type fields = []study.Field

var fourThirdsPi = quantity.Pi.Scale(4.0 / 3.0)

// L = 4π R² σ T⁴, solved for whichever of R, T, L is absent.
func resolvePhotosphere(s *state) error {
	R, hasR := s.given(study.StellarRadius)
	T, hasT := s.given(study.StellarTemperature)
	L, hasL := s.given(study.StellarLuminosity)

	switch {
	case hasR && hasT && hasL:
		s.put(study.StellarRadius, R, study.StellarRadius)
		s.put(study.StellarTemperature, T, study.StellarTemperature)
		s.put(study.StellarLuminosity, L, study.StellarLuminosity)
	case hasR && hasT:
		s.put(study.StellarRadius, R, study.StellarRadius)
		s.put(study.StellarTemperature, T, study.StellarTemperature)
		s.put(study.StellarLuminosity, luminosity(R, T), study.StellarRadius, study.StellarTemperature)
	case hasR && hasL:
		s.put(study.StellarRadius, R, study.StellarRadius)
		s.put(study.StellarTemperature, effectiveTemperature(R, L), study.StellarRadius, study.StellarLuminosity)
		s.put(study.StellarLuminosity, L, study.StellarLuminosity)
	case hasT && hasL:
		s.put(study.StellarRadius, stellarRadius(T, L), study.StellarTemperature, study.StellarLuminosity)
		s.put(study.StellarTemperature, T, study.StellarTemperature)
		s.put(study.StellarLuminosity, L, study.StellarLuminosity)
	case hasR:
		return missing(s.stage, study.StellarTemperature,
			fields{study.StellarTemperature}, fields{study.StellarLuminosity})
	default:
		return missing(s.stage, study.StellarRadius,
			fields{study.StellarRadius, study.StellarTemperature},
			fields{study.StellarRadius, study.StellarLuminosity},
			fields{study.StellarTemperature, study.StellarLuminosity})
	}
	return nil
}

func luminosity(R, T quantity.Quantity) quantity.Quantity {
	return quantity.Pi.Scale(4).Mul(R.Pow(2, 1)).Mul(quantity.Sigma).Mul(T.Pow(4, 1))
}

func effectiveTemperature(R, L quantity.Quantity) quantity.Quantity {
	return L.Div(quantity.Pi.Scale(4).Mul(R.Pow(2, 1)).Mul(quantity.Sigma)).Pow(1, 4)
}

func stellarRadius(T, L quantity.Quantity) quantity.Quantity {
	return L.Div(quantity.Pi.Scale(4).Mul(quantity.Sigma).Mul(T.Pow(4, 1))).Sqrt()
}

// A measured planet radius is a direct observable and wins over a supplied ratio.
func resolveRadiusRatio(s *state) error {
	Rs := s.get(study.StellarRadius)
	if Rp, ok := s.given(study.PlanetRadius); ok {
		s.put(study.RadiusRatio, Rp.Div(Rs), study.PlanetRadius, study.StellarRadius)
		s.put(study.PlanetRadius, Rp, study.PlanetRadius)
		return nil
	}
	if k, ok := s.given(study.RadiusRatio); ok {
		s.put(study.RadiusRatio, k, study.RadiusRatio)
		s.put(study.PlanetRadius, k.Mul(Rs), study.RadiusRatio, study.StellarRadius)
		return nil
	}
	return missing(s.stage, study.PlanetRadius, fields{study.PlanetRadius}, fields{study.RadiusRatio})
}

func resolvePeriod(s *state) error {
	if !s.direct(study.Period) {
		return missing(s.stage, study.Period, fields{study.Period})
	}
	return nil
}

// ρs, a/Rs and a are one degree of freedom given P and Rs: exactly one may be supplied.
func resolveOrbitalScale(s *state) error {
	var supplied []study.Field
	for _, f := range []study.Field{study.StellarDensity, study.ScaledSemiMajor, study.SemiMajorAxis} {
		if s.study.Has(f) {
			supplied = append(supplied, f)
		}
	}
	if len(supplied) > 1 {
		return conflict(s.stage, supplied...)
	}

	P := s.get(study.Period)
	Rs := s.get(study.StellarRadius)

	if rho, ok := s.given(study.StellarDensity); ok {
		aRs := scaledSemiMajor(P, rho)
		s.put(study.StellarDensity, rho, study.StellarDensity)
		s.put(study.ScaledSemiMajor, aRs, study.Period, study.StellarDensity)
		s.put(study.SemiMajorAxis, aRs.Mul(Rs), study.ScaledSemiMajor, study.StellarRadius)
		return nil
	}
	if aRs, ok := s.given(study.ScaledSemiMajor); ok {
		s.put(study.ScaledSemiMajor, aRs, study.ScaledSemiMajor)
		s.put(study.StellarDensity, stellarDensity(P, aRs), study.Period, study.ScaledSemiMajor)
		s.put(study.SemiMajorAxis, aRs.Mul(Rs), study.ScaledSemiMajor, study.StellarRadius)
		return nil
	}
	if a, ok := s.given(study.SemiMajorAxis); ok {
		aRs := a.Div(Rs)
		s.put(study.SemiMajorAxis, a, study.SemiMajorAxis)
		s.put(study.ScaledSemiMajor, aRs, study.SemiMajorAxis, study.StellarRadius)
		s.put(study.StellarDensity, stellarDensity(P, aRs), study.Period, study.ScaledSemiMajor)
		return nil
	}
	return missing(s.stage, study.ScaledSemiMajor,
		fields{study.StellarDensity}, fields{study.ScaledSemiMajor}, fields{study.SemiMajorAxis})
}

// a/Rs = (G P² ρs / 3π)^(1/3)
func scaledSemiMajor(P, rho quantity.Quantity) quantity.Quantity {
	return quantity.G.Mul(P.Pow(2, 1)).Mul(rho).Div(quantity.Pi.Scale(3)).Cbrt()
}

// ρs = 3π/(G P²) · (a/Rs)³
func stellarDensity(P, aRs quantity.Quantity) quantity.Quantity {
	return quantity.Pi.Scale(3).Div(quantity.G.Mul(P.Pow(2, 1))).Mul(aRs.Pow(3, 1))
}

func resolveStellarMass(s *state) error {
	if s.direct(study.StellarMass) {
		return nil
	}
	Ms := s.get(study.StellarDensity).Mul(fourThirdsPi).Mul(s.get(study.StellarRadius).Pow(3, 1))
	s.put(study.StellarMass, Ms, study.StellarDensity, study.StellarRadius)
	return nil
}

func resolveDirects(s *state) error {
	for _, f := range []study.Field{study.Inclination, study.RVSemiAmplitude, study.Albedo} {
		if !s.direct(f) {
			return missing(s.stage, f, fields{f})
		}
	}
	return nil
}

// b and a/Rs are tied through i; supplying both over-determines the orbit.
func resolveImpact(s *state) error {
	if s.study.Has(study.ImpactParameter) && s.study.Has(study.ScaledSemiMajor) {
		return conflict(s.stage, study.ScaledSemiMajor, study.ImpactParameter)
	}
	if s.direct(study.ImpactParameter) {
		return nil
	}
	b := s.get(study.ScaledSemiMajor).Mul(s.get(study.Inclination).Cos())
	s.put(study.ImpactParameter, b, study.ScaledSemiMajor, study.Inclination)
	return nil
}

// Mp = (K / sin i) · (P / 2πG)^(1/3) · Ms^(2/3), valid for Mp ≪ Ms.
func resolvePlanetMass(s *state) error {
	if s.direct(study.PlanetMass) {
		return nil
	}
	K := s.get(study.RVSemiAmplitude)
	i := s.get(study.Inclination)
	P := s.get(study.Period)
	Ms := s.get(study.StellarMass)
	Mp := K.Div(i.Sin()).
		Mul(P.Div(quantity.Pi.Scale(2).Mul(quantity.G)).Cbrt()).
		Mul(Ms.Pow(2, 3))
	s.put(study.PlanetMass, Mp, study.RVSemiAmplitude, study.Inclination, study.Period, study.StellarMass)
	return nil
}

// Tp = Ts · (1-α)^(1/4) · (0.5 / (a/Rs))^(1/2)
func resolveEquilibrium(s *state) error {
	if s.direct(study.PlanetTemperature) {
		return nil
	}
	Ts := s.get(study.StellarTemperature)
	alpha := s.get(study.Albedo)
	aRs := s.get(study.ScaledSemiMajor)
	Tp := Ts.Mul(quantity.Scalar(1).Sub(alpha).Pow(1, 4)).Mul(quantity.Scalar(0.5).Div(aRs).Sqrt())
	s.put(study.PlanetTemperature, Tp, study.StellarTemperature, study.Albedo, study.ScaledSemiMajor)
	return nil
}

func resolveGravity(s *state) error {
	if !s.direct(study.StellarGravity) {
		gs := quantity.G.Mul(s.get(study.StellarMass)).Div(s.get(study.StellarRadius).Pow(2, 1))
		s.put(study.StellarGravity, gs, study.StellarMass, study.StellarRadius)
	}
	if !s.direct(study.PlanetGravity) {
		RpRs := s.get(study.RadiusRatio)
		Rs := s.get(study.StellarRadius)
		gp := quantity.G.Mul(s.get(study.PlanetMass)).Div(RpRs.Pow(2, 1).Mul(Rs.Pow(2, 1)))
		s.put(study.PlanetGravity, gp, study.PlanetMass, study.RadiusRatio, study.StellarRadius)
	}
	return nil
}

func resolvePlanetDensity(s *state) error {
	if s.direct(study.PlanetDensity) {
		return nil
	}
	rho := s.get(study.PlanetMass).Div(fourThirdsPi.Mul(s.get(study.PlanetRadius).Pow(3, 1)))
	s.put(study.PlanetDensity, rho, study.PlanetMass, study.PlanetRadius)
	return nil
}

func resolveMolecularWeight(s *state) error {
	if !s.direct(study.MeanMolecularWeight) {
		return missing(s.stage, study.MeanMolecularWeight, fields{study.MeanMolecularWeight})
	}
	return nil
}

// H = k Tp / (μ gp); ΔD = 2 H (Rp/Rs) / Rs.
func resolveAtmosphere(s *state) error {
	H := quantity.Boltz.Mul(s.get(study.PlanetTemperature)).
		Div(s.get(study.MeanMolecularWeight).Mul(s.get(study.PlanetGravity)))
	s.put(study.ScaleHeight, H, study.PlanetTemperature, study.MeanMolecularWeight, study.PlanetGravity)

	dD := H.Scale(2).Mul(s.get(study.RadiusRatio)).Div(s.get(study.StellarRadius))
	s.put(study.SignalDepth, dD, study.ScaleHeight, study.RadiusRatio, study.StellarRadius)
	return nil
}
