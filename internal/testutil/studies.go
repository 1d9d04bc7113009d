// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"exoparam/core/quantity"
	"exoparam/core/study"
)

func mustUnit(v, u float64, unit string) quantity.Quantity {
	q, err := quantity.FromUnit(v, u, unit)
	if err != nil {
		panic(err)
	}
	return q
}

// ScenarioValues is a complete transit + RV input set (a/Rs and Rp/Rs supplied).
func ScenarioValues() map[study.Field]quantity.Quantity {
	return map[study.Field]quantity.Quantity{
		study.MeanMolecularWeight: mustUnit(2, 0, "u"),
		study.Albedo:              mustUnit(0, 0, ""),
		study.Inclination:         mustUnit(85.74, 0.95, "deg"),
		study.Period:              mustUnit(1.21288287, 1.7e-7, "d"),
		study.RadiusRatio:         mustUnit(0.11616, 0.00081, ""),
		study.StellarTemperature:  mustUnit(5885, 72, "K"),
		study.StellarRadius:       mustUnit(1.089, 0.028, "Rsun"),
		study.ScaledSemiMajor:     mustUnit(4.5459, 0.0919, ""),
		study.RVSemiAmplitude:     mustUnit(368.5, 17.6, "m/s"),
	}
}

// Scenario builds the scenario study named name without the dropped fields.
func Scenario(name string, drop ...study.Field) study.Study {
	skip := map[study.Field]bool{}
	for _, f := range drop {
		skip[f] = true
	}
	return build(name, ScenarioValues(), skip)
}

// ScenarioWith builds the scenario study with some inputs replaced.
func ScenarioWith(name string, override map[study.Field]quantity.Quantity) study.Study {
	vals := ScenarioValues()
	for f, q := range override {
		vals[f] = q
	}
	return build(name, vals, nil)
}

// EdgeAlbedo is α = 1 ± 0.05, which drives (1-α)^(1/4) to an infinite
// uncertainty.
func EdgeAlbedo() map[study.Field]quantity.Quantity {
	return map[study.Field]quantity.Quantity{study.Albedo: mustUnit(1, 0.05, "")}
}

func build(name string, vals map[study.Field]quantity.Quantity, skip map[study.Field]bool) study.Study {
	var opts []study.Option
	for _, f := range study.InputFields {
		if v, ok := vals[f]; ok && !skip[f] {
			opts = append(opts, study.WithField(f, v))
		}
	}
	return study.MustNew(name, opts...)
}

// ScenarioYAML is the scenario as a dataset document with a second study.
const ScenarioYAML = `version: "1.0"
studies:
  - name: Scenario b
    params:
      mu: "2 u"
      alpha: "0 ± 0"
      i: {value: 85.74, unc: 0.95, unit: deg}
      P: "1.21288287 ± 1.7e-7 d"
      RpRs: "0.11616 ± 0.00081"
      Ts: "5885 ± 72 K"
      Rs: "1.089 ± 0.028 Rsun"
      aRs: "4.5459 ± 0.0919"
      K: "368.5 ± 17.6 m/s"
  - name: Density variant b
    scale_height_count: 3
    params:
      mu: "2.3 u"
      alpha: "0.1 ± 0.05"
      i: "86.3 ± 0.5 deg"
      P: "2.2185733 ± 1e-6 d"
      Rp: "1.138 ± 0.027 Rjup"
      Ts: "5050 ± 50 K"
      Ls: "0.33 ± 0.02 Lsun"
      Rs: "0.756 ± 0.018 Rsun"
      rho_s: "2.62 ± 0.1 g/cm^3"
      K: "205 ± 6 m/s"
`
