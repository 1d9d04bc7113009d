// internal/output/units.go
package output

import (
	"math"

	"exoparam/core/quantity"
	"exoparam/core/study"
)

// DexGravity marks a surface gravity reported as log10 of cm/s^2.
const DexGravity = "dex(cm/s^2)"

// ReportUnits is the unit each field is presented in.
var ReportUnits = map[study.Field]string{
	study.StellarTemperature: "K",
	study.StellarDensity:     "g/cm^3",
	study.StellarMass:        "Msun",
	study.StellarRadius:      "Rsun",
	study.StellarGravity:     DexGravity,
	study.StellarLuminosity:  "Lsun",

	study.RadiusRatio:     "",
	study.ScaledSemiMajor: "",
	study.SemiMajorAxis:   "au",
	study.ImpactParameter: "",
	study.Period:          "d",
	study.RVSemiAmplitude: "m/s",
	study.Inclination:     "deg",

	study.MeanMolecularWeight: "u",
	study.Albedo:              "",
	study.PlanetTemperature:   "K",
	study.PlanetDensity:       "g/cm^3",
	study.PlanetMass:          "Mjup",
	study.PlanetRadius:        "Rjup",
	study.PlanetGravity:       DexGravity,

	study.ScaleHeight: "km",
	study.SignalDepth: "ppm",
}

// Present converts q to the report unit of f.
func Present(f study.Field, q quantity.Quantity) (value, unc float64, unit string, err error) {
	unit = ReportUnits[f]
	if unit == DexGravity {
		g, dg, err := q.In("cm/s^2")
		if err != nil {
			return 0, 0, unit, err
		}
		return math.Log10(g), dg / (g * math.Ln10), unit, nil
	}
	value, unc, err = q.In(unit)
	return value, unc, unit, err
}
