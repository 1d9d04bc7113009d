// core/study/field.go
package study

import (
	"fmt"

	"exoparam/core/quantity"
)

// Field names one physical parameter of a star–planet system. The string
// value is the stable short name used in datasets, provenance and output.
type Field string

// Stellar.
const (
	StellarTemperature Field = "Ts"
	StellarDensity     Field = "rho_s"
	StellarMass        Field = "Ms"
	StellarRadius      Field = "Rs"
	StellarGravity     Field = "g_s"
	StellarLuminosity  Field = "Ls"
)

// Orbital.
const (
	RadiusRatio     Field = "RpRs"
	ScaledSemiMajor Field = "aRs"
	SemiMajorAxis   Field = "a"
	ImpactParameter Field = "b"
	Period          Field = "P"
	RVSemiAmplitude Field = "K"
	Inclination     Field = "i"
)

// Planet.
const (
	MeanMolecularWeight Field = "mu"
	Albedo              Field = "alpha"
	PlanetTemperature   Field = "Tp"
	PlanetDensity       Field = "rho_p"
	PlanetMass          Field = "Mp"
	PlanetRadius        Field = "Rp"
	PlanetGravity       Field = "g_p"
)

// Derived only; never accepted as input.
const (
	ScaleHeight Field = "H"
	SignalDepth Field = "dD"
)

// Group classifies fields for presentation.
type Group int

const (
	GroupStellar Group = iota
	GroupOrbital
	GroupPlanet
	GroupDerived
)

func (g Group) String() string {
	switch g {
	case GroupStellar:
		return "star"
	case GroupOrbital:
		return "orbit"
	case GroupPlanet:
		return "planet"
	case GroupDerived:
		return "atmosphere"
	}
	return fmt.Sprintf("Group(%d)", int(g))
}

type fieldInfo struct {
	dim   quantity.Dimension
	group Group
	label string
}

var fieldTable = map[Field]fieldInfo{
	StellarTemperature: {quantity.TemperatureDim, GroupStellar, "stellar effective temperature"},
	StellarDensity:     {quantity.DensityDim, GroupStellar, "stellar density"},
	StellarMass:        {quantity.MassDim, GroupStellar, "stellar mass"},
	StellarRadius:      {quantity.LengthDim, GroupStellar, "stellar radius"},
	StellarGravity:     {quantity.AccelDim, GroupStellar, "stellar surface gravity"},
	StellarLuminosity:  {quantity.PowerDim, GroupStellar, "stellar luminosity"},

	RadiusRatio:     {quantity.Dimensionless, GroupOrbital, "planet/star radius ratio"},
	ScaledSemiMajor: {quantity.Dimensionless, GroupOrbital, "scaled semi-major axis"},
	SemiMajorAxis:   {quantity.LengthDim, GroupOrbital, "semi-major axis"},
	ImpactParameter: {quantity.Dimensionless, GroupOrbital, "impact parameter"},
	Period:          {quantity.TimeDim, GroupOrbital, "orbital period"},
	RVSemiAmplitude: {quantity.VelocityDim, GroupOrbital, "RV semi-amplitude"},
	Inclination:     {quantity.Dimensionless, GroupOrbital, "inclination"},

	MeanMolecularWeight: {quantity.MassDim, GroupPlanet, "mean molecular weight"},
	Albedo:              {quantity.Dimensionless, GroupPlanet, "albedo"},
	PlanetTemperature:   {quantity.TemperatureDim, GroupPlanet, "equilibrium temperature"},
	PlanetDensity:       {quantity.DensityDim, GroupPlanet, "planet density"},
	PlanetMass:          {quantity.MassDim, GroupPlanet, "planet mass"},
	PlanetRadius:        {quantity.LengthDim, GroupPlanet, "planet radius"},
	PlanetGravity:       {quantity.AccelDim, GroupPlanet, "planet surface gravity"},

	ScaleHeight: {quantity.LengthDim, GroupDerived, "scale height"},
	SignalDepth: {quantity.Dimensionless, GroupDerived, "transmission signal per scale height"},
}

// InputFields lists every field a Study may carry, in declaration order.
var InputFields = []Field{
	StellarTemperature, StellarDensity, StellarMass, StellarRadius, StellarGravity, StellarLuminosity,
	RadiusRatio, ScaledSemiMajor, SemiMajorAxis, ImpactParameter, Period, RVSemiAmplitude, Inclination,
	MeanMolecularWeight, Albedo, PlanetTemperature, PlanetDensity, PlanetMass, PlanetRadius, PlanetGravity,
}

// Dim is the dimension a value for f must carry.
func (f Field) Dim() quantity.Dimension { return fieldTable[f].dim }

// Group is the presentation group of f.
func (f Field) Group() Group { return fieldTable[f].group }

// Label is a human-readable description of f.
func (f Field) Label() string { return fieldTable[f].label }

// Known reports whether f is a recognised field.
func (f Field) Known() bool {
	_, ok := fieldTable[f]
	return ok
}

// IsInput reports whether f may be supplied in a Study.
func (f Field) IsInput() bool { return f.Known() && f.Group() != GroupDerived }

// ParseField resolves a short field name.
func ParseField(name string) (Field, error) {
	f := Field(name)
	if !f.IsInput() {
		return "", fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	return f, nil
}
