// core/quantity/units.go
package quantity

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Unit is a named linear scale onto SI base units.
type Unit struct {
	Name  string
	Scale float64 // SI value of one unit
	Dim   Dimension
}

var unitTable = map[string]Unit{}

func register(name string, scale float64, dim Dimension, aliases ...string) {
	u := Unit{Name: name, Scale: scale, Dim: dim}
	unitTable[name] = u
	for _, a := range aliases {
		unitTable[a] = u
	}
}

func init() {
	register("", 1, Dimensionless, "1")
	register("ppm", 1e-6, Dimensionless)
	register("rad", 1, Dimensionless)
	register("deg", math.Pi/180, Dimensionless, "°")

	register("m", 1, LengthDim)
	register("cm", 1e-2, LengthDim)
	register("km", 1e3, LengthDim)
	register("au", AU.value, LengthDim, "AU")
	register("Rsun", SolarRadius.value, LengthDim, "R☉")
	register("Rjup", JupiterRadius.value, LengthDim, "RJ")
	register("Rearth", EarthRadius.value, LengthDim, "R⊕")

	register("kg", 1, MassDim)
	register("g", 1e-3, MassDim)
	register("Msun", SolarMass.value, MassDim, "M☉")
	register("Mjup", JupiterMass.value, MassDim, "MJ")
	register("Mearth", EarthMass.value, MassDim, "M⊕")
	register("u", Amu.value, MassDim, "amu")

	register("s", 1, TimeDim)
	register("min", 60, TimeDim)
	register("h", 3600, TimeDim, "hr")
	register("d", Day.value, TimeDim, "day", "days")
	register("yr", 365.25*Day.value, TimeDim)

	register("K", 1, TemperatureDim)

	register("W", 1, PowerDim)
	register("Lsun", SolarLuminosity.value, PowerDim, "L☉")

	register("kg/m^3", 1, DensityDim, "kg/m3")
	register("g/cm^3", 1e3, DensityDim, "g/cm3")

	register("m/s^2", 1, AccelDim, "m/s2")
	register("cm/s^2", 1e-2, AccelDim, "cm/s2")

	register("m/s", 1, VelocityDim)
	register("km/s", 1e3, VelocityDim)
}

// LookupUnit resolves a unit name or alias.
func LookupUnit(name string) (Unit, error) {
	u, ok := unitTable[strings.TrimSpace(name)]
	if !ok {
		return Unit{}, fmt.Errorf("%w %q", ErrUnknownUnit, name)
	}
	return u, nil
}

// Units lists every registered name and alias, sorted.
func Units() []string {
	out := make([]string, 0, len(unitTable))
	for k := range unitTable {
		if k != "" {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// FromUnit builds value ± unc expressed in the named unit.
func FromUnit(value, unc float64, unit string) (Quantity, error) {
	u, err := LookupUnit(unit)
	if err != nil {
		return Quantity{}, err
	}
	return New(value*u.Scale, unc*u.Scale, u.Dim), nil
}

// FromDex builds a quantity from a base-10 logarithm of a value in unit,
// e.g. log g = 4.4 ± 0.1 in cm/s^2. The uncertainty maps linearly:
// δx = x·ln(10)·δ(log x).
func FromDex(logValue, logUnc float64, unit string) (Quantity, error) {
	u, err := LookupUnit(unit)
	if err != nil {
		return Quantity{}, err
	}
	x := math.Pow(10, logValue)
	return New(x*u.Scale, x*math.Ln10*logUnc*u.Scale, u.Dim), nil
}

// In returns the value and uncertainty of q expressed in unit.
func (q Quantity) In(unit string) (value, unc float64, err error) {
	u, err := LookupUnit(unit)
	if err != nil {
		return 0, 0, err
	}
	if u.Dim != q.dim {
		return 0, 0, mismatch("convert to "+unit, q.dim, u.Dim)
	}
	return q.value / u.Scale, q.unc / u.Scale, nil
}

// MustIn is In for conversions fixed at compile time. Panics on error.
func (q Quantity) MustIn(unit string) (value, unc float64) {
	v, e, err := q.In(unit)
	if err != nil {
		panic(err)
	}
	return v, e
}
