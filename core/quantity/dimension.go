// core/quantity/dimension.go
package quantity

import (
	"fmt"
	"strings"
)

// expScale is the fixed denominator of every stored exponent. 60 keeps the
// fractional powers used by the orbital formulas (1/2, 1/3, 1/4, 1/6) exact.
const expScale = 60

// Base dimensions, in SI order.
const (
	Mass = iota
	Length
	Time
	Temperature
	numBase
)

var baseSymbols = [numBase]string{"kg", "m", "s", "K"}

// Dimension is a physical unit family: a vector of exponents over the SI
// base dimensions. The zero value is dimensionless.
type Dimension struct {
	exp [numBase]int32 // scaled by expScale
}

// Dim builds a Dimension from integer exponents (mass, length, time, temperature).
func Dim(mass, length, time, temperature int) Dimension {
	return Dimension{exp: [numBase]int32{
		int32(mass * expScale),
		int32(length * expScale),
		int32(time * expScale),
		int32(temperature * expScale),
	}}
}

// Common dimensions.
var (
	Dimensionless  = Dimension{}
	LengthDim      = Dim(0, 1, 0, 0)
	MassDim        = Dim(1, 0, 0, 0)
	TimeDim        = Dim(0, 0, 1, 0)
	TemperatureDim = Dim(0, 0, 0, 1)
	PowerDim       = Dim(1, 2, -3, 0)
	DensityDim     = Dim(1, -3, 0, 0)
	AccelDim       = Dim(0, 1, -2, 0)
	VelocityDim    = Dim(0, 1, -1, 0)
)

// IsDimensionless reports whether every exponent is zero.
func (d Dimension) IsDimensionless() bool { return d == Dimensionless }

func (d Dimension) mul(o Dimension) Dimension {
	var out Dimension
	for i := range d.exp {
		out.exp[i] = d.exp[i] + o.exp[i]
	}
	return out
}

func (d Dimension) div(o Dimension) Dimension {
	var out Dimension
	for i := range d.exp {
		out.exp[i] = d.exp[i] - o.exp[i]
	}
	return out
}

// pow raises every exponent to num/den. ok is false when a result would not
// be a multiple of 1/expScale.
func (d Dimension) pow(num, den int) (Dimension, bool) {
	var out Dimension
	for i, e := range d.exp {
		p := int64(e) * int64(num)
		if p%int64(den) != 0 {
			return Dimension{}, false
		}
		out.exp[i] = int32(p / int64(den))
	}
	return out, true
}

// String renders the dimension as SI base units, e.g. "kg m^-3".
func (d Dimension) String() string {
	if d.IsDimensionless() {
		return "1"
	}
	parts := make([]string, 0, numBase)
	for i, e := range d.exp {
		if e == 0 {
			continue
		}
		switch {
		case e == expScale:
			parts = append(parts, baseSymbols[i])
		case e%expScale == 0:
			parts = append(parts, fmt.Sprintf("%s^%d", baseSymbols[i], e/expScale))
		default:
			n, q := reduce(int(e), expScale)
			parts = append(parts, fmt.Sprintf("%s^(%d/%d)", baseSymbols[i], n, q))
		}
	}
	return strings.Join(parts, " ")
}

func reduce(n, d int) (int, int) {
	a, b := n, d
	if a < 0 {
		a = -a
	}
	for b != 0 {
		a, b = b, a%b
	}
	return n / a, d / a
}
