// core/quantity/quantity.go
// Value ± uncertainty arithmetic with dimension tracking.
//
// Uncertainties combine under first-order linear propagation assuming the
// operands are independent: absolute errors add in quadrature for sums,
// relative errors add in quadrature for products, ratios and powers.
// Values are always stored in SI base units.
//
// This package has no app/output deps; engine can import it cleanly.

package quantity

import (
	"fmt"
	"math"
)

// Quantity is an immutable measured value in SI base units.
type Quantity struct {
	value float64
	unc   float64
	dim   Dimension
}

// New returns value ± unc with dimension dim. unc is stored as given; a
// negative one is reported by Study construction, never silently flipped.
func New(value, unc float64, dim Dimension) Quantity {
	return Quantity{value: value, unc: unc, dim: dim}
}

// Exact returns a quantity with zero uncertainty.
func Exact(value float64, dim Dimension) Quantity {
	return Quantity{value: value, dim: dim}
}

// Scalar returns an exact dimensionless number.
func Scalar(v float64) Quantity { return Quantity{value: v} }

func (q Quantity) Value() float64       { return q.value }
func (q Quantity) Uncertainty() float64 { return q.unc }
func (q Quantity) Dim() Dimension       { return q.dim }

// IsFinite reports whether neither value nor uncertainty is NaN or ±Inf.
func (q Quantity) IsFinite() bool {
	return finite(q.value) && finite(q.unc)
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

// Add returns q + o. Panics with *DimensionError on mismatched dimensions.
func (q Quantity) Add(o Quantity) Quantity {
	if q.dim != o.dim {
		panic(mismatch("add", q.dim, o.dim))
	}
	return Quantity{value: q.value + o.value, unc: math.Hypot(q.unc, o.unc), dim: q.dim}
}

// Sub returns q - o. Panics with *DimensionError on mismatched dimensions.
func (q Quantity) Sub(o Quantity) Quantity {
	if q.dim != o.dim {
		panic(mismatch("subtract", q.dim, o.dim))
	}
	return Quantity{value: q.value - o.value, unc: math.Hypot(q.unc, o.unc), dim: q.dim}
}

// Mul returns q * o.
func (q Quantity) Mul(o Quantity) Quantity {
	return Quantity{
		value: q.value * o.value,
		unc:   math.Hypot(o.value*q.unc, q.value*o.unc),
		dim:   q.dim.mul(o.dim),
	}
}

// Div returns q / o.
func (q Quantity) Div(o Quantity) Quantity {
	return Quantity{
		value: q.value / o.value,
		unc:   math.Hypot(q.unc/o.value, q.value*o.unc/(o.value*o.value)),
		dim:   q.dim.div(o.dim),
	}
}

// Scale multiplies by an exact dimensionless factor.
func (q Quantity) Scale(f float64) Quantity {
	return Quantity{value: q.value * f, unc: math.Abs(q.unc * f), dim: q.dim}
}

// Pow raises q to the rational power num/den. Panics with *DimensionError if
// the resulting dimension is not representable (e.g. m^(1/7)).
func (q Quantity) Pow(num, den int) Quantity {
	if den == 0 {
		panic("quantity: zero denominator in Pow")
	}
	d, ok := q.dim.pow(num, den)
	if !ok {
		panic(mismatch(fmt.Sprintf("pow %d/%d", num, den), q.dim, Dimensionless))
	}
	r := float64(num) / float64(den)
	v := math.Pow(q.value, r)
	u := 0.0
	if q.unc != 0 {
		u = math.Abs(r * math.Pow(q.value, r-1) * q.unc)
	}
	return Quantity{value: v, unc: u, dim: d}
}

func (q Quantity) Sqrt() Quantity { return q.Pow(1, 2) }
func (q Quantity) Cbrt() Quantity { return q.Pow(1, 3) }

// Sin treats q as an angle in radians. q must be dimensionless.
func (q Quantity) Sin() Quantity {
	q.mustDimensionless("sin")
	return Quantity{value: math.Sin(q.value), unc: math.Abs(math.Cos(q.value) * q.unc)}
}

// Cos treats q as an angle in radians. q must be dimensionless.
func (q Quantity) Cos() Quantity {
	q.mustDimensionless("cos")
	return Quantity{value: math.Cos(q.value), unc: math.Abs(math.Sin(q.value) * q.unc)}
}

// Log10 returns log10 of a dimensionless quantity.
func (q Quantity) Log10() Quantity {
	q.mustDimensionless("log10")
	return Quantity{value: math.Log10(q.value), unc: math.Abs(q.unc / (q.value * math.Ln10))}
}

// Dimensionless extracts the bare number, failing if q carries a dimension.
func (q Quantity) Dimensionless() (value, unc float64, err error) {
	if !q.dim.IsDimensionless() {
		return 0, 0, mismatch("dimensionless", q.dim, Dimensionless)
	}
	return q.value, q.unc, nil
}

func (q Quantity) mustDimensionless(op string) {
	if !q.dim.IsDimensionless() {
		panic(mismatch(op, q.dim, Dimensionless))
	}
}

// String renders "value ± unc [dim]" in SI base units.
func (q Quantity) String() string {
	if q.dim.IsDimensionless() {
		return fmt.Sprintf("%g ± %g", q.value, q.unc)
	}
	return fmt.Sprintf("%g ± %g %s", q.value, q.unc, q.dim)
}
