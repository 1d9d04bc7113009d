package quantity

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-12

func TestAddSubQuadrature(t *testing.T) {
	a := New(10, 3, LengthDim)
	b := New(4, 4, LengthDim)

	sum := a.Add(b)
	assert.InDelta(t, 14, sum.Value(), tol)
	assert.InDelta(t, 5, sum.Uncertainty(), tol)
	assert.Equal(t, LengthDim, sum.Dim())

	diff := a.Sub(b)
	assert.InDelta(t, 6, diff.Value(), tol)
	assert.InDelta(t, 5, diff.Uncertainty(), tol)
}

func TestAddMismatchPanics(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrDimensionMismatch))
		var de *DimensionError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "add", de.Op)
	}()
	New(1, 0, LengthDim).Add(New(1, 0, MassDim))
}

func TestMulDivRelativeQuadrature(t *testing.T) {
	a := New(2, 0.2, LengthDim) // 10 %
	b := New(5, 0.5, TimeDim)   // 10 %

	p := a.Mul(b)
	assert.InDelta(t, 10, p.Value(), tol)
	assert.InDelta(t, 10*math.Sqrt2*0.1, p.Uncertainty(), 1e-12)
	assert.Equal(t, Dim(0, 1, 1, 0), p.Dim())

	q := a.Div(b)
	assert.InDelta(t, 0.4, q.Value(), tol)
	assert.InDelta(t, 0.4*math.Sqrt2*0.1, q.Uncertainty(), 1e-12)
	assert.Equal(t, VelocityDim, q.Dim())
}

func TestMulByZeroKeepsUncertainty(t *testing.T) {
	a := New(0, 0.1, Dimensionless)
	b := New(3, 0, Dimensionless)
	assert.InDelta(t, 0.3, a.Mul(b).Uncertainty(), tol)
}

func TestPowFractional(t *testing.T) {
	v := New(8, 0.3, Dim(0, 3, 0, 0))
	r := v.Cbrt()
	assert.InDelta(t, 2, r.Value(), tol)
	// δ = (1/3)·8^(-2/3)·0.3 = 0.025
	assert.InDelta(t, 0.025, r.Uncertainty(), tol)
	assert.Equal(t, LengthDim, r.Dim())

	// Fractional dimensions survive round trips.
	m := New(27, 0, MassDim).Pow(1, 3).Pow(3, 1)
	assert.Equal(t, MassDim, m.Dim())
	assert.InDelta(t, 27, m.Value(), 1e-9)
}

func TestPowExactZeroUncertainty(t *testing.T) {
	z := Exact(0, Dimensionless).Pow(1, 4)
	assert.Equal(t, 0.0, z.Value())
	assert.Equal(t, 0.0, z.Uncertainty())
}

func TestPowUnrepresentablePanics(t *testing.T) {
	assert.Panics(t, func() { New(2, 0, LengthDim).Pow(1, 7) })
}

func TestTrig(t *testing.T) {
	ang := New(math.Pi/3, 0.01, Dimensionless)
	c := ang.Cos()
	assert.InDelta(t, 0.5, c.Value(), tol)
	assert.InDelta(t, math.Sin(math.Pi/3)*0.01, c.Uncertainty(), tol)
	s := ang.Sin()
	assert.InDelta(t, math.Sqrt(3)/2, s.Value(), tol)
	assert.InDelta(t, 0.5*0.01, s.Uncertainty(), tol)

	assert.Panics(t, func() { New(1, 0, LengthDim).Cos() })
}

func TestLog10(t *testing.T) {
	l := New(100, 1, Dimensionless).Log10()
	assert.InDelta(t, 2, l.Value(), tol)
	assert.InDelta(t, 0.01/math.Ln10, l.Uncertainty(), tol)
}

func TestDimensionless(t *testing.T) {
	ratio := New(6, 0, LengthDim).Div(New(3, 0, LengthDim))
	v, u, err := ratio.Dimensionless()
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
	assert.Equal(t, 0.0, u)

	_, _, err = New(1, 0, LengthDim).Dimensionless()
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestNegativeUncertaintyKept(t *testing.T) {
	assert.Equal(t, -0.5, New(1, -0.5, Dimensionless).Uncertainty())
	assert.Equal(t, 0.5, New(1, 0.25, Dimensionless).Scale(-2).Uncertainty())
}

func TestIsFinite(t *testing.T) {
	assert.True(t, New(1, 0.1, LengthDim).IsFinite())
	assert.False(t, New(math.NaN(), 0, LengthDim).IsFinite())
	assert.False(t, New(1, math.Inf(1), LengthDim).IsFinite())

	// (1-α)^(1/4) at α = 1: zero value, unbounded slope.
	edge := Scalar(1).Sub(New(1, 0.05, Dimensionless)).Pow(1, 4)
	assert.Equal(t, 0.0, edge.Value())
	assert.False(t, edge.IsFinite())
	assert.False(t, New(0, 0, Dimensionless).Sin().Div(Scalar(0)).IsFinite())
}

func TestDimensionString(t *testing.T) {
	cases := map[string]Dimension{
		"1":        Dimensionless,
		"m":        LengthDim,
		"kg m^-3":  DensityDim,
		"m s^-2":   AccelDim,
		"kg^(1/3)": func() Dimension { d, _ := MassDim.pow(1, 3); return d }(),
	}
	for want, d := range cases {
		assert.Equal(t, want, d.String())
	}
}
