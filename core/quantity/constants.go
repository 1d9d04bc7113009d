package quantity

import "math"

// Physical constants (CODATA 2018) and nominal astronomical scales (IAU 2015 B3).
// All are exact in the sense that they carry zero uncertainty.
var (
	G     = Exact(6.67430e-11, Dim(-1, 3, -2, 0)) // m^3 kg^-1 s^-2
	Sigma = Exact(5.670374419e-8, Dim(1, 0, -3, -4))
	Boltz = Exact(1.380649e-23, Dim(1, 2, -2, -1))
	Amu   = Exact(1.66053906660e-27, MassDim)

	SolarRadius     = Exact(6.957e8, LengthDim)
	SolarMass       = Exact(1.98847e30, MassDim)
	SolarLuminosity = Exact(3.828e26, PowerDim)
	JupiterRadius   = Exact(7.1492e7, LengthDim)
	JupiterMass     = Exact(1.89813e27, MassDim)
	EarthRadius     = Exact(6.3781e6, LengthDim)
	EarthMass       = Exact(5.97217e24, MassDim)
	AU              = Exact(1.495978707e11, LengthDim)
	Day             = Exact(86400, TimeDim)
)

// Pi is π as an exact dimensionless quantity.
var Pi = Scalar(math.Pi)
