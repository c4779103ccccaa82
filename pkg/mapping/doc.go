// Package mapping converts parameter values between their real domain and
// the normalised unit interval.
//
// # Laws
//
// A Mapping is built from a range [min, max] and an interpolation law:
//
//	None         n >= 0.5 ? max : min          (two-state switch)
//	Linear       min + n * (max - min)
//	Exponential  min * (max / min) ^ n         (geometric, e.g. frequencies)
//
// MapInverse is the algebraic inverse of Map for the same law, so
// MapInverse(Map(n)) == n up to floating point rounding for the Linear and
// Exponential laws. Integer mappings round the real value to the nearest
// integer after the law has been applied.
//
// # Kinds
//
// The scalar kind (bool, int or float) is fixed by the Go type the mapping
// is instantiated with:
//
//	freq, err := mapping.New[int](mapping.LawExponential, 20, 20000)
//	gain, err := mapping.New[float64](mapping.LawLinear, 0, 2*math.Pi)
//	mute, err := mapping.NewBool(false, true)
//
// # Validation
//
// Ranges are checked once at construction. A degenerate range (min == max)
// and an exponential range that touches zero or crosses it are rejected, so
// Map and MapInverse never divide by zero or take the logarithm of a
// non-positive ratio.
//
// Inputs outside [0,1] (or outside [min,max] for MapInverse) are not
// clamped: the law is extrapolated.
package mapping
