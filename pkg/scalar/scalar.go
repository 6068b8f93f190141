// Package scalar provides the field abstraction the MNA engine is generic over:
// real numbers for DC studies and complex phasors for single-frequency AC studies.
package scalar

import "math/cmplx"

// Scalar is the set of fields a System can be assembled and solved in.
type Scalar interface {
	float64 | complex128
}

// IsComplex reports whether T is the complex field.
func IsComplex[T Scalar]() bool {
	var zero T
	_, ok := any(zero).(complex128)
	return ok
}

// FromComplex projects a complex value into T. The real field keeps only the real part.
func FromComplex[T Scalar](c complex128) T {
	var zero T
	switch any(zero).(type) {
	case float64:
		return any(real(c)).(T)
	default:
		return any(c).(T)
	}
}

// ToComplex widens v to complex128.
func ToComplex[T Scalar](v T) complex128 {
	switch x := any(v).(type) {
	case float64:
		return complex(x, 0)
	case complex128:
		return x
	}
	return 0
}

// IsFinite reports whether v has no NaN or infinite component.
func IsFinite[T Scalar](v T) bool {
	c := ToComplex(v)
	return !cmplx.IsNaN(c) && !cmplx.IsInf(c)
}

// Parts splits v into real and imaginary parts (imaginary is 0 for the real field).
func Parts[T Scalar](v T) (float64, float64) {
	c := ToComplex(v)
	return real(c), imag(c)
}
