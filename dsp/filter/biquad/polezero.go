package biquad

import (
	"math"
	"math/cmplx"
)

// PoleZeroPair holds the two poles and two zeros of one biquad section.
// First-order sections carry the second pole/zero at 0.
type PoleZeroPair struct {
	Poles [2]complex128
	Zeros [2]complex128
}

// Poles returns the z-plane roots of the section denominator
// 1 + A1*z^-1 + A2*z^-2.
func (c *Coefficients) Poles() [2]complex128 {
	return quadraticRoots(1, c.A1, c.A2)
}

// Zeros returns the z-plane roots of the section numerator
// B0 + B1*z^-1 + B2*z^-2.
func (c *Coefficients) Zeros() [2]complex128 {
	return quadraticRoots(c.B0, c.B1, c.B2)
}

// PoleZeroPair returns both poles and zeros for a single section.
func (c *Coefficients) PoleZeroPair() PoleZeroPair {
	return PoleZeroPair{Poles: c.Poles(), Zeros: c.Zeros()}
}

// Stable reports whether both poles lie strictly inside the unit circle.
func (c *Coefficients) Stable() bool {
	p := c.Poles()
	return cmplx.Abs(p[0]) < 1 && cmplx.Abs(p[1]) < 1
}

// PoleZeroPairs returns one pole/zero pair entry per coefficient set.
func PoleZeroPairs(coeffs []Coefficients) []PoleZeroPair {
	out := make([]PoleZeroPair, len(coeffs))
	for i := range coeffs {
		out[i] = coeffs[i].PoleZeroPair()
	}
	return out
}

// quadraticRoots returns the roots of a*z^2 + b*z + c. Real roots use
// the cancellation-free form: the larger-magnitude root comes from
// q = -(b + sign(b)*sqrt(d))/2, the other from the product c/q.
func quadraticRoots(a, b, c float64) [2]complex128 {
	if a == 0 {
		if b == 0 {
			return [2]complex128{}
		}
		return [2]complex128{complex(-c/b, 0), 0}
	}

	d := b*b - 4*a*c
	if d < 0 {
		re := -b / (2 * a)
		im := math.Abs(math.Sqrt(-d) / (2 * a))
		return [2]complex128{complex(re, im), complex(re, -im)}
	}

	q := -0.5 * (b + math.Copysign(math.Sqrt(d), b))
	if q == 0 {
		// b == 0 and d == 0, so both roots sit at the origin.
		return [2]complex128{}
	}

	return [2]complex128{complex(q/a, 0), complex(c/q, 0)}
}
