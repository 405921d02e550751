package biquad

import (
	"errors"
	"fmt"
)

// ErrZeroLeadingCoefficient is returned when a raw denominator triplet has
// a[0] == 0 and cannot be normalized.
var ErrZeroLeadingCoefficient = errors.New("biquad: leading denominator coefficient is zero")

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored:
//
//	        B0 + B1*z^-1 + B2*z^-2
//	H(z) = ------------------------
//	        1  + A1*z^-1 + A2*z^-2
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// NewCoefficients normalizes raw numerator and denominator triplets by the
// leading denominator coefficient a[0]. Returns ErrZeroLeadingCoefficient
// when a[0] == 0.
func NewCoefficients(b, a [3]float64) (Coefficients, error) {
	if a[0] == 0 {
		return Coefficients{}, ErrZeroLeadingCoefficient
	}

	return Coefficients{
		B0: b[0] / a[0],
		B1: b[1] / a[0],
		B2: b[2] / a[0],
		A1: a[1] / a[0],
		A2: a[2] / a[0],
	}, nil
}

// Identity returns the pass-through section H(z) = 1.
func Identity() Coefficients {
	return Coefficients{B0: 1}
}

// Numerator returns the feedforward triplet [B0, B1, B2].
func (c *Coefficients) Numerator() [3]float64 {
	return [3]float64{c.B0, c.B1, c.B2}
}

// Denominator returns the normalized feedback triplet [1, A1, A2].
func (c *Coefficients) Denominator() [3]float64 {
	return [3]float64{1, c.A1, c.A2}
}

func (c Coefficients) String() string {
	return fmt.Sprintf("b=[%g %g %g] a=[1 %g %g]", c.B0, c.B1, c.B2, c.A1, c.A2)
}
