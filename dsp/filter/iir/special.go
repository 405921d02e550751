package iir

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filter/dsp/filter/design"
)

// NewIntegrator creates an eighth-order integrator whose magnitude
// response tracks 1/(2*pi*f) over most of the band. The pole it keeps
// on the unit circle makes it marginally stable, as integration
// demands.
func NewIntegrator() (*Filter, error) {
	z, p, k := integratorZPK()

	return newFromZPK(z, p, k)
}

// NewDifferentiator creates an eighth-order differentiator whose
// magnitude response tracks 2*pi*f, with an exact null at DC.
func NewDifferentiator() (*Filter, error) {
	z, p, k := differentiatorZPK()

	return newFromZPK(z, p, k)
}

func newFromZPK(z, p []complex128, k float64) (*Filter, error) {
	B, A, err := design.ZPKToSOS(z, p, k)
	if err != nil {
		return nil, err
	}

	return NewSOS(B, A)
}

// NewDCBlocker creates a first-order DC-blocking filter
//
//	H(z) = (1 - z^-1) / (1 - (1-alpha) z^-1)
//
// with an exact transmission null at DC. Larger alpha converges faster
// at the cost of a wider notch; returns ErrAlpha unless alpha is in
// (0,1).
func NewDCBlocker(alpha float64) (*Filter, error) {
	if !(alpha > 0 && alpha < 1) {
		return nil, fmt.Errorf("%w: %v", ErrAlpha, alpha)
	}

	return NewDirect([]float64{1, -1}, []float64{1, alpha - 1})
}

// NewPLL creates the loop filter of a phase-locked loop from its
// natural frequency w, damping factor zeta and loop gain K, using the
// active lag-lead design. w and zeta must lie in (0,1) and K must be
// positive (design.ErrPLLParameter otherwise).
func NewPLL(w, zeta, K float64) (*Filter, error) {
	b, a, err := design.PLLActiveLag(w, zeta, K)
	if err != nil {
		return nil, err
	}

	return NewSOS(b[:], a[:])
}

// Digital zero/pole/gain sets for the eighth-order integrator and
// differentiator, from Pintelon and Schoukens, "Real-time integration
// and differentiation of analog signals by means of digital filtering",
// IEEE Transactions on Instrumentation and Measurement 39(6), 1990.

func integratorZPK() (z, p []complex128, k float64) {
	z = []complex128{
		-1.175839,
		polar(3.371020, 125.1125),
		polar(3.371020, -125.1125),
		polar(4.549710, 80.96404),
		polar(4.549710, -80.96404),
		polar(5.223966, 40.09347),
		polar(5.223966, -40.09347),
		5.443743,
	}
	p = []complex128{
		-0.5805235,
		polar(0.2332021, 114.0968),
		polar(0.2332021, -114.0968),
		polar(0.1814755, 66.33969),
		polar(0.1814755, -66.33969),
		polar(0.1641457, 21.89539),
		polar(0.1641457, -21.89539),
		1,
	}

	return z, p, -1.89213380759321e-05
}

func differentiatorZPK() (z, p []complex128, k float64) {
	z = []complex128{
		-1.702575,
		polar(5.877385, 221.4063),
		polar(5.877385, -221.4063),
		polar(4.197421, 144.5972),
		polar(4.197421, -144.5972),
		polar(5.350284, 66.88802),
		polar(5.350284, -66.88802),
		1,
	}
	p = []complex128{
		-0.8476936,
		polar(0.2990781, 125.5188),
		polar(0.2990781, -125.5188),
		polar(0.2232427, 81.52326),
		polar(0.2232427, -81.52326),
		polar(0.1958670, 40.51510),
		polar(0.1958670, -40.51510),
		0.1886088,
	}

	return z, p, 2.09049284907492e-05
}

func polar(r, deg float64) complex128 {
	return cmplx.Rect(r, deg*math.Pi/180)
}
