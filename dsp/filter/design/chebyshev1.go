package design

import (
	"fmt"
	"math"
	"math/cmplx"
)

// cheby1Prototype computes the analog lowpass prototype of a Chebyshev
// type 1 filter with rippleDB of passband ripple. The poles lie on an
// ellipse obtained by pushing the Butterworth angles through sinh; there
// are no finite zeros. The cutoff is the passband ripple edge, where the
// response is down by exactly rippleDB.
func cheby1Prototype(order int, rippleDB float64) ([]complex128, []complex128, float64, error) {
	epsSq := dbToMinusOne(rippleDB)
	if !(epsSq > 0) {
		return nil, nil, 0, fmt.Errorf("%w: passband ripple %v dB", ErrRipple, rippleDB)
	}

	eps := math.Sqrt(epsSq)
	mu := math.Asinh(1/eps) / float64(order)
	p := make([]complex128, order)

	for i := range order {
		theta := math.Pi * float64(2*i+1-order) / (2 * float64(order))
		p[i] = -cmplx.Sinh(complex(mu, theta))
	}

	k := real(complexProductNeg(p))
	if order%2 == 0 {
		// Even orders dip to the ripple floor at DC.
		k /= math.Sqrt(1 + epsSq)
	}

	return nil, p, k, nil
}

// dbToMinusOne converts a ripple level in dB to 10^(db/10) - 1, the
// squared ripple parameter.
func dbToMinusOne(db float64) float64 {
	return math.Expm1(math.Ln10 * db / 10.0)
}
