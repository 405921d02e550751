package design

import (
	"math"
	"math/cmplx"
)

// butterworthPrototype places the analog lowpass poles of a maximally
// flat filter on the unit circle in the left half-plane,
// p_k = exp(j*pi*(2k+1+n)/(2n)) for k = 0..n-1. The angles are generated
// symmetrically about the real axis so conjugate pairs come out exact.
// There are no finite zeros and the gain is one.
func butterworthPrototype(order int) ([]complex128, []complex128, float64) {
	n := float64(order)
	p := make([]complex128, order)

	for i := range order {
		theta := math.Pi * float64(2*i+1-order) / (2 * n)
		p[i] = -cmplx.Exp(complex(0, theta))
	}

	return nil, p, 1
}
