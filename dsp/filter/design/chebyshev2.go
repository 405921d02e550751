package design

import (
	"fmt"
	"math"
	"math/cmplx"
)

// cheby2Prototype computes the analog lowpass prototype of a Chebyshev
// type 2 (inverse Chebyshev) filter with stopbandDB of minimum stopband
// attenuation. The passband is maximally flat; the stopband is
// equiripple, shaped by finite imaginary zeros. The cutoff marks the
// stopband edge, where the attenuation first reaches stopbandDB.
func cheby2Prototype(order int, stopbandDB float64) ([]complex128, []complex128, float64, error) {
	stopSq := dbToMinusOne(stopbandDB)
	if !(stopSq > 0) {
		return nil, nil, 0, fmt.Errorf("%w: stopband attenuation %v dB", ErrRipple, stopbandDB)
	}

	de := 1 / math.Sqrt(stopSq)
	mu := math.Asinh(1/de) / float64(order)

	// Zeros sit at +-j/sin(theta); odd orders skip the middle angle,
	// whose zero escapes to infinity.
	z := make([]complex128, 0, order)

	for i := range order {
		m := 2*i + 1 - order
		if m == 0 {
			continue
		}

		theta := math.Pi * float64(m) / (2 * float64(order))
		z = append(z, complex(0, 1/math.Sin(theta)))
	}

	// Poles are the reciprocals of the sinh-scaled Butterworth poles.
	p := make([]complex128, order)

	for i := range order {
		theta := math.Pi * float64(2*i+1-order) / (2 * float64(order))
		bp := -cmplx.Exp(complex(0, theta))
		p[i] = 1 / complex(math.Sinh(mu)*real(bp), math.Cosh(mu)*imag(bp))
	}

	k := real(complexProductNeg(p) / complexProductNeg(z))

	return z, p, k, nil
}
