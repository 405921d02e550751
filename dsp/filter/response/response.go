package response

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrNoCoefficients is returned when a coefficient slice is empty.
var ErrNoCoefficients = errors.New("response: no coefficients")

// groupDelayTol is the response magnitude below which the group delay is
// reported as zero (the phase derivative is undefined at a response null).
const groupDelayTol = 1e-9

// TransferFunction evaluates H(fc) = B(fc)/A(fc) at normalized frequency fc
// (cycles per sample), where B(fc) = sum_i b[i] exp(-j 2 pi fc i) and A(fc)
// likewise. Returns 0 for empty input.
func TransferFunction(b, a []float64, fc float64) complex128 {
	if len(b) == 0 || len(a) == 0 {
		return 0
	}
	return PolyFreq(b, fc) / PolyFreq(a, fc)
}

// PolyFreq evaluates sum_i c[i] exp(-j 2 pi fc i), the frequency response
// of the polynomial c in z^-1 on the unit circle.
func PolyFreq(c []float64, fc float64) complex128 {
	var h complex128
	for i, v := range c {
		h += complex(v, 0) * cmplx.Exp(complex(0, -2*math.Pi*fc*float64(i)))
	}
	return h
}

// GroupDelay computes the group delay in samples of the filter b/a at
// normalized frequency fc.
//
// It uses the polynomial identity c(z) = b(z) * a(1/z) * z^-(na-1), so that
// the delay is Re(sum(i*c[i]*w^i) / sum(c[i]*w^i)) - (na-1) with w on the
// unit circle. At a response null the delay is undefined and reported as 0.
func GroupDelay(b, a []float64, fc float64) (float64, error) {
	if len(b) == 0 || len(a) == 0 {
		return 0, ErrNoCoefficients
	}

	// c = conv(b, reverse(a))
	c := make([]float64, len(a)+len(b)-1)
	for i := range a {
		for j := range b {
			c[i+j] += a[len(a)-1-i] * b[j]
		}
	}

	var t0, t1 complex128
	for i, cv := range c {
		w := cmplx.Exp(complex(0, 2*math.Pi*fc*float64(i)))
		t0 += complex(cv*float64(i), 0) * w
		t1 += complex(cv, 0) * w
	}

	if cmplx.Abs(t1) < groupDelayTol {
		return 0, nil
	}

	return real(t0/t1) - float64(len(a)-1), nil
}
