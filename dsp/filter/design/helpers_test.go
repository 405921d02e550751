package design

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-filter/dsp/filter/response"
)

const tol = 1e-9

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// tfMag evaluates the magnitude of a transfer-function pair at fc.
func tfMag(b, a []float64, fc float64) float64 {
	return cmplx.Abs(response.TransferFunction(b, a, fc))
}

// sosMag multiplies the per-section responses of a flat SOS cascade.
func sosMag(B, A []float64, fc float64) float64 {
	h := complex(1, 0)
	for i := 0; i+2 < len(B); i += 3 {
		h *= response.TransferFunction(B[i:i+3], A[i:i+3], fc)
	}

	return cmplx.Abs(h)
}

func assertFiniteSlice(t *testing.T, name string, v []float64) {
	t.Helper()

	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			t.Fatalf("%s[%d] = %v", name, i, x)
		}
	}
}

// assertStableSections checks each denominator triple of a flat SOS
// cascade for poles inside the unit circle.
func assertStableSections(t *testing.T, A []float64) {
	t.Helper()

	for i := 0; i+2 < len(A); i += 3 {
		a1, a2 := A[i+1], A[i+2]
		disc := cmplx.Sqrt(complex(a1*a1-4*a2, 0))
		r1 := (-complex(a1, 0) + disc) / 2

		r2 := (-complex(a1, 0) - disc) / 2
		if cmplx.Abs(r1) >= 1+tol || cmplx.Abs(r2) >= 1+tol {
			t.Fatalf("section %d unstable: |r1|=%v |r2|=%v", i/3, cmplx.Abs(r1), cmplx.Abs(r2))
		}
	}
}
