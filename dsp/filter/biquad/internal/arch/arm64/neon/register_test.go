//go:build arm64 && !purego

package neon

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-filter/dsp/filter/biquad/internal/arch/registry"
)

func TestProcessBlock_MatchesReference(t *testing.T) {
	c := registry.Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}

	for _, n := range []int{1, 2, 5, 8, 17} {
		in := make([]float64, n)
		for i := range in {
			in[i] = math.Cos(0.23 * float64(i+1))
		}

		got := append([]float64(nil), in...)
		want := append([]float64(nil), in...)

		v1g, v2g := processBlock(c, 0, 0, got)
		v1w, v2w := refProcess(c, 0, 0, want)

		if math.Abs(v1g-v1w) > 1e-12 || math.Abs(v2g-v2w) > 1e-12 {
			t.Fatalf("n=%d: state mismatch: got (%g,%g), want (%g,%g)", n, v1g, v2g, v1w, v2w)
		}
		for i := range got {
			if math.Abs(got[i]-want[i]) > 1e-12 {
				t.Fatalf("n=%d sample %d mismatch: got %.15f, want %.15f", n, i, got[i], want[i])
			}
		}
	}
}

func refProcess(c registry.Coefficients, v1, v2 float64, buf []float64) (float64, float64) {
	for i, x := range buf {
		v0 := x - c.A1*v1 - c.A2*v2
		buf[i] = c.B0*v0 + c.B1*v1 + c.B2*v2
		v2 = v1
		v1 = v0
	}
	return v1, v2
}
