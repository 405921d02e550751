//go:build amd64 && !purego

package sse2

import (
	"github.com/cwbudde/algo-filter/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.Entry{
		Name:         "sse2",
		SIMDLevel:    cpu.SIMDSSE2,
		Priority:     10,
		ProcessBlock: processBlock,
	})
}

// processBlock is a 2x-unrolled scalar kernel selected for SSE2-capable CPUs.
func processBlock(c registry.Coefficients, v1, v2 float64, buf []float64) (newV1, newV2 float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	i := 0
	n := len(buf)
	for ; i+1 < n; i += 2 {
		x0 := buf[i]
		v00 := x0 - a1*v1 - a2*v2
		y0 := b0*v00 + b1*v1 + b2*v2

		x1 := buf[i+1]
		v01 := x1 - a1*v00 - a2*v1
		y1 := b0*v01 + b1*v00 + b2*v1

		v2 = v00
		v1 = v01

		buf[i] = y0
		buf[i+1] = y1
	}

	if i < n {
		x := buf[i]
		v0 := x - a1*v1 - a2*v2
		buf[i] = b0*v0 + b1*v1 + b2*v2
		v2 = v1
		v1 = v0
	}

	return v1, v2
}
