//go:build amd64 && !purego

package avx2

import (
	"github.com/cwbudde/algo-filter/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.Entry{
		Name:         "avx2",
		SIMDLevel:    cpu.SIMDAVX2,
		Priority:     20,
		ProcessBlock: processBlock,
	})
}

// processBlock is a 4x-unrolled scalar kernel selected for AVX2-capable CPUs.
// TODO: replace with explicit AVX2 asm kernel.
func processBlock(c registry.Coefficients, v1, v2 float64, buf []float64) (newV1, newV2 float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	i := 0
	n := len(buf)
	for ; i+3 < n; i += 4 {
		x0 := buf[i]
		v00 := x0 - a1*v1 - a2*v2
		y0 := b0*v00 + b1*v1 + b2*v2

		x1 := buf[i+1]
		v01 := x1 - a1*v00 - a2*v1
		y1 := b0*v01 + b1*v00 + b2*v1

		x2 := buf[i+2]
		v02 := x2 - a1*v01 - a2*v00
		y2 := b0*v02 + b1*v01 + b2*v00

		x3 := buf[i+3]
		v03 := x3 - a1*v02 - a2*v01
		y3 := b0*v03 + b1*v02 + b2*v01

		v2 = v02
		v1 = v03

		buf[i] = y0
		buf[i+1] = y1
		buf[i+2] = y2
		buf[i+3] = y3
	}

	for ; i < n; i++ {
		x := buf[i]
		v0 := x - a1*v1 - a2*v2
		buf[i] = b0*v0 + b1*v1 + b2*v2
		v2 = v1
		v1 = v0
	}

	return v1, v2
}
