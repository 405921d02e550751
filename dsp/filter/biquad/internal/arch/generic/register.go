package generic

import (
	"github.com/cwbudde/algo-filter/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.Entry{
		Name:         "generic",
		SIMDLevel:    cpu.SIMDNone,
		Priority:     0,
		ProcessBlock: processBlock,
	})
}

// processBlock is the portable reference kernel. Arch packages register
// unrolled variants at higher priorities.
func processBlock(c registry.Coefficients, v1, v2 float64, buf []float64) (newV1, newV2 float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	for i, x := range buf {
		v0 := x - a1*v1 - a2*v2
		buf[i] = b0*v0 + b1*v1 + b2*v2
		v2 = v1
		v1 = v0
	}

	return v1, v2
}
