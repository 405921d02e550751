package biquad

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filter/dsp/filter/response"
)

// Response computes the complex frequency response H(e^jw) of the section
// at normalized frequency fc in cycles per sample, w = 2*pi*fc.
func (c *Coefficients) Response(fc float64) complex128 {
	return response.TransferFunction(
		[]float64{c.B0, c.B1, c.B2},
		[]float64{1, c.A1, c.A2},
		fc,
	)
}

// MagnitudeSquared returns |H(fc)|^2 using a closed-form expression that
// avoids complex exponentials.
func (c *Coefficients) MagnitudeSquared(fc float64) float64 {
	cw := 2 * math.Cos(2*math.Pi*fc)
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	num := (b0-b2)*(b0-b2) + b1*b1 + (b1*(b0+b2)+b0*b2*cw)*cw
	den := (1-a2)*(1-a2) + a1*a1 + (a1*(a2+1)+cw*a2)*cw
	return num / den
}

// MagnitudeDB returns 10*log10(|H(fc)|^2).
func (c *Coefficients) MagnitudeDB(fc float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(fc))
}

// Phase returns the phase response in radians at fc. The result is in
// [-pi, pi], consistent with the H(e^{-jw}) convention.
func (c *Coefficients) Phase(fc float64) float64 {
	return cmplx.Phase(c.Response(fc))
}

// GroupDelay returns the group delay of the section at fc in samples.
// The three-tap evaluation carries a fixed bias of two samples; cascade
// accumulators subtract two per section to remove it.
func (c *Coefficients) GroupDelay(fc float64) float64 {
	// Never errors: both coefficient slices are non-empty.
	gd, _ := response.GroupDelay(
		[]float64{c.B0, c.B1, c.B2},
		[]float64{1, c.A1, c.A2},
		fc,
	)

	return gd + 2
}

// ImpulseResponse computes n samples of the impulse response h[n] by
// feeding an impulse through the section. The filter state is saved and
// restored so this method does not disturb ongoing processing.
func (s *Section) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}
	saved := s.State()
	s.Reset()
	ir := make([]float64, n)
	ir[0] = s.ProcessSample(1)
	for i := 1; i < n; i++ {
		ir[i] = s.ProcessSample(0)
	}
	s.SetState(saved)
	return ir
}
