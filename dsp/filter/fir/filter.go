package fir

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-filter/dsp/filter/response"
)

// ErrNoCoefficients is returned by New when the coefficient slice is empty.
var ErrNoCoefficients = errors.New("fir: no coefficients")

// Filter implements a direct-form FIR filter using a circular-buffer delay
// line:
//
//	y[n] = sum_{k=0}^{N-1} h[k] * x[n-k]
type Filter struct {
	coeffs  []float64 // h[0] weighs the most recent sample
	rev     []float64 // coefficients reversed, for contiguous dot products
	delay   []float64 // ring buffer, len == len(coeffs)
	pos     int       // next write index
	scratch []float64 // block-processing window, grown on demand
}

// New creates a FIR filter from the given coefficient slice. The
// coefficients are copied and the delay line starts zeroed. Returns
// ErrNoCoefficients when coeffs is empty.
func New(coeffs []float64) (*Filter, error) {
	if len(coeffs) == 0 {
		return nil, ErrNoCoefficients
	}

	c := make([]float64, len(coeffs))
	copy(c, coeffs)

	r := make([]float64, len(c))
	for i, v := range c {
		r[len(c)-1-i] = v
	}

	return &Filter{
		coeffs: c,
		rev:    r,
		delay:  make([]float64, len(c)),
	}, nil
}

// ProcessSample filters one input sample using direct convolution with
// the circular delay line.
func (f *Filter) ProcessSample(x float64) float64 {
	f.delay[f.pos] = x

	n := len(f.coeffs)

	// Walk backward in time from the newest sample, splitting the ring
	// at the wrap point instead of testing per tap.
	var y float64
	k := 0
	for p := f.pos; p >= 0; p-- {
		y += f.coeffs[k] * f.delay[p]
		k++
	}
	for p := n - 1; k < n; p-- {
		y += f.coeffs[k] * f.delay[p]
		k++
	}

	f.pos++
	if f.pos == n {
		f.pos = 0
	}

	return y
}

// ProcessBlock filters a block of samples in-place.
//
// Instead of rotating the ring once per sample, the block path lays out
// history and input contiguously and slides a dot product across the
// window, so the inner loop can use the vectorized kernels.
func (f *Filter) ProcessBlock(buf []float64) {
	if len(buf) == 0 {
		return
	}

	n := len(f.coeffs)
	if n == 1 {
		c0 := f.coeffs[0]
		for i := range buf {
			buf[i] *= c0
		}

		return
	}

	// window = [n-1 samples of history][block], oldest first.
	need := n - 1 + len(buf)
	if cap(f.scratch) < need {
		f.scratch = make([]float64, need)
	}
	w := f.scratch[:need]
	f.readHistory(w[:n-1])
	copy(w[n-1:], buf)

	for i := range buf {
		buf[i] = vecmath.DotProduct(f.rev, w[i:i+n])
	}

	f.writeHistory(w[len(w)-(n-1):])
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
func (f *Filter) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	_ = dst[len(src)-1] // bounds check hint
	copy(dst, src)
	f.ProcessBlock(dst[:len(src)])
}

// readHistory copies the most recent len(dst) samples out of the ring in
// chronological order.
func (f *Filter) readHistory(dst []float64) {
	n := len(f.delay)
	p := f.pos - len(dst)
	if p < 0 {
		p += n
	}
	for i := range dst {
		dst[i] = f.delay[p]
		p++
		if p == n {
			p = 0
		}
	}
}

// writeHistory reloads the ring from a chronological tail of samples.
func (f *Filter) writeHistory(tail []float64) {
	copy(f.delay, tail)
	f.pos = len(tail)
}

// Reset clears the delay line to zero.
func (f *Filter) Reset() {
	for i := range f.delay {
		f.delay[i] = 0
	}
	f.pos = 0
}

// Len returns the number of filter coefficients.
func (f *Filter) Len() int {
	return len(f.coeffs)
}

// Order returns the filter order (len(coeffs) - 1).
func (f *Filter) Order() int {
	return len(f.coeffs) - 1
}

// Coefficients returns a copy of the filter coefficients.
func (f *Filter) Coefficients() []float64 {
	c := make([]float64, len(f.coeffs))
	copy(c, f.coeffs)
	return c
}

// Response computes the complex frequency response at normalized
// frequency fc in cycles per sample: H(fc) = sum h[k]*e^{-j*2*pi*fc*k}.
func (f *Filter) Response(fc float64) complex128 {
	return response.PolyFreq(f.coeffs, fc)
}

// MagnitudeDB returns the magnitude response in dB at fc, floored at
// response.MagnitudeFloorDB for spectral nulls.
func (f *Filter) MagnitudeDB(fc float64) float64 {
	return response.MagnitudeDBAt(f.Response(fc))
}

// GroupDelay returns the group delay in samples at fc. Linear-phase
// (symmetric) filters report (Len()-1)/2 at every frequency.
func (f *Filter) GroupDelay(fc float64) float64 {
	// Never errors: coeffs is non-empty by construction.
	gd, _ := response.GroupDelay(f.coeffs, []float64{1}, fc)
	return gd
}

// String returns a one-line summary with the tap values.
func (f *Filter) String() string {
	return fmt.Sprintf("fir: n=%d h=%v", len(f.coeffs), f.coeffs)
}
