package iir

import (
	"fmt"

	"github.com/cwbudde/algo-filter/dsp/filter/biquad"
	"github.com/cwbudde/algo-filter/dsp/filter/response"
)

// directForm runs the normalized transfer function through one shared
// delay line in direct form II:
//
//	v[n] = x[n] - sum_{i>=1} a[i]*v[n-i]
//	y[n] = sum_{i>=0} b[i]*v[n-i]
//
// The v history lives in a fixed ring with an explicit write position,
// so advancing a sample costs no data movement.
type directForm struct {
	b, a []float64 // normalized, a[0] == 1
	ring []float64 // v states, len == max(len(b), len(a))
	pos  int       // next write index
}

func newDirectForm(b, a []float64) (*directForm, error) {
	if len(b) == 0 || len(a) == 0 {
		return nil, ErrNoCoefficients
	}

	if a[0] == 0 {
		return nil, ErrZeroLeadingCoefficient
	}

	a0 := a[0]

	bn := make([]float64, len(b))
	for i, v := range b {
		bn[i] = v / a0
	}

	an := make([]float64, len(a))
	for i, v := range a {
		an[i] = v / a0
	}

	return &directForm{
		b:    bn,
		a:    an,
		ring: make([]float64, max(len(b), len(a))),
	}, nil
}

func (d *directForm) form() Form {
	return FormDirect
}

func (d *directForm) processSample(x float64) float64 {
	n := len(d.ring)

	// Feedback walks back from the previous state sample; the write
	// position still holds the oldest value, which drops out here.
	v0 := x
	idx := d.pos

	for _, ac := range d.a[1:] {
		idx--
		if idx < 0 {
			idx = n - 1
		}

		v0 -= ac * d.ring[idx]
	}

	d.ring[d.pos] = v0

	// Feedforward starts at the state just written.
	var y float64

	idx = d.pos
	for _, bc := range d.b {
		y += bc * d.ring[idx]

		idx--
		if idx < 0 {
			idx = n - 1
		}
	}

	d.pos++
	if d.pos == n {
		d.pos = 0
	}

	return y
}

func (d *directForm) processBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = d.processSample(x)
	}
}

func (d *directForm) reset() {
	for i := range d.ring {
		d.ring[i] = 0
	}

	d.pos = 0
}

func (d *directForm) length() int {
	return len(d.ring)
}

func (d *directForm) freqResponse(fc float64) complex128 {
	return response.TransferFunction(d.b, d.a, fc)
}

func (d *directForm) freqResponseGrid(n int) ([]complex128, error) {
	return response.Grid(d.b, d.a, n)
}

func (d *directForm) groupDelay(fc float64) float64 {
	// Never errors: both slices are non-empty by construction.
	gd, _ := response.GroupDelay(d.b, d.a, fc)

	return gd
}

func (d *directForm) coefficients() (b, a []float64) {
	b = make([]float64, len(d.b))
	copy(b, d.b)

	a = make([]float64, len(d.a))
	copy(a, d.a)

	return b, a
}

func (d *directForm) sectionCoefficients() []biquad.Coefficients {
	return nil
}

func (d *directForm) describe() string {
	return fmt.Sprintf("iir: direct form, nb=%d na=%d\nb: %v\na: %v",
		len(d.b), len(d.a), d.b, d.a)
}
