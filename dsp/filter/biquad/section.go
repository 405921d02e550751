//nolint:funcorder
package biquad

import (
	"sync"

	archregistry "github.com/cwbudde/algo-filter/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Section is a single biquad filter with coefficients and internal state.
// It implements Direct Form II processing:
//
//	v0 = x - A1*v1 - A2*v2
//	y  = B0*v0 + B1*v1 + B2*v2
//	v2 = v1; v1 = v0
//
// A Section is not safe for concurrent use.
type Section struct {
	Coefficients

	v1, v2 float64
}

var (
	processBlockImpl     archregistry.ProcessBlockFn
	processBlockInitOnce sync.Once
)

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// NewSectionFromRaw normalizes raw numerator and denominator triplets by
// a[0] and returns a Section with zero state. Returns
// ErrZeroLeadingCoefficient when a[0] == 0.
func NewSectionFromRaw(b, a [3]float64) (*Section, error) {
	c, err := NewCoefficients(b, a)
	if err != nil {
		return nil, err
	}

	return NewSection(c), nil
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	v0 := x - s.A1*s.v1 - s.A2*s.v2
	y := s.B0*v0 + s.B1*s.v1 + s.B2*s.v2
	s.v2 = s.v1
	s.v1 = v0

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	processBlockInitOnce.Do(initProcessBlockKernel)

	coeffs := archregistry.Coefficients{
		B0: s.B0,
		B1: s.B1,
		B2: s.B2,
		A1: s.A1,
		A2: s.A2,
	}

	s.v1, s.v2 = processBlockImpl(coeffs, s.v1, s.v2, buf)
}

func initProcessBlockKernel() {
	entry := archregistry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		panic("biquad: no ProcessBlock kernel registered (missing generic fallback?)")
	}

	if entry.ProcessBlock == nil {
		panic("biquad: selected kernel missing ProcessBlock")
	}

	processBlockImpl = entry.ProcessBlock
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
// Zero-alloc.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		v0 := x - s.A1*s.v1 - s.A2*s.v2
		dst[i] = s.B0*v0 + s.B1*s.v1 + s.B2*s.v2
		s.v2 = s.v1
		s.v1 = v0
	}
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.v1 = 0
	s.v2 = 0
}

// State returns the current delay-line state [v1, v2].
func (s *Section) State() [2]float64 {
	return [2]float64{s.v1, s.v2}
}

// SetState restores a previously saved delay-line state.
func (s *Section) SetState(state [2]float64) {
	s.v1 = state[0]
	s.v2 = state[1]
}
