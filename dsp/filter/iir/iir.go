package iir

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-filter/dsp/filter/biquad"
	"github.com/cwbudde/algo-filter/dsp/filter/response"
)

var (
	// ErrNoCoefficients is returned when a coefficient slice is empty.
	ErrNoCoefficients = errors.New("iir: no coefficients")

	// ErrZeroLeadingCoefficient is returned by NewDirect when the
	// denominator cannot be normalized because a[0] == 0.
	ErrZeroLeadingCoefficient = errors.New("iir: leading denominator coefficient is zero")

	// ErrSectionLayout is returned by NewSOS when the flat coefficient
	// slices differ in length or are not a multiple of three.
	ErrSectionLayout = errors.New("iir: sos coefficients must be equal-length triples")

	// ErrAlpha is returned by NewDCBlocker for a bandwidth outside (0,1).
	ErrAlpha = errors.New("iir: dc blocker alpha not in (0,1)")
)

// Form identifies the internal filter representation.
type Form int

const (
	// FormDirect is a single transfer function with a shared delay line.
	FormDirect Form = iota

	// FormSOS is a cascade of second-order sections.
	FormSOS
)

func (f Form) String() string {
	switch f {
	case FormDirect:
		return "direct"
	case FormSOS:
		return "sos"
	default:
		return fmt.Sprintf("Form(%d)", int(f))
	}
}

// repr is the closed set of filter representations. Exactly directForm
// and sosForm implement it; the concrete type never changes after
// construction.
type repr interface {
	form() Form
	processSample(x float64) float64
	processBlock(buf []float64)
	reset()
	length() int
	freqResponse(fc float64) complex128
	freqResponseGrid(n int) ([]complex128, error)
	groupDelay(fc float64) float64
	coefficients() (b, a []float64)
	sectionCoefficients() []biquad.Coefficients
	describe() string
}

// Filter is a single-channel IIR filter. It is not safe for concurrent
// use.
type Filter struct {
	repr repr
}

// NewDirect creates a direct-form filter from numerator b and
// denominator a, both in ascending powers of z^-1. The coefficients are
// copied and normalized by a[0]. Returns ErrNoCoefficients when either
// slice is empty and ErrZeroLeadingCoefficient when a[0] == 0.
func NewDirect(b, a []float64) (*Filter, error) {
	d, err := newDirectForm(b, a)
	if err != nil {
		return nil, err
	}

	return &Filter{repr: d}, nil
}

// NewSOS creates a cascade of second-order sections from flat
// coefficient slices holding one (b0,b1,b2) / (a0,a1,a2) triple per
// section. Each section is normalized independently by its own a0;
// a zero a0 surfaces as biquad.ErrZeroLeadingCoefficient with the
// section index.
func NewSOS(b, a []float64) (*Filter, error) {
	s, err := newSOSForm(b, a)
	if err != nil {
		return nil, err
	}

	return &Filter{repr: s}, nil
}

// ProcessSample filters one input sample and returns the output.
func (f *Filter) ProcessSample(x float64) float64 {
	return f.repr.processSample(x)
}

// ProcessBlock filters a block of samples in-place.
func (f *Filter) ProcessBlock(buf []float64) {
	f.repr.processBlock(buf)
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
func (f *Filter) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	_ = dst[len(src)-1] // bounds check hint
	copy(dst, src)
	f.repr.processBlock(dst[:len(src)])
}

// Reset clears all filter state.
func (f *Filter) Reset() {
	f.repr.reset()
}

// Form returns the representation chosen at construction.
func (f *Filter) Form() Form {
	return f.repr.form()
}

// Len returns the filter length: max(len(b), len(a)) for the direct
// form, twice the section count for the SOS form.
func (f *Filter) Len() int {
	return f.repr.length()
}

// Order returns Len() - 1.
func (f *Filter) Order() int {
	return f.repr.length() - 1
}

// Response computes the complex frequency response at normalized
// frequency fc in cycles per sample. The direct form evaluates the
// ratio of its coefficient polynomials; the SOS form multiplies the
// section responses together.
func (f *Filter) Response(fc float64) complex128 {
	return f.repr.freqResponse(fc)
}

// MagnitudeDB returns the magnitude response in dB at fc, floored at
// response.MagnitudeFloorDB for exact nulls.
func (f *Filter) MagnitudeDB(fc float64) float64 {
	return response.MagnitudeDBAt(f.repr.freqResponse(fc))
}

// ResponseGrid evaluates the response at n uniformly spaced normalized
// frequencies k/n, k = 0..n-1. n must be a power of two no shorter than
// the coefficient slices of any stage (response.ErrGridSize otherwise).
func (f *Filter) ResponseGrid(n int) ([]complex128, error) {
	return f.repr.freqResponseGrid(n)
}

// GroupDelay returns the group delay in samples at fc. The SOS form
// accumulates the per-section delays.
func (f *Filter) GroupDelay(fc float64) float64 {
	return f.repr.groupDelay(fc)
}

// Coefficients returns copies of the normalized numerator and
// denominator of a direct-form filter, or nil slices for an SOS filter.
func (f *Filter) Coefficients() (b, a []float64) {
	return f.repr.coefficients()
}

// Sections returns copies of the per-section coefficients of an SOS
// filter, or nil for a direct-form filter.
func (f *Filter) Sections() []biquad.Coefficients {
	return f.repr.sectionCoefficients()
}

// String returns a multi-line coefficient dump.
func (f *Filter) String() string {
	return f.repr.describe()
}
