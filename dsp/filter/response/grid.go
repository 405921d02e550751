package response

import (
	"errors"
	"fmt"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrGridSize is returned when the requested grid size is not a power of
// two or is shorter than the coefficient slices.
var ErrGridSize = errors.New("response: grid size must be a power of two covering the filter")

// Grid evaluates the filter response at n uniformly spaced normalized
// frequencies k/n, k = 0..n-1, by dividing the zero-padded FFTs of b and a
// bin by bin. n must be a power of two no shorter than either slice.
//
// Bins where A(k/n) vanishes produce non-finite values; candidates are
// filters with exact unit-circle poles, which the design package never
// emits.
func Grid(b, a []float64, n int) ([]complex128, error) {
	if len(b) == 0 || len(a) == 0 {
		return nil, ErrNoCoefficients
	}

	if n <= 0 || n&(n-1) != 0 || n < len(b) || n < len(a) {
		return nil, fmt.Errorf("%w: n=%d, nb=%d, na=%d", ErrGridSize, n, len(b), len(a))
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	padded := make([]complex128, n)
	for i, v := range b {
		padded[i] = complex(v, 0)
	}

	hb := make([]complex128, n)
	if err := plan.Forward(hb, padded); err != nil {
		return nil, fmt.Errorf("response: numerator FFT: %w", err)
	}

	for i := range padded {
		padded[i] = 0
	}
	for i, v := range a {
		padded[i] = complex(v, 0)
	}

	ha := make([]complex128, n)
	if err := plan.Forward(ha, padded); err != nil {
		return nil, fmt.Errorf("response: denominator FFT: %w", err)
	}

	for i := range hb {
		hb[i] /= ha[i]
	}

	return hb, nil
}

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Magnitude returns |H[k]| for each response sample.
//
// Uses SIMD-optimized kernels when available. Scratch buffers are pooled,
// so in steady state this allocates only the output slice.
func Magnitude(h []complex128) []float64 {
	if len(h) == 0 {
		return nil
	}

	out := make([]float64, len(h))
	re, im, buf := getScratch(len(h))

	for i, c := range h {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out
}

// Power returns |H[k]|^2 for each response sample.
func Power(h []complex128) []float64 {
	if len(h) == 0 {
		return nil
	}

	out := make([]float64, len(h))
	re, im, buf := getScratch(len(h))

	for i, c := range h {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}
