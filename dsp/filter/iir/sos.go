package iir

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-filter/dsp/filter/biquad"
	"github.com/cwbudde/algo-filter/dsp/filter/response"
)

// sosForm chains biquad sections, the output of each feeding the next.
type sosForm struct {
	sections []biquad.Section
}

func newSOSForm(b, a []float64) (*sosForm, error) {
	if len(b) == 0 || len(a) == 0 {
		return nil, ErrNoCoefficients
	}

	if len(b) != len(a) || len(b)%3 != 0 {
		return nil, fmt.Errorf("%w: got %d and %d values", ErrSectionLayout, len(b), len(a))
	}

	sections := make([]biquad.Section, len(b)/3)

	for i := range sections {
		c, err := biquad.NewCoefficients(
			[3]float64{b[3*i], b[3*i+1], b[3*i+2]},
			[3]float64{a[3*i], a[3*i+1], a[3*i+2]},
		)
		if err != nil {
			return nil, fmt.Errorf("iir: section %d: %w", i, err)
		}

		sections[i] = *biquad.NewSection(c)
	}

	return &sosForm{sections: sections}, nil
}

func (s *sosForm) form() Form {
	return FormSOS
}

func (s *sosForm) processSample(x float64) float64 {
	for i := range s.sections {
		x = s.sections[i].ProcessSample(x)
	}

	return x
}

func (s *sosForm) processBlock(buf []float64) {
	// Running each stage over the whole block is equivalent to chaining
	// per sample and keeps the section block kernels in play.
	for i := range s.sections {
		s.sections[i].ProcessBlock(buf)
	}
}

func (s *sosForm) reset() {
	for i := range s.sections {
		s.sections[i].Reset()
	}
}

func (s *sosForm) length() int {
	return 2 * len(s.sections)
}

func (s *sosForm) freqResponse(fc float64) complex128 {
	h := complex(1, 0)
	for i := range s.sections {
		h *= s.sections[i].Response(fc)
	}

	return h
}

func (s *sosForm) freqResponseGrid(n int) ([]complex128, error) {
	var grid []complex128

	for i := range s.sections {
		num := s.sections[i].Numerator()
		den := s.sections[i].Denominator()

		g, err := response.Grid(num[:], den[:], n)
		if err != nil {
			return nil, err
		}

		if grid == nil {
			grid = g

			continue
		}

		for k := range grid {
			grid[k] *= g[k]
		}
	}

	return grid, nil
}

func (s *sosForm) groupDelay(fc float64) float64 {
	// Each section reports its raw three-tap delay with a fixed bias of
	// two samples; the cascade subtracts the bias back out.
	var gd float64
	for i := range s.sections {
		gd += s.sections[i].GroupDelay(fc) - 2
	}

	return gd
}

func (s *sosForm) coefficients() (b, a []float64) {
	return nil, nil
}

func (s *sosForm) sectionCoefficients() []biquad.Coefficients {
	out := make([]biquad.Coefficients, len(s.sections))
	for i := range s.sections {
		out[i] = s.sections[i].Coefficients
	}

	return out
}

func (s *sosForm) describe() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "iir: sos form, %d sections", len(s.sections))

	for i := range s.sections {
		fmt.Fprintf(&sb, "\n[%d] %s", i, s.sections[i].Coefficients)
	}

	return sb.String()
}
