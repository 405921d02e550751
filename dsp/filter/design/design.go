package design

import (
	"errors"
	"fmt"
	"math"
)

// FilterType selects the analog prototype family.
type FilterType int

const (
	Butterworth FilterType = iota
	Chebyshev1
	Chebyshev2
	Elliptic
	Bessel
)

func (t FilterType) String() string {
	switch t {
	case Butterworth:
		return "butterworth"
	case Chebyshev1:
		return "chebyshev1"
	case Chebyshev2:
		return "chebyshev2"
	case Elliptic:
		return "elliptic"
	case Bessel:
		return "bessel"
	default:
		return fmt.Sprintf("filtertype(%d)", int(t))
	}
}

// BandType selects the frequency transformation applied to the lowpass
// prototype.
type BandType int

const (
	Lowpass BandType = iota
	Highpass
	Bandpass
	Bandstop
)

func (t BandType) String() string {
	switch t {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	case Bandstop:
		return "bandstop"
	default:
		return fmt.Sprintf("bandtype(%d)", int(t))
	}
}

// Format selects the coefficient representation returned by Design.
type Format int

const (
	// FormatTF returns a single numerator/denominator pair in ascending
	// powers of z^-1.
	FormatTF Format = iota
	// FormatSOS returns cascaded second-order sections, three
	// coefficients per section on each side.
	FormatSOS
)

func (f Format) String() string {
	switch f {
	case FormatTF:
		return "tf"
	case FormatSOS:
		return "sos"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

var (
	ErrFilterType      = errors.New("design: unknown filter type")
	ErrBandType        = errors.New("design: unknown band type")
	ErrFormat          = errors.New("design: unknown coefficient format")
	ErrOrder           = errors.New("design: order out of range")
	ErrCutoff          = errors.New("design: cutoff frequency out of range")
	ErrCenterFrequency = errors.New("design: center frequency out of range")
	ErrRipple          = errors.New("design: ripple specification out of range")
	ErrPoleZero        = errors.New("design: invalid pole/zero configuration")
	ErrPLLParameter    = errors.New("design: pll parameter out of range")
)

// Design computes digital filter coefficients for the given prototype
// family, band type and output format.
//
// order is the analog prototype order; bandpass and bandstop designs
// double the pole count, so their digital order is 2*order. fc is the
// cutoff (band edge) frequency and f0 the center frequency, both
// normalized to the sample rate; fc must lie in (0, 0.5) and band
// designs additionally need fc < f0 and f0+fc < 0.5, placing the band
// edges at f0-fc and f0+fc. ap is the passband ripple in dB (Chebyshev
// type 1, elliptic), as the stopband attenuation in dB (Chebyshev
// type 2, elliptic). Chebyshev type 2 designs put fc at the stopband
// edge; all other families put it at the passband edge.
func Design(ftype FilterType, btype BandType, format Format, order int, fc, f0, ap, as float64) ([]float64, []float64, error) {
	if order < 1 {
		return nil, nil, fmt.Errorf("%w: %d", ErrOrder, order)
	}

	if ftype == Bessel && order > maxBesselOrder {
		return nil, nil, fmt.Errorf("%w: bessel tables cover orders 1 through %d, got %d", ErrOrder, maxBesselOrder, order)
	}

	if !(fc > 0 && fc < 0.5) {
		return nil, nil, fmt.Errorf("%w: fc=%v", ErrCutoff, fc)
	}

	if btype == Bandpass || btype == Bandstop {
		if !(f0 > fc && f0+fc < 0.5) {
			return nil, nil, fmt.Errorf("%w: f0=%v fc=%v", ErrCenterFrequency, f0, fc)
		}
	}

	var (
		z, p []complex128
		k    float64
		err  error
	)

	switch ftype {
	case Butterworth:
		z, p, k = butterworthPrototype(order)
	case Chebyshev1:
		z, p, k, err = cheby1Prototype(order, ap)
	case Chebyshev2:
		z, p, k, err = cheby2Prototype(order, as)
	case Elliptic:
		z, p, k, err = ellipticPrototype(order, ap, as)
	case Bessel:
		z, p, k = besselPrototype(order)
	default:
		return nil, nil, fmt.Errorf("%w: %d", ErrFilterType, int(ftype))
	}

	if err != nil {
		return nil, nil, err
	}

	switch btype {
	case Lowpass:
		z, p, k = lp2lp(z, p, k, math.Tan(math.Pi*fc))
	case Highpass:
		z, p, k, err = lp2hp(z, p, k, math.Tan(math.Pi*fc))
	case Bandpass:
		w1, w2 := bandEdges(fc, f0)
		z, p, k, err = lp2bp(z, p, k, math.Sqrt(w1*w2), w2-w1)
	case Bandstop:
		w1, w2 := bandEdges(fc, f0)
		z, p, k, err = lp2bs(z, p, k, math.Sqrt(w1*w2), w2-w1)
	default:
		return nil, nil, fmt.Errorf("%w: %d", ErrBandType, int(btype))
	}

	if err != nil {
		return nil, nil, err
	}

	zd, pd, kd, err := bilinear(z, p, k)
	if err != nil {
		return nil, nil, err
	}

	switch format {
	case FormatTF:
		return ZPKToTF(zd, pd, kd)
	case FormatSOS:
		return ZPKToSOS(zd, pd, kd)
	default:
		return nil, nil, fmt.Errorf("%w: %d", ErrFormat, int(format))
	}
}

// bandEdges prewarps the band edge frequencies f0-fc and f0+fc.
func bandEdges(fc, f0 float64) (w1, w2 float64) {
	return math.Tan(math.Pi * (f0 - fc)), math.Tan(math.Pi * (f0 + fc))
}
