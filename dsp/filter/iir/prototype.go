package iir

import "github.com/cwbudde/algo-filter/dsp/filter/design"

// NewPrototype designs a filter of the given family, band and order and
// wraps the coefficients in the representation matching format:
// design.FormatTF yields a direct-form filter, design.FormatSOS a
// section cascade. Band-pass and band-stop designs double the pole
// count, which the returned layout already reflects. Parameter
// semantics and validation are design.Design's.
func NewPrototype(ftype design.FilterType, btype design.BandType, format design.Format, order int, fc, f0, ap, as float64) (*Filter, error) {
	b, a, err := design.Design(ftype, btype, format, order, fc, f0, ap, as)
	if err != nil {
		return nil, err
	}

	if format == design.FormatSOS {
		return NewSOS(b, a)
	}

	return NewDirect(b, a)
}
