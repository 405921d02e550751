package design

import "math/cmplx"

// besselPrototype returns the analog lowpass prototype of a Bessel
// (Thomson) filter, which trades band-edge sharpness for maximally flat
// group delay. The delay-normalized poles are tabulated for orders 1-10
// and rescaled so the magnitude response crosses -3 dB at unit
// frequency. There are no finite zeros.
func besselPrototype(order int) ([]complex128, []complex128, float64) {
	base := besselDelayPoles[order]
	scale := besselScaleFactors[order]

	p := make([]complex128, 0, order)
	for _, bp := range base {
		pp := complex(real(bp)/scale, imag(bp)/scale)
		if imag(bp) == 0 {
			p = append(p, pp)
		} else {
			p = append(p, pp, cmplx.Conj(pp))
		}
	}

	return nil, p, real(complexProductNeg(p))
}

const maxBesselOrder = 10

// besselDelayPoles holds delay-normalized Bessel poles for orders 1-10,
// one entry per conjugate pair (positive imaginary part) with the real
// pole of odd orders listed last.
//
// Source: C.R. Bond, "Bessel Filter Constants", crbond.com/papers/bsf.pdf.
var besselDelayPoles = [maxBesselOrder + 1][]complex128{
	// order 0: unused
	{},
	// order 1
	{complex(-1.0, 0)},
	// order 2
	{complex(-1.5, 0.8660254038)},
	// order 3
	{complex(-1.8389073227, 1.7543809598), complex(-2.3221853546, 0)},
	// order 4
	{complex(-2.1037893972, 2.6574180419), complex(-2.8962106028, 0.8672341289)},
	// order 5
	{
		complex(-2.3246743032, 3.5710229203),
		complex(-3.3519563992, 1.7426614162),
		complex(-3.6467385953, 0),
	},
	// order 6
	{
		complex(-2.5159322478, 4.4926729537),
		complex(-3.7357083563, 2.6262723114),
		complex(-4.2483593959, 0.8675096732),
	},
	// order 7
	{
		complex(-2.6856768789, 5.4206941307),
		complex(-4.0701391636, 3.5171740477),
		complex(-4.7582905282, 1.7392860613),
		complex(-4.9717868585, 0),
	},
	// order 8
	{
		complex(-2.8389839177, 6.3539112470),
		complex(-4.3682892668, 4.4144425006),
		complex(-5.2048407906, 2.6161751538),
		complex(-5.5878860022, 0.8676144454),
	},
	// order 9
	{
		complex(-2.9792607983, 7.2914651564),
		complex(-4.6384398714, 5.3172716754),
		complex(-5.6044218195, 3.4981415816),
		complex(-6.1293679040, 1.7378483835),
		complex(-6.2970079817, 0),
	},
	// order 10
	{
		complex(-3.1088931555, 8.2324678728),
		complex(-4.8862195924, 6.2249854825),
		complex(-5.9675283089, 4.3849471924),
		complex(-6.6152909655, 2.6115679208),
		complex(-6.9220449048, 0.8676594792),
	},
}

// besselScaleFactors converts delay-normalized poles to the -3 dB
// normalization.
//
// Source: C.R. Bond, "Bessel Filter Constants", crbond.com/papers/bsf.pdf.
var besselScaleFactors = [maxBesselOrder + 1]float64{
	0, // order 0: unused
	1.0,
	1.36165412871613,
	1.75567236868121,
	2.11391767490422,
	2.42741070215263,
	2.70339506120292,
	2.95172214703872,
	3.17961723751065,
	3.39169313891166,
	3.59098059456916,
}
