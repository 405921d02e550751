// Package design computes IIR filter coefficients from analog prototypes.
//
// The classical families (Butterworth, Chebyshev type 1 and 2, elliptic,
// Bessel) are designed in the analog domain as pole/zero/gain triples,
// moved to the requested band with the standard lowpass transformations,
// and mapped to the z-plane with the bilinear transform. Design returns
// the result either as a transfer-function polynomial pair or as a flat
// cascade of second-order sections.
//
// The package also provides the representation conversions (ZPKToSOS,
// ZPKToTF, TFToSOS), loop-filter design for phase-locked loops, and a
// stability check based on the denominator roots.
package design
