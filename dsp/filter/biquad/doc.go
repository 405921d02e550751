// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II processing for a single second-order
// section defined by [Coefficients]. Higher-order filters cascade sections
// through dsp/filter/iir.
//
// This package provides the processing runtime only. Coefficient design
// (Butterworth, Chebyshev, elliptic, etc.) lives in dsp/filter/design.
package biquad
