// Package response evaluates digital filter frequency responses.
//
// Filters are described by transfer-function coefficient slices in
// ascending powers of z^-1. [TransferFunction] evaluates the complex
// response at a single normalized frequency (cycles per sample),
// [Grid] evaluates it on a uniform frequency grid via FFT, and
// [GroupDelay] computes the phase-derivative group delay in samples.
//
// The runtime packages (dsp/filter/fir, dsp/filter/biquad,
// dsp/filter/iir) delegate their analysis methods here, so direct-form
// and cascade representations of the same filter report consistent
// responses.
package response
