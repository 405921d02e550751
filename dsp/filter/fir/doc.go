// Package fir implements finite impulse response filtering in direct form.
//
// A [Filter] convolves an input stream with a fixed coefficient vector,
// keeping past samples in a circular delay line. Direct evaluation is the
// right tool up to a few hundred taps; beyond that, FFT-based convolution
// wins.
//
// Only the runtime lives here. Coefficient design (windowed-sinc,
// Parks-McClellan, etc.) is a separate concern.
package fir
