package fir_test

import (
	"fmt"

	"github.com/cwbudde/algo-filter/dsp/filter/fir"
)

func ExampleFilter_ProcessSample() {
	// First difference: y[n] = x[n] - x[n-1].
	f, err := fir.New([]float64{1, -1})
	if err != nil {
		panic(err)
	}

	for _, x := range []float64{1, 4, 9, 16, 25} {
		fmt.Printf("%.0f ", f.ProcessSample(x))
	}
	// Output:
	// 1 3 5 7 9
}

func ExampleFilter_ProcessBlock() {
	// Two-tap smoother applied in place.
	f, err := fir.New([]float64{0.5, 0.5})
	if err != nil {
		panic(err)
	}

	buf := []float64{1, 1, 0, 0}
	f.ProcessBlock(buf)
	fmt.Printf("%.2f\n", buf)
	// Output:
	// [0.50 1.00 0.50 0.00]
}

func ExampleFilter_MagnitudeDB() {
	// The moving average is a crude lowpass: flat at DC, rolling off
	// toward Nyquist.
	f, err := fir.New([]float64{1.0 / 3, 1.0 / 3, 1.0 / 3})
	if err != nil {
		panic(err)
	}

	for _, fc := range []float64{0, 0.1, 0.25} {
		fmt.Printf("fc=%.2f: %+.2f dB\n", fc, f.MagnitudeDB(fc))
	}
	// Output:
	// fc=0.00: +0.00 dB
	// fc=0.10: -1.18 dB
	// fc=0.25: -9.54 dB
}
