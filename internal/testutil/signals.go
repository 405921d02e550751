package testutil

import (
	"math"
	"math/rand"
)

// Impulse returns a unit impulse at pos. Out-of-range positions yield
// an all-zero signal.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC returns a constant signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// DeterministicSine returns a sine wave at normalized frequency fc in
// cycles per sample, starting at phase zero.
func DeterministicSine(fc, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	w := 2 * math.Pi * fc
	for i := range out {
		out[i] = amplitude * math.Sin(w*float64(i))
	}
	return out
}

// DeterministicNoise returns uniform white noise in [-amplitude,
// amplitude), seeded for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}
