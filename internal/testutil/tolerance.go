package testutil

import (
	"fmt"
	"math"
	"math/cmplx"
	"testing"
)

// RequireSliceNearlyEqual fails t unless got and want have the same
// length and agree element-wise within eps.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}

	for i := range got {
		if d := math.Abs(got[i] - want[i]); d > eps {
			t.Fatalf("index %d: got %v, want %v (off by %g, eps %g)", i, got[i], want[i], d, eps)
		}
	}
}

// RequireComplexNearlyEqual is RequireSliceNearlyEqual for complex
// slices, measuring distance in the complex plane.
func RequireComplexNearlyEqual(t *testing.T, got, want []complex128, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}

	for i := range got {
		if d := cmplx.Abs(got[i] - want[i]); d > eps {
			t.Fatalf("index %d: got %v, want %v (off by %g, eps %g)", i, got[i], want[i], d, eps)
		}
	}
}

// RequireFinite fails t if data contains a NaN or an infinity.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the largest element-wise absolute difference
// between a and b, or an error when the lengths differ.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}

	var m float64
	for i := range a {
		m = max(m, math.Abs(a[i]-b[i]))
	}

	return m, nil
}
