package design

import (
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-filter/internal/polyroot"
)

// IsStable reports whether the filter b/a is BIBO stable, that is,
// whether every root of the denominator lies strictly inside the unit
// circle. Roots are located numerically, so poles within roughly 1e-9
// of the circle resolve arbitrarily; by that measure marginally stable
// filters such as integrators count as unstable.
func IsStable(b, a []float64) (bool, error) {
	if len(b) == 0 || len(a) == 0 {
		return false, fmt.Errorf("%w: empty coefficients", ErrPoleZero)
	}

	if a[0] == 0 {
		return false, fmt.Errorf("%w: leading denominator coefficient is zero", ErrPoleZero)
	}

	if len(a) == 1 {
		return true, nil
	}

	poles, err := polyroot.Roots(a)
	if err != nil {
		return false, fmt.Errorf("%w: denominator roots: %v", ErrPoleZero, err)
	}

	for _, p := range poles {
		if cmplx.Abs(p) >= 1 {
			return false, nil
		}
	}

	return true, nil
}
