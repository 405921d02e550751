// Package polyroot finds roots of real-coefficient polynomials and expands
// root products back into coefficients. It backs the pole/zero conversions
// in the filter design package.
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrDegeneratePolynomial is returned when a polynomial has degenerate
// coefficients (leading coefficient zero, convergence failure, etc.).
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// Solver tuning. The sweep updates roots in place, so the well-conditioned
// polynomials filter design produces converge in a few dozen passes.
const (
	maxIterations   = 500
	deltaTol        = 1e-12
	residualCeiling = 1e-6
)

// Roots finds all roots of a real-coefficient polynomial. Coefficients are
// in descending power order: c[0]*z^n + c[1]*z^(n-1) + ... + c[n]. For a
// transfer-function slice in ascending powers of z^-1 this is the same
// layout, and the returned roots are the finite zeros/poles in z.
func Roots(c []float64) ([]complex128, error) {
	if len(c) < 2 {
		return nil, ErrDegeneratePolynomial
	}

	coeff := make([]complex128, len(c))
	for i, v := range c {
		coeff[i] = complex(v, 0)
	}

	return durandKerner(coeff)
}

// ExpandRoots expands a product of monomials in z^-1 into polynomial
// coefficients: prod(1 - r[i]*z^-1) -> [1, c1, ..., cn] in ascending powers
// of z^-1. The roots must be conjugate-complete for the result to be real;
// the caller checks residual imaginary parts.
func ExpandRoots(roots []complex128) []complex128 {
	out := make([]complex128, len(roots)+1)
	out[0] = 1

	for n, r := range roots {
		// Multiply the current polynomial by (1 - r*z^-1) in place,
		// highest coefficient first so lower ones are still unscaled.
		for i := n + 1; i >= 1; i-- {
			out[i] -= r * out[i-1]
		}
	}

	return out
}

// durandKerner runs Durand-Kerner (Weierstrass) simultaneous iteration on a
// monic-normalized copy of coeff, in descending power order.
func durandKerner(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 || coeff[0] == 0 {
		return nil, ErrDegeneratePolynomial
	}

	norm := make([]complex128, len(coeff))
	for i, c := range coeff {
		norm[i] = c / coeff[0]
	}

	roots := initialGuesses(norm)

	for range maxIterations {
		if sweep(norm, roots) < deltaTol {
			return roots, nil
		}
	}

	// The step-size test can stall on clustered roots even when every
	// estimate already sits on the polynomial; accept by residual instead.
	if maxResidual(norm, roots) < residualCeiling {
		return roots, nil
	}

	return nil, ErrDegeneratePolynomial
}

// initialGuesses spreads starting points on a loose spiral around the
// coefficient magnitude bound, offset so no guess starts on the real axis.
func initialGuesses(norm []complex128) []complex128 {
	n := len(norm) - 1

	bound := 1.0
	for _, c := range norm[1:] {
		bound = max(bound, cmplx.Abs(c))
	}

	roots := make([]complex128, n)
	for i := range roots {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.3
		r := bound * (1 + 0.1*float64(i)/float64(n))
		roots[i] = cmplx.Rect(r, angle)
	}

	return roots
}

// sweep applies one in-place pass of the Weierstrass correction to every
// root estimate and returns the largest step taken.
func sweep(norm, roots []complex128) float64 {
	maxDelta := 0.0

	for i := range roots {
		den := complex(1, 0)
		for j := range roots {
			if j != i {
				den *= roots[i] - roots[j]
			}
		}

		// Coincident estimates blow up the correction; nudge apart and
		// let the next pass separate them.
		if den == 0 {
			roots[i] += complex(1e-10, 1e-10)
			continue
		}

		delta := polyEval(norm, roots[i]) / den
		roots[i] -= delta
		maxDelta = max(maxDelta, cmplx.Abs(delta))
	}

	return maxDelta
}

func maxResidual(norm, roots []complex128) float64 {
	worst := 0.0
	for _, r := range roots {
		worst = max(worst, cmplx.Abs(polyEval(norm, r)))
	}

	return worst
}

// polyEval evaluates the polynomial at x by Horner's rule, descending
// power order.
func polyEval(coeff []complex128, x complex128) complex128 {
	v := coeff[0]
	for _, c := range coeff[1:] {
		v = v*x + c
	}

	return v
}
