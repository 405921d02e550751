package design

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/cwbudde/algo-filter/internal/polyroot"
)

const (
	// realRootTol is the largest imaginary residue a root may carry and
	// still count as real; conjPairTol bounds the distance between two
	// roots treated as a conjugate pair. expandImagTol bounds the
	// relative imaginary residue left after polynomial expansion.
	realRootTol   = 1e-9
	conjPairTol   = 1e-4
	expandImagTol = 1e-8
)

// ZPKToSOS converts digital zeros, poles and gain into a cascade of
// second-order sections, returned as flat coefficient slices of length
// 3*nsos in ascending powers of z^-1 per section. Conjugate pairs share
// a section; an odd real root yields a first-order section padded to
// biquad shape. Complex pole pairs are ordered before real ones and the
// overall gain is folded into the first section's numerator.
func ZPKToSOS(z, p []complex128, k float64) ([]float64, []float64, error) {
	if len(p) == 0 {
		return nil, nil, fmt.Errorf("%w: no poles", ErrPoleZero)
	}

	if len(z) > len(p) {
		return nil, nil, fmt.Errorf("%w: more zeros (%d) than poles (%d)", ErrPoleZero, len(z), len(p))
	}

	if math.IsNaN(k) || math.IsInf(k, 0) {
		return nil, nil, fmt.Errorf("%w: gain is not finite", ErrPoleZero)
	}

	pGroups := groupRoots(p)
	zGroups := groupRoots(z)

	sort.Slice(pGroups, func(i, j int) bool {
		if len(pGroups[i]) != len(pGroups[j]) {
			return len(pGroups[i]) > len(pGroups[j])
		}

		return groupImagAbs(pGroups[i]) > groupImagAbs(pGroups[j])
	})

	var zPairs, zSingles [][]complex128

	for _, g := range zGroups {
		if len(g) == 2 {
			zPairs = append(zPairs, g)
		} else {
			zSingles = append(zSingles, g)
		}
	}

	b := make([]float64, 0, 3*len(pGroups))
	a := make([]float64, 0, 3*len(pGroups))

	for _, pg := range pGroups {
		var zg []complex128

		// Pair up zero groups with pole groups of matching size where
		// possible; leftovers fill whatever remains.
		if len(pg) == 2 {
			if len(zPairs) > 0 {
				zg = zPairs[0]
				zPairs = zPairs[1:]
			} else if len(zSingles) > 0 {
				zg = zSingles[0]
				zSingles = zSingles[1:]
			}
		} else {
			if len(zSingles) > 0 {
				zg = zSingles[0]
				zSingles = zSingles[1:]
			} else if len(zPairs) > 0 {
				zg = zPairs[0]
				zPairs = zPairs[1:]
			}
		}

		b1, b2 := quadFromRoots(zg)
		a1, a2 := quadFromRoots(pg)
		b = append(b, 1, b1, b2)
		a = append(a, 1, a1, a2)
	}

	b[0] *= k
	b[1] *= k
	b[2] *= k

	return b, a, nil
}

// ZPKToTF expands digital zeros, poles and gain into a single
// transfer-function pair in ascending powers of z^-1, both of length
// len(p)+1 (the numerator is zero-padded). The root sets must be
// conjugate-complete; the imaginary residue left by the expansion is
// checked before it is discarded.
func ZPKToTF(z, p []complex128, k float64) ([]float64, []float64, error) {
	if len(p) == 0 {
		return nil, nil, fmt.Errorf("%w: no poles", ErrPoleZero)
	}

	if len(z) > len(p) {
		return nil, nil, fmt.Errorf("%w: more zeros (%d) than poles (%d)", ErrPoleZero, len(z), len(p))
	}

	if math.IsNaN(k) || math.IsInf(k, 0) {
		return nil, nil, fmt.Errorf("%w: gain is not finite", ErrPoleZero)
	}

	bc := polyroot.ExpandRoots(z)
	ac := polyroot.ExpandRoots(p)

	b := make([]float64, len(p)+1)
	a := make([]float64, len(p)+1)

	if err := realParts(b[:len(bc)], bc); err != nil {
		return nil, nil, err
	}

	if err := realParts(a, ac); err != nil {
		return nil, nil, err
	}

	for i := range b {
		b[i] *= k
	}

	return b, a, nil
}

// TFToSOS refactors a transfer-function pair into cascaded second-order
// sections by rooting both polynomials. Leading coefficients must be
// nonzero; a gain-only pair yields a single scaling section.
func TFToSOS(b, a []float64) ([]float64, []float64, error) {
	if len(b) == 0 || len(a) == 0 {
		return nil, nil, fmt.Errorf("%w: empty coefficients", ErrPoleZero)
	}

	if b[0] == 0 || a[0] == 0 {
		return nil, nil, fmt.Errorf("%w: leading coefficient is zero", ErrPoleZero)
	}

	gain := b[0] / a[0]

	n := max(len(b), len(a))
	if n == 1 {
		return []float64{gain, 0, 0}, []float64{1, 0, 0}, nil
	}

	bp := make([]float64, n)
	ap := make([]float64, n)
	copy(bp, b)
	copy(ap, a)

	zeros, err := polyroot.Roots(bp)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: numerator roots: %v", ErrPoleZero, err)
	}

	poles, err := polyroot.Roots(ap)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: denominator roots: %v", ErrPoleZero, err)
	}

	return ZPKToSOS(zeros, poles, gain)
}

// realParts copies the real parts of src into dst after checking that
// the imaginary residue is negligible relative to the largest
// coefficient.
func realParts(dst []float64, src []complex128) error {
	maxAbs := 0.0

	for _, c := range src {
		if v := math.Abs(real(c)); v > maxAbs {
			maxAbs = v
		}
	}

	tol := expandImagTol * math.Max(1, maxAbs)

	for i, c := range src {
		if math.Abs(imag(c)) > tol {
			return fmt.Errorf("%w: roots are not conjugate-complete", ErrPoleZero)
		}

		dst[i] = real(c)
	}

	return nil
}

// groupRoots partitions roots into conjugate pairs, paired-up reals and
// (for odd counts) a single trailing real. Near-real roots are snapped
// onto the axis; complex roots greedily match their nearest conjugate.
func groupRoots(roots []complex128) [][]complex128 {
	if len(roots) == 0 {
		return nil
	}

	sorted := append([]complex128(nil), roots...)
	sort.Slice(sorted, func(i, j int) bool {
		ii := imag(sorted[i])

		jj := imag(sorted[j])
		if ii != jj {
			return ii > jj
		}

		return real(sorted[i]) < real(sorted[j])
	})

	used := make([]bool, len(sorted))
	groups := make([][]complex128, 0, (len(sorted)+1)/2)
	reals := make([]complex128, 0, len(sorted))

	for i, r := range sorted {
		if used[i] {
			continue
		}

		if math.Abs(imag(r)) <= realRootTol {
			used[i] = true

			reals = append(reals, complex(real(r), 0))

			continue
		}

		target := cmplx.Conj(r)
		best := -1
		bestDist := math.MaxFloat64

		for j, rr := range sorted {
			if i == j || used[j] {
				continue
			}

			d := cmplx.Abs(rr - target)
			if d < bestDist {
				bestDist = d
				best = j
			}
		}

		used[i] = true
		if best != -1 && bestDist <= conjPairTol {
			used[best] = true
			groups = append(groups, []complex128{r, sorted[best]})
		} else {
			groups = append(groups, []complex128{r})
		}
	}

	sort.Slice(reals, func(i, j int) bool { return real(reals[i]) < real(reals[j]) })

	for i := 0; i+1 < len(reals); i += 2 {
		groups = append(groups, []complex128{reals[i], reals[i+1]})
	}

	if len(reals)%2 == 1 {
		groups = append(groups, []complex128{reals[len(reals)-1]})
	}

	return groups
}

func groupImagAbs(g []complex128) float64 {
	maxImag := 0.0
	for _, r := range g {
		if a := math.Abs(imag(r)); a > maxImag {
			maxImag = a
		}
	}

	return maxImag
}

// quadFromRoots expands a root group of size 0, 1 or 2 into the last
// two coefficients of a monic quadratic 1 + c1*z^-1 + c2*z^-2.
func quadFromRoots(group []complex128) (float64, float64) {
	switch len(group) {
	case 0:
		return 0, 0
	case 1:
		return -real(group[0]), 0
	default:
		r1, r2 := group[0], group[1]
		return -real(r1 + r2), real(r1 * r2)
	}
}
