package design

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filter/internal/ellipticmath"
)

const (
	ellipticTol     = 2.2e-16
	ellipticEpsilon = 2.220446049250313e-16
)

// ellipticPrototype computes the analog lowpass prototype of an elliptic
// (Cauer) filter with rippleDB of passband ripple and stopbandDB of
// minimum stopband attenuation. Zeros and poles are placed with Jacobi
// elliptic functions so both bands are equiripple, which gives the
// sharpest transition of the classical families. The cutoff is the
// passband ripple edge.
func ellipticPrototype(order int, rippleDB, stopbandDB float64) ([]complex128, []complex128, float64, error) {
	epsSq := dbToMinusOne(rippleDB)
	if !(epsSq > 0) {
		return nil, nil, 0, fmt.Errorf("%w: passband ripple %v dB", ErrRipple, rippleDB)
	}

	stopSq := dbToMinusOne(stopbandDB)
	if !(stopSq > 0) {
		return nil, nil, 0, fmt.Errorf("%w: stopband attenuation %v dB", ErrRipple, stopbandDB)
	}

	ck1Sq := epsSq / stopSq
	if !(ck1Sq > 0 && ck1Sq < 1) {
		return nil, nil, 0, fmt.Errorf("%w: stopband attenuation %v dB must exceed passband ripple %v dB", ErrRipple, stopbandDB, rippleDB)
	}

	if order == 1 {
		p := -math.Sqrt(1.0 / epsSq)
		return nil, []complex128{complex(p, 0)}, -p, nil
	}

	m := ellipticmath.Degree(order, ck1Sq, ellipticTol)
	if !(m > 0 && m < 1) {
		return nil, nil, 0, fmt.Errorf("%w: degree equation failed for ripple %v/%v dB", ErrRipple, rippleDB, stopbandDB)
	}

	kmod := math.Sqrt(m)
	capk, _ := ellipticmath.EllipK(kmod, ellipticTol)
	ck1 := math.Sqrt(ck1Sq)

	val0, _ := ellipticmath.EllipK(ck1, ellipticTol)
	if !isFinitePositive(capk) || !isFinitePositive(val0) {
		return nil, nil, 0, fmt.Errorf("%w: elliptic integral overflow", ErrRipple)
	}

	start := 1 - order%2
	svals := make([]float64, 0, (order+1)/2)
	cvals := make([]float64, 0, (order+1)/2)
	dvals := make([]float64, 0, (order+1)/2)
	zerosBase := make([]complex128, 0, order)

	for j := start; j < order; j += 2 {
		u := float64(j) * capk / float64(order)

		sn, cn, dn := ellipticmath.SCD(u, kmod, ellipticTol)
		if math.IsNaN(sn) {
			return nil, nil, 0, fmt.Errorf("%w: jacobi evaluation failed", ErrRipple)
		}

		svals = append(svals, sn)
		cvals = append(cvals, cn)
		dvals = append(dvals, dn)

		if math.Abs(sn) > ellipticEpsilon {
			zerosBase = append(zerosBase, complex(0, 1)/complex(kmod*sn, 0))
		}
	}

	eps := math.Sqrt(epsSq)

	r := ellipticmath.ASC1(1.0/eps, ck1Sq)
	if !isFinitePositive(r) {
		return nil, nil, 0, fmt.Errorf("%w: pole placement failed", ErrRipple)
	}

	v0 := capk * r / (float64(order) * val0)

	sv, cv, dv := ellipticmath.SCD(v0, math.Sqrt(1.0-m), ellipticTol)
	if math.IsNaN(sv) {
		return nil, nil, 0, fmt.Errorf("%w: jacobi evaluation failed", ErrRipple)
	}

	polesBase := make([]complex128, len(svals))
	for i := range svals {
		den := 1.0 - (dvals[i]*sv)*(dvals[i]*sv)
		if math.Abs(den) <= ellipticEpsilon {
			return nil, nil, 0, fmt.Errorf("%w: pole placement degenerate", ErrRipple)
		}

		num := complex(cvals[i]*dvals[i]*sv*cv, svals[i]*dv)
		polesBase[i] = -num / complex(den, 0)
	}

	// Conjugate-complete the pole set. Odd orders carry one real pole,
	// detected against the pole set's overall magnitude.
	poles := make([]complex128, 0, order)
	if order%2 == 1 {
		norm2 := 0.0
		for _, p := range polesBase {
			norm2 += real(p * cmplx.Conj(p))
		}

		thr := ellipticEpsilon * math.Sqrt(norm2)

		poles = append(poles, polesBase...)
		for _, p := range polesBase {
			if math.Abs(imag(p)) > thr {
				poles = append(poles, cmplx.Conj(p))
			}
		}
	} else {
		poles = append(poles, polesBase...)
		for _, p := range polesBase {
			poles = append(poles, cmplx.Conj(p))
		}
	}

	zeros := make([]complex128, 0, len(zerosBase)*2)
	for _, z := range zerosBase {
		zeros = append(zeros, z, cmplx.Conj(z))
	}

	prodP := complexProductNeg(poles)

	prodZ := complex(1, 0)
	if len(zeros) > 0 {
		prodZ = complexProductNeg(zeros)
	}

	if prodZ == 0 {
		return nil, nil, 0, fmt.Errorf("%w: zero placement degenerate", ErrRipple)
	}

	gain := real(prodP / prodZ)
	if order%2 == 0 {
		gain /= math.Sqrt(1.0 + epsSq)
	}

	if gain == 0 || math.IsNaN(gain) || math.IsInf(gain, 0) {
		return nil, nil, 0, fmt.Errorf("%w: gain degenerate", ErrRipple)
	}

	return zeros, poles, gain, nil
}

func isFinitePositive(x float64) bool {
	return x > 0 && !math.IsInf(x, 0)
}
