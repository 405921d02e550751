package design

import (
	"fmt"
	"math"
	"math/cmplx"
)

// lp2lp scales the unit-cutoff lowpass prototype to cutoff wo.
func lp2lp(z, p []complex128, k, wo float64) ([]complex128, []complex128, float64) {
	w := complex(wo, 0)

	zt := make([]complex128, len(z))
	for i, zr := range z {
		zt[i] = zr * w
	}

	pt := make([]complex128, len(p))
	for i, pr := range p {
		pt[i] = pr * w
	}

	return zt, pt, k * math.Pow(wo, float64(len(p)-len(z)))
}

// lp2hp maps the lowpass prototype to a highpass response with cutoff
// wo via s -> wo/s. The degree deficit becomes zeros at the origin.
func lp2hp(z, p []complex128, k, wo float64) ([]complex128, []complex128, float64, error) {
	degree := len(p) - len(z)
	if degree < 0 {
		return nil, nil, 0, fmt.Errorf("%w: more zeros than poles", ErrPoleZero)
	}

	w := complex(wo, 0)

	zh := make([]complex128, 0, len(p))

	for _, zr := range z {
		if zr == 0 {
			return nil, nil, 0, fmt.Errorf("%w: prototype zero at the origin", ErrPoleZero)
		}

		zh = append(zh, w/zr)
	}

	for range degree {
		zh = append(zh, 0)
	}

	ph := make([]complex128, 0, len(p))

	for _, pr := range p {
		if pr == 0 {
			return nil, nil, 0, fmt.Errorf("%w: prototype pole at the origin", ErrPoleZero)
		}

		ph = append(ph, w/pr)
	}

	den := real(complexProductNeg(p))
	if den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
		return nil, nil, 0, fmt.Errorf("%w: pole product degenerate", ErrPoleZero)
	}

	kh := k * real(complexProductNeg(z)) / den
	if kh == 0 || math.IsNaN(kh) || math.IsInf(kh, 0) {
		return nil, nil, 0, fmt.Errorf("%w: gain degenerate", ErrPoleZero)
	}

	return zh, ph, kh, nil
}

// lp2bp maps the lowpass prototype to a bandpass response with center
// wo and width bw via s -> (s^2 + wo^2)/(bw*s). Every root splits into
// a pair; the degree deficit becomes zeros at the origin.
func lp2bp(z, p []complex128, k, wo, bw float64) ([]complex128, []complex128, float64, error) {
	degree := len(p) - len(z)
	if degree < 0 {
		return nil, nil, 0, fmt.Errorf("%w: more zeros than poles", ErrPoleZero)
	}

	half := complex(bw/2, 0)
	wo2 := complex(wo*wo, 0)

	zt := make([]complex128, 0, 2*len(z)+degree)

	for _, zr := range z {
		zl := zr * half
		d := cmplx.Sqrt(zl*zl - wo2)
		zt = append(zt, zl+d, zl-d)
	}

	for range degree {
		zt = append(zt, 0)
	}

	pt := make([]complex128, 0, 2*len(p))

	for _, pr := range p {
		pl := pr * half
		d := cmplx.Sqrt(pl*pl - wo2)
		pt = append(pt, pl+d, pl-d)
	}

	return zt, pt, k * math.Pow(bw, float64(degree)), nil
}

// lp2bs maps the lowpass prototype to a bandstop response with center
// wo and width bw via s -> bw*s/(s^2 + wo^2). The degree deficit
// becomes conjugate zero pairs at +-j*wo, the transmission nulls.
func lp2bs(z, p []complex128, k, wo, bw float64) ([]complex128, []complex128, float64, error) {
	degree := len(p) - len(z)
	if degree < 0 {
		return nil, nil, 0, fmt.Errorf("%w: more zeros than poles", ErrPoleZero)
	}

	half := complex(bw/2, 0)
	wo2 := complex(wo*wo, 0)

	zt := make([]complex128, 0, 2*len(z)+2*degree)

	for _, zr := range z {
		if zr == 0 {
			return nil, nil, 0, fmt.Errorf("%w: prototype zero at the origin", ErrPoleZero)
		}

		zi := half / zr
		d := cmplx.Sqrt(zi*zi - wo2)
		zt = append(zt, zi+d, zi-d)
	}

	for range degree {
		zt = append(zt, complex(0, wo), complex(0, -wo))
	}

	pt := make([]complex128, 0, 2*len(p))

	for _, pr := range p {
		if pr == 0 {
			return nil, nil, 0, fmt.Errorf("%w: prototype pole at the origin", ErrPoleZero)
		}

		pi := half / pr
		d := cmplx.Sqrt(pi*pi - wo2)
		pt = append(pt, pi+d, pi-d)
	}

	den := real(complexProductNeg(p))
	if den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
		return nil, nil, 0, fmt.Errorf("%w: pole product degenerate", ErrPoleZero)
	}

	kt := k * real(complexProductNeg(z)) / den
	if kt == 0 || math.IsNaN(kt) || math.IsInf(kt, 0) {
		return nil, nil, 0, fmt.Errorf("%w: gain degenerate", ErrPoleZero)
	}

	return zt, pt, kt, nil
}

// bilinear maps analog roots to the z-plane via s -> (z-1)/(z+1), so a
// root s lands at (1+s)/(1-s). The degree deficit becomes zeros at
// z = -1 and the gain picks up Re(prod(1-s_z)/prod(1-s_p)). Frequency
// prewarping happens in the band transforms, not here.
func bilinear(z, p []complex128, k float64) ([]complex128, []complex128, float64, error) {
	degree := len(p) - len(z)
	if degree < 0 {
		return nil, nil, 0, fmt.Errorf("%w: more zeros than poles", ErrPoleZero)
	}

	zd := make([]complex128, 0, len(p))

	for _, zr := range z {
		den := 1.0 - zr
		if den == 0 {
			return nil, nil, 0, fmt.Errorf("%w: zero at s=1", ErrPoleZero)
		}

		zd = append(zd, (1.0+zr)/den)
	}

	for range degree {
		zd = append(zd, -1)
	}

	pd := make([]complex128, 0, len(p))

	for _, pr := range p {
		den := 1.0 - pr
		if den == 0 {
			return nil, nil, 0, fmt.Errorf("%w: pole at s=1", ErrPoleZero)
		}

		pd = append(pd, (1.0+pr)/den)
	}

	den := complexProductOneMinus(p)
	if den == 0 {
		return nil, nil, 0, fmt.Errorf("%w: pole product degenerate", ErrPoleZero)
	}

	kd := k * real(complexProductOneMinus(z)/den)
	if kd == 0 || math.IsNaN(kd) || math.IsInf(kd, 0) {
		return nil, nil, 0, fmt.Errorf("%w: gain degenerate", ErrPoleZero)
	}

	return zd, pd, kd, nil
}

func complexProductNeg(v []complex128) complex128 {
	out := complex(1, 0)
	for _, x := range v {
		out *= -x
	}

	return out
}

func complexProductOneMinus(v []complex128) complex128 {
	out := complex(1, 0)
	for _, x := range v {
		out *= 1.0 - x
	}

	return out
}
