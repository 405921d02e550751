package ellipticmath

import (
	"math"
	"math/cmplx"
)

const (
	asnMaxIter      = 10
	asc1ImagCheck   = 1e-7
	degreeSeriesLen = 7
)

// SCD evaluates the Jacobi elliptic functions sn, cn and dn at the
// unnormalized argument u for modulus k. The argument is divided by the
// quarter period K(k) before the Landen ascent. Returns NaNs when k lies
// outside [0, 1) or the evaluation degenerates.
func SCD(u, k, tol float64) (sn, cn, dn float64) {
	nan := math.NaN()
	if !(k >= 0 && k < 1) {
		return nan, nan, nan
	}

	K, _ := EllipK(k, tol)
	if K == 0 || math.IsNaN(K) || math.IsInf(K, 0) {
		return nan, nan, nan
	}

	uNorm := u / K

	sn = sne(uNorm, k, tol)
	if math.IsNaN(sn) || math.IsInf(sn, 0) {
		return nan, nan, nan
	}

	dn2 := 1.0 - k*k*sn*sn
	if dn2 < -1e-12 {
		return nan, nan, nan
	}

	if dn2 < 0 {
		dn2 = 0
	}

	dn = math.Sqrt(dn2)
	cn = real(cde(complex(uNorm, 0), k, tol)) * dn

	return sn, cn, dn
}

// complement returns sqrt(1-k^2) in the product form that keeps precision
// for |k| near 1.
func complement(k complex128) complex128 {
	return cmplx.Sqrt((1.0 - k) * (1.0 + k))
}

// ASN computes the inverse Jacobi sn function for complex w with
// parameter m = k^2 using a descending Landen chain. The result is in
// unnormalized units (quarter period K, not 1). Returns NaN when m lies
// outside [0, 1] or the chain degenerates.
func ASN(w complex128, m float64) complex128 {
	if m < 0 || m > 1 {
		return complex(math.NaN(), math.NaN())
	}

	k := complex(math.Sqrt(m), 0)
	if real(k) == 1 {
		return cmplx.Atanh(w)
	}

	ks := []complex128{k}
	for range asnMaxIter - 1 {
		kn := ks[len(ks)-1]
		if cmplx.Abs(kn) == 0 {
			break
		}

		kp := complement(kn)
		ks = append(ks, (1.0-kp)/(1.0+kp))
	}

	K := 1.0
	for i := 1; i < len(ks); i++ {
		K *= real(1.0 + ks[i])
	}

	K *= math.Pi * 0.5

	wn := w

	for i := range len(ks) - 1 {
		den := (1.0 + ks[i+1]) * (1.0 + complement(ks[i]*wn))
		if den == 0 {
			return complex(math.NaN(), math.NaN())
		}

		wn = 2.0 * wn / den
	}

	u := (2.0 / math.Pi) * cmplx.Asin(wn)

	return complex(K, 0) * u
}

// ASC1 computes the real inverse sc value used to place elliptic
// prototype poles: the imaginary part of asn(j*w, m). Returns NaN when
// the intermediate result has a significant real component.
func ASC1(w, m float64) float64 {
	z := ASN(complex(0, w), m)
	if math.Abs(real(z)) > asc1ImagCheck*math.Max(1.0, math.Abs(imag(z))) {
		return math.NaN()
	}

	return imag(z)
}

// Degree solves the elliptic degree equation: given the order n and the
// squared selectivity m1, it returns the parameter m of the order-n
// equiripple response, via the nome q-series. Returns NaN for n <= 0 or
// m1 outside (0, 1).
func Degree(n int, m1, tol float64) float64 {
	if n <= 0 || !(m1 > 0 && m1 < 1) {
		return math.NaN()
	}

	k1 := math.Sqrt(m1)
	K1, _ := EllipK(k1, tol)

	K1p, _ := EllipK(math.Sqrt(1.0-m1), tol)
	if K1 <= 0 || K1p <= 0 || math.IsNaN(K1) || math.IsNaN(K1p) || math.IsInf(K1, 0) || math.IsInf(K1p, 0) {
		return math.NaN()
	}

	q1 := math.Exp(-math.Pi * K1p / K1)
	q := math.Pow(q1, 1.0/float64(n))

	num := 0.0
	for i := range degreeSeriesLen {
		num += math.Pow(q, float64(i*(i+1)))
	}

	den := 1.0
	for i := 1; i < degreeSeriesLen; i++ {
		den += 2.0 * math.Pow(q, float64(i*i))
	}

	return 16.0 * q * math.Pow(num/den, 4.0)
}
