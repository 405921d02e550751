package design

import "fmt"

// PLLActiveLag designs the biquad loop filter of a phase-locked loop
// with an active lag-lead integrator. w is the loop natural frequency
// normalized to the sample rate, zeta the damping factor and K the loop
// gain. The denominator keeps an integrating pole on the unit circle,
// so the cascade is marginally stable on purpose.
func PLLActiveLag(w, zeta, K float64) (b, a [3]float64, err error) {
	if err = validatePLL(w, zeta, K); err != nil {
		return b, a, err
	}

	t1 := K / (w * w)
	t2 := 2*zeta/w - 1/K

	b = [3]float64{2 * K * (1 + t2/2), 4 * K, 2 * K * (1 - t2/2)}
	a = [3]float64{1 + t1/2, -t1, -1 + t1/2}

	return b, a, nil
}

// PLLActivePI designs the biquad loop filter of a phase-locked loop
// with an active proportional-plus-integrator stage. Parameters are as
// for PLLActiveLag; the PI form trades the lag filter's finite DC gain
// for a second integrator.
func PLLActivePI(w, zeta, K float64) (b, a [3]float64, err error) {
	if err = validatePLL(w, zeta, K); err != nil {
		return b, a, err
	}

	t1 := K / (w * w)
	t2 := 2 * zeta / w

	b = [3]float64{2 * K * (1 + t2/2), 4 * K, 2 * K * (1 - t2/2)}
	a = [3]float64{t1 / 2, -t1, t1 / 2}

	return b, a, nil
}

func validatePLL(w, zeta, K float64) error {
	if !(w > 0 && w < 1) {
		return fmt.Errorf("%w: bandwidth %v not in (0,1)", ErrPLLParameter, w)
	}

	if !(zeta > 0 && zeta < 1) {
		return fmt.Errorf("%w: damping factor %v not in (0,1)", ErrPLLParameter, zeta)
	}

	if !(K > 0) {
		return fmt.Errorf("%w: loop gain %v not positive", ErrPLLParameter, K)
	}

	return nil
}
