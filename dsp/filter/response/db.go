package response

// MagnitudeFloorDB bounds decibel conversions of exact response nulls.
const MagnitudeFloorDB = -300.0

// MagnitudeDB returns 20*log10|H[k]| for each response sample, floored at
// [MagnitudeFloorDB] so nulls stay finite.
func MagnitudeDB(h []complex128) []float64 {
	mag := Magnitude(h)
	for i, m := range mag {
		mag[i] = amplitudeToDB(m)
	}
	return mag
}

// MagnitudeDBAt returns 20*log10|h| for a single response value, floored at
// [MagnitudeFloorDB].
func MagnitudeDBAt(h complex128) float64 {
	re := real(h)
	im := imag(h)
	return amplitudeToDB(mathSqrt(re*re + im*im))
}

func amplitudeToDB(m float64) float64 {
	if m <= 0 {
		return MagnitudeFloorDB
	}

	db := 20 * mathLog10(m)
	if db < MagnitudeFloorDB {
		return MagnitudeFloorDB
	}
	return db
}
