package rampfit

import "math"

// PixelNoiseModel holds the calibration of one pixel. Immutable per fit.
type PixelNoiseModel struct {
	Gain      float64 // electrons per DN, > 0
	ReadNoise float64 // DN, >= 0
}

// Valid reports whether the calibration values can support a fit.
func (nm PixelNoiseModel) Valid() bool {
	return nm.Gain > 0 && nm.ReadNoise >= 0 &&
		!math.IsInf(nm.Gain, 1) && !math.IsInf(nm.ReadNoise, 1)
}

// weightPower returns the Casertano et al. (2022, Table 1) weighting exponent
// for a ramp with signal-to-noise ratio s. Low-signal ramps are read-noise
// limited and fit best unweighted (P=0); bright ramps approach the photon
// limit and favour the extreme resultants.
func weightPower(s float64) float64 {
	switch {
	case s < 5:
		return 0
	case s < 10:
		return 0.4
	case s < 20:
		return 1
	case s < 50:
		return 3
	case s < 100:
		return 6
	}

	return 10
}

// resultantWeight is the Casertano et al. (2022, Eq. 45) weight of one
// resultant: the nframes factor lowers the read-noise share of a resultant
// averaged from more frames, and the time term raises the leverage of
// resultants far from the ramp midpoint when power > 0.
func resultantWeight(power float64, nframes int, tbar, tmid, tscale float64) float64 {
	nn := float64(nframes)

	return (1 + power) * nn / (1 + power*nn) *
		math.Pow(math.Abs((tbar-tmid)/tscale), power)
}
