package rampfit

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/askiada/go-rampfit/pkg/rampfit/dq"
)

// FitResult is the outcome of fitting one pixel's ramp. Slope is 0 and
// Variance +Inf when no usable segment exists; DQ then carries DO_NOT_USE.
type FitResult struct {
	Slope           float64 // electrons per second
	Variance        float64 // read + Poisson variance of Slope
	ReadVariance    float64
	PoissonVariance float64
	DQ              dq.Flag
	Segments        []SegmentFit
}

// SegmentFit carries the diagnostics of one fitted segment.
type SegmentFit struct {
	Start, End      int // resultant index range, end exclusive
	Slope           float64
	Variance        float64
	ReadVariance    float64
	PoissonVariance float64
}

// FitPixel fits one pixel's ramp against the read pattern and noise model.
// It is a pure function: no shared state, safe to call from any number of
// goroutines. The per-resultant flags decide which resultants contribute
// (see splitSegments); every flag encountered is ORed into the result DQ so
// downstream consumers can audit why a fit used fewer resultants than read.
func FitPixel(pattern *ReadPattern, resultants []float64, flags []dq.Flag, noise PixelNoiseModel) (FitResult, error) {
	if pattern == nil {
		return FitResult{}, ErrPatternMustBeSet
	}
	if len(resultants) != pattern.Len() || len(flags) != pattern.Len() {
		return FitResult{}, errors.Wrapf(ErrRampLength,
			"got %d resultants and %d flags for a pattern of %d groups",
			len(resultants), len(flags), pattern.Len())
	}

	var res FitResult
	for _, f := range flags {
		res.DQ |= f
	}

	if noise.Valid() {
		for _, seg := range splitSegments(flags) {
			sf, ok := fitSegment(pattern, resultants, noise, seg)
			if !ok {
				continue
			}
			res.Segments = append(res.Segments, sf)
		}
	}

	if len(res.Segments) == 0 {
		res.Slope = 0
		res.Variance = math.Inf(1)
		res.ReadVariance = math.Inf(1)
		res.PoissonVariance = math.Inf(1)
		res.DQ |= dq.DoNotUse

		return res, nil
	}

	combineSegments(&res)

	return res, nil
}

// combineSegments merges the per-segment slopes by inverse-variance
// weighting. A zero-variance segment would give an infinite weight, so it
// wins outright.
func combineSegments(res *FitResult) {
	for _, sf := range res.Segments {
		if sf.Variance == 0 {
			res.Slope = sf.Slope
			res.Variance = 0
			res.ReadVariance = sf.ReadVariance
			res.PoissonVariance = sf.PoissonVariance

			return
		}
	}

	var wSum, wSlope, readVar, poissonVar float64
	for _, sf := range res.Segments {
		w := 1 / sf.Variance
		wSum += w
		wSlope += w * sf.Slope
		readVar += w * w * sf.ReadVariance
		poissonVar += w * w * sf.PoissonVariance
	}
	res.Slope = wSlope / wSum
	res.Variance = 1 / wSum
	res.ReadVariance = readVar / (wSum * wSum)
	res.PoissonVariance = poissonVar / (wSum * wSum)
}

// fitSegment computes the Casertano et al. (2022) weighted least-squares
// slope of one segment, in electrons per second. It reports false when the
// weighting denominator is degenerate, so the caller can treat the segment
// as unusable instead of propagating NaN.
func fitSegment(pattern *ReadPattern, resultants []float64, noise PixelNoiseModel, seg segment) (SegmentFit, bool) {
	n := seg.end - seg.start
	y := make([]float64, n)
	t := make([]float64, n)
	tau := make([]float64, n)
	nn := make([]float64, n)
	for i := 0; i < n; i++ {
		y[i] = resultants[seg.start+i] * noise.Gain
		t[i] = pattern.Time(seg.start + i)
		tau[i] = pattern.VarianceTime(seg.start + i)
		nn[i] = float64(pattern.NFrames(seg.start + i))
	}
	readNoise := noise.ReadNoise * noise.Gain

	// Crude signal estimate to pick the weighting power (Casertano Eq. 44).
	smax := y[n-1] - y[0]
	var snr float64
	if rad := readNoise*readNoise + smax; rad > 0 {
		snr = smax / math.Sqrt(rad)
	}
	if snr < 0 {
		snr = 0
	}
	power := weightPower(snr)

	tmid := (t[0] + t[n-1]) / 2
	tscale := (t[n-1] - t[0]) / 2
	if tscale == 0 {
		tscale = 1
	}

	w := make([]float64, n)
	for i := range w {
		w[i] = resultantWeight(power, pattern.NFrames(seg.start+i), t[i], tmid, tscale)
	}

	f0 := floats.Sum(w)
	f1 := floats.Dot(w, t)
	var f2 float64
	for i := range w {
		f2 += w[i] * t[i] * t[i]
	}
	d := f0*f2 - f1*f1
	if d <= 0 || math.IsNaN(d) {
		return SegmentFit{}, false
	}

	// k holds the linear coefficients of the weighted-OLS slope estimator
	// (Casertano Eq. 36-37): slope = Σ k_i y_i.
	k := make([]float64, n)
	for i := range k {
		k[i] = (f0*t[i] - f1) * w[i] / d
	}
	slope := floats.Dot(k, y)

	var readVar float64
	for i := range k {
		readVar += k[i] * k[i] / nn[i]
	}
	readVar *= readNoise * readNoise

	// Poisson variance (Casertano Eq. 39): accumulated counts at i and j>i
	// share the signal up to the mean time of i, so the covariance term uses
	// t rather than tau.
	var acc float64
	for i := range k {
		acc += k[i] * k[i] * tau[i]
		for j := i + 1; j < n; j++ {
			acc += 2 * k[i] * k[j] * t[i]
		}
	}
	poissonVar := math.Max(slope, 0) * acc

	return SegmentFit{
		Start:           seg.start,
		End:             seg.end,
		Slope:           slope,
		Variance:        readVar + poissonVar,
		ReadVariance:    readVar,
		PoissonVariance: poissonVar,
	}, true
}
