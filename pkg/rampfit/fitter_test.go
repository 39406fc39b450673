package rampfit_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-rampfit/pkg/rampfit"
	"github.com/askiada/go-rampfit/pkg/rampfit/dq"
)

// wfiFrameTime is the raw frame cadence of the detector the reference slopes
// were generated for, in seconds.
const wfiFrameTime = 3.04

func simplePattern(t *testing.T) *rampfit.ReadPattern {
	t.Helper()
	pattern, err := rampfit.NewReadPattern([][]int{{1}, {2}, {3}, {4}}, wfiFrameTime)
	require.NoError(t, err)

	return pattern
}

var simpleNoise = rampfit.PixelNoiseModel{Gain: 1, ReadNoise: 0.01}

// Hand-verified ramps and slopes: four single-frame resultants totalling 7
// counts, gain 1, read noise 0.01.
func TestFitPixelReferenceSlopes(t *testing.T) {
	pattern := simplePattern(t)
	ramps := [][]float64{
		{2, 4, 5, 7},
		{2, 5, 6, 7},
		{5, 6, 7, 7},
		{1, 2, 6, 7},
	}
	expected := []float64{0.52631587, 0.52631587, 0.23026317, 0.7236843}

	for i, ramp := range ramps {
		flags := make([]dq.Flag, pattern.Len())
		res, err := rampfit.FitPixel(pattern, ramp, flags, simpleNoise)
		require.NoError(t, err)
		assert.InEpsilon(t, expected[i], res.Slope, 1e-6, "ramp %d", i)
		assert.Equal(t, dq.Flag(0), res.DQ, "ramp %d", i)
		assert.Len(t, res.Segments, 1, "ramp %d", i)
		assert.Greater(t, res.Variance, 0.0, "ramp %d", i)
	}
}

func TestFitPixelFullySaturated(t *testing.T) {
	pattern := simplePattern(t)
	flags := []dq.Flag{dq.Saturated, dq.Saturated, dq.Saturated, dq.Saturated}

	res, err := rampfit.FitPixel(pattern, []float64{9, 9, 9, 9}, flags, simpleNoise)
	require.NoError(t, err)
	assert.True(t, res.DQ.Has(dq.DoNotUse))
	assert.True(t, res.DQ.Has(dq.Saturated))
	assert.Zero(t, res.Slope)
	assert.True(t, math.IsInf(res.Variance, 1))
	assert.Empty(t, res.Segments)
}

func TestFitPixelAllDoNotUse(t *testing.T) {
	pattern := simplePattern(t)
	flags := []dq.Flag{dq.DoNotUse, dq.DoNotUse, dq.DoNotUse, dq.DoNotUse}

	res, err := rampfit.FitPixel(pattern, []float64{2, 4, 5, 7}, flags, simpleNoise)
	require.NoError(t, err)
	assert.Equal(t, dq.DoNotUse, res.DQ)
	assert.Zero(t, res.Slope)
	assert.True(t, math.IsInf(res.Variance, 1))
}

func TestFitPixelSingleUsableResultant(t *testing.T) {
	pattern := simplePattern(t)
	flags := []dq.Flag{dq.DoNotUse, dq.DoNotUse, dq.DoNotUse, 0}

	res, err := rampfit.FitPixel(pattern, []float64{2, 4, 5, 7}, flags, simpleNoise)
	require.NoError(t, err)
	assert.True(t, res.DQ.Has(dq.DoNotUse))
	assert.Zero(t, res.Slope)
	assert.True(t, math.IsInf(res.Variance, 1))
}

func TestFitPixelConstantRamp(t *testing.T) {
	pattern := simplePattern(t)
	flags := make([]dq.Flag, pattern.Len())

	res, err := rampfit.FitPixel(pattern, []float64{3, 3, 3, 3}, flags, simpleNoise)
	require.NoError(t, err)
	assert.InDelta(t, 0, res.Slope, 1e-12)
	assert.False(t, math.IsInf(res.Variance, 0))
	assert.False(t, math.IsNaN(res.Variance))
	assert.GreaterOrEqual(t, res.Variance, 0.0)
}

func TestFitPixelJumpSplitsSegments(t *testing.T) {
	pattern, err := rampfit.NewReadPattern([][]int{{1}, {2}, {3}, {4}, {5}, {6}}, 1)
	require.NoError(t, err)
	// Cosmic ray between resultants 2 and 3: the jump resultant is excluded
	// and the runs on either side are fitted separately.
	ramp := []float64{1, 2, 3, 104, 105, 106}
	flags := []dq.Flag{0, 0, 0, dq.JumpDetected, 0, 0}

	res, err := rampfit.FitPixel(pattern, ramp, flags, simpleNoise)
	require.NoError(t, err)
	require.Len(t, res.Segments, 2)
	assert.Equal(t, 0, res.Segments[0].Start)
	assert.Equal(t, 3, res.Segments[0].End)
	assert.Equal(t, 4, res.Segments[1].Start)
	assert.Equal(t, 6, res.Segments[1].End)
	assert.True(t, res.DQ.Has(dq.JumpDetected))
	assert.False(t, res.DQ.Has(dq.DoNotUse))
	// Both segments accumulate one count per second.
	assert.InEpsilon(t, 1.0, res.Slope, 0.05)
}

func TestFitPixelFlagExcludesResultant(t *testing.T) {
	pattern := simplePattern(t)
	clean := make([]dq.Flag, pattern.Len())
	// An outlier in the last resultant drags the slope up; flagging it
	// DO_NOT_USE must remove its contribution.
	ramp := []float64{2, 4, 6, 100}

	full, err := rampfit.FitPixel(pattern, ramp, clean, simpleNoise)
	require.NoError(t, err)

	flagged := []dq.Flag{0, 0, 0, dq.DoNotUse}
	partial, err := rampfit.FitPixel(pattern, ramp, flagged, simpleNoise)
	require.NoError(t, err)

	assert.NotEqual(t, full.Slope, partial.Slope)
	assert.InEpsilon(t, 2.0/wfiFrameTime, partial.Slope, 1e-6)
	assert.True(t, partial.DQ.Has(dq.DoNotUse))
}

func TestFitPixelUnevenPattern(t *testing.T) {
	pattern, err := rampfit.NewReadPattern([][]int{{1}, {2, 3}, {4, 5, 6, 7}}, 1)
	require.NoError(t, err)
	flags := make([]dq.Flag, pattern.Len())

	res, err := rampfit.FitPixel(pattern, []float64{1, 2.5, 5.5}, flags, simpleNoise)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(res.Slope))
	assert.False(t, math.IsInf(res.Slope, 0))
	assert.Greater(t, res.Slope, 0.0)
	assert.Greater(t, res.Variance, 0.0)
	assert.False(t, math.IsInf(res.Variance, 1))
}

func TestFitPixelReadNoiseMonotonicVariance(t *testing.T) {
	pattern := simplePattern(t)
	flags := make([]dq.Flag, pattern.Len())
	ramp := []float64{2, 4, 5, 7}

	prev := -1.0
	for _, readNoise := range []float64{0.01, 0.1, 1, 5, 20} {
		noise := rampfit.PixelNoiseModel{Gain: 1, ReadNoise: readNoise}
		res, err := rampfit.FitPixel(pattern, ramp, flags, noise)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Variance, prev, "read noise %g", readNoise)
		prev = res.Variance
	}
}

func TestFitPixelIdempotent(t *testing.T) {
	pattern, err := rampfit.NewReadPattern([][]int{{1, 2}, {3}, {4, 5, 6}, {7, 8}}, 2.5)
	require.NoError(t, err)
	ramp := []float64{3.5, 8, 14.25, 21}
	flags := []dq.Flag{0, dq.JumpDetected, 0, 0}
	noise := rampfit.PixelNoiseModel{Gain: 2.1, ReadNoise: 4.5}

	first, err := rampfit.FitPixel(pattern, ramp, flags, noise)
	require.NoError(t, err)
	second, err := rampfit.FitPixel(pattern, ramp, flags, noise)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFitPixelInvalidNoiseModel(t *testing.T) {
	pattern := simplePattern(t)
	flags := make([]dq.Flag, pattern.Len())

	for name, noise := range map[string]rampfit.PixelNoiseModel{
		"zero gain":           {Gain: 0, ReadNoise: 0.01},
		"negative gain":       {Gain: -1, ReadNoise: 0.01},
		"negative read noise": {Gain: 1, ReadNoise: -0.5},
		"nan gain":            {Gain: math.NaN(), ReadNoise: 0.01},
	} {
		res, err := rampfit.FitPixel(pattern, []float64{2, 4, 5, 7}, flags, noise)
		require.NoError(t, err, name)
		assert.True(t, res.DQ.Has(dq.DoNotUse), name)
		assert.Zero(t, res.Slope, name)
	}
}

func TestFitPixelLengthMismatch(t *testing.T) {
	pattern := simplePattern(t)

	_, err := rampfit.FitPixel(pattern, []float64{2, 4, 5}, make([]dq.Flag, 4), simpleNoise)
	assert.ErrorIs(t, err, rampfit.ErrRampLength)

	_, err = rampfit.FitPixel(pattern, []float64{2, 4, 5, 7}, make([]dq.Flag, 3), simpleNoise)
	assert.ErrorIs(t, err, rampfit.ErrRampLength)

	_, err = rampfit.FitPixel(nil, []float64{2, 4, 5, 7}, make([]dq.Flag, 4), simpleNoise)
	assert.ErrorIs(t, err, rampfit.ErrPatternMustBeSet)
}

func TestFitPixelCarriesUnknownBits(t *testing.T) {
	pattern := simplePattern(t)
	// Bit 8 is opaque to the fitter: carried into the output DQ but the
	// resultant still contributes to the slope.
	flags := []dq.Flag{0, 8, 0, 0}

	res, err := rampfit.FitPixel(pattern, []float64{2, 4, 5, 7}, flags, simpleNoise)
	require.NoError(t, err)
	assert.Equal(t, dq.Flag(8), res.DQ)
	assert.InEpsilon(t, 0.52631587, res.Slope, 1e-6)
}
