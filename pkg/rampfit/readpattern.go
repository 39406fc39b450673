package rampfit

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// ReadPattern maps raw detector frames to the resultant groups that were
// averaged on board. Frame indices are 1-based and strictly increasing across
// the whole pattern; groups may have unequal sizes, which makes the ramp
// unevenly weighted in time. Construct once per exposure; read-only after.
type ReadPattern struct {
	groups    [][]int
	frameTime float64
	nframes   []int
	tbar      []float64
	tau       []float64
}

// NewReadPattern validates groups and precomputes the per-resultant mean time
// and variance-effective time. frameTime is the duration of one raw frame in
// seconds; frame j ends at j*frameTime after exposure start.
func NewReadPattern(groups [][]int, frameTime float64) (*ReadPattern, error) {
	if frameTime <= 0 {
		return nil, errors.Wrapf(ErrFrameTime, "got %g", frameTime)
	}
	if len(groups) == 0 {
		return nil, ErrEmptyReadPattern
	}

	rp := &ReadPattern{
		groups:    make([][]int, len(groups)),
		frameTime: frameTime,
		nframes:   make([]int, len(groups)),
		tbar:      make([]float64, len(groups)),
		tau:       make([]float64, len(groups)),
	}

	last := 0
	for i, group := range groups {
		if len(group) == 0 {
			return nil, errors.Wrapf(ErrEmptyResultantGroup, "group %d", i)
		}
		times := make([]float64, len(group))
		for j, frame := range group {
			if frame <= last {
				return nil, errors.Wrapf(ErrFrameOrder, "group %d frame index %d follows %d", i, frame, last)
			}
			last = frame
			times[j] = float64(frame) * frameTime
		}
		rp.groups[i] = append([]int(nil), group...)
		rp.nframes[i] = len(group)
		rp.tbar[i] = stat.Mean(times, nil)
		rp.tau[i] = varianceTime(times)
	}

	return rp, nil
}

// varianceTime is the effective time scaling the Poisson variance of a
// resultant averaged from frames at the given ascending times:
// (1/N²) Σ_a (2(N-a)+1) t_a, which reduces to t for a single frame.
func varianceTime(times []float64) float64 {
	n := len(times)
	var sum float64
	for a, t := range times {
		sum += float64(2*(n-a-1)+1) * t
	}

	return sum / float64(n*n)
}

// Len returns the number of resultants in the pattern.
func (rp *ReadPattern) Len() int {
	return len(rp.groups)
}

// NFrames returns the number of frames averaged into resultant i.
func (rp *ReadPattern) NFrames(i int) int {
	return rp.nframes[i]
}

// Time returns the mean frame time of resultant i since exposure start.
func (rp *ReadPattern) Time(i int) float64 {
	return rp.tbar[i]
}

// VarianceTime returns the Poisson variance-effective time of resultant i.
func (rp *ReadPattern) VarianceTime(i int) float64 {
	return rp.tau[i]
}

// FrameTime returns the duration of one raw frame in seconds.
func (rp *ReadPattern) FrameTime() float64 {
	return rp.frameTime
}

// Group returns a copy of the frame indices averaged into resultant i.
func (rp *ReadPattern) Group(i int) []int {
	return append([]int(nil), rp.groups[i]...)
}
