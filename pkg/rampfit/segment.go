package rampfit

import "github.com/askiada/go-rampfit/pkg/rampfit/dq"

// minSegmentLen is the smallest run of resultants that can constrain a slope.
const minSegmentLen = 2

// segment is a half-open [start, end) run of usable resultants.
type segment struct {
	start, end int
}

// splitSegments scans the per-resultant flags and returns the maximal runs of
// usable resultants. A DO_NOT_USE or SATURATED resultant is excluded and
// breaks contiguity; a JUMP_DET resultant is excluded and splits the ramp at
// the hit, keeping the runs on either side. Runs shorter than minSegmentLen
// are dropped.
func splitSegments(flags []dq.Flag) []segment {
	var segs []segment
	start := -1
	for i, f := range flags {
		if f.Usable() {
			if start < 0 {
				start = i
			}

			continue
		}
		if start >= 0 && i-start >= minSegmentLen {
			segs = append(segs, segment{start: start, end: i})
		}
		start = -1
	}
	if start >= 0 && len(flags)-start >= minSegmentLen {
		segs = append(segs, segment{start: start, end: len(flags)})
	}

	return segs
}
