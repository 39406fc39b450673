package measure

import "time"

// Measure collects one Metric per named engine run.
type Measure interface {
	AddMetric(name string, concurrent int) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric accumulates per-pixel fit outcomes for one run.
type Metric interface {
	AddPixel(segments int)
	AddRowDuration(elapsed time.Duration)
	SetTotalDuration(endDuration time.Duration)
	GetTotalDuration() time.Duration
	Pixels() int64
	PixelsUnusable() int64
	SegmentsFit() int64
	AVGRowDuration() time.Duration
}
