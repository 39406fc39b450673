package measure

import (
	"sync"
	"time"
)

type DefaultMetric struct {
	mu             *sync.Mutex
	EndDuration    time.Duration
	rowElapsed     time.Duration
	rows           int64
	pixels         int64
	pixelsUnusable int64
	segmentsFit    int64
	concurrent     int
}

func (mt *DefaultMetric) AddPixel(segments int) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.pixels++
	if segments == 0 {
		mt.pixelsUnusable++

		return
	}
	mt.segmentsFit += int64(segments)
}

func (mt *DefaultMetric) AddRowDuration(elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.rows++
	mt.rowElapsed += elapsed
}

func (mt *DefaultMetric) SetTotalDuration(endDuration time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.EndDuration = endDuration
}

func (mt *DefaultMetric) GetTotalDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.EndDuration
}

func (mt *DefaultMetric) Pixels() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.pixels
}

func (mt *DefaultMetric) PixelsUnusable() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.pixelsUnusable
}

func (mt *DefaultMetric) SegmentsFit() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.segmentsFit
}

func (mt *DefaultMetric) AVGRowDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if mt.rows == 0 {
		return time.Duration(0)
	}

	return round(time.Duration(float64(mt.rowElapsed) / float64(mt.rows)))
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Second:
		d = d.Round(time.Second)
	case d > time.Millisecond:
		d = d.Round(time.Millisecond)
	case d > time.Microsecond:
		d = d.Round(time.Microsecond)
	}

	return d
}

var _ Metric = (*DefaultMetric)(nil)
