package rampfit

import (
	"go.uber.org/zap"

	"github.com/askiada/go-rampfit/pkg/rampfit/measure"
)

type EngineOption func(e *Engine)

// EngineConcurrency bounds the number of rows fitted in parallel. Defaults to
// the number of CPUs.
func EngineConcurrency(concurrent int) EngineOption {
	return func(e *Engine) {
		e.concurrent = concurrent
	}
}

// EngineLogger attaches a logger for run summaries. Defaults to a no-op.
func EngineLogger(log *zap.SugaredLogger) EngineOption {
	return func(e *Engine) {
		e.log = log
	}
}

// EngineMeasure collects per-run fit statistics.
func EngineMeasure(m measure.Measure) EngineOption {
	return func(e *Engine) {
		e.measure = m
	}
}
