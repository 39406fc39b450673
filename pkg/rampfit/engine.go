package rampfit

import (
	"context"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-rampfit/pkg/rampfit/dq"
	"github.com/askiada/go-rampfit/pkg/rampfit/measure"
)

// Engine fits every pixel of an exposure against one shared read pattern.
type Engine struct {
	pattern    *ReadPattern
	concurrent int
	log        *zap.SugaredLogger
	measure    measure.Measure
}

// NewEngine creates an engine for the given read pattern.
func NewEngine(pattern *ReadPattern, opts ...EngineOption) (*Engine, error) {
	if pattern == nil {
		return nil, ErrPatternMustBeSet
	}
	e := &Engine{
		pattern:    pattern,
		concurrent: runtime.NumCPU(),
		log:        zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.concurrent < 1 {
		e.concurrent = 1
	}

	return e, nil
}

// FitInput bundles the whole-image arrays of one exposure. Resultants and
// read noise are in DN, gain in electrons per DN.
type FitInput struct {
	Resultants *Cube
	Flags      *FlagCube
	Gain       *Plane
	ReadNoise  *Plane
}

// FitOutput holds the assembled per-pixel results, matching the row/column
// shape of the input planes. Slope is in electrons per second.
type FitOutput struct {
	Slope    *Plane
	Variance *Plane
	DQ       *FlagPlane
}

// Fit runs the per-pixel fitter over the whole image. Rows are fitted
// concurrently; each worker owns a disjoint row of the output arrays, so no
// synchronisation is needed beyond the errgroup itself. On error or
// cancellation the partial output is discarded and only the error returned.
func (e *Engine) Fit(ctx context.Context, in FitInput) (*FitOutput, error) {
	if err := e.validate(in); err != nil {
		return nil, err
	}

	rows, cols := in.Resultants.Rows, in.Resultants.Cols
	out := &FitOutput{
		Slope:    NewPlane(rows, cols),
		Variance: NewPlane(rows, cols),
		DQ:       NewFlagPlane(rows, cols),
	}

	start := time.Now()
	var mt measure.Metric
	if e.measure != nil {
		mt = e.measure.AddMetric("fit", e.concurrent)
	}

	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(e.concurrent)
	for row := 0; row < rows; row++ {
		localRow := row
		errGrp.Go(func() error {
			return e.fitRow(dCtx, in, out, localRow, mt)
		})
	}
	if err := errGrp.Wait(); err != nil {
		return nil, err
	}

	if mt != nil {
		mt.SetTotalDuration(time.Since(start))
	}
	e.log.Debugw("ramp fit complete",
		"rows", rows,
		"cols", cols,
		"resultants", e.pattern.Len(),
		"elapsed", time.Since(start),
	)

	return out, nil
}

func (e *Engine) fitRow(ctx context.Context, in FitInput, out *FitOutput, row int, mt measure.Metric) error {
	select {
	case <-ctx.Done():
		return errors.Wrapf(ctx.Err(), "row %d", row)
	default:
	}

	start := time.Now()
	n := e.pattern.Len()
	ramp := make([]float64, n)
	flags := make([]dq.Flag, n)
	for col := 0; col < in.Resultants.Cols; col++ {
		in.Resultants.Ramp(row, col, ramp)
		in.Flags.Ramp(row, col, flags)
		noise := PixelNoiseModel{
			Gain:      in.Gain.At(row, col),
			ReadNoise: in.ReadNoise.At(row, col),
		}
		res, err := FitPixel(e.pattern, ramp, flags, noise)
		if err != nil {
			return errors.Wrapf(err, "row %d col %d", row, col)
		}
		out.Slope.Set(row, col, res.Slope)
		out.Variance.Set(row, col, res.Variance)
		out.DQ.Set(row, col, res.DQ)
		if mt != nil {
			mt.AddPixel(len(res.Segments))
		}
	}
	if mt != nil {
		mt.AddRowDuration(time.Since(start))
	}

	return nil
}

func (e *Engine) validate(in FitInput) error {
	if in.Resultants == nil || in.Flags == nil || in.Gain == nil || in.ReadNoise == nil {
		return ErrInputMustBeSet
	}
	if in.Resultants.Resultants != e.pattern.Len() {
		return errors.Wrapf(ErrShapeMismatch,
			"resultant cube has %d planes, read pattern has %d groups",
			in.Resultants.Resultants, e.pattern.Len())
	}
	if in.Flags.Resultants != in.Resultants.Resultants ||
		in.Flags.Rows != in.Resultants.Rows || in.Flags.Cols != in.Resultants.Cols {
		return errors.Wrapf(ErrShapeMismatch,
			"flag cube is %dx%dx%d, resultant cube is %dx%dx%d",
			in.Flags.Resultants, in.Flags.Rows, in.Flags.Cols,
			in.Resultants.Resultants, in.Resultants.Rows, in.Resultants.Cols)
	}
	if in.Gain.Rows != in.Resultants.Rows || in.Gain.Cols != in.Resultants.Cols {
		return errors.Wrapf(ErrShapeMismatch,
			"gain plane is %dx%d, resultant planes are %dx%d",
			in.Gain.Rows, in.Gain.Cols, in.Resultants.Rows, in.Resultants.Cols)
	}
	if in.ReadNoise.Rows != in.Resultants.Rows || in.ReadNoise.Cols != in.Resultants.Cols {
		return errors.Wrapf(ErrShapeMismatch,
			"read-noise plane is %dx%d, resultant planes are %dx%d",
			in.ReadNoise.Rows, in.ReadNoise.Cols, in.Resultants.Rows, in.Resultants.Cols)
	}

	return nil
}
