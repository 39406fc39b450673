package rampfit

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-rampfit/pkg/rampfit/dq"
)

// Plane is a dense row-major 2-D array matching one detector readout.
type Plane struct {
	Rows, Cols int
	Data       []float64
}

// NewPlane creates a zero-filled plane.
func NewPlane(rows, cols int) *Plane {
	return &Plane{
		Rows: rows,
		Cols: cols,
		Data: make([]float64, rows*cols),
	}
}

// At returns the value at (row, col).
func (p *Plane) At(row, col int) float64 {
	return p.Data[row*p.Cols+col]
}

// Set stores v at (row, col).
func (p *Plane) Set(row, col int, v float64) {
	p.Data[row*p.Cols+col] = v
}

// Fill sets every element to v and returns the plane.
func (p *Plane) Fill(v float64) *Plane {
	for i := range p.Data {
		p.Data[i] = v
	}

	return p
}

// FlagPlane is a dense row-major 2-D array of quality flags.
type FlagPlane struct {
	Rows, Cols int
	Data       []dq.Flag
}

// NewFlagPlane creates a flag plane with every flag cleared.
func NewFlagPlane(rows, cols int) *FlagPlane {
	return &FlagPlane{
		Rows: rows,
		Cols: cols,
		Data: make([]dq.Flag, rows*cols),
	}
}

// At returns the flag at (row, col).
func (p *FlagPlane) At(row, col int) dq.Flag {
	return p.Data[row*p.Cols+col]
}

// Set stores f at (row, col).
func (p *FlagPlane) Set(row, col int, f dq.Flag) {
	p.Data[row*p.Cols+col] = f
}

// Cube stacks one plane per resultant, resultant index first.
type Cube struct {
	Resultants, Rows, Cols int
	Data                   []float64
}

// NewCube creates a zero-filled cube.
func NewCube(resultants, rows, cols int) *Cube {
	return &Cube{
		Resultants: resultants,
		Rows:       rows,
		Cols:       cols,
		Data:       make([]float64, resultants*rows*cols),
	}
}

// CubeFromPlanes builds a cube from per-resultant 2-D slices. All planes must
// share the same shape.
func CubeFromPlanes(planes [][][]float64) (*Cube, error) {
	if len(planes) == 0 || len(planes[0]) == 0 {
		return nil, errors.Wrap(ErrShapeMismatch, "cube needs at least one non-empty plane")
	}
	rows := len(planes[0])
	cols := len(planes[0][0])
	cube := NewCube(len(planes), rows, cols)
	for k, plane := range planes {
		if len(plane) != rows {
			return nil, errors.Wrapf(ErrShapeMismatch, "plane %d has %d rows, want %d", k, len(plane), rows)
		}
		for r, rowData := range plane {
			if len(rowData) != cols {
				return nil, errors.Wrapf(ErrShapeMismatch, "plane %d row %d has %d cols, want %d", k, r, len(rowData), cols)
			}
			copy(cube.Data[(k*rows+r)*cols:], rowData)
		}
	}

	return cube, nil
}

// At returns the value of resultant res at (row, col).
func (c *Cube) At(res, row, col int) float64 {
	return c.Data[(res*c.Rows+row)*c.Cols+col]
}

// Set stores v for resultant res at (row, col).
func (c *Cube) Set(res, row, col int, v float64) {
	c.Data[(res*c.Rows+row)*c.Cols+col] = v
}

// Ramp copies the resultant sequence of one pixel into dst, which must have
// length Resultants.
func (c *Cube) Ramp(row, col int, dst []float64) {
	for res := 0; res < c.Resultants; res++ {
		dst[res] = c.Data[(res*c.Rows+row)*c.Cols+col]
	}
}

// FlagCube stacks one flag plane per resultant.
type FlagCube struct {
	Resultants, Rows, Cols int
	Data                   []dq.Flag
}

// NewFlagCube creates a flag cube with every flag cleared.
func NewFlagCube(resultants, rows, cols int) *FlagCube {
	return &FlagCube{
		Resultants: resultants,
		Rows:       rows,
		Cols:       cols,
		Data:       make([]dq.Flag, resultants*rows*cols),
	}
}

// At returns the flag of resultant res at (row, col).
func (c *FlagCube) At(res, row, col int) dq.Flag {
	return c.Data[(res*c.Rows+row)*c.Cols+col]
}

// Set stores f for resultant res at (row, col).
func (c *FlagCube) Set(res, row, col int, f dq.Flag) {
	c.Data[(res*c.Rows+row)*c.Cols+col] = f
}

// Ramp copies the flag sequence of one pixel into dst, which must have length
// Resultants.
func (c *FlagCube) Ramp(row, col int, dst []dq.Flag) {
	for res := 0; res < c.Resultants; res++ {
		dst[res] = c.Data[(res*c.Rows+row)*c.Cols+col]
	}
}
