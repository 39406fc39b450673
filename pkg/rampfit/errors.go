package rampfit

import (
	"github.com/pkg/errors"
)

var (
	ErrPatternMustBeSet    = errors.New("read pattern must be set")
	ErrInputMustBeSet      = errors.New("input arrays must be set")
	ErrShapeMismatch       = errors.New("array shapes are incompatible")
	ErrRampLength          = errors.New("ramp length must match the read pattern")
	ErrEmptyReadPattern    = errors.New("read pattern must contain at least one resultant group")
	ErrEmptyResultantGroup = errors.New("resultant group must contain at least one frame")
	ErrFrameOrder          = errors.New("frame indices must be positive and strictly increasing")
	ErrFrameTime           = errors.New("frame time must be greater than 0")
)
