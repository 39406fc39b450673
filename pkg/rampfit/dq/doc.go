// Package dq provides the quality-flag bit masks shared between the ramp
// fitter and its upstream producers. The bit values are fixed by the
// calibration reference data and must not change.
package dq
