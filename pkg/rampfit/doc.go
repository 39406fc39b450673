// Package rampfit estimates per-pixel count rates from non-destructive
// detector readouts.
//
// A near-infrared detector accumulates charge while it is read out
// repeatedly; the on-board electronics average groups of raw frames into
// resultants according to a read pattern, which may group unevenly in both
// size and spacing. The slope of the resultant sequence over time is the
// photon count rate of the pixel. This package fits that slope with the
// weighted ordinary-least-squares estimator of Casertano et al. (2022),
// which trades read noise against shot noise per resultant and copes with
// uneven read patterns.
//
// Resultants flagged DO_NOT_USE or SATURATED, and resultants hit by cosmic
// rays (JUMP_DET), are excluded: the ramp is split into flag-clean segments,
// each segment is fitted on its own, and the segment slopes are combined by
// inverse-variance weighting. A pixel with no usable segment is reported
// with a DO_NOT_USE flag rather than failing the image.
//
// Engine applies the fit to every pixel of an exposure. Pixels are
// independent, so rows are processed concurrently with bounded parallelism;
// each worker writes to a disjoint part of the output arrays. The fit is
// pure computation: it performs no I/O and the same inputs always produce
// the same outputs.
package rampfit
