package dq

// Flag is a per-resultant (or per-pixel, once aggregated) quality bit mask.
type Flag uint32

const (
	// DoNotUse marks a resultant that must be excluded from any fit.
	DoNotUse Flag = 1
	// Saturated marks a resultant read above the saturation threshold.
	Saturated Flag = 2
	// JumpDetected marks a resultant affected by a cosmic-ray hit.
	JumpDetected Flag = 4
)

// excluding covers the bits that remove a resultant from a fit. Other bits
// are opaque to the fitter and only carried through by OR.
const excluding = DoNotUse | Saturated | JumpDetected

// Usable reports whether a resultant carrying f may contribute to a slope.
func (f Flag) Usable() bool {
	return f&excluding == 0
}

// Has reports whether all bits of mask are set in f.
func (f Flag) Has(mask Flag) bool {
	return f&mask == mask
}
