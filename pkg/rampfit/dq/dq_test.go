package dq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/askiada/go-rampfit/pkg/rampfit/dq"
)

// The bit values are part of the calibration interface and pinned.
func TestFlagValues(t *testing.T) {
	assert.Equal(t, dq.Flag(1), dq.DoNotUse)
	assert.Equal(t, dq.Flag(2), dq.Saturated)
	assert.Equal(t, dq.Flag(4), dq.JumpDetected)
}

func TestUsable(t *testing.T) {
	assert.True(t, dq.Flag(0).Usable())
	assert.True(t, dq.Flag(8).Usable(), "unknown bits do not exclude")
	assert.False(t, dq.DoNotUse.Usable())
	assert.False(t, dq.Saturated.Usable())
	assert.False(t, dq.JumpDetected.Usable())
	assert.False(t, (dq.Saturated | dq.Flag(8)).Usable())
}

func TestHas(t *testing.T) {
	f := dq.DoNotUse | dq.JumpDetected
	assert.True(t, f.Has(dq.DoNotUse))
	assert.True(t, f.Has(dq.JumpDetected))
	assert.True(t, f.Has(dq.DoNotUse|dq.JumpDetected))
	assert.False(t, f.Has(dq.Saturated))
	assert.False(t, f.Has(dq.DoNotUse|dq.Saturated))
}
