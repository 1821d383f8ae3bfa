package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlots(t *testing.T) {
	slots, err := GenerateSlots(interval(9, 0, 11, 0), 30*time.Minute)
	require.NoError(t, err)
	require.Len(t, slots, 4)

	// contiguous, non-overlapping, fixed width, never past the window end
	for i, slot := range slots {
		assert.Equal(t, 30*time.Minute, slot.Duration())
		assert.False(t, slot.End.After(at(11, 0)))
		if i > 0 {
			assert.Equal(t, slots[i-1].End, slot.Start)
		}
	}
	assert.Equal(t, at(9, 0), slots[0].Start)
	assert.Equal(t, at(11, 0), slots[3].End)
}

func TestGenerateSlotsDropsTrailingPartial(t *testing.T) {
	// 09:00-09:50 at 30 minute granularity: only [09:00, 09:30) fits;
	// the trailing 20 minutes are dropped, not padded
	slots, err := GenerateSlots(interval(9, 0, 9, 50), 30*time.Minute)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, interval(9, 0, 9, 30), slots[0])
}

func TestGenerateSlotsWindowSmallerThanGranularity(t *testing.T) {
	slots, err := GenerateSlots(interval(9, 0, 9, 20), 30*time.Minute)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlotsExactFit(t *testing.T) {
	slots, err := GenerateSlots(interval(9, 0, 9, 30), 30*time.Minute)
	require.NoError(t, err)
	require.Len(t, slots, 1)
}

func TestGenerateSlotsInvalidWindow(t *testing.T) {
	_, err := GenerateSlots(interval(10, 0, 9, 0), 30*time.Minute)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = GenerateSlots(interval(9, 0, 9, 0), 30*time.Minute)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestGenerateSlotsInvalidGranularity(t *testing.T) {
	_, err := GenerateSlots(interval(9, 0, 10, 0), 0)
	assert.ErrorIs(t, err, ErrInvalidGranularity)

	_, err = GenerateSlots(interval(9, 0, 10, 0), -15*time.Minute)
	assert.ErrorIs(t, err, ErrInvalidGranularity)
}

func TestGenerateSlotsCustomGranularity(t *testing.T) {
	slots, err := GenerateSlots(interval(9, 0, 10, 0), 15*time.Minute)
	require.NoError(t, err)
	require.Len(t, slots, 4)
	for _, slot := range slots {
		assert.Equal(t, 15*time.Minute, slot.Duration())
	}
}
