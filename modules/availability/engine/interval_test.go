package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func interval(startHour, startMin, endHour, endMin int) TimeInterval {
	return TimeInterval{Start: at(startHour, startMin), End: at(endHour, endMin)}
}

func TestTimeIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a        TimeInterval
		b        TimeInterval
		expected bool
	}{
		{
			name:     "partial overlap",
			a:        interval(9, 0, 10, 0),
			b:        interval(9, 30, 10, 30),
			expected: true,
		},
		{
			name:     "contained interval",
			a:        interval(9, 0, 12, 0),
			b:        interval(10, 0, 11, 0),
			expected: true,
		},
		{
			name:     "identical intervals",
			a:        interval(9, 0, 10, 0),
			b:        interval(9, 0, 10, 0),
			expected: true,
		},
		{
			name:     "touching endpoints do not overlap",
			a:        interval(9, 0, 9, 30),
			b:        interval(9, 30, 10, 0),
			expected: false,
		},
		{
			name:     "disjoint intervals",
			a:        interval(9, 0, 9, 30),
			b:        interval(11, 0, 11, 30),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Overlaps(tt.b))
			// the predicate is symmetric
			assert.Equal(t, tt.expected, tt.b.Overlaps(tt.a))
		})
	}
}

func TestTimeIntervalIsValid(t *testing.T) {
	assert.True(t, interval(9, 0, 10, 0).IsValid())
	assert.False(t, interval(10, 0, 9, 0).IsValid())
	assert.False(t, interval(9, 0, 9, 0).IsValid())
}
