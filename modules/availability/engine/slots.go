package engine

import "time"

// DefaultGranularity is the slot width used when the caller does not
// override it.
const DefaultGranularity = 30 * time.Minute

// GenerateSlots partitions the window [Start, End) into contiguous,
// non-overlapping candidate intervals of exactly the given width. A
// trailing slot whose end would exceed the window is dropped, never
// shortened.
func GenerateSlots(window TimeInterval, granularity time.Duration) ([]TimeInterval, error) {
	if !window.IsValid() {
		return nil, ErrInvalidWindow
	}
	if granularity <= 0 {
		return nil, ErrInvalidGranularity
	}

	var slots []TimeInterval
	for current := window.Start; !current.Add(granularity).After(window.End); current = current.Add(granularity) {
		slots = append(slots, TimeInterval{
			Start: current,
			End:   current.Add(granularity),
		})
	}
	return slots, nil
}
