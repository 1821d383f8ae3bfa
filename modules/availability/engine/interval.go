package engine

import (
	"time"

	"github.com/google/uuid"
)

// TimeInterval is an immutable half-open time range [Start, End)
type TimeInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints do not overlap. Every overlap check in the engine goes through
// this predicate so boundary handling stays consistent.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// IsValid reports whether Start is strictly before End
func (i TimeInterval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Duration returns the interval width
func (i TimeInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// BusyInterval is a time range during which a participant is unavailable.
// Calendar events and explicit unavailable-time blocks are both normalized
// to this shape before aggregation; unavailable blocks always carry
// IsBusy true, while a transparent calendar entry arrives with IsBusy
// false and never reduces availability.
type BusyInterval struct {
	ParticipantID uuid.UUID    `json:"participant_id"`
	Interval      TimeInterval `json:"interval"`
	IsBusy        bool         `json:"is_busy"`
}
