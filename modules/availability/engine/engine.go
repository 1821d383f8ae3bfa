// Package engine computes ranked group availability from calendar busy
// intervals. It is pure and deterministic: every call operates on caller
// supplied snapshots, performs no I/O, reads no clocks, and is safe for
// concurrent use.
package engine

import (
	"time"

	"github.com/google/uuid"
)

// ComputeGroupAvailability returns one Slot per candidate interval in
// chronological order for an arbitrary participant set. Duplicate
// participant identifiers count once. A granularity of zero selects
// DefaultGranularity; a negative granularity is rejected.
func ComputeGroupAvailability(participantIDs []uuid.UUID, window TimeInterval, granularity time.Duration, busy []BusyInterval) ([]Slot, error) {
	participants := dedupeParticipants(participantIDs)
	if len(participants) == 0 {
		return nil, ErrEmptyParticipantSet
	}

	if granularity == 0 {
		granularity = DefaultGranularity
	}
	candidates, err := GenerateSlots(window, granularity)
	if err != nil {
		return nil, err
	}

	return aggregateForParticipants(candidates, participants, busy), nil
}

// ComputeMeetingAvailability returns slots ranked by availability
// descending (chronological among ties) for a stored meeting's window,
// where only the participant headcount is known. The busy intervals carry
// the identities needed to count distinct unavailable participants per
// slot.
func ComputeMeetingAvailability(window TimeInterval, busy []BusyInterval, participantCount int) ([]Slot, error) {
	if participantCount <= 0 {
		return nil, ErrEmptyParticipantSet
	}

	candidates, err := GenerateSlots(window, DefaultGranularity)
	if err != nil {
		return nil, err
	}

	slots := aggregateByCount(candidates, participantCount, busy)
	return RankSlots(slots), nil
}
