package engine

import "github.com/google/uuid"

// Slot is a fixed-width candidate meeting interval annotated with how many
// (and which) participants are free during it.
type Slot struct {
	Interval         TimeInterval `json:"interval"`
	FreeCount        int          `json:"free_count"`
	TotalCount       int          `json:"total_count"`
	FreeParticipants []uuid.UUID  `json:"free_participants,omitempty"`
	Availability     float64      `json:"availability"`
	IsOptimal        bool         `json:"is_optimal"`
}

// overlappingOwners returns the set of participants that have at least one
// disqualifying interval overlapping the slot. Only IsBusy intervals
// disqualify; transparent entries are skipped entirely.
func overlappingOwners(slot TimeInterval, busy []BusyInterval) map[uuid.UUID]struct{} {
	owners := make(map[uuid.UUID]struct{})
	for _, b := range busy {
		if !b.IsBusy {
			continue
		}
		if slot.Overlaps(b.Interval) {
			owners[b.ParticipantID] = struct{}{}
		}
	}
	return owners
}

// aggregateForParticipants computes one Slot per candidate interval for an
// explicit participant set. A participant with no recorded intervals at
// all is free in every slot. FreeParticipants preserves the (deduplicated)
// input order.
func aggregateForParticipants(candidates []TimeInterval, participants []uuid.UUID, busy []BusyInterval) []Slot {
	total := len(participants)
	slots := make([]Slot, 0, len(candidates))

	for _, candidate := range candidates {
		busyOwners := overlappingOwners(candidate, busy)

		free := make([]uuid.UUID, 0, total)
		for _, p := range participants {
			if _, unavailable := busyOwners[p]; !unavailable {
				free = append(free, p)
			}
		}

		slots = append(slots, Slot{
			Interval:         candidate,
			FreeCount:        len(free),
			TotalCount:       total,
			FreeParticipants: free,
			Availability:     float64(len(free)) / float64(total),
			IsOptimal:        len(free) == total,
		})
	}
	return slots
}

// aggregateByCount computes one Slot per candidate interval when only the
// participant headcount is known; free participants are whoever does not
// own an overlapping busy interval, so their identities are not reported.
func aggregateByCount(candidates []TimeInterval, participantCount int, busy []BusyInterval) []Slot {
	slots := make([]Slot, 0, len(candidates))

	for _, candidate := range candidates {
		busyOwners := overlappingOwners(candidate, busy)

		busyCount := len(busyOwners)
		if busyCount > participantCount {
			busyCount = participantCount
		}
		freeCount := participantCount - busyCount

		slots = append(slots, Slot{
			Interval:     candidate,
			FreeCount:    freeCount,
			TotalCount:   participantCount,
			Availability: float64(freeCount) / float64(participantCount),
			IsOptimal:    freeCount == participantCount,
		})
	}
	return slots
}

// dedupeParticipants drops duplicate identifiers, keeping first occurrence
func dedupeParticipants(participants []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(participants))
	result := make([]uuid.UUID, 0, len(participants))
	for _, p := range participants {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		result = append(result, p)
	}
	return result
}
