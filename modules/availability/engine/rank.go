package engine

import "sort"

// RankSlots orders slots by availability descending. The sort is stable:
// slots with equal availability keep their chronological order, so ranking
// an already-ranked sequence is a no-op. The input slice is not modified.
func RankSlots(slots []Slot) []Slot {
	ranked := make([]Slot, len(slots))
	copy(ranked, slots)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Availability > ranked[j].Availability
	})
	return ranked
}
