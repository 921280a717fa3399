package timeline

import "sort"

// Merge consolidates segments that overlap or sit within gapTolerance
// seconds of each other into single wider segments. Overlapping windows
// routinely report the same highlight twice; this is where those
// duplicates collapse into one. The result is sorted by start time,
// pairwise non-overlapping, and separated by more than gapTolerance.
// A merged run keeps the label of its earliest segment.
func Merge(segments []Segment, gapTolerance float64) []Segment {
	if len(segments) == 0 {
		return nil
	}

	sorted := make([]Segment, len(segments))
	copy(sorted, segments)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	merged := make([]Segment, 0, len(sorted))
	cur := sorted[0]
	for _, s := range sorted[1:] {
		if s.Start <= cur.End+gapTolerance {
			if s.End > cur.End {
				cur.End = s.End
			}
			continue
		}
		merged = append(merged, cur)
		cur = s
	}
	return append(merged, cur)
}
