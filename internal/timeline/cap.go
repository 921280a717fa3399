package timeline

// minTailSeconds is the shortest trimmed tail worth keeping; a sub-second
// final segment reads as a glitch in the assembled reel.
const minTailSeconds = 1.0

// Cap trims an ordered segment list so its total duration does not exceed
// maxTotal seconds. Segments are taken greedily in order; the first
// segment that does not fit whole is shortened to the remaining budget
// (kept only if more than a second remains) and everything after it is
// dropped. Earlier source material wins by construction.
func Cap(segments []Segment, maxTotal float64) []Segment {
	var result []Segment
	total := 0.0
	for _, s := range segments {
		d := s.Duration()
		if total+d <= maxTotal {
			result = append(result, s)
			total += d
			continue
		}
		remaining := maxTotal - total
		if remaining > minTailSeconds {
			result = append(result, Segment{
				Start: s.Start,
				End:   s.Start + remaining,
				Label: s.Label,
			})
		}
		break
	}
	return result
}
