package timeline

// Normalize maps window-local moments into absolute source-video segments.
// Local times are clamped to the window's own bounds first: the analyzer
// sees only the extracted clip, so anything it reports outside [0, clip
// duration] is a hallucinated timestamp and must not leak past the
// window's legitimate range in the source. Moments that are empty after
// clamping are dropped.
func Normalize(w Window, moments []Moment) []Segment {
	var segments []Segment
	local := w.LocalDuration()
	for _, m := range moments {
		start := clamp(m.LocalStart, 0, local)
		end := clamp(m.LocalEnd, 0, local)
		if end <= start {
			continue
		}
		segments = append(segments, Segment{
			Start: w.SourceStart + start,
			End:   w.SourceStart + end,
			Label: m.Label,
		})
	}
	return segments
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
