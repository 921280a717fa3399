package timeline

// Window is one tile of the source timeline. Its own clock starts at zero:
// a moment reported at local time t inside this window sits at
// SourceStart+t in the source video.
type Window struct {
	SourceStart float64 // absolute seconds in source video
	SourceEnd   float64
	Index       int
}

// LocalDuration returns the length of the window's own timeline
func (w Window) LocalDuration() float64 {
	return w.SourceEnd - w.SourceStart
}

// Moment is a single analyzer-reported highlight in window-local time
type Moment struct {
	LocalStart float64
	LocalEnd   float64
	Label      string
}

// Segment is a highlight interval in absolute source-video time
type Segment struct {
	Start float64
	End   float64
	Label string
}

// Duration returns the segment length in seconds
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// TotalDuration sums the durations of all segments
func TotalDuration(segments []Segment) float64 {
	total := 0.0
	for _, s := range segments {
		total += s.Duration()
	}
	return total
}
