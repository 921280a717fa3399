package ffmpeg

import (
	"fmt"
	"strings"
)

// FilterBuilder helps construct ffmpeg filter chains
type FilterBuilder struct {
	filters []string
}

// NewFilterBuilder creates a new filter builder
func NewFilterBuilder() *FilterBuilder {
	return &FilterBuilder{
		filters: make([]string, 0),
	}
}

// FadeIn adds a video fade-in of d seconds from the start
func (fb *FilterBuilder) FadeIn(d float64) *FilterBuilder {
	if d <= 0 {
		return fb
	}
	fb.filters = append(fb.filters, fmt.Sprintf("fade=t=in:st=0:d=%.3f", d))
	return fb
}

// FadeOut adds a video fade-out of d seconds starting at st
func (fb *FilterBuilder) FadeOut(st, d float64) *FilterBuilder {
	if d <= 0 {
		return fb
	}
	fb.filters = append(fb.filters, fmt.Sprintf("fade=t=out:st=%.3f:d=%.3f", st, d))
	return fb
}

// AudioFadeIn adds an audio fade-in of d seconds from the start
func (fb *FilterBuilder) AudioFadeIn(d float64) *FilterBuilder {
	if d <= 0 {
		return fb
	}
	fb.filters = append(fb.filters, fmt.Sprintf("afade=t=in:st=0:d=%.3f", d))
	return fb
}

// AudioFadeOut adds an audio fade-out of d seconds starting at st
func (fb *FilterBuilder) AudioFadeOut(st, d float64) *FilterBuilder {
	if d <= 0 {
		return fb
	}
	fb.filters = append(fb.filters, fmt.Sprintf("afade=t=out:st=%.3f:d=%.3f", st, d))
	return fb
}

// Custom adds a custom filter string
func (fb *FilterBuilder) Custom(filter string) *FilterBuilder {
	fb.filters = append(fb.filters, filter)
	return fb
}

// Build returns the complete filter string joined with commas
func (fb *FilterBuilder) Build() string {
	if len(fb.filters) == 0 {
		return ""
	}
	return strings.Join(fb.filters, ",")
}
