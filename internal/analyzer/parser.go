package analyzer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/keagan/reelforge/internal/timeline"
)

// noMomentsSentinel is the model's "no highlights here" reply
const noMomentsSentinel = "NONE"

var momentLine = regexp.MustCompile(`(?i)^MOMENT:\s*([\d.]+)\s+([\d.]+)\s+(.+)$`)

// ParseMoments extracts window-local moments from an analyzer response.
// The parsing is deliberately forgiving: the text comes from a
// best-effort remote model, so unmatched lines and invalid time pairs
// are skipped silently, and a response carrying the NONE sentinel
// anywhere yields no moments at all.
func ParseMoments(text string) []timeline.Moment {
	if text == "" || strings.Contains(strings.ToUpper(text), noMomentsSentinel) {
		return nil
	}

	var moments []timeline.Moment
	for _, line := range strings.Split(text, "\n") {
		m := momentLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		start, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		end, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		if end <= start || start < 0 {
			continue
		}
		moments = append(moments, timeline.Moment{
			LocalStart: start,
			LocalEnd:   end,
			Label:      strings.TrimSpace(m[3]),
		})
	}
	return moments
}
