package timeline

import "testing"

func TestCapTrimsBoundarySegment(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 10, Label: "a"},
		{Start: 10, End: 200, Label: "b"},
	}

	capped := Cap(segments, 15)
	if len(capped) != 2 {
		t.Fatalf("expected 2 segments, got %+v", capped)
	}
	if capped[1].Start != 10 || capped[1].End != 15 {
		t.Errorf("expected trimmed (10,15), got (%v,%v)", capped[1].Start, capped[1].End)
	}
	if total := TotalDuration(capped); total != 15 {
		t.Errorf("expected total exactly 15, got %v", total)
	}
}

func TestCapAllFit(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 10},
		{Start: 20, End: 30},
	}

	capped := Cap(segments, 100)
	if len(capped) != 2 || TotalDuration(capped) != 20 {
		t.Errorf("segments under budget must pass through unchanged: %+v", capped)
	}
}

func TestCapDropsSubSecondTail(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 10},
		{Start: 20, End: 30},
	}

	// 0.5s of budget left for the second segment: not worth keeping
	capped := Cap(segments, 10.5)
	if len(capped) != 1 {
		t.Fatalf("expected the sub-second tail to be dropped, got %+v", capped)
	}
	if capped[0].End != 10 {
		t.Errorf("first segment must be untouched: %+v", capped[0])
	}
}

func TestCapIsGreedyPrefix(t *testing.T) {
	// The third segment would fit in the leftover budget, but selection
	// stops at the first exclusion
	segments := []Segment{
		{Start: 0, End: 10},
		{Start: 20, End: 120},
		{Start: 200, End: 200.9},
	}

	capped := Cap(segments, 11)
	if len(capped) != 1 {
		t.Fatalf("expected only the first segment, got %+v", capped)
	}
}

func TestCapEmpty(t *testing.T) {
	if got := Cap(nil, 100); got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}
