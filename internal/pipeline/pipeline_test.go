package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/keagan/reelforge/internal/analyzer"
	"github.com/keagan/reelforge/internal/ffmpeg"
)

// fakeMedia stands in for the ffmpeg executor. Extraction and assembly
// record their calls; nothing touches real media files.
type fakeMedia struct {
	mu         sync.Mutex
	duration   float64
	probeErr   error
	extractErr map[int]error // keyed by window index parsed from the chunk name
	extracted  []string
	assembled  *ffmpeg.AssembleOptions
}

func (f *fakeMedia) ProbeVideo(ctx context.Context, filePath string) (*ffmpeg.VideoInfo, error) {
	if f.probeErr != nil {
		return nil, f.probeErr
	}
	return &ffmpeg.VideoInfo{
		FilePath: filePath,
		Duration: time.Duration(f.duration * float64(time.Second)),
	}, nil
}

func (f *fakeMedia) ExtractRange(ctx context.Context, input string, opts ffmpeg.ExtractOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.extractErr[chunkIndex(opts.Output)]; err != nil {
		return err
	}
	f.extracted = append(f.extracted, opts.Output)
	return nil
}

func (f *fakeMedia) AssembleReel(ctx context.Context, opts ffmpeg.AssembleOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assembled = &opts
	return nil
}

// fakeAnalyzer answers from a response function keyed by window index
type fakeAnalyzer struct {
	respond func(index int) (string, error)
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, mediaPath string) (string, error) {
	return f.respond(chunkIndex(mediaPath))
}

// chunkIndex recovers the window index from a chunk_%04d_... filename
func chunkIndex(path string) int {
	base := filepath.Base(path)
	var idx int
	fmt.Sscanf(base, "chunk_%d_", &idx)
	return idx
}

func testOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		OutputDir:       t.TempDir(),
		OutputName:      "highlights",
		WindowSeconds:   90,
		OverlapSeconds:  8,
		MaxTotalSeconds: 240,
		GapTolerance:    2.0,
		Crossfade:       0.5,
		Workers:         4,
	}
}

func testSource(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.mp4")
	if err := os.WriteFile(path, []byte("not really a video"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunEndToEnd(t *testing.T) {
	media := &fakeMedia{duration: 3600}
	an := &fakeAnalyzer{respond: func(index int) (string, error) {
		// Every window reports one moment spanning the whole clip
		return "MOMENT: 0 90 full window", nil
	}}

	pipe := New(zerolog.Nop(), media, an, testOptions(t))
	result, err := pipe.Run(context.Background(), testSource(t))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// 3600s at 90s windows with 8s overlap: overlapping whole-window
	// moments merge into one run covering the source, then capped
	if len(result.Segments) != 1 {
		t.Fatalf("expected a single merged segment, got %+v", result.Segments)
	}
	if result.Segments[0].Start != 0 || result.Segments[0].End != 240 {
		t.Errorf("expected capped (0,240), got (%v,%v)", result.Segments[0].Start, result.Segments[0].End)
	}
	if result.OutputDuration != 240 {
		t.Errorf("expected output duration 240, got %v", result.OutputDuration)
	}
	if result.SourceDuration != 3600 {
		t.Errorf("expected source duration 3600, got %v", result.SourceDuration)
	}
	if result.DegradedWindows != 0 {
		t.Errorf("expected no degraded windows, got %d", result.DegradedWindows)
	}
	if len(media.extracted) != result.WindowCount {
		t.Errorf("expected %d extractions, got %d", result.WindowCount, len(media.extracted))
	}

	if media.assembled == nil {
		t.Fatal("assembler was never called")
	}
	if len(media.assembled.Ranges) != 1 || media.assembled.Ranges[0] != (ffmpeg.Range{Start: 0, End: 240}) {
		t.Errorf("unexpected assembled ranges: %+v", media.assembled.Ranges)
	}
	if media.assembled.Output != result.OutputPath {
		t.Errorf("assembler output %q does not match result %q", media.assembled.Output, result.OutputPath)
	}
	if !strings.HasSuffix(result.OutputPath, "highlights.mp4") {
		t.Errorf("unexpected output path %q", result.OutputPath)
	}
}

func TestRunOrderIndependentOfCompletion(t *testing.T) {
	media := &fakeMedia{duration: 500}
	an := &fakeAnalyzer{respond: func(index int) (string, error) {
		// Later windows answer faster; results must still come out in
		// window order
		time.Sleep(time.Duration(50-index*10) * time.Millisecond)
		return fmt.Sprintf("MOMENT: 1 5 window %d moment", index), nil
	}}

	opts := testOptions(t)
	opts.GapTolerance = 0.5 // keep per-window segments separate
	pipe := New(zerolog.Nop(), media, an, opts)

	result, err := pipe.Run(context.Background(), testSource(t))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for i := 1; i < len(result.Segments); i++ {
		if result.Segments[i].Start <= result.Segments[i-1].Start {
			t.Fatalf("segments out of order: %+v", result.Segments)
		}
	}
	for i, seg := range result.Segments {
		want := fmt.Sprintf("window %d moment", i)
		if seg.Label != want {
			t.Errorf("segment %d: expected label %q, got %q", i, want, seg.Label)
		}
	}
}

func TestRunDegradesOnWindowFailure(t *testing.T) {
	media := &fakeMedia{duration: 300}
	an := &fakeAnalyzer{respond: func(index int) (string, error) {
		if index == 1 {
			return "", analyzer.ErrAnalyzerTimeout
		}
		return "MOMENT: 0 10 fine", nil
	}}

	pipe := New(zerolog.Nop(), media, an, testOptions(t))
	result, err := pipe.Run(context.Background(), testSource(t))
	if err != nil {
		t.Fatalf("expected degraded run to succeed, got %v", err)
	}
	if result.DegradedWindows != 1 {
		t.Errorf("expected 1 degraded window, got %d", result.DegradedWindows)
	}
	if len(result.Segments) == 0 {
		t.Error("remaining windows should still contribute segments")
	}
}

func TestRunStrictWindowsAborts(t *testing.T) {
	media := &fakeMedia{duration: 300}
	an := &fakeAnalyzer{respond: func(index int) (string, error) {
		if index == 1 {
			return "", analyzer.ErrAnalyzer
		}
		return "MOMENT: 0 10 fine", nil
	}}

	opts := testOptions(t)
	opts.StrictWindows = true
	pipe := New(zerolog.Nop(), media, an, opts)

	_, err := pipe.Run(context.Background(), testSource(t))
	if !errors.Is(err, analyzer.ErrAnalyzer) {
		t.Fatalf("expected the window error to surface, got %v", err)
	}
}

func TestRunExtractionFailureDegrades(t *testing.T) {
	media := &fakeMedia{
		duration:   300,
		extractErr: map[int]error{0: ffmpeg.ErrExtraction},
	}
	an := &fakeAnalyzer{respond: func(index int) (string, error) {
		return "MOMENT: 0 10 fine", nil
	}}

	pipe := New(zerolog.Nop(), media, an, testOptions(t))
	result, err := pipe.Run(context.Background(), testSource(t))
	if err != nil {
		t.Fatalf("expected degraded run to succeed, got %v", err)
	}
	if result.DegradedWindows != 1 {
		t.Errorf("expected 1 degraded window, got %d", result.DegradedWindows)
	}
}

func TestRunNoHighlights(t *testing.T) {
	media := &fakeMedia{duration: 300}
	an := &fakeAnalyzer{respond: func(index int) (string, error) {
		return "NONE", nil
	}}

	pipe := New(zerolog.Nop(), media, an, testOptions(t))
	_, err := pipe.Run(context.Background(), testSource(t))
	if !errors.Is(err, ErrNoHighlights) {
		t.Fatalf("expected ErrNoHighlights, got %v", err)
	}
	if media.assembled != nil {
		t.Error("assembler must not run without segments")
	}
}

func TestRunMissingSource(t *testing.T) {
	pipe := New(zerolog.Nop(), &fakeMedia{duration: 300}, &fakeAnalyzer{}, testOptions(t))
	_, err := pipe.Run(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"))
	if !errors.Is(err, ErrMissingSource) {
		t.Fatalf("expected ErrMissingSource, got %v", err)
	}
}

func TestRunProbeFailureIsFatal(t *testing.T) {
	media := &fakeMedia{probeErr: ffmpeg.ErrProbe}
	pipe := New(zerolog.Nop(), media, &fakeAnalyzer{}, testOptions(t))
	_, err := pipe.Run(context.Background(), testSource(t))
	if !errors.Is(err, ffmpeg.ErrProbe) {
		t.Fatalf("expected probe error, got %v", err)
	}
}

func TestRunInvalidWindowing(t *testing.T) {
	opts := testOptions(t)
	opts.OverlapSeconds = opts.WindowSeconds // step would never advance
	pipe := New(zerolog.Nop(), &fakeMedia{duration: 300}, &fakeAnalyzer{}, opts)

	_, err := pipe.Run(context.Background(), testSource(t))
	if err == nil {
		t.Fatal("expected an error for overlap == window length")
	}
}
