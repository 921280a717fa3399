package pipeline

import (
	"context"

	"github.com/keagan/reelforge/internal/ffmpeg"
	"github.com/keagan/reelforge/internal/timeline"
)

// Media bundles the external media collaborators the pipeline delegates
// to: probing, range extraction, and final assembly. *ffmpeg.Executor
// satisfies it; tests substitute fakes.
type Media interface {
	ProbeVideo(ctx context.Context, filePath string) (*ffmpeg.VideoInfo, error)
	ExtractRange(ctx context.Context, input string, opts ffmpeg.ExtractOptions) error
	AssembleReel(ctx context.Context, opts ffmpeg.AssembleOptions) error
}

// Options configures a highlight run
type Options struct {
	OutputDir  string
	OutputName string

	WindowSeconds  float64
	OverlapSeconds float64

	MaxTotalSeconds float64
	GapTolerance    float64
	Crossfade       float64

	// Workers bounds the per-window extract+analyze fan-out
	Workers int

	// StrictWindows aborts the run on the first failed window instead
	// of degrading to zero moments for it
	StrictWindows bool
}

// windowResult is one window's outcome, collected into a slot addressed
// by window index so downstream order never depends on completion order
type windowResult struct {
	window  timeline.Window
	moments []timeline.Moment
	err     error
}

// SegmentInfo describes one final segment in the run summary
type SegmentInfo struct {
	Start     float64
	End       float64
	StartTime string // m:ss rendering of Start
	EndTime   string
	Label     string
}

// Result summarizes a completed run
type Result struct {
	SourcePath      string
	SourceDuration  float64
	WindowCount     int
	DegradedWindows int
	ChunksDir       string
	Segments        []SegmentInfo
	OutputPath      string
	OutputDuration  float64
}
