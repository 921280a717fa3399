// Package pipeline sequences the highlight run: tile the source into
// overlapping windows, extract and analyze each window concurrently,
// map the reported moments back onto source time, merge and cap the
// candidate segments, and delegate final assembly.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/keagan/reelforge/internal/analyzer"
	"github.com/keagan/reelforge/internal/ffmpeg"
	"github.com/keagan/reelforge/internal/timeline"
	"github.com/keagan/reelforge/pkg/util"
)

var (
	// ErrMissingSource indicates the source video path is absent or unreadable
	ErrMissingSource = errors.New("source video not found")
	// ErrNoHighlights indicates no window produced a usable moment, so
	// there is nothing to assemble
	ErrNoHighlights = errors.New("no highlight segments selected")
)

// Pipeline orchestrates one highlight run
type Pipeline struct {
	logger   zerolog.Logger
	media    Media
	analyzer analyzer.Analyzer
	opts     Options
}

// New creates a pipeline instance
func New(logger zerolog.Logger, media Media, an analyzer.Analyzer, opts Options) *Pipeline {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Pipeline{
		logger:   logger.With().Str("component", "pipeline").Logger(),
		media:    media,
		analyzer: an,
		opts:     opts,
	}
}

// Run executes the full pipeline for one source video
func (p *Pipeline) Run(ctx context.Context, sourcePath string) (*Result, error) {
	if !util.FileExists(sourcePath) {
		return nil, errors.Join(ErrMissingSource, fmt.Errorf("path %q", sourcePath))
	}

	info, err := p.media.ProbeVideo(ctx, sourcePath)
	if err != nil {
		return nil, err
	}
	duration := info.DurationSeconds()

	windows, err := timeline.Tile(duration, p.opts.WindowSeconds, p.opts.OverlapSeconds)
	if err != nil {
		return nil, err
	}

	p.logger.Info().
		Str("source", sourcePath).
		Float64("duration", duration).
		Int("windows", len(windows)).
		Float64("window_len", p.opts.WindowSeconds).
		Float64("overlap", p.opts.OverlapSeconds).
		Msg("tiled source video")

	// Chunks are keyed by the source name so reruns on the same video
	// reuse its cache and different videos never collide.
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	chunksDir := filepath.Join(p.opts.OutputDir, "chunks", base)
	if err := util.EnsureDir(chunksDir); err != nil {
		return nil, fmt.Errorf("creating chunks dir: %w", err)
	}

	results, err := p.analyzeWindows(ctx, sourcePath, chunksDir, windows)
	if err != nil {
		return nil, err
	}

	var all []timeline.Segment
	degraded := 0
	for _, res := range results {
		if res.err != nil {
			degraded++
			continue
		}
		all = append(all, timeline.Normalize(res.window, res.moments)...)
	}
	if degraded > 0 {
		p.logger.Warn().
			Int("failed_windows", degraded).
			Int("total_windows", len(windows)).
			Msg("run degraded: some windows contributed no moments")
	}

	merged := timeline.Merge(all, p.opts.GapTolerance)
	capped := timeline.Cap(merged, p.opts.MaxTotalSeconds)
	p.logger.Info().
		Int("candidates", len(all)).
		Int("merged", len(merged)).
		Int("selected", len(capped)).
		Float64("selected_seconds", timeline.TotalDuration(capped)).
		Msg("consolidated segments")

	if len(capped) == 0 {
		return nil, ErrNoHighlights
	}

	outputPath := filepath.Join(p.opts.OutputDir, p.opts.OutputName+".mp4")
	ranges := make([]ffmpeg.Range, len(capped))
	for i, s := range capped {
		ranges[i] = ffmpeg.Range{Start: s.Start, End: s.End}
	}
	if err := p.media.AssembleReel(ctx, ffmpeg.AssembleOptions{
		Source:    sourcePath,
		Ranges:    ranges,
		Crossfade: p.opts.Crossfade,
		Output:    outputPath,
	}); err != nil {
		return nil, err
	}

	segments := make([]SegmentInfo, len(capped))
	for i, s := range capped {
		segments[i] = SegmentInfo{
			Start:     s.Start,
			End:       s.End,
			StartTime: util.FormatMMSS(s.Start),
			EndTime:   util.FormatMMSS(s.End),
			Label:     s.Label,
		}
	}

	return &Result{
		SourcePath:      sourcePath,
		SourceDuration:  duration,
		WindowCount:     len(windows),
		DegradedWindows: degraded,
		ChunksDir:       chunksDir,
		Segments:        segments,
		OutputPath:      outputPath,
		OutputDuration:  timeline.TotalDuration(capped),
	}, nil
}

// analyzeWindows extracts and analyzes each window, at most
// opts.Workers at a time. Results land in a fixed-size slice addressed
// by window index; the barrier on g.Wait guarantees merging only ever
// sees the complete, ordered set.
func (p *Pipeline) analyzeWindows(ctx context.Context, sourcePath, chunksDir string, windows []timeline.Window) ([]windowResult, error) {
	results := make([]windowResult, len(windows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)
	for _, w := range windows {
		g.Go(func() error {
			res := p.analyzeWindow(gctx, sourcePath, chunksDir, w)
			results[w.Index] = res
			if res.err != nil {
				if p.opts.StrictWindows {
					return fmt.Errorf("window %d: %w", w.Index, res.err)
				}
				p.logger.Warn().
					Err(res.err).
					Int("window", w.Index).
					Msg("window analysis failed, contributing zero moments")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// analyzeWindow runs extract -> analyze -> parse for one window
func (p *Pipeline) analyzeWindow(ctx context.Context, sourcePath, chunksDir string, w timeline.Window) windowResult {
	res := windowResult{window: w}

	chunkPath := filepath.Join(chunksDir, fmt.Sprintf("chunk_%04d_%s_%s.mp4",
		w.Index, util.TimeLabel(w.SourceStart), util.TimeLabel(w.SourceEnd)))

	// Chunk files are deterministically named, so a rerun against the
	// same output name reuses whatever was already extracted
	if util.FileExists(chunkPath) {
		p.logger.Debug().Str("chunk", chunkPath).Msg("reusing existing chunk")
	} else if err := p.media.ExtractRange(ctx, sourcePath, ffmpeg.ExtractOptions{
		Range:  ffmpeg.Range{Start: w.SourceStart, End: w.SourceEnd},
		Output: chunkPath,
	}); err != nil {
		res.err = err
		return res
	}

	text, err := p.analyzer.Analyze(ctx, chunkPath)
	if err != nil {
		res.err = err
		return res
	}

	res.moments = analyzer.ParseMoments(text)
	p.logger.Info().
		Int("window", w.Index).
		Str("range", fmt.Sprintf("%s - %s", util.FormatMMSS(w.SourceStart), util.FormatMMSS(w.SourceEnd))).
		Int("moments", len(res.moments)).
		Msg("window analyzed")
	return res
}
