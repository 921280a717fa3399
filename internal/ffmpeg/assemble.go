package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// AssembleOptions configures highlight reel assembly
type AssembleOptions struct {
	Source       string  // source video the ranges refer to
	Ranges       []Range // ordered, non-overlapping absolute ranges
	Crossfade    float64 // fade in/out duration in seconds
	Output       string  // canonical output path
	ProgressFunc ProgressFunc
}

// AssembleReel extracts each range from the source, concatenates them in
// order, and applies a fade in/out across the whole reel. The result is
// written to a temporary sibling of Output and renamed into place only
// on success, so the canonical path never holds a half-written file.
func (e *Executor) AssembleReel(ctx context.Context, opts AssembleOptions) error {
	if len(opts.Ranges) == 0 {
		return errors.Join(ErrAssembly, errors.New("no ranges to assemble"))
	}
	if opts.Source == "" || opts.Output == "" {
		return errors.Join(ErrAssembly, errors.New("source and output paths are required"))
	}

	e.logger.Info().
		Str("source", opts.Source).
		Int("ranges", len(opts.Ranges)).
		Str("output", opts.Output).
		Msg("assembling reel")

	workDir, err := os.MkdirTemp("", "reelforge-segments-")
	if err != nil {
		return errors.Join(ErrAssembly, err)
	}
	defer os.RemoveAll(workDir)

	segmentFiles := make([]string, 0, len(opts.Ranges))
	for i, r := range opts.Ranges {
		segPath := filepath.Join(workDir, fmt.Sprintf("seg_%04d.mp4", i))
		extractOpts := ExtractOptions{
			Range:        r,
			Output:       segPath,
			ProgressFunc: opts.ProgressFunc,
		}
		if err := e.ExtractRange(ctx, opts.Source, extractOpts); err != nil {
			return errors.Join(ErrAssembly, err)
		}
		segmentFiles = append(segmentFiles, segPath)
	}

	reel := segmentFiles[0]
	if len(segmentFiles) > 1 {
		reel = filepath.Join(workDir, "concat.mp4")
		if err := e.Concat(ctx, ConcatOptions{Inputs: segmentFiles, Output: reel, ProgressFunc: opts.ProgressFunc}); err != nil {
			return err
		}
	}

	info, err := e.ProbeVideo(ctx, reel)
	if err != nil {
		return errors.Join(ErrAssembly, err)
	}
	total := info.DurationSeconds()

	fade := opts.Crossfade
	if fade > total/4 {
		fade = total / 4
	}

	tmpOut := opts.Output + ".partial.mp4"
	if err := e.finishReel(ctx, reel, tmpOut, total, fade, opts.ProgressFunc); err != nil {
		os.Remove(tmpOut)
		return err
	}

	if err := os.Rename(tmpOut, opts.Output); err != nil {
		os.Remove(tmpOut)
		return errors.Join(ErrAssembly, err)
	}

	e.logger.Info().
		Str("output", opts.Output).
		Float64("duration", total).
		Msg("reel assembly complete")
	return nil
}

// finishReel writes the final encode with fades applied
func (e *Executor) finishReel(ctx context.Context, input, output string, total, fade float64, progress ProgressFunc) error {
	args := []string{"-i", input}

	vf := NewFilterBuilder().FadeIn(fade).FadeOut(total-fade, fade).Build()
	af := NewFilterBuilder().AudioFadeIn(fade).AudioFadeOut(total-fade, fade).Build()
	if vf == "" {
		// No fades requested: the concatenated streams are already the
		// final encode, copy them through
		args = append(args, "-c", "copy", output)
	} else {
		args = append(args,
			"-vf", vf,
			"-af", af,
			"-c:v", DefaultVideoCodec,
			"-crf", fmt.Sprintf("%d", DefaultCRF),
			"-preset", DefaultPreset,
			"-c:a", DefaultAudioCodec,
			output,
		)
	}

	runOpts := RunOptions{
		Args:            args,
		ProgressHandler: progress,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("final render")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return errors.Join(ErrAssembly, err)
	}
	return nil
}
