package ffmpeg

import (
	"context"
	"errors"
	"fmt"

	"github.com/keagan/reelforge/pkg/util"
)

// ExtractOptions defines range extraction parameters
type ExtractOptions struct {
	Range        Range
	Output       string
	CRF          int
	ProgressFunc ProgressFunc
}

// ExtractRange cuts an absolute time range from a video into a new file.
// The cut always re-encodes; -ss sits before -i so ffmpeg seeks fast and
// then decodes frame-accurately from the requested start.
func (e *Executor) ExtractRange(ctx context.Context, input string, opts ExtractOptions) error {
	duration := opts.Range.End - opts.Range.Start
	if duration <= 0 {
		return errors.Join(ErrExtraction, errors.New("range end must be after start"))
	}

	e.logger.Info().
		Str("input", input).
		Str("output", opts.Output).
		Float64("start", opts.Range.Start).
		Float64("duration", duration).
		Msg("extracting range")

	crf := opts.CRF
	if crf == 0 {
		crf = DefaultCRF
	}

	args := []string{
		"-ss", util.FormatSeconds(opts.Range.Start),
		"-i", input,
		"-t", util.FormatSeconds(duration),
		"-c:v", DefaultVideoCodec,
		"-c:a", DefaultAudioCodec,
		"-crf", fmt.Sprintf("%d", crf),
		"-avoid_negative_ts", "1",
		opts.Output,
	}

	runOpts := RunOptions{
		Args:            args,
		ProgressHandler: opts.ProgressFunc,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("range extraction")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return errors.Join(ErrExtraction, err)
	}

	e.logger.Info().Str("output", opts.Output).Msg("range extraction complete")
	return nil
}
