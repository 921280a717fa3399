package timeline

import "errors"

// ErrInvalidWindowing indicates tiling parameters that cannot produce a
// valid cover of the source duration
var ErrInvalidWindowing = errors.New("invalid windowing parameters")

// Tile partitions [0, duration) into overlapping windows of windowLen
// seconds, each starting overlap seconds before the previous one ends.
// The final window is clipped to the source duration and always ends
// exactly at it; a source shorter than windowLen yields a single window.
func Tile(duration, windowLen, overlap float64) ([]Window, error) {
	if duration <= 0 {
		return nil, errors.Join(ErrInvalidWindowing, errors.New("duration must be positive"))
	}
	if windowLen <= 0 {
		return nil, errors.Join(ErrInvalidWindowing, errors.New("window length must be positive"))
	}
	if overlap < 0 || overlap >= windowLen {
		// step would be non-positive and the loop below would never advance
		return nil, errors.Join(ErrInvalidWindowing, errors.New("overlap must be in [0, window length)"))
	}

	step := windowLen - overlap
	var windows []Window
	start := 0.0
	for start < duration {
		end := start + windowLen
		if end > duration {
			end = duration
		}
		windows = append(windows, Window{
			SourceStart: start,
			SourceEnd:   end,
			Index:       len(windows),
		})
		if end >= duration {
			break
		}
		start += step
	}
	return windows, nil
}
