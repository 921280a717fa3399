package ffmpeg

import "time"

// VideoInfo contains metadata about a video file
type VideoInfo struct {
	FilePath   string
	Duration   time.Duration
	Width      int
	Height     int
	FPS        float64
	Bitrate    int64
	VideoCodec string
	HasAudio   bool
	AudioCodec string
}

// DurationSeconds returns the duration as float seconds, the unit the
// timeline layer works in
func (v *VideoInfo) DurationSeconds() float64 {
	return v.Duration.Seconds()
}

// Range is an absolute time interval within a source file, in seconds
type Range struct {
	Start float64
	End   float64
}

// Progress represents ffmpeg progress data
type Progress struct {
	Frame int
	FPS   float64
	Time  string
	Speed string
}

// RunOptions configures ffmpeg execution
type RunOptions struct {
	Args            []string
	ProgressHandler func(*Progress)
	LogHandler      func(line string)
}

// ProgressFunc is a callback for progress updates during ffmpeg operations
type ProgressFunc func(*Progress)

// Default encoding settings. Extraction always re-encodes: copy-codec
// cuts land on keyframes and drift the timing the whole pipeline is
// built around.
const (
	DefaultCRF        = 23
	DefaultPreset     = "medium"
	DefaultVideoCodec = "libx264"
	DefaultAudioCodec = "aac"
)
