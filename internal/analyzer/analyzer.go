// Package analyzer turns one extracted window clip into candidate
// highlight moments by sending it to a remote multimodal model and
// parsing the free-form text it returns.
package analyzer

import (
	"context"
	"errors"
)

// Failure classes. Both are per-window conditions: a window whose
// analysis fails contributes zero moments and the run degrades rather
// than aborts unless the operator asked otherwise.
var (
	ErrAnalyzer        = errors.New("analyzer failed")
	ErrAnalyzerTimeout = errors.New("analyzer timed out")
)

// Analyzer inspects one window's media file and reports candidate
// moments as text (zero or more MOMENT lines, or the NONE sentinel)
type Analyzer interface {
	Analyze(ctx context.Context, mediaPath string) (string, error)
}
