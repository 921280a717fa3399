package analyzer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/keagan/reelforge/internal/poll"
)

// GeminiConfig configures the Gemini-backed analyzer
type GeminiConfig struct {
	Model        string
	APIKey       string
	PollInterval time.Duration // how often to check upload processing state
	PollTimeout  time.Duration // per-window bound on the whole wait
	Clock        poll.Clock    // nil means the system clock
}

// Gemini analyzes window clips with the Gemini API. Clips are pushed
// through the Files API first (video processing is asynchronous on the
// service side), then handed to the model together with the moment
// prompt once the file reaches the ACTIVE state.
type Gemini struct {
	logger       zerolog.Logger
	client       *genai.Client
	model        string
	clock        poll.Clock
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// NewGemini creates a Gemini analyzer
func NewGemini(ctx context.Context, logger zerolog.Logger, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.Join(ErrAnalyzer, errors.New("API key is required"))
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Join(ErrAnalyzer, fmt.Errorf("creating client: %w", err))
	}

	clock := cfg.Clock
	if clock == nil {
		clock = poll.RealClock()
	}
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	timeout := cfg.PollTimeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	return &Gemini{
		logger:       logger.With().Str("component", "gemini").Logger(),
		client:       client,
		model:        cfg.Model,
		clock:        clock,
		pollInterval: interval,
		pollTimeout:  timeout,
	}, nil
}

// Analyze uploads one window clip and returns the model's raw text
// response. An empty model response is reported as the NONE sentinel so
// downstream parsing stays uniform.
func (g *Gemini) Analyze(ctx context.Context, mediaPath string) (string, error) {
	if _, err := os.Stat(mediaPath); err != nil {
		return "", errors.Join(ErrAnalyzer, fmt.Errorf("clip not readable: %w", err))
	}

	g.logger.Info().Str("clip", mediaPath).Msg("uploading clip")
	uploaded, err := g.client.Files.UploadFromPath(ctx, mediaPath, &genai.UploadFileConfig{
		MIMEType: "video/mp4",
	})
	if err != nil {
		return "", errors.Join(ErrAnalyzer, fmt.Errorf("upload: %w", err))
	}

	file, err := g.waitForActive(ctx, uploaded.Name)
	if err != nil {
		return "", err
	}

	g.logger.Info().Str("clip", mediaPath).Str("model", g.model).Msg("requesting analysis")
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromURI(file.URI, file.MIMEType),
			genai.NewPartFromText(momentPrompt),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", errors.Join(ErrAnalyzer, fmt.Errorf("generate: %w", err))
	}

	text := resp.Text()
	if text == "" {
		return noMomentsSentinel, nil
	}
	g.logger.Debug().Str("clip", mediaPath).Str("response", text).Msg("raw analyzer response")
	return text, nil
}

// waitForActive polls the Files API until the uploaded clip finishes
// service-side processing. Generation against a non-ACTIVE file fails,
// so this gate is mandatory, and it is bounded per window.
func (g *Gemini) waitForActive(ctx context.Context, name string) (*genai.File, error) {
	var file *genai.File
	err := poll.Until(ctx, g.clock, g.pollInterval, g.pollTimeout, func(ctx context.Context) (bool, error) {
		f, err := g.client.Files.Get(ctx, name, nil)
		if err != nil {
			return false, errors.Join(ErrAnalyzer, fmt.Errorf("file state: %w", err))
		}
		switch f.State {
		case genai.FileStateActive:
			file = f
			return true, nil
		case genai.FileStateFailed:
			return false, errors.Join(ErrAnalyzer, errors.New("service-side file processing failed"))
		default:
			g.logger.Debug().Str("file", name).Str("state", string(f.State)).Msg("waiting for upload processing")
			return false, nil
		}
	})
	if errors.Is(err, poll.ErrDeadline) {
		return nil, errors.Join(ErrAnalyzerTimeout, fmt.Errorf("file %s never became active: %w", name, err))
	}
	if err != nil {
		return nil, err
	}
	return file, nil
}
