package summarizer

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// generateFunc sends one prompt to the model and returns its text.
type generateFunc func(ctx context.Context, prompt string) (string, error)

type implSummarizer struct {
	apiKey   string
	model    string
	timeout  time.Duration
	logger   logger.Logger
	generate generateFunc
}

// New creates a Summarizer backed by the Gemini API. An empty apiKey is
// accepted; every call then fails with ErrMissingAPIKey. A zero timeout leaves
// the call bounded only by ctx.
func New(apiKey, model string, timeout time.Duration, log logger.Logger) Summarizer {
	s := &implSummarizer{
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
		logger:  log,
	}
	if s.model == "" {
		s.model = DefaultModel
	}
	s.generate = s.callGemini
	return s
}
