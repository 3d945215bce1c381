package summarizer

import "context"

// Summarizer turns a meeting transcript into a structured summary.
type Summarizer interface {
	// Summarize calls the model exactly once. It returns the model text or a
	// *GatewayError; it never substitutes a fallback value.
	Summarize(ctx context.Context, transcript string) (string, error)
}
