package summarizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const summaryPrompt = `You are an AI meeting assistant. Based on the transcript below, produce:

1. Executive summary (3–5 bullet points)
2. Key decisions
3. Action items (with owners if mentioned)
4. Risks or concerns
5. Important dates or deadlines

Keep it concise and structured.

Transcript:
%s
`

// BuildPrompt embeds the transcript verbatim into the fixed summary prompt.
func BuildPrompt(transcript string) string {
	return fmt.Sprintf(summaryPrompt, transcript)
}

// Summarize sends the transcript to Gemini once and returns the summary text.
func (s *implSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.generate(ctx, BuildPrompt(transcript))
	if err != nil {
		return "", err
	}

	s.logger.Debug(ctx, "Gemini %s answered in %s (%d chars)", s.model, time.Since(start).Round(time.Millisecond), len(text))
	return text, nil
}

// callGemini sends the prompt to Gemini and returns the concatenated text parts.
func (s *implSummarizer) callGemini(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(s.apiKey) == "" {
		return "", &GatewayError{Op: OpCredentials, Err: ErrMissingAPIKey}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", &GatewayError{Op: OpClient, Err: fmt.Errorf("create client: %w", err)}
	}

	result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", &GatewayError{Op: OpGenerate, Err: fmt.Errorf("generate content: %w", err)}
	}

	text := responseText(result)
	if strings.TrimSpace(text) == "" {
		return "", &GatewayError{Op: OpResponse, Err: ErrEmptyResponse}
	}
	return text, nil
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
