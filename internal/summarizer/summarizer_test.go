package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"google.golang.org/genai"
)

func TestBuildPrompt(t *testing.T) {
	transcript := "A\nB\n100% agreed"
	prompt := BuildPrompt(transcript)

	if !strings.Contains(prompt, "Transcript:\n"+transcript) {
		t.Errorf("prompt does not embed transcript verbatim:\n%s", prompt)
	}

	sections := []string{
		"Executive summary",
		"Key decisions",
		"Action items",
		"Risks or concerns",
		"Important dates or deadlines",
	}
	for _, s := range sections {
		if !strings.Contains(prompt, s) {
			t.Errorf("prompt missing section %q", s)
		}
	}
}

func TestSummarizeCallsModelOnce(t *testing.T) {
	calls := 0
	var gotPrompt string

	s := &implSummarizer{
		model:  "test-model",
		logger: logger.Discard(),
		generate: func(ctx context.Context, prompt string) (string, error) {
			calls++
			gotPrompt = prompt
			return "## Executive summary\n- shipped", nil
		},
	}

	got, err := s.Summarize(context.Background(), "A\nB")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "## Executive summary\n- shipped" {
		t.Errorf("Summarize() = %q", got)
	}
	if calls != 1 {
		t.Errorf("model called %d times, want 1", calls)
	}
	if gotPrompt != BuildPrompt("A\nB") {
		t.Errorf("prompt = %q", gotPrompt)
	}
}

func TestSummarizeDoesNotRetry(t *testing.T) {
	calls := 0
	boom := &GatewayError{Op: OpGenerate, Err: errors.New("429 RESOURCE_EXHAUSTED")}

	s := &implSummarizer{
		logger: logger.Discard(),
		generate: func(ctx context.Context, prompt string) (string, error) {
			calls++
			return "", boom
		},
	}

	_, err := s.Summarize(context.Background(), "A")
	if !errors.Is(err, boom) {
		t.Errorf("Summarize() error = %v, want %v", err, boom)
	}
	if calls != 1 {
		t.Errorf("model called %d times, want exactly 1", calls)
	}
}

func TestSummarizeTimeout(t *testing.T) {
	s := &implSummarizer{
		timeout: 10 * time.Millisecond,
		logger:  logger.Discard(),
		generate: func(ctx context.Context, prompt string) (string, error) {
			if _, ok := ctx.Deadline(); !ok {
				t.Error("expected a deadline on the model call")
			}
			<-ctx.Done()
			return "", &GatewayError{Op: OpGenerate, Err: ctx.Err()}
		},
	}

	_, err := s.Summarize(context.Background(), "A")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Summarize() error = %v, want deadline exceeded", err)
	}
}

func TestMissingAPIKey(t *testing.T) {
	s := New("", "", 0, logger.Discard())

	_, err := s.Summarize(context.Background(), "A")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("Summarize() error = %v, want ErrMissingAPIKey", err)
	}

	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("error %T is not a *GatewayError", err)
	}
	if gwErr.Op != OpCredentials {
		t.Errorf("Op = %q, want %q", gwErr.Op, OpCredentials)
	}
}

func TestNewDefaultsModel(t *testing.T) {
	s := New("key", "", 0, logger.Discard()).(*implSummarizer)
	if s.model != DefaultModel {
		t.Errorf("model = %q, want %q", s.model, DefaultModel)
	}
}

func TestResponseText(t *testing.T) {
	tests := []struct {
		name   string
		result *genai.GenerateContentResponse
		want   string
	}{
		{"nil response", nil, ""},
		{"no candidates", &genai.GenerateContentResponse{}, ""},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, ""},
		{
			name: "joins text parts",
			result: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{{Text: "## Key decisions\n"}, {Text: "- demo on Friday"}}},
			}}},
			want: "## Key decisions\n- demo on Friday",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := responseText(tt.result); got != tt.want {
				t.Errorf("responseText() = %q, want %q", got, tt.want)
			}
		})
	}
}
