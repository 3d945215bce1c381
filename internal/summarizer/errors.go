package summarizer

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey = errors.New("gemini api key is not configured")
	ErrEmptyResponse = errors.New("empty response from Gemini")
)

// Gateway operations reported by GatewayError.
const (
	OpCredentials = "credentials"
	OpClient      = "client"
	OpGenerate    = "generate"
	OpResponse    = "response"
)

// GatewayError wraps every failure of a summarization call.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("summarizer %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
