package session

import (
	"strings"
	"time"
)

// Session is the server-side state of one live connection.
type Session struct {
	ID          string
	Transcript  string
	Lines       int
	Summarizing bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Empty reports whether the transcript is empty or whitespace-only.
func (s Session) Empty() bool {
	return strings.TrimSpace(s.Transcript) == ""
}
