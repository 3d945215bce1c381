package app

import "github.com/nguyentantai21042004/meeting-scribe/internal/protocol"

// Status is the dashboard's recording state.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRecording Status = "recording"
	StatusStopped   Status = "stopped"
)

// SummaryState is what the summary panel shows.
type SummaryState struct {
	Text    string
	Loading bool
	// Error holds the relay's message when the summary did not succeed.
	Error string
}

// State is the recording session as the user sees it. It holds no
// connection and does no I/O, so the transitions can be tested directly.
type State struct {
	Status     Status
	Transcript string
	Summary    SummaryState
}

// CanStart reports whether a new recording may begin.
func (s State) CanStart() bool {
	return s.Status != StatusRecording
}

// CanStop reports whether the current recording may be stopped.
func (s State) CanStop() bool {
	return s.Status == StatusRecording
}

// Start clears the previous transcript and summary and begins recording.
func (s *State) Start() {
	s.Transcript = ""
	s.Summary = SummaryState{}
	s.Status = StatusRecording
}

// Stop ends recording and waits for the summary.
func (s *State) Stop() {
	s.Summary = SummaryState{Loading: true}
	s.Status = StatusStopped
}

// ApplyPartial appends an echoed line to the transcript.
func (s *State) ApplyPartial(line string) {
	if s.Transcript == "" {
		s.Transcript = line
		return
	}
	s.Transcript += "\n" + line
}

// ApplySummary stores the relay's answer. The session ends up stopped
// whether or not it already was.
func (s *State) ApplySummary(text, status string) {
	switch status {
	case protocol.StatusOK, "":
		s.Summary = SummaryState{Text: text}
	default:
		s.Summary = SummaryState{Error: text}
	}
	s.Status = StatusStopped
}
