package app

import (
	"testing"

	"github.com/nguyentantai21042004/meeting-scribe/internal/protocol"
)

func TestStateTransitions(t *testing.T) {
	var s State
	s.Status = StatusIdle

	if !s.CanStart() || s.CanStop() {
		t.Fatalf("idle: CanStart=%v CanStop=%v", s.CanStart(), s.CanStop())
	}

	s.Transcript = "old"
	s.Summary = SummaryState{Text: "old summary"}
	s.Start()
	if s.Status != StatusRecording || s.Transcript != "" || s.Summary != (SummaryState{}) {
		t.Fatalf("after Start: %+v", s)
	}
	if s.CanStart() || !s.CanStop() {
		t.Errorf("recording: CanStart=%v CanStop=%v", s.CanStart(), s.CanStop())
	}

	s.ApplyPartial("A")
	s.ApplyPartial("B")
	if s.Transcript != "A\nB" {
		t.Errorf("Transcript = %q, want %q", s.Transcript, "A\nB")
	}

	s.Stop()
	if s.Status != StatusStopped || !s.Summary.Loading {
		t.Fatalf("after Stop: %+v", s)
	}

	s.ApplySummary("## Executive summary", protocol.StatusOK)
	want := SummaryState{Text: "## Executive summary"}
	if s.Summary != want {
		t.Errorf("Summary = %+v, want %+v", s.Summary, want)
	}
	if s.Status != StatusStopped {
		t.Errorf("Status = %q, want stopped", s.Status)
	}
	if !s.CanStart() {
		t.Error("stopped session should allow a new start")
	}
}

func TestApplySummary(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   SummaryState
	}{
		{"ok", protocol.StatusOK, SummaryState{Text: "text"}},
		{"no status", "", SummaryState{Text: "text"}},
		{"empty", protocol.StatusEmpty, SummaryState{Error: "text"}},
		{"failed", protocol.StatusFailed, SummaryState{Error: "text"}},
		{"busy", protocol.StatusBusy, SummaryState{Error: "text"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := State{Status: StatusRecording, Summary: SummaryState{Loading: true}}
			s.ApplySummary("text", tt.status)
			if s.Summary != tt.want {
				t.Errorf("Summary = %+v, want %+v", s.Summary, tt.want)
			}
			if s.Status != StatusStopped {
				t.Errorf("Status = %q, want stopped", s.Status)
			}
		})
	}
}

func TestApplySummaryWhenAlreadyStopped(t *testing.T) {
	s := State{Status: StatusStopped}
	s.ApplySummary("late", protocol.StatusOK)
	s.ApplySummary("later", protocol.StatusOK)
	if s.Status != StatusStopped || s.Summary.Text != "later" {
		t.Errorf("state = %+v", s)
	}
}
