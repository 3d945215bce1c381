// Package protocol defines the JSON event envelope exchanged between the relay
// and its clients over a WebSocket.
package protocol

import (
	"encoding/json"
	"fmt"
)

// Event names.
const (
	// client -> server
	EventTranscript = "transcript"
	EventStop       = "stop"

	// server -> client
	EventPartial = "partial"
	EventSummary = "summary"
	EventError   = "error"
)

// Status tags carried by summary events.
const (
	StatusOK     = "ok"
	StatusEmpty  = "empty"
	StatusFailed = "failed"
	StatusBusy   = "busy"
)

// Event is one frame on the wire.
type Event struct {
	Event  string `json:"event"`
	Data   string `json:"data,omitempty"`
	Status string `json:"status,omitempty"`
}

// Transcript builds a line-append request.
func Transcript(line string) Event { return Event{Event: EventTranscript, Data: line} }

// Stop builds a summarization request.
func Stop() Event { return Event{Event: EventStop} }

// Partial builds the echo of an appended line.
func Partial(line string) Event { return Event{Event: EventPartial, Data: line} }

// Summary builds a summary result.
func Summary(text, status string) Event {
	return Event{Event: EventSummary, Data: text, Status: status}
}

// Error builds a protocol error notice.
func Error(msg string) Event { return Event{Event: EventError, Data: msg} }

// Decode parses a single frame.
func Decode(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("unmarshal event: %w", err)
	}
	if ev.Event == "" {
		return Event{}, fmt.Errorf("event name is missing")
	}
	return ev, nil
}

// Encode serializes a single frame.
func Encode(ev Event) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}
