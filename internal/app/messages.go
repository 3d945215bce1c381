package app

import (
	"github.com/nguyentantai21042004/meeting-scribe/internal/client"
	"github.com/nguyentantai21042004/meeting-scribe/internal/protocol"
)

// ConnectedMsg is sent when the relay connection is established.
type ConnectedMsg struct {
	Client *client.Client
}

// ConnectErrorMsg is sent when dialing the relay fails.
type ConnectErrorMsg struct {
	Err error
}

// EventMsg wraps an event pushed by the relay.
type EventMsg struct {
	Event protocol.Event
}

// EventErrorMsg is sent when the relay connection breaks.
type EventErrorMsg struct {
	Err error
}

// SourceDoneMsg is sent when the line source stops on its own or is stopped.
type SourceDoneMsg struct {
	Err error
}

// SendErrorMsg is sent when an event could not be written to the relay.
type SendErrorMsg struct {
	Err error
}

// ClearTransientErrorMsg clears a transient error after a timeout.
type ClearTransientErrorMsg struct{}

// ReconnectTickMsg triggers a reconnection attempt.
type ReconnectTickMsg struct{}
