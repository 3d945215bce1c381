package relay

import (
	"context"

	"github.com/nguyentantai21042004/meeting-scribe/internal/protocol"
)

// Emitter delivers events to one connection.
type Emitter interface {
	Emit(ctx context.Context, ev protocol.Event) error
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(ctx context.Context, ev protocol.Event) error

// Emit implements Emitter.
func (f EmitterFunc) Emit(ctx context.Context, ev protocol.Event) error {
	return f(ctx, ev)
}

// FinishFunc completes a stop begun with BeginStop.
type FinishFunc func() Result

// Relay handles the events of every live connection.
type Relay interface {
	// OnConnect registers an empty transcript for the connection.
	OnConnect(ctx context.Context, connID string) error

	// OnLine appends a line and echoes it back to reply as a partial event.
	OnLine(ctx context.Context, connID, line string, reply Emitter)

	// OnStop summarizes the buffered transcript, emits the outcome to reply as
	// a summary event and clears the buffer. It blocks until the gateway settles.
	OnStop(ctx context.Context, connID string, reply Emitter) Result

	// BeginStop is OnStop split in two. It captures the transcript and settles
	// the empty and busy outcomes before returning; the FinishFunc makes the
	// gateway call, emits and clears. Events handled between the two calls do
	// not change what gets summarized.
	BeginStop(ctx context.Context, connID string, reply Emitter) FinishFunc

	// OnDisconnect drops the connection's session. In-flight summaries are not cancelled.
	OnDisconnect(ctx context.Context, connID string)
}
