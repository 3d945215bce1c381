package server

import (
	"context"
	"net/http"
)

// Server accepts WebSocket connections and feeds their events into the relay.
type Server interface {
	// Start listens on the configured address until ctx is cancelled, then
	// shuts down gracefully.
	Start(ctx context.Context) error

	// Handler returns the HTTP routes: the WebSocket endpoint and /healthz.
	Handler() http.Handler

	// Shutdown closes every connection and waits for in-flight summaries.
	Shutdown(ctx context.Context) error
}
