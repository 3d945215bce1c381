package session

import "context"

// Registry owns exactly one transcript buffer per live connection.
type Registry interface {
	// Create registers an empty session. Re-creating an existing ID resets it.
	Create(ctx context.Context, id string) error

	// Append adds a line, joined with "\n" only when the buffer is non-empty.
	// Returns ErrNotFound if the session does not exist.
	Append(ctx context.Context, id, line string) error

	// Read returns a copy of the session.
	// Returns ErrNotFound if the session does not exist.
	Read(ctx context.Context, id string) (Session, error)

	// Clear resets the transcript to empty without removing the session.
	// Returns ErrNotFound if the session does not exist.
	Clear(ctx context.Context, id string) error

	// Delete removes the session. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// TryBeginSummary marks the session as summarizing. It returns false when a
	// summary is already in flight for the session.
	TryBeginSummary(ctx context.Context, id string) (bool, error)

	// EndSummary clears the summarizing mark.
	EndSummary(ctx context.Context, id string)

	// Len returns the number of live sessions.
	Len() int

	// Close drops every session.
	Close() error
}
