package executor

import "context"

// LineFunc receives one line of command output. Returning an error stops the command.
type LineFunc func(line string) error

// Executor defines the interface for executing external commands
type Executor interface {
	// Stream runs the command and calls onLine for each stdout line as it is
	// produced. It returns when the command exits, onLine fails or ctx is done.
	Stream(ctx context.Context, onLine LineFunc, name string, args ...string) error
}
