package source

import (
	"context"
	"errors"
)

// EmitFunc receives one transcript line. Returning an error stops the source.
type EmitFunc func(line string) error

// Source produces transcript lines until it is exhausted or ctx is cancelled.
type Source interface {
	Run(ctx context.Context, emit EmitFunc) error
}

// Stream exposes a running Source as a pull-based sequence of lines.
type Stream struct {
	lines chan string
	err   error
}

// Open starts src in the background. Cancel ctx to stop it.
func Open(ctx context.Context, src Source) *Stream {
	s := &Stream{lines: make(chan string)}

	go func() {
		defer close(s.lines)
		s.err = src.Run(ctx, func(line string) error {
			select {
			case s.lines <- line:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()

	return s
}

// Next blocks for the next line. It returns false once the source has stopped.
func (s *Stream) Next() (string, bool) {
	line, ok := <-s.lines
	return line, ok
}

// Lines returns the channel behind Next, for use in a select. It is closed
// once the source has stopped.
func (s *Stream) Lines() <-chan string {
	return s.lines
}

// Err returns why the source stopped. Cancellation is not an error.
// Only valid after Next has returned false.
func (s *Stream) Err() error {
	if errors.Is(s.err, context.Canceled) {
		return nil
	}
	return s.err
}
