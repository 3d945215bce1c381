package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Reader emits every non-blank line read from R, e.g. a pipe from a
// speech-to-text tool on stdin. A blocked read is only interrupted when R is closed.
type Reader struct {
	R io.Reader
}

// Run implements Source.
func (s *Reader) Run(ctx context.Context, emit EmitFunc) error {
	scanner := bufio.NewScanner(s.R)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := emit(line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read lines: %w", err)
	}
	return nil
}
