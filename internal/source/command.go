package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/meeting-scribe/pkg/executor"
)

// Command runs an external program, such as a streaming speech-to-text CLI,
// and emits each non-blank stdout line.
type Command struct {
	Name string
	Args []string
	exec executor.Executor
}

// NewCommand builds a Command source from argv.
func NewCommand(exec executor.Executor, argv []string) (*Command, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil, fmt.Errorf("command source needs a program")
	}
	return &Command{Name: argv[0], Args: argv[1:], exec: exec}, nil
}

// Run implements Source.
func (s *Command) Run(ctx context.Context, emit EmitFunc) error {
	return s.exec.Stream(ctx, func(line string) error {
		if strings.TrimSpace(line) == "" {
			return nil
		}
		return emit(line)
	}, s.Name, s.Args...)
}
