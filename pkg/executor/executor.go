package executor

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const maxLineSize = 1024 * 1024

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Stream runs an external command and forwards its stdout line by line
func (e *implExecutor) Stream(ctx context.Context, onLine LineFunc, name string, args ...string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = time.Second

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe for '%s': %w", name, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start '%s': %w", name, err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var lineErr error
	for scanner.Scan() {
		if lineErr = onLine(strings.TrimRight(scanner.Text(), "\r")); lineErr != nil {
			// Kill the process so Wait does not block on a full pipe.
			cancel()
			break
		}
	}
	scanErr := scanner.Err()

	waitErr := cmd.Wait()

	switch {
	case lineErr != nil:
		return lineErr
	case ctx.Err() != nil:
		return ctx.Err()
	case waitErr != nil:
		// Include stderr in error message for debugging
		stderrStr := strings.TrimSpace(stderr.String())
		if stderrStr != "" {
			return fmt.Errorf("command '%s' failed: %w\nstderr: %s", name, waitErr, stderrStr)
		}
		return fmt.Errorf("command '%s' failed: %w", name, waitErr)
	case scanErr != nil:
		return fmt.Errorf("read output of '%s': %w", name, scanErr)
	}

	return nil
}
