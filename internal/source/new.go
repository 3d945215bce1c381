// Package source produces transcript lines for the client: a scripted demo,
// stdin, a tailed file or the stdout of an external command.
package source

import (
	"fmt"
	"io"

	"github.com/nguyentantai21042004/meeting-scribe/internal/config"
	"github.com/nguyentantai21042004/meeting-scribe/pkg/executor"
)

// New builds the Source selected by cfg.Source. stdin is used by the stdin source.
func New(cfg config.ClientConfig, stdin io.Reader, exec executor.Executor) (Source, error) {
	switch cfg.Source {
	case config.SourceDemo, "":
		return NewDemo(cfg.LineInterval), nil
	case config.SourceStdin:
		return &Reader{R: stdin}, nil
	case config.SourceFile:
		if cfg.File == "" {
			return nil, fmt.Errorf("file source needs client.file")
		}
		return &File{Path: cfg.File}, nil
	case config.SourceCommand:
		return NewCommand(exec, cfg.Command)
	default:
		return nil, fmt.Errorf("unknown line source %q", cfg.Source)
	}
}
