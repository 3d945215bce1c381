package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// File tails a text file that another tool appends transcript lines to.
// Lines already in the file are emitted first. Only complete lines are
// emitted; a trailing fragment waits for its newline. The file may not
// exist yet, and truncation restarts reading from the top.
type File struct {
	Path string
}

// Run implements Source.
func (s *File) Run(ctx context.Context, emit EmitFunc) error {
	path, err := filepath.Abs(s.Path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", s.Path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so create and rename are seen too. The watch is
	// added before the first read so no write slips between them.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("add watch path: %w", err)
	}

	t := &tail{path: path}
	defer t.close()

	if err := t.drain(emit); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != path {
				continue
			}

			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				t.close()
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				if err := t.drain(emit); err != nil {
					return err
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			return fmt.Errorf("watch %s: %w", s.Path, err)
		}
	}
}

type tail struct {
	path    string
	f       *os.File
	r       *bufio.Reader
	offset  int64
	partial string
}

// drain emits every complete line written since the last call.
func (t *tail) drain(emit EmitFunc) error {
	if t.f == nil {
		f, err := os.Open(t.path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("open %s: %w", t.path, err)
		}
		t.f, t.r, t.offset, t.partial = f, bufio.NewReader(f), 0, ""
	}

	if info, err := t.f.Stat(); err == nil && info.Size() < t.offset {
		if _, err := t.f.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("rewind %s: %w", t.path, err)
		}
		t.r.Reset(t.f)
		t.offset, t.partial = 0, ""
	}

	for {
		chunk, err := t.r.ReadString('\n')
		t.offset += int64(len(chunk))
		t.partial += chunk
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", t.path, err)
		}

		line := strings.TrimRight(t.partial, "\r\n")
		t.partial = ""
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := emit(line); err != nil {
			return err
		}
	}
}

func (t *tail) close() {
	if t.f != nil {
		t.f.Close()
		t.f = nil
	}
}
