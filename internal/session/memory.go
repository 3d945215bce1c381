package session

import (
	"context"
	"strings"
	"sync"
	"time"
)

// memoryRegistry implements Registry using an in-memory map.
type memoryRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	closed   bool
}

type entry struct {
	session Session
	buf     strings.Builder
}

// NewMemory creates an in-memory Registry.
func NewMemory() Registry {
	return &memoryRegistry{
		sessions: make(map[string]*entry),
	}
}

// Create implements Registry.
func (r *memoryRegistry) Create(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}

	now := time.Now()
	r.sessions[id] = &entry{session: Session{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}}
	return nil
}

// Append implements Registry.
func (r *memoryRegistry) Append(ctx context.Context, id, line string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return ErrNotFound
	}

	if e.buf.Len() > 0 {
		e.buf.WriteByte('\n')
	}
	e.buf.WriteString(line)
	e.session.Lines++
	e.session.UpdatedAt = time.Now()
	return nil
}

// Read implements Registry.
func (r *memoryRegistry) Read(ctx context.Context, id string) (Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}

	s := e.session
	s.Transcript = e.buf.String()
	return s, nil
}

// Clear implements Registry.
func (r *memoryRegistry) Clear(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return ErrNotFound
	}

	e.buf.Reset()
	e.session.Lines = 0
	e.session.UpdatedAt = time.Now()
	return nil
}

// Delete implements Registry.
func (r *memoryRegistry) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

// TryBeginSummary implements Registry.
func (r *memoryRegistry) TryBeginSummary(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return false, ErrNotFound
	}
	if e.session.Summarizing {
		return false, nil
	}
	e.session.Summarizing = true
	return true, nil
}

// EndSummary implements Registry.
func (r *memoryRegistry) EndSummary(ctx context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.sessions[id]; ok {
		e.session.Summarizing = false
	}
}

// Len implements Registry.
func (r *memoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

// Close implements Registry.
func (r *memoryRegistry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions = make(map[string]*entry)
	r.closed = true
	return nil
}
