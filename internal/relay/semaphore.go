package relay

import "context"

// semaphore bounds concurrent gateway calls. A nil semaphore never blocks.
type semaphore struct {
	ch chan struct{}
}

func newSemaphore(capacity int) *semaphore {
	return &semaphore{
		ch: make(chan struct{}, capacity),
	}
}

// acquire takes a slot, blocking until one frees up or ctx is done.
func (s *semaphore) acquire(ctx context.Context) error {
	if s == nil {
		return nil
	}
	select {
	case s.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *semaphore) release() {
	if s == nil {
		return
	}
	<-s.ch
}

// inUse returns the number of held slots.
func (s *semaphore) inUse() int {
	if s == nil {
		return 0
	}
	return len(s.ch)
}
