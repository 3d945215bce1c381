package relay

import (
	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"github.com/nguyentantai21042004/meeting-scribe/internal/session"
	"github.com/nguyentantai21042004/meeting-scribe/internal/summarizer"
)

// Options tune the stop handling.
type Options struct {
	// SingleFlightStop rejects a stop while another stop of the same session is pending.
	SingleFlightStop bool
	// MaxConcurrentSummaries bounds gateway calls across sessions. Zero means unlimited.
	MaxConcurrentSummaries int
}

type implRelay struct {
	registry   session.Registry
	summarizer summarizer.Summarizer
	logger     logger.Logger
	opts       Options
	sem        *semaphore
}

// New creates a Relay.
func New(registry session.Registry, sum summarizer.Summarizer, log logger.Logger, opts Options) Relay {
	r := &implRelay{
		registry:   registry,
		summarizer: sum,
		logger:     log,
		opts:       opts,
	}
	if opts.MaxConcurrentSummaries > 0 {
		r.sem = newSemaphore(opts.MaxConcurrentSummaries)
	}
	return r
}
