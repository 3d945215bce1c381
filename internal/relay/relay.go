package relay

import (
	"context"
	"errors"
	"time"

	"github.com/nguyentantai21042004/meeting-scribe/internal/protocol"
	"github.com/nguyentantai21042004/meeting-scribe/internal/session"
)

// OnConnect implements Relay.
func (r *implRelay) OnConnect(ctx context.Context, connID string) error {
	if err := r.registry.Create(ctx, connID); err != nil {
		return err
	}
	r.logger.Info(ctx, "Client connected (%d live)", r.registry.Len())
	return nil
}

// OnLine implements Relay.
func (r *implRelay) OnLine(ctx context.Context, connID, line string, reply Emitter) {
	if err := r.registry.Append(ctx, connID, line); err != nil {
		r.logger.Warn(ctx, "Dropping transcript line: %v", err)
		return
	}

	r.emit(ctx, reply, protocol.Partial(line))
}

// OnStop implements Relay.
func (r *implRelay) OnStop(ctx context.Context, connID string, reply Emitter) Result {
	return r.BeginStop(ctx, connID, reply)()
}

// BeginStop implements Relay.
//
// The transcript is captured before BeginStop returns. The buffer is cleared
// only after the gateway settles, so lines appended while a summary is in
// flight are discarded with it.
func (r *implRelay) BeginStop(ctx context.Context, connID string, reply Emitter) FinishFunc {
	release := func() {}
	if r.opts.SingleFlightStop {
		ok, err := r.registry.TryBeginSummary(ctx, connID)
		if err == nil && !ok {
			r.logger.Warn(ctx, "Stop ignored, a summary is already in flight")
			return r.settled(ctx, reply, busyResult())
		}
		if ok {
			release = func() { r.registry.EndSummary(ctx, connID) }
		}
	}

	sess, err := r.registry.Read(ctx, connID)
	if err != nil {
		r.logger.Warn(ctx, "Stop without session: %v", err)
		release()
		return r.settled(ctx, reply, emptyResult())
	}

	if sess.Empty() {
		r.logger.Info(ctx, "Stop with empty transcript, skipping summary")
		r.clear(ctx, connID)
		release()
		return r.settled(ctx, reply, emptyResult())
	}

	return func() Result {
		defer release()

		res := r.summarize(ctx, sess)
		r.emit(ctx, reply, res.Event())
		r.clear(ctx, connID)
		return res
	}
}

// settled emits res right away and returns a FinishFunc that only reports it.
func (r *implRelay) settled(ctx context.Context, reply Emitter, res Result) FinishFunc {
	r.emit(ctx, reply, res.Event())
	return func() Result { return res }
}

func (r *implRelay) summarize(ctx context.Context, sess session.Session) Result {
	if err := r.sem.acquire(ctx); err != nil {
		r.logger.Error(ctx, "Waiting for a summary slot: %v", err)
		return failedResult()
	}
	defer r.sem.release()

	r.logger.Info(ctx, "Generating summary for %d lines (%d summaries running)", sess.Lines, r.sem.inUse())
	start := time.Now()

	text, err := r.summarizer.Summarize(ctx, sess.Transcript)
	if err != nil {
		r.logger.Error(ctx, "Error calling Gemini: %v", err)
		return failedResult()
	}

	r.logger.Info(ctx, "Summary ready in %s", time.Since(start).Round(time.Millisecond))
	return Result{Text: text, Status: protocol.StatusOK}
}

func (r *implRelay) clear(ctx context.Context, connID string) {
	if err := r.registry.Clear(ctx, connID); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			r.logger.Debug(ctx, "Session gone before clear")
		} else {
			r.logger.Warn(ctx, "Failed to clear transcript: %v", err)
		}
	}
}

// OnDisconnect implements Relay.
func (r *implRelay) OnDisconnect(ctx context.Context, connID string) {
	if err := r.registry.Delete(ctx, connID); err != nil {
		r.logger.Warn(ctx, "Failed to drop session: %v", err)
	}
	r.logger.Info(ctx, "Client disconnected (%d live)", r.registry.Len())
}

func (r *implRelay) emit(ctx context.Context, reply Emitter, ev protocol.Event) {
	if reply == nil {
		return
	}
	if err := reply.Emit(ctx, ev); err != nil {
		r.logger.Debug(ctx, "Undeliverable %s event: %v", ev.Event, err)
	}
}
