package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nguyentantai21042004/meeting-scribe/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 64
)

var errConnClosed = errors.New("connection closed")

// conn is one client connection. The write pump is the only writer of ws.
type conn struct {
	id   string
	ws   *websocket.Conn
	send chan protocol.Event

	done      chan struct{}
	closeOnce sync.Once
}

func newConn(id string, ws *websocket.Conn) *conn {
	return &conn{
		id:   id,
		ws:   ws,
		send: make(chan protocol.Event, sendBuffer),
		done: make(chan struct{}),
	}
}

// Emit queues ev for the write pump. Events for a closed connection are dropped.
func (c *conn) Emit(ctx context.Context, ev protocol.Event) error {
	select {
	case <-c.done:
		return errConnClosed
	default:
	}

	select {
	case c.send <- ev:
		return nil
	case <-c.done:
		return errConnClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *conn) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// readPump delivers frames to s in receipt order until the socket fails.
func (s *implServer) readPump(ctx context.Context, c *conn) {
	defer func() {
		c.close()
		s.relay.OnDisconnect(ctx, c.id)
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				s.logger.Warn(ctx, "Connection read error: %v", err)
			}
			return
		}

		ev, err := protocol.Decode(data)
		if err != nil {
			s.logger.Warn(ctx, "Malformed frame: %v", err)
			c.Emit(ctx, protocol.Error("malformed event"))
			continue
		}

		s.dispatch(ctx, c, ev)
	}
}

func (s *implServer) dispatch(ctx context.Context, c *conn, ev protocol.Event) {
	switch ev.Event {
	case protocol.EventTranscript:
		s.relay.OnLine(ctx, c.id, ev.Data, c)

	case protocol.EventStop:
		// The transcript is taken here, in receipt order. Only the gateway
		// call runs off the read pump so further events keep flowing.
		finish := s.relay.BeginStop(ctx, c.id, c)
		s.stopWG.Add(1)
		go func() {
			defer s.stopWG.Done()
			finish()
		}()

	default:
		s.logger.Warn(ctx, "Unknown event %q", ev.Event)
		c.Emit(ctx, protocol.Error("unknown event: "+ev.Event))
	}
}

// writePump owns every write to the socket, including keepalive pings.
func (s *implServer) writePump(ctx context.Context, c *conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case ev := <-c.send:
			data, err := protocol.Encode(ev)
			if err != nil {
				s.logger.Error(ctx, "Encode %s event: %v", ev.Event, err)
				continue
			}
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				s.logger.Debug(ctx, "Write failed: %v", err)
				c.close()
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}

		case <-c.done:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
