// Package client connects to the relay over a WebSocket and exchanges
// protocol events with it.
package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/nguyentantai21042004/meeting-scribe/internal/protocol"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const readLimit = 1 << 20 // summaries can be long

// DefaultPath is the relay's WebSocket endpoint.
const DefaultPath = "/ws"

// Client is one connection to the relay. Send methods may be called
// concurrently; ReadEvent must be called from a single goroutine.
type Client struct {
	conn *websocket.Conn
	url  string
}

// ResolveURL turns a base URL such as http://localhost:4000 into the relay's
// WebSocket URL. http/https map to ws/wss; an empty path becomes DefaultPath.
func ResolveURL(base string) (string, error) {
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse socket url: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("socket url %q has no host", base)
	}

	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported socket url scheme %q", u.Scheme)
	}

	if u.Path == "" || u.Path == "/" {
		u.Path = DefaultPath
	}
	return u.String(), nil
}

// Dial connects to the relay at base (see ResolveURL).
func Dial(ctx context.Context, base string) (*Client, error) {
	target, err := ResolveURL(base)
	if err != nil {
		return nil, err
	}

	conn, _, err := websocket.Dial(ctx, target, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to relay: %w", err)
	}
	conn.SetReadLimit(readLimit)

	return &Client{conn: conn, url: target}, nil
}

// URL returns the resolved WebSocket URL.
func (c *Client) URL() string {
	return c.url
}

// Send writes one event.
func (c *Client) Send(ctx context.Context, ev protocol.Event) error {
	if err := wsjson.Write(ctx, c.conn, ev); err != nil {
		return fmt.Errorf("send %s: %w", ev.Event, err)
	}
	return nil
}

// SendLine asks the relay to append a transcript line.
func (c *Client) SendLine(ctx context.Context, line string) error {
	return c.Send(ctx, protocol.Transcript(line))
}

// SendStop asks the relay to summarize and clear the transcript.
func (c *Client) SendStop(ctx context.Context) error {
	return c.Send(ctx, protocol.Stop())
}

// ReadEvent blocks until the relay sends the next event.
func (c *Client) ReadEvent(ctx context.Context) (protocol.Event, error) {
	var ev protocol.Event
	if err := wsjson.Read(ctx, c.conn, &ev); err != nil {
		return protocol.Event{}, fmt.Errorf("read event: %w", err)
	}
	return ev, nil
}

// Close shuts the connection down with a normal closure.
func (c *Client) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "")
}
