// Package app is the terminal dashboard: it drives one recording session
// against the relay and shows the live transcript and the summary.
package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nguyentantai21042004/meeting-scribe/internal/client"
	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"github.com/nguyentantai21042004/meeting-scribe/internal/protocol"
	"github.com/nguyentantai21042004/meeting-scribe/internal/source"
)

// SourceFactory builds the line source for a new recording.
type SourceFactory func() (source.Source, error)

// Options configures a Model.
type Options struct {
	SocketURL  string
	SourceName string
	NewSource  SourceFactory
	Logger     logger.Logger
}

// recording is the line source feeding the relay while recording.
type recording struct {
	ctx    context.Context
	cancel context.CancelFunc
	src    source.Source
	done   chan struct{}
}

// Model is the root bubbletea model for the dashboard.
type Model struct {
	ctx  context.Context
	opts Options

	// Connection state
	client       *client.Client
	connected    bool
	connError    string
	reconnecting bool
	attempt      int
	quitting     bool

	state State
	rec   *recording

	// UI state
	width  int
	height int

	errorMessage   string
	errorTransient bool
}

// New creates a Model. ctx bounds every network call it makes.
func New(ctx context.Context, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	return Model{
		ctx:   ctx,
		opts:  opts,
		state: State{Status: StatusIdle},
	}
}

// State returns the current session state.
func (m Model) State() State {
	return m.state
}

// Init returns the initial command: connect to the relay.
func (m Model) Init() tea.Cmd {
	return connectCmd(m.ctx, m.opts.SocketURL)
}

func connectCmd(ctx context.Context, url string) tea.Cmd {
	return func() tea.Msg {
		c, err := client.Dial(ctx, url)
		if err != nil {
			return ConnectErrorMsg{Err: err}
		}
		return ConnectedMsg{Client: c}
	}
}

// readEventCmd reads the next event pushed by the relay.
func readEventCmd(ctx context.Context, c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ev, err := c.ReadEvent(ctx)
		if err != nil {
			return EventErrorMsg{Err: err}
		}
		return EventMsg{Event: ev}
	}
}

// recordCmd forwards source lines to the relay until the source ends or
// the recording is cancelled. Writes use ctx, not the recording's context,
// because cancelling a write closes the connection.
func recordCmd(ctx context.Context, c *client.Client, rec *recording) tea.Cmd {
	return func() tea.Msg {
		defer close(rec.done)

		stream := source.Open(rec.ctx, rec.src)
		for {
			select {
			case <-rec.ctx.Done():
				return SourceDoneMsg{}
			case line, ok := <-stream.Lines():
				if !ok {
					return SourceDoneMsg{Err: stream.Err()}
				}
				if rec.ctx.Err() != nil {
					return SourceDoneMsg{}
				}
				if err := c.SendLine(ctx, line); err != nil {
					return SendErrorMsg{Err: err}
				}
			}
		}
	}
}

// stopCmd halts the line source, then asks the relay for the summary, so
// no line can follow the stop on the wire.
func stopCmd(ctx context.Context, c *client.Client, rec *recording) tea.Cmd {
	return func() tea.Msg {
		if rec != nil {
			rec.cancel()
			<-rec.done
		}
		if err := c.SendStop(ctx); err != nil {
			return SendErrorMsg{Err: err}
		}
		return nil
	}
}

// clearTransientErrorCmd fires after a delay to clear transient errors.
func clearTransientErrorCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return ClearTransientErrorMsg{}
	})
}

// reconnectCmd schedules a reconnection attempt with exponential backoff.
func reconnectCmd(attempt int) tea.Cmd {
	delay := time.Duration(1<<min(attempt, 4)) * time.Second // 1s, 2s, 4s, 8s, 16s cap
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ReconnectTickMsg{}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ConnectedMsg:
		if m.quitting {
			msg.Client.Close()
			return m, nil
		}
		m.client = msg.Client
		m.connected = true
		m.connError = ""
		m.reconnecting = false
		m.attempt = 0
		m.opts.Logger.Info(m.ctx, "Connected to %s", msg.Client.URL())
		return m, readEventCmd(m.ctx, m.client)

	case ConnectErrorMsg:
		m.connected = false
		m.connError = msg.Err.Error()
		m.reconnecting = true
		m.opts.Logger.Warn(m.ctx, "Connect to relay: %v", msg.Err)
		return m, reconnectCmd(m.attempt)

	case EventMsg:
		cmd := m.handleEvent(msg.Event)
		if m.client == nil {
			return m, cmd
		}
		return m, tea.Batch(cmd, readEventCmd(m.ctx, m.client))

	case EventErrorMsg:
		if m.quitting {
			return m, nil
		}
		m.opts.Logger.Warn(m.ctx, "Relay connection lost: %v", msg.Err)
		m.disconnect()
		m.connError = msg.Err.Error()
		m.reconnecting = true
		return m, reconnectCmd(m.attempt)

	case ReconnectTickMsg:
		m.attempt++
		return m, connectCmd(m.ctx, m.opts.SocketURL)

	case SourceDoneMsg:
		if msg.Err != nil {
			m.opts.Logger.Error(m.ctx, "Line source stopped: %v", msg.Err)
			m.errorMessage = "line source: " + msg.Err.Error()
			m.errorTransient = false
		}
		return m, nil

	case SendErrorMsg:
		if errors.Is(msg.Err, context.Canceled) {
			return m, nil
		}
		m.opts.Logger.Error(m.ctx, "Send to relay: %v", msg.Err)
		m.errorMessage = msg.Err.Error()
		m.errorTransient = true
		return m, clearTransientErrorCmd()

	case ClearTransientErrorMsg:
		if m.errorTransient {
			m.errorMessage = ""
			m.errorTransient = false
		}
		return m, nil
	}

	return m, nil
}

// handleEvent applies a relay event and returns any resulting command.
func (m *Model) handleEvent(ev protocol.Event) tea.Cmd {
	switch ev.Event {
	case protocol.EventPartial:
		m.state.ApplyPartial(ev.Data)

	case protocol.EventSummary:
		// A summary landing mid-recording answers an earlier stop.
		if m.state.Status == StatusRecording {
			m.opts.Logger.Info(m.ctx, "Discarding summary of a previous recording")
			return nil
		}
		m.state.ApplySummary(ev.Data, ev.Status)

	case protocol.EventError:
		m.errorMessage = ev.Data
		m.errorTransient = true
		return clearTransientErrorCmd()
	}
	return nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit, KeyQuitUpper, KeyCtrlC:
		m.quitting = true
		m.disconnect()
		return m, tea.Quit

	case KeyStart:
		return m.start()

	case KeyStop:
		return m.stop()

	case KeySpace:
		if m.state.CanStop() {
			return m.stop()
		}
		return m.start()
	}

	return m, nil
}

func (m Model) start() (tea.Model, tea.Cmd) {
	if !m.connected || !m.state.CanStart() {
		return m, nil
	}

	src, err := m.opts.NewSource()
	if err != nil {
		m.errorMessage = "line source: " + err.Error()
		m.errorTransient = true
		return m, clearTransientErrorCmd()
	}

	if m.rec != nil {
		m.rec.cancel()
		m.rec = nil
	}

	ctx, cancel := context.WithCancel(m.ctx)
	m.rec = &recording{ctx: ctx, cancel: cancel, src: src, done: make(chan struct{})}
	m.state.Start()
	m.errorMessage = ""
	m.opts.Logger.Info(m.ctx, "Recording started (%s source)", m.opts.SourceName)
	return m, recordCmd(m.ctx, m.client, m.rec)
}

func (m Model) stop() (tea.Model, tea.Cmd) {
	if !m.connected || !m.state.CanStop() {
		return m, nil
	}

	rec := m.rec
	m.rec = nil
	m.state.Stop()
	m.opts.Logger.Info(m.ctx, "Recording stopped, waiting for summary")
	return m, stopCmd(m.ctx, m.client, rec)
}

// disconnect stops any recording and closes the relay connection.
func (m *Model) disconnect() {
	if m.rec != nil {
		m.rec.cancel()
		m.rec = nil
	}
	if m.client != nil {
		m.client.Close()
		m.client = nil
	}
	m.connected = false
	if m.state.Status == StatusRecording {
		m.state.Status = StatusIdle
	}
	if m.state.Summary.Loading {
		m.state.Summary.Loading = false
	}
}
