package app

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nguyentantai21042004/meeting-scribe/internal/config"
	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"github.com/nguyentantai21042004/meeting-scribe/internal/protocol"
	"github.com/nguyentantai21042004/meeting-scribe/internal/relay"
	"github.com/nguyentantai21042004/meeting-scribe/internal/server"
	"github.com/nguyentantai21042004/meeting-scribe/internal/session"
	"github.com/nguyentantai21042004/meeting-scribe/internal/source"
)

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func demoSource() (source.Source, error) {
	return &source.Scripted{Lines: []string{"A", "B"}, Interval: 5 * time.Millisecond}, nil
}

func newModel() Model {
	return New(context.Background(), Options{SocketURL: "http://localhost:4000", NewSource: demoSource})
}

func TestNewModel(t *testing.T) {
	m := newModel()
	if m.connected {
		t.Error("new model should not be connected")
	}
	if m.State().Status != StatusIdle {
		t.Errorf("Status = %q, want idle", m.State().Status)
	}
	if m.Init() == nil {
		t.Error("Init() should connect")
	}
}

func TestStartRequiresConnection(t *testing.T) {
	m := newModel()

	m, cmd := update(t, m, key(KeyStart))
	if cmd != nil || m.State().Status != StatusIdle {
		t.Errorf("start while disconnected: status=%q cmd=%v", m.State().Status, cmd != nil)
	}
}

func TestKeyRules(t *testing.T) {
	m := newModel()
	m.connected = true

	// Stop is ignored while idle.
	m, cmd := update(t, m, key(KeyStop))
	if cmd != nil || m.State().Status != StatusIdle {
		t.Fatalf("stop while idle changed state to %q", m.State().Status)
	}

	m, cmd = update(t, m, key(KeyStart))
	if cmd == nil || m.State().Status != StatusRecording {
		t.Fatalf("start: status=%q", m.State().Status)
	}
	rec := m.rec

	// Start is ignored while recording.
	m, cmd = update(t, m, key(KeyStart))
	if cmd != nil || m.rec != rec {
		t.Error("second start should be ignored")
	}

	m, cmd = update(t, m, key(KeySpace))
	if cmd == nil || m.State().Status != StatusStopped || !m.State().Summary.Loading {
		t.Fatalf("space while recording should stop: %+v", m.State())
	}
	if m.rec != nil {
		t.Error("recording should be released on stop")
	}
	rec.cancel()
}

func TestSourceFactoryError(t *testing.T) {
	m := New(context.Background(), Options{NewSource: func() (source.Source, error) {
		return nil, errors.New("no such file")
	}})
	m.connected = true

	m, _ = update(t, m, key(KeyStart))
	if m.State().Status != StatusIdle {
		t.Errorf("Status = %q, want idle", m.State().Status)
	}
	if !strings.Contains(m.errorMessage, "no such file") {
		t.Errorf("errorMessage = %q", m.errorMessage)
	}
}

func TestRelayEvents(t *testing.T) {
	m := newModel()
	m.connected = true
	m.state.Start()

	m.handleEvent(protocol.Partial("A"))
	m.handleEvent(protocol.Partial("B"))
	if m.State().Transcript != "A\nB" {
		t.Errorf("Transcript = %q", m.State().Transcript)
	}

	m.state.Stop()
	m.handleEvent(protocol.Summary(relay.MessageFailed, protocol.StatusFailed))
	s := m.State().Summary
	if s.Loading || s.Error != relay.MessageFailed {
		t.Errorf("Summary = %+v", s)
	}

	if cmd := m.handleEvent(protocol.Error("bad frame")); cmd == nil {
		t.Error("error event should schedule its own dismissal")
	}
	if m.errorMessage != "bad frame" {
		t.Errorf("errorMessage = %q", m.errorMessage)
	}
}

func TestConnectErrorSchedulesReconnect(t *testing.T) {
	m := newModel()

	m, cmd := update(t, m, ConnectErrorMsg{Err: errors.New("connection refused")})
	if m.connected || !m.reconnecting || cmd == nil {
		t.Errorf("connected=%v reconnecting=%v cmd=%v", m.connected, m.reconnecting, cmd != nil)
	}

	m, cmd = update(t, m, ReconnectTickMsg{})
	if m.attempt != 1 || cmd == nil {
		t.Errorf("attempt=%d cmd=%v", m.attempt, cmd != nil)
	}
}

func TestEventErrorResetsRecording(t *testing.T) {
	m := newModel()
	m.connected = true
	m, _ = update(t, m, key(KeyStart))

	m, cmd := update(t, m, EventErrorMsg{Err: errors.New("EOF")})
	if m.connected || m.rec != nil || cmd == nil {
		t.Errorf("connected=%v rec=%v cmd=%v", m.connected, m.rec != nil, cmd != nil)
	}
	if m.State().Status != StatusIdle {
		t.Errorf("Status = %q, want idle", m.State().Status)
	}
}

func TestView(t *testing.T) {
	m := newModel()
	m.connected = true
	m.width = 100
	m.height = 30

	v := m.View()
	for _, want := range []string{msgNoTranscript, msgNoSummary, "IDLE"} {
		if !strings.Contains(v, want) {
			t.Errorf("idle view missing %q", want)
		}
	}

	m.state.Start()
	m.state.ApplyPartial("The team agreed on Friday.")
	m.state.Stop()
	v = m.View()
	for _, want := range []string{"Friday", msgLoading, "STOPPED"} {
		if !strings.Contains(v, want) {
			t.Errorf("stopped view missing %q", want)
		}
	}

	m, _ = update(t, m, key(KeyQuit))
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three\nfour", 7)
	want := []string{"one two", "three", "four"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("wrapText() = %q, want %q", got, want)
	}
}

type echoSummarizer struct{}

func (echoSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	return "summary of " + transcript, nil
}

func TestRecordingAgainstRelay(t *testing.T) {
	r := relay.New(session.NewMemory(), echoSummarizer{}, logger.Discard(), relay.Options{})
	srv := server.New(config.ServerConfig{Path: "/ws", AllowedOrigins: []string{"*"}}, r, logger.Discard())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	m := New(ctx, Options{SocketURL: ts.URL, NewSource: demoSource})
	m, _ = update(t, m, m.Init()())
	if !m.connected {
		t.Fatalf("not connected: %s", m.connError)
	}

	m, record := update(t, m, key(KeyStart))
	if msg := record(); msg != (SourceDoneMsg{}) {
		t.Fatalf("record() = %#v", msg)
	}

	for i := 0; i < 2; i++ {
		m, _ = update(t, m, readEventCmd(ctx, m.client)())
	}
	if m.State().Transcript != "A\nB" {
		t.Fatalf("Transcript = %q", m.State().Transcript)
	}

	m, stop := update(t, m, key(KeyStop))
	if msg := stop(); msg != nil {
		t.Fatalf("stop() = %#v", msg)
	}
	m, _ = update(t, m, readEventCmd(ctx, m.client)())

	want := SummaryState{Text: "summary of A\nB"}
	if m.State().Summary != want || m.State().Status != StatusStopped {
		t.Errorf("state = %+v", m.State())
	}

	update(t, m, key(KeyQuit))
}

func TestRestartBeforeSummaryArrives(t *testing.T) {
	m := newModel()
	m.connected = true

	m, _ = update(t, m, key(KeyStart))
	m, _ = update(t, m, key(KeyStop))
	if !m.State().Summary.Loading {
		t.Fatal("summary should be loading after stop")
	}

	m, _ = update(t, m, key(KeyStart))
	rec := m.rec
	if rec == nil || m.State().Status != StatusRecording {
		t.Fatalf("restart: status=%q rec=%v", m.State().Status, rec != nil)
	}

	m, _ = update(t, m, EventMsg{Event: protocol.Summary("old summary", protocol.StatusOK)})
	if m.State().Status != StatusRecording || !m.State().CanStop() {
		t.Errorf("late summary ended the new recording: %+v", m.State())
	}
	if m.rec != rec || rec.ctx.Err() != nil {
		t.Error("late summary disturbed the running source")
	}

	m, _ = update(t, m, key(KeyStop))
	m, _ = update(t, m, EventMsg{Event: protocol.Summary("new summary", protocol.StatusOK)})
	if m.State().Summary.Text != "new summary" || m.State().Status != StatusStopped {
		t.Errorf("state = %+v", m.State())
	}
	rec.cancel()
}

func TestStartReleasesLeftoverRecording(t *testing.T) {
	m := newModel()
	m.connected = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	old := &recording{ctx: ctx, cancel: cancel, done: make(chan struct{})}
	m.rec = old
	m.state.Status = StatusStopped

	m, _ = update(t, m, key(KeyStart))
	if old.ctx.Err() == nil {
		t.Error("previous recording still running after a new start")
	}
	if m.rec == old || m.rec == nil {
		t.Error("new start should own a fresh recording")
	}
	m.rec.cancel()
}
