package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nguyentantai21042004/meeting-scribe/internal/ui"
)

const (
	msgNoTranscript = "No transcript yet."
	msgLoading      = "Generating summary…"
	msgNoSummary    = "No summary yet."
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width := m.width
	if width == 0 {
		width = 80
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderStatusBar())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", width)))
	sections = append(sections, m.renderPanels(width))
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", width)))

	if m.errorMessage != "" {
		sections = append(sections, ui.ErrorStyle.Render("Error: ")+ui.ErrorTextStyle.Render(m.errorMessage))
	}
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("MEETING SCRIBE")

	var conn string
	switch {
	case m.connected:
		conn = ui.ConnectedStyle.Render(" Connected")
	case m.reconnecting:
		conn = ui.ErrorTextStyle.Render(" Disconnected. Reconnecting...")
	default:
		conn = ui.DimStyle.Render(" Connecting...")
	}
	return title + conn + ui.DimStyle.Render(" "+m.opts.SocketURL)
}

func (m Model) renderStatusBar() string {
	var dot string
	switch m.state.Status {
	case StatusRecording:
		dot = ui.RecordingDotStyle.Render("● REC")
	case StatusStopped:
		dot = ui.StoppedDotStyle.Render("■ STOPPED")
	default:
		dot = ui.IdleDotStyle.Render("○ IDLE")
	}

	line := dot
	if m.opts.SourceName != "" {
		line += ui.DimStyle.Render("  source: " + m.opts.SourceName)
	}
	if m.state.Summary.Loading {
		line += "  " + ui.SpinnerStyle.Render("⟳ AI")
	}
	return line
}

func (m Model) renderPanels(width int) string {
	height := 12
	if m.height > 0 {
		height = max(5, m.height-8)
	}

	if width < 60 {
		return m.renderTranscript(width, height/2) + "\n" + m.renderSummary(width, height-height/2)
	}

	left := max(20, (width-3)/2)
	right := max(20, width-left-3)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderTranscript(left, height),
		ui.DividerStyle.Render(" │ "),
		m.renderSummary(right, height),
	)
}

func (m Model) renderTranscript(width, height int) string {
	lines := []string{ui.PanelTitleStyle.Render("LIVE TRANSCRIPT")}
	if m.state.Transcript == "" {
		lines = append(lines, ui.DimStyle.Render(msgNoTranscript))
	} else {
		body := wrapText(m.state.Transcript, width)
		// Keep the newest lines in view.
		if over := len(body) - (height - 1); over > 0 {
			body = body[over:]
		}
		lines = append(lines, body...)
	}
	return panel(lines, width, height)
}

func (m Model) renderSummary(width, height int) string {
	lines := []string{ui.PanelTitleStyle.Render("AI SUMMARY")}
	s := m.state.Summary
	switch {
	case s.Loading:
		lines = append(lines, ui.SpinnerStyle.Render(msgLoading))
	case s.Error != "":
		for _, l := range wrapText(s.Error, width) {
			lines = append(lines, ui.WarningStyle.Render(l))
		}
	case s.Text == "":
		lines = append(lines, ui.DimStyle.Render(msgNoSummary))
	default:
		lines = append(lines, wrapText(s.Text, width)...)
	}
	return panel(lines, width, height)
}

func (m Model) renderFooter() string {
	key := func(k, desc string, enabled bool) string {
		if !enabled {
			return ui.DisabledKeyStyle.Render(k + " " + desc)
		}
		return ui.FooterKeyStyle.Render(k) + ui.FooterDescStyle.Render(" "+desc)
	}

	parts := []string{
		key("s", "Start", m.connected && m.state.CanStart()),
		key("x", "Stop & summarize", m.connected && m.state.CanStop()),
		key("q", "Quit", true),
	}
	return strings.Join(parts, "  ")
}

// panel pads or cuts lines to exactly height rows of the given width.
func panel(lines []string, width, height int) string {
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return strings.Split(text, "\n")
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		lines = append(lines, current)
	}
	return lines
}
