package model

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"portfolio-terminal/internal/tui/render"
	"portfolio-terminal/internal/tui/style"
	"portfolio-terminal/pkg/terminal"
)

// Entry kinds beyond the server response kinds.
const (
	EntryInput  = "input"
	EntryNotice = "notice"
)

// Entry is one rendered line block in the terminal transcript.
type Entry struct {
	Kind string
	Text string
}

// HistoryModel is a scrollable viewport that displays the terminal
// transcript: input echoes, command output, errors, and assistant replies.
type HistoryModel struct {
	vp      viewport.Model
	entries []Entry
	width   int
	height  int
}

// NewHistory constructs a HistoryModel sized to width x height.
func NewHistory(width, height int) HistoryModel {
	vp := viewport.New(width, height)
	vp.SetContent("")
	return HistoryModel{
		vp:     vp,
		width:  width,
		height: height,
	}
}

// AddInput echoes a submitted line under its prompt label.
func (m *HistoryModel) AddInput(prompt, text string) {
	echo := prompt + " " + render.EscapeControl(text)
	m.entries = append(m.entries, Entry{Kind: EntryInput, Text: style.InputEcho.Render(echo)})
	m.refresh()
}

// AddResponse appends a kind-tagged server response. Output passes through
// control-byte escaping first, then linkification; assistant replies render
// as markdown behind a distinct label.
func (m *HistoryModel) AddResponse(res terminal.Response) {
	body := render.EscapeControl(res.Output)
	var text string
	switch res.Kind {
	case terminal.KindAI:
		text = style.AILabel.Render("🤖 assistant") + "\n" + render.Markdown(body)
	case terminal.KindError:
		text = style.ErrorText.Render(render.Linkify(body))
	default:
		text = render.Linkify(body)
	}
	m.entries = append(m.entries, Entry{Kind: string(res.Kind), Text: text})
	m.refresh()
}

// AddNotice appends a dimmed client-side status line.
func (m *HistoryModel) AddNotice(text string) {
	m.entries = append(m.entries, Entry{Kind: EntryNotice, Text: style.Faint.Render(render.EscapeControl(text))})
	m.refresh()
}

// AddBanner appends pre-styled client-side text verbatim. Only trusted local
// strings belong here; server text goes through AddResponse.
func (m *HistoryModel) AddBanner(text string) {
	m.entries = append(m.entries, Entry{Kind: EntryNotice, Text: text})
	m.refresh()
}

// Clear wipes the transcript.
func (m *HistoryModel) Clear() {
	m.entries = nil
	m.refresh()
}

// Entries returns a copy of the transcript entries in render order.
func (m HistoryModel) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// SetSize resizes the underlying viewport.
func (m *HistoryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.vp.Width = width
	m.vp.Height = height
	m.refresh()
}

// Update forwards keyboard and mouse events to the viewport.
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// View returns the rendered viewport content.
func (m HistoryModel) View() string {
	return m.vp.View()
}

// refresh re-renders all entries into the viewport and follows the bottom.
func (m *HistoryModel) refresh() {
	m.vp.SetContent(m.renderAll())
	m.vp.GotoBottom()
}

// renderAll builds the full transcript string. A blank line precedes each
// input echo so command blocks read like a shell session.
func (m *HistoryModel) renderAll() string {
	var sb strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			sb.WriteString("\n")
			if e.Kind == EntryInput {
				sb.WriteString("\n")
			}
		}
		sb.WriteString(e.Text)
	}
	return sb.String()
}
