package model

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"portfolio-terminal/internal/tui/style"
)

// Busy labels shown next to the spinner while a request is in flight.
const (
	BusyCommandLabel = "Working on it"
	BusyChatLabel    = "Ben is thinking"
)

// BusyModel renders the animated in-flight indicator: a glyph cycle on a
// fixed interval plus a contextual label.
type BusyModel struct {
	sp     spinner.Model
	active bool
	label  string
}

// NewBusy constructs a BusyModel with a braille-dot spinner.
func NewBusy() BusyModel {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = style.SpinnerStyle
	return BusyModel{sp: sp}
}

// Start shows the indicator with the given label. Call Tick once after the
// first Start to begin the animation.
func (m *BusyModel) Start(label string) {
	m.active = true
	m.label = label
}

// Stop hides the indicator.
func (m *BusyModel) Stop() {
	m.active = false
}

// Active reports whether the indicator is showing.
func (m BusyModel) Active() bool {
	return m.active
}

// Tick starts the spinner's frame timer.
func (m BusyModel) Tick() tea.Cmd {
	return m.sp.Tick
}

// Update advances spinner frames while active; when stopped it swallows the
// tick so the animation loop ends.
func (m BusyModel) Update(msg tea.Msg) (BusyModel, tea.Cmd) {
	if !m.active {
		return m, nil
	}
	var cmd tea.Cmd
	m.sp, cmd = m.sp.Update(msg)
	return m, cmd
}

// View renders the spinner frame and label, or nothing when idle.
func (m BusyModel) View() string {
	if !m.active {
		return ""
	}
	return m.sp.View() + " " + style.BusyLabel.Render(m.label+"…")
}
