package model

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"portfolio-terminal/internal/tui/style"
	"portfolio-terminal/pkg/store"
)

// Prompt labels, also used by the transcript to echo submitted input.
const (
	PromptCommand = "ben@portfolio:~$"
	PromptChat    = "chat>"
)

const (
	placeholderCommand = "Type 'help' to see available commands"
	placeholderChat    = "Ask about Ben, or type 'exit' to leave chat"
)

// InputModel is the prompt line with history navigation and command
// autocomplete.
//
// History navigation:
//   - Up arrow: walk backwards through submitted inputs
//   - Down arrow: walk forwards (towards the present)
//
// Autocomplete:
//   - Tab cycles through matching command names; disabled in chat mode,
//     where input is free text
type InputModel struct {
	ti         textinput.Model
	mode       store.Mode
	history    []string
	historyIdx int // points one past the last entry when not navigating

	commands   []string // registered command names, e.g. ["about", "chat"]
	tabIdx     int      // current autocomplete cursor (-1 = none)
	tabMatches []string // current autocomplete candidate list
}

// NewInput returns a ready-to-use InputModel in command mode. The field is
// focused from the start; the prompt is always the active element.
func NewInput(commands []string) InputModel {
	ti := textinput.New()
	ti.Placeholder = placeholderCommand
	ti.CharLimit = 512
	ti.Focus()

	return InputModel{
		ti:         ti,
		mode:       store.ModeCommand,
		commands:   commands,
		historyIdx: 0,
		tabIdx:     -1,
	}
}

// SetMode flips the prompt label and placeholder between command and chat
// mode.
func (m *InputModel) SetMode(mode store.Mode) {
	m.mode = mode
	if mode == store.ModeChat {
		m.ti.Placeholder = placeholderChat
	} else {
		m.ti.Placeholder = placeholderCommand
	}
	m.resetTab()
}

// Mode returns the mode the prompt currently renders for.
func (m InputModel) Mode() store.Mode {
	return m.mode
}

// Prompt returns the unstyled prompt label for the current mode.
func (m InputModel) Prompt() string {
	if m.mode == store.ModeChat {
		return PromptChat
	}
	return PromptCommand
}

// Focus gives keyboard focus to the input.
func (m *InputModel) Focus() tea.Cmd {
	return m.ti.Focus()
}

// Value returns the current raw text in the input field.
func (m InputModel) Value() string {
	return m.ti.Value()
}

// Reset clears the input field and resets autocomplete state.
func (m *InputModel) Reset() {
	m.historyIdx = len(m.history)
	m.ti.SetValue("")
	m.resetTab()
}

// Submit appends text to history and then clears the field.
func (m *InputModel) Submit(text string) {
	if text != "" {
		m.history = append(m.history, text)
	}
	m.Reset()
}

func (m *InputModel) resetTab() {
	m.tabIdx = -1
	m.tabMatches = nil
}

// Update intercepts Up/Down for history and Tab for autocomplete before
// delegating remaining keys to the underlying textinput.
func (m InputModel) Update(msg tea.Msg) (InputModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyUp:
			m = m.navigateHistory(-1)
			return m, nil

		case tea.KeyDown:
			m = m.navigateHistory(+1)
			return m, nil

		case tea.KeyTab:
			m = m.cycleComplete()
			return m, nil

		default:
			// Any other key resets tab state so the next Tab starts fresh.
			m.resetTab()
		}
	}

	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

// View renders the prompt label followed by the textinput view.
func (m InputModel) View() string {
	if m.mode == store.ModeChat {
		return style.ChatPrompt.Render(PromptChat+" ") + m.ti.View()
	}
	return style.CommandPrompt.Render(PromptCommand+" ") + m.ti.View()
}

// navigateHistory moves the history cursor by delta (-1 = older, +1 = newer).
func (m InputModel) navigateHistory(delta int) InputModel {
	if len(m.history) == 0 {
		return m
	}

	next := m.historyIdx + delta

	switch {
	case next < 0:
		next = 0
	case next > len(m.history):
		next = len(m.history)
	}

	m.historyIdx = next

	if next == len(m.history) {
		// Moved past the newest entry; restore a blank field.
		m.ti.SetValue("")
	} else {
		m.ti.SetValue(m.history[next])
		m.ti.CursorEnd()
	}

	return m
}

// cycleComplete advances through autocomplete candidates. Chat-mode input is
// free text, so completion only runs in command mode on a non-empty buffer.
func (m InputModel) cycleComplete() InputModel {
	if m.mode == store.ModeChat {
		return m
	}
	current := strings.ToLower(m.ti.Value())
	if current == "" {
		return m
	}

	// Build the candidate list on the first Tab press.
	if m.tabIdx == -1 || m.tabMatches == nil {
		m.tabMatches = matchCommands(m.commands, current)
		if len(m.tabMatches) == 0 {
			return m
		}
		m.tabIdx = 0
	} else {
		m.tabIdx = (m.tabIdx + 1) % len(m.tabMatches)
	}

	m.ti.SetValue(m.tabMatches[m.tabIdx])
	m.ti.CursorEnd()
	return m
}

// matchCommands returns all commands that have prefix as a prefix.
func matchCommands(commands []string, prefix string) []string {
	var out []string
	for _, c := range commands {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}
