package model

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"portfolio-terminal/pkg/store"
)

func testCommands() []string {
	return []string{"about", "chat", "clear", "contact", "cv", "exit", "help", "msg", "projects", "stats"}
}

func typeText(t *testing.T, in InputModel, text string) InputModel {
	t.Helper()
	in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return in
}

func pressKey(in InputModel, key tea.KeyType) InputModel {
	in, _ = in.Update(tea.KeyMsg{Type: key})
	return in
}

func TestInputSubmitRecordsHistory(t *testing.T) {
	in := NewInput(testCommands())
	in.Focus()

	in = typeText(t, in, "help")
	if got := in.Value(); got != "help" {
		t.Fatalf("Value() = %q after typing, want %q", got, "help")
	}

	in.Submit("help")
	if got := in.Value(); got != "" {
		t.Errorf("Value() = %q after Submit, want empty", got)
	}

	in = pressKey(in, tea.KeyUp)
	if got := in.Value(); got != "help" {
		t.Errorf("Value() = %q after up arrow, want %q", got, "help")
	}
}

func TestInputSubmitSkipsEmpty(t *testing.T) {
	in := NewInput(testCommands())
	in.Focus()

	in.Submit("")
	in = pressKey(in, tea.KeyUp)
	if got := in.Value(); got != "" {
		t.Errorf("Value() = %q, want empty: blank submissions should not enter history", got)
	}
}

func TestInputHistoryNavigation(t *testing.T) {
	in := NewInput(testCommands())
	in.Focus()
	in.Submit("help")
	in.Submit("about")

	steps := []struct {
		name string
		key  tea.KeyType
		want string
	}{
		{"up to newest", tea.KeyUp, "about"},
		{"up to oldest", tea.KeyUp, "help"},
		{"up clamps at oldest", tea.KeyUp, "help"},
		{"down to newest", tea.KeyDown, "about"},
		{"down past newest blanks", tea.KeyDown, ""},
		{"down clamps at blank", tea.KeyDown, ""},
	}

	for _, s := range steps {
		in = pressKey(in, s.key)
		if got := in.Value(); got != s.want {
			t.Errorf("%s: Value() = %q, want %q", s.name, got, s.want)
		}
	}
}

func TestInputTabCyclesMatches(t *testing.T) {
	in := NewInput(testCommands())
	in.Focus()
	in = typeText(t, in, "c")

	// "c" matches chat, clear, contact, cv in registration order; a fifth
	// press wraps around.
	for _, want := range []string{"chat", "clear", "contact", "cv", "chat"} {
		in = pressKey(in, tea.KeyTab)
		if got := in.Value(); got != want {
			t.Fatalf("Value() = %q after tab, want %q", got, want)
		}
	}
}

func TestInputTabNoMatch(t *testing.T) {
	in := NewInput(testCommands())
	in.Focus()
	in = typeText(t, in, "zz")

	in = pressKey(in, tea.KeyTab)
	if got := in.Value(); got != "zz" {
		t.Errorf("Value() = %q, want %q: tab with no match should leave the buffer alone", got, "zz")
	}
}

func TestInputTabEmptyBuffer(t *testing.T) {
	in := NewInput(testCommands())
	in.Focus()

	in = pressKey(in, tea.KeyTab)
	if got := in.Value(); got != "" {
		t.Errorf("Value() = %q, want empty: tab on an empty buffer should do nothing", got)
	}
}

func TestInputTabDisabledInChatMode(t *testing.T) {
	in := NewInput(testCommands())
	in.Focus()
	in.SetMode(store.ModeChat)
	in = typeText(t, in, "c")

	in = pressKey(in, tea.KeyTab)
	if got := in.Value(); got != "c" {
		t.Errorf("Value() = %q, want %q: chat input is free text", got, "c")
	}
}

func TestInputTypingResetsTabCycle(t *testing.T) {
	in := NewInput(testCommands())
	in.Focus()
	in = typeText(t, in, "c")
	in = pressKey(in, tea.KeyTab)
	if got := in.Value(); got != "chat" {
		t.Fatalf("Value() = %q after first tab, want %q", got, "chat")
	}

	// Typing invalidates the candidate list; the next Tab matches against the
	// new buffer instead of resuming the old cycle.
	in = typeText(t, in, "x")
	in = pressKey(in, tea.KeyTab)
	if got := in.Value(); got != "chatx" {
		t.Errorf("Value() = %q, want %q: no command matches the new prefix", got, "chatx")
	}
}

func TestInputPromptPerMode(t *testing.T) {
	in := NewInput(testCommands())

	if got := in.Prompt(); got != PromptCommand {
		t.Errorf("Prompt() = %q, want %q", got, PromptCommand)
	}
	if got := in.Mode(); got != store.ModeCommand {
		t.Errorf("Mode() = %q, want %q", got, store.ModeCommand)
	}

	in.SetMode(store.ModeChat)
	if got := in.Prompt(); got != PromptChat {
		t.Errorf("Prompt() = %q after SetMode, want %q", got, PromptChat)
	}
	if got := in.Mode(); got != store.ModeChat {
		t.Errorf("Mode() = %q after SetMode, want %q", got, store.ModeChat)
	}
}
