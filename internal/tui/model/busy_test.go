package model

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
)

func TestBusyStartStop(t *testing.T) {
	b := NewBusy()
	if b.Active() {
		t.Fatal("Active() = true before Start")
	}
	if got := b.View(); got != "" {
		t.Errorf("View() = %q while idle, want empty", got)
	}

	b.Start(BusyChatLabel)
	if !b.Active() {
		t.Error("Active() = false after Start")
	}
	view := b.View()
	if !strings.Contains(view, BusyChatLabel+"…") {
		t.Errorf("View() = %q, want it to contain %q", view, BusyChatLabel+"…")
	}

	b.Stop()
	if b.Active() {
		t.Error("Active() = true after Stop")
	}
	if got := b.View(); got != "" {
		t.Errorf("View() = %q after Stop, want empty", got)
	}
}

func TestBusySwallowsTicksWhenStopped(t *testing.T) {
	b := NewBusy()

	_, cmd := b.Update(spinner.TickMsg{})
	if cmd != nil {
		t.Error("Update produced a command while stopped, the animation loop should end")
	}
}

func TestBusyRelabel(t *testing.T) {
	b := NewBusy()
	b.Start(BusyCommandLabel)
	b.Start(BusyChatLabel)

	if view := b.View(); !strings.Contains(view, BusyChatLabel) {
		t.Errorf("View() = %q, want the most recent label", view)
	}
}
