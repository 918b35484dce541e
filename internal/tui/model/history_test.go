package model

import (
	"strings"
	"testing"

	"portfolio-terminal/pkg/terminal"
)

func TestHistoryAddResponseText(t *testing.T) {
	h := NewHistory(80, 24)
	h.AddResponse(terminal.Text("plain output"))

	entries := h.Entries()
	if len(entries) != 1 {
		t.Fatalf("Entries() has %d entries, want 1", len(entries))
	}
	if entries[0].Kind != string(terminal.KindText) {
		t.Errorf("entry kind = %q, want %q", entries[0].Kind, terminal.KindText)
	}
	// Plain text entries carry no styling, so the text survives verbatim.
	if entries[0].Text != "plain output" {
		t.Errorf("entry text = %q, want %q", entries[0].Text, "plain output")
	}
}

func TestHistoryAddResponseLinkifiesText(t *testing.T) {
	h := NewHistory(80, 24)
	h.AddResponse(terminal.Text("repo: https://example.com/repo"))

	entries := h.Entries()
	if !strings.Contains(entries[0].Text, "\x1b]8;;https://example.com/repo\x1b\\") {
		t.Errorf("url in text output was not linkified: %q", entries[0].Text)
	}
}

func TestHistoryAddResponseStripsControlBytes(t *testing.T) {
	h := NewHistory(80, 24)
	h.AddResponse(terminal.Text("safe\x1b[31m injected"))

	entries := h.Entries()
	if strings.Contains(entries[0].Text, "\x1b[31m") {
		t.Errorf("server output reached the transcript unescaped: %q", entries[0].Text)
	}
	if !strings.Contains(entries[0].Text, "safe injected") {
		t.Errorf("escaping lost the surrounding text: %q", entries[0].Text)
	}
}

func TestHistoryAddResponseError(t *testing.T) {
	h := NewHistory(80, 24)
	h.AddResponse(terminal.Error("command not found: frobnicate"))

	entries := h.Entries()
	if entries[0].Kind != string(terminal.KindError) {
		t.Errorf("entry kind = %q, want %q", entries[0].Kind, terminal.KindError)
	}
	if !strings.Contains(entries[0].Text, "command not found: frobnicate") {
		t.Errorf("error text missing from entry: %q", entries[0].Text)
	}
}

func TestHistoryAddResponseAI(t *testing.T) {
	h := NewHistory(80, 24)
	h.AddResponse(terminal.AI("Ben has eight years of experience.", "sess-1"))

	entries := h.Entries()
	if entries[0].Kind != string(terminal.KindAI) {
		t.Errorf("entry kind = %q, want %q", entries[0].Kind, terminal.KindAI)
	}
	if !strings.Contains(entries[0].Text, "assistant") {
		t.Errorf("assistant reply is missing its label: %q", entries[0].Text)
	}
	if !strings.Contains(entries[0].Text, "Ben has eight years of experience.") {
		t.Errorf("assistant reply text missing from entry: %q", entries[0].Text)
	}
}

func TestHistoryAddInputEscapes(t *testing.T) {
	h := NewHistory(80, 24)
	h.AddInput("ben@portfolio:~$", "help\x1b[2J")

	entries := h.Entries()
	if entries[0].Kind != EntryInput {
		t.Errorf("entry kind = %q, want %q", entries[0].Kind, EntryInput)
	}
	if strings.Contains(entries[0].Text, "\x1b[2J") {
		t.Errorf("input echo kept a control sequence: %q", entries[0].Text)
	}
	if !strings.Contains(entries[0].Text, "help") {
		t.Errorf("input echo lost the typed text: %q", entries[0].Text)
	}
}

func TestHistoryAddBannerVerbatim(t *testing.T) {
	h := NewHistory(80, 24)
	h.AddBanner("\x1b[1mWelcome\x1b[0m")

	entries := h.Entries()
	if entries[0].Kind != EntryNotice {
		t.Errorf("entry kind = %q, want %q", entries[0].Kind, EntryNotice)
	}
	if entries[0].Text != "\x1b[1mWelcome\x1b[0m" {
		t.Errorf("banner text was altered: %q", entries[0].Text)
	}
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory(80, 24)
	h.AddInput("$", "clear")
	h.AddResponse(terminal.Text("something"))
	h.Clear()

	if got := len(h.Entries()); got != 0 {
		t.Errorf("Entries() has %d entries after Clear, want 0", got)
	}
}

func TestHistoryEntriesReturnsCopy(t *testing.T) {
	h := NewHistory(80, 24)
	h.AddResponse(terminal.Text("original"))

	entries := h.Entries()
	entries[0].Text = "mutated"

	if got := h.Entries()[0].Text; got != "original" {
		t.Errorf("mutating the returned slice leaked into the model: %q", got)
	}
}

func TestHistoryRenderSeparatesInputBlocks(t *testing.T) {
	h := NewHistory(80, 24)
	h.AddResponse(terminal.Text("first"))
	h.AddResponse(terminal.Text("second"))
	h.AddInput("$", "next command")

	out := h.renderAll()
	if !strings.Contains(out, "first\nsecond") {
		t.Errorf("consecutive outputs should be single spaced:\n%q", out)
	}
	// A blank line precedes each input echo after the first entry.
	if !strings.Contains(out, "second\n\n") {
		t.Errorf("input echo should start a new block:\n%q", out)
	}
}
