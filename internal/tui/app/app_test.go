package app

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"portfolio-terminal/internal/constant"
	"portfolio-terminal/internal/tui/client"
	"portfolio-terminal/internal/tui/model"
	"portfolio-terminal/internal/tui/msg"
	"portfolio-terminal/pkg/store"
	"portfolio-terminal/pkg/terminal"
)

func newTestApp() Model {
	return New(client.New("http://api.test"))
}

func asModel(t *testing.T, tm tea.Model) Model {
	t.Helper()
	m, ok := tm.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want app.Model", tm)
	}
	return m
}

func submit(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	tm, cmd := m.submitInput(text)
	return asModel(t, tm), cmd
}

func feed(t *testing.T, m Model, v tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	tm, cmd := m.Update(v)
	return asModel(t, tm), cmd
}

func entriesOfKind(m Model, kind string) []model.Entry {
	var out []model.Entry
	for _, e := range m.history.Entries() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// enterChat drives the app into chat mode via a chat_start completion the way
// the server would deliver one.
func enterChat(t *testing.T, m Model, sessionID string) Model {
	t.Helper()
	m, _ = submit(t, m, "chat")
	m, _ = feed(t, m, msg.SubmitResult{Seq: m.nextSeq - 1, Res: terminal.ChatStart(constant.ChatStartText, sessionID)})
	if m.mode != store.ModeChat {
		t.Fatalf("mode = %v after chat_start, want %v", m.mode, store.ModeChat)
	}
	return m
}

// An early completion for a later request must wait for the earlier request
// to finish, so the transcript always reads in the order lines were typed.
func TestResponsesRenderInSubmissionOrder(t *testing.T) {
	m := newTestApp()
	m, _ = submit(t, m, "help")
	m, _ = submit(t, m, "about")
	if m.nextSeq != 2 {
		t.Fatalf("nextSeq = %d after two submissions, want 2", m.nextSeq)
	}

	// The second request completes first. Nothing renders yet.
	m, _ = feed(t, m, msg.SubmitResult{Seq: 1, Res: terminal.Text("about output")})
	if got := entriesOfKind(m, string(terminal.KindText)); len(got) != 0 {
		t.Fatalf("early completion rendered %d entries, want 0 until its turn", len(got))
	}
	if !m.busy.Active() {
		t.Error("busy indicator stopped while a request is still outstanding")
	}
	if m.state != StateBusy {
		t.Errorf("state = %v, want %v", m.state, StateBusy)
	}

	// The first completes. Both render, in the order they were typed.
	m, _ = feed(t, m, msg.SubmitResult{Seq: 0, Res: terminal.Text("help output")})
	got := entriesOfKind(m, string(terminal.KindText))
	if len(got) != 2 {
		t.Fatalf("rendered %d text entries, want 2", len(got))
	}
	if got[0].Text != "help output" || got[1].Text != "about output" {
		t.Errorf("responses rendered as [%q, %q], want submission order [%q, %q]",
			got[0].Text, got[1].Text, "help output", "about output")
	}
	if m.busy.Active() {
		t.Error("busy indicator still active after all requests completed")
	}
	if m.state != StateIdle {
		t.Errorf("state = %v, want %v", m.state, StateIdle)
	}
}

func TestTransportErrorRendersNetworkLine(t *testing.T) {
	m := newTestApp()
	m, _ = submit(t, m, "help")

	m, _ = feed(t, m, msg.SubmitResult{Seq: 0, Err: errors.New("dial tcp: connection refused")})

	errs := entriesOfKind(m, string(terminal.KindError))
	if len(errs) != 1 {
		t.Fatalf("rendered %d error entries, want 1", len(errs))
	}
	if !strings.Contains(errs[0].Text, networkErrorText) {
		t.Errorf("error entry = %q, want it to contain %q", errs[0].Text, networkErrorText)
	}
	if m.busy.Active() {
		t.Error("busy indicator still active after a failed request")
	}
	if m.mode != store.ModeCommand {
		t.Errorf("mode = %v, want %v", m.mode, store.ModeCommand)
	}
}

func TestTransportErrorKeepsChatMode(t *testing.T) {
	m := newTestApp()
	m = enterChat(t, m, "sess-1")

	m, _ = submit(t, m, "what does Ben do?")
	m, _ = feed(t, m, msg.SubmitResult{Seq: m.nextSeq - 1, Err: errors.New("timeout")})

	if m.mode != store.ModeChat {
		t.Errorf("mode = %v after transport error, want %v: a failed send must not eject the user from chat", m.mode, store.ModeChat)
	}
	if got := m.input.Prompt(); got != model.PromptChat {
		t.Errorf("prompt = %q, want %q", got, model.PromptChat)
	}
}

func TestLocalChatExit(t *testing.T) {
	m := newTestApp()
	m = enterChat(t, m, "sess-1")
	seqBefore := m.nextSeq

	m, _ = submit(t, m, "exit")

	if m.nextSeq != seqBefore {
		t.Errorf("nextSeq = %d, want %d: exit words resolve locally without a request", m.nextSeq, seqBefore)
	}
	if m.mode != store.ModeCommand {
		t.Errorf("mode = %v, want %v", m.mode, store.ModeCommand)
	}
	if got := m.input.Prompt(); got != model.PromptCommand {
		t.Errorf("prompt = %q, want %q", got, model.PromptCommand)
	}
	ends := entriesOfKind(m, string(terminal.KindChatEnd))
	if len(ends) != 1 || ends[0].Text != constant.ChatEndText {
		t.Errorf("chat_end entries = %v, want one with %q", ends, constant.ChatEndText)
	}
	if m.state != StateIdle {
		t.Errorf("state = %v, want %v", m.state, StateIdle)
	}
}

func TestLocalChatExitAcceptsEndWord(t *testing.T) {
	m := newTestApp()
	m = enterChat(t, m, "sess-1")

	m, _ = submit(t, m, "  End  ")

	if m.mode != store.ModeCommand {
		t.Errorf("mode = %v, want %v: exit words are case and space insensitive", m.mode, store.ModeCommand)
	}
}

func TestSessionIDTracksResponses(t *testing.T) {
	m := newTestApp()
	m = enterChat(t, m, "sess-1")
	if m.sessionID != "sess-1" {
		t.Fatalf("sessionID = %q after chat_start, want %q", m.sessionID, "sess-1")
	}

	// A reply carrying a fresh id (say, after server-side expiry) wins.
	m, _ = submit(t, m, "hello")
	m, _ = feed(t, m, msg.SubmitResult{Seq: m.nextSeq - 1, Res: terminal.AI("Hi!", "sess-2")})
	if m.sessionID != "sess-2" {
		t.Errorf("sessionID = %q, want %q", m.sessionID, "sess-2")
	}
}

func TestRateLimitErrorKeepsChatMode(t *testing.T) {
	m := newTestApp()
	m = enterChat(t, m, "sess-1")

	m, _ = submit(t, m, "another question")
	limited := terminal.Response{Kind: terminal.KindError, Output: constant.ChatBurstLimitText, SessionID: "sess-1"}
	m, _ = feed(t, m, msg.SubmitResult{Seq: m.nextSeq - 1, Res: limited})

	if m.mode != store.ModeChat {
		t.Errorf("mode = %v, want %v: a rate limit renders as an error but keeps the session", m.mode, store.ModeChat)
	}
	errs := entriesOfKind(m, string(terminal.KindError))
	if len(errs) != 1 || !strings.Contains(errs[0].Text, constant.ChatBurstLimitText) {
		t.Errorf("error entries = %v, want one containing %q", errs, constant.ChatBurstLimitText)
	}
}

func TestServerChatEndFlipsPromptBack(t *testing.T) {
	m := newTestApp()
	m = enterChat(t, m, "sess-1")

	m, _ = submit(t, m, "hello?")
	m, _ = feed(t, m, msg.SubmitResult{Seq: m.nextSeq - 1, Res: terminal.ChatEnd(constant.ChatUnavailableText)})

	if m.mode != store.ModeCommand {
		t.Errorf("mode = %v, want %v", m.mode, store.ModeCommand)
	}
	if got := m.input.Prompt(); got != model.PromptCommand {
		t.Errorf("prompt = %q, want %q", got, model.PromptCommand)
	}
}

func TestClearResponseWipesTranscript(t *testing.T) {
	m := newTestApp()
	m, _ = submit(t, m, "help")
	m, _ = feed(t, m, msg.SubmitResult{Seq: 0, Res: terminal.Text("help output")})
	m, _ = submit(t, m, "clear")

	m, _ = feed(t, m, msg.SubmitResult{Seq: 1, Res: terminal.Clear()})

	if got := len(m.history.Entries()); got != 0 {
		t.Errorf("transcript has %d entries after clear, want 0", got)
	}
	if m.state != StateIdle {
		t.Errorf("state = %v, want %v", m.state, StateIdle)
	}
}

func TestDownloadOpensBrowser(t *testing.T) {
	m := newTestApp()
	var opened string
	m.browse = func(url string) error {
		opened = url
		return nil
	}
	m, _ = submit(t, m, "cv")

	m, cmd := feed(t, m, msg.SubmitResult{Seq: 0, Res: terminal.Download(constant.CVDownloadText, "/download/cv")})
	if cmd == nil {
		t.Fatal("download response produced no browser command")
	}

	result := cmd()
	browsed, ok := result.(msg.BrowserOpened)
	if !ok {
		t.Fatalf("command returned %T, want msg.BrowserOpened", result)
	}
	if browsed.Err != nil {
		t.Errorf("BrowserOpened.Err = %v, want nil", browsed.Err)
	}
	if want := "http://api.test/download/cv"; opened != want {
		t.Errorf("browser opened %q, want %q", opened, want)
	}
	if got := entriesOfKind(m, string(terminal.KindDownload)); len(got) != 1 {
		t.Errorf("rendered %d download entries, want 1", len(got))
	}
}

func TestDownloadBrowserFailureAddsNotice(t *testing.T) {
	m := newTestApp()
	before := len(entriesOfKind(m, model.EntryNotice))

	m, _ = feed(t, m, msg.BrowserOpened{URL: "http://api.test/download/cv", Err: errors.New("no display")})

	notices := entriesOfKind(m, model.EntryNotice)
	if len(notices) != before+1 {
		t.Fatalf("notice entries = %d, want %d", len(notices), before+1)
	}
	last := notices[len(notices)-1]
	if !strings.Contains(last.Text, "http://api.test/download/cv") {
		t.Errorf("fallback notice = %q, want it to name the download URL", last.Text)
	}
}

func TestHealthCheckResults(t *testing.T) {
	t.Run("reachable server adds a notice", func(t *testing.T) {
		m := newTestApp()
		m, _ = feed(t, m, msg.HealthResult{Status: "ok", Uptime: "5m0s"})

		notices := entriesOfKind(m, model.EntryNotice)
		last := notices[len(notices)-1]
		if !strings.Contains(last.Text, "Connected to http://api.test") {
			t.Errorf("notice = %q, want it to contain %q", last.Text, "Connected to http://api.test")
		}
	})

	t.Run("unreachable server adds an error", func(t *testing.T) {
		m := newTestApp()
		m, _ = feed(t, m, msg.HealthResult{Err: errors.New("connection refused")})

		errs := entriesOfKind(m, string(terminal.KindError))
		if len(errs) != 1 || !strings.Contains(errs[0].Text, "Can't reach the portfolio server") {
			t.Errorf("error entries = %v, want one naming the unreachable server", errs)
		}
	})
}

func TestEmptySubmitSendsNothing(t *testing.T) {
	m := newTestApp()
	before := len(m.history.Entries())

	m, cmd := submit(t, m, "   ")

	if cmd != nil {
		t.Error("blank submission produced a command, want none")
	}
	if m.nextSeq != 0 {
		t.Errorf("nextSeq = %d, want 0", m.nextSeq)
	}
	entries := m.history.Entries()
	if len(entries) != before+1 || entries[len(entries)-1].Kind != model.EntryInput {
		t.Errorf("blank submission should only echo the prompt line, got %v", entries[before:])
	}
}

func TestBusyLabelPerMode(t *testing.T) {
	m := newTestApp()
	m, _ = submit(t, m, "help")
	if view := m.busy.View(); !strings.Contains(view, model.BusyCommandLabel) {
		t.Errorf("busy view = %q, want it to contain %q", view, model.BusyCommandLabel)
	}
	m, _ = feed(t, m, msg.SubmitResult{Seq: 0, Res: terminal.Text("ok")})

	m = enterChat(t, m, "sess-1")
	m, _ = submit(t, m, "hello")
	if view := m.busy.View(); !strings.Contains(view, model.BusyChatLabel) {
		t.Errorf("busy view = %q, want it to contain %q", view, model.BusyChatLabel)
	}
}

func TestEnterSubmitsTypedCommand(t *testing.T) {
	m := newTestApp()
	m.input.Focus()

	m, _ = feed(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("help")})
	m, _ = feed(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	inputs := entriesOfKind(m, model.EntryInput)
	if len(inputs) != 1 || !strings.Contains(inputs[0].Text, "help") {
		t.Errorf("input echoes = %v, want one containing %q", inputs, "help")
	}
	if m.state != StateBusy {
		t.Errorf("state = %v after enter, want %v", m.state, StateBusy)
	}
	if m.nextSeq != 1 {
		t.Errorf("nextSeq = %d, want 1", m.nextSeq)
	}
	if got := m.input.Value(); got != "" {
		t.Errorf("input value = %q after submit, want empty", got)
	}
}

func TestCtrlCQuitNeedsConfirmation(t *testing.T) {
	m := newTestApp()

	m, cmd := feed(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd != nil {
		t.Fatal("first ctrl+c quit immediately, want a confirmation prompt")
	}
	if !strings.Contains(m.View(), "Press Ctrl+C again to quit") {
		t.Error("confirmation hint missing from the view")
	}

	m, cmd = feed(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("second ctrl+c produced no command, want quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("second ctrl+c did not quit")
	}
}

func TestCtrlCAnyOtherKeyStays(t *testing.T) {
	m := newTestApp()
	m.input.Focus()

	m, _ = feed(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	m, cmd := feed(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})

	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Fatal("a non ctrl+c key quit the app")
		}
	}
	if strings.Contains(m.View(), "Press Ctrl+C again to quit") {
		t.Error("confirmation hint should clear after any other key")
	}
}

func TestCtrlLClearsScreen(t *testing.T) {
	m := newTestApp()
	m, _ = submit(t, m, "help")
	m, _ = feed(t, m, msg.SubmitResult{Seq: 0, Res: terminal.Text("help output")})

	m, _ = feed(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})

	if got := len(m.history.Entries()); got != 0 {
		t.Errorf("transcript has %d entries after ctrl+l, want 0", got)
	}
}
