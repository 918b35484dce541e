// Package app wires the terminal TUI together: transcript, prompt, busy
// indicator, and the transport round trips.
package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"portfolio-terminal/internal/constant"
	"portfolio-terminal/internal/tui/client"
	"portfolio-terminal/internal/tui/model"
	"portfolio-terminal/internal/tui/msg"
	"portfolio-terminal/internal/tui/style"
	chatstate "portfolio-terminal/pkg/chat/state"
	"portfolio-terminal/pkg/store"
	"portfolio-terminal/pkg/terminal"
)

// networkErrorText renders for every transport failure: a thrown request or
// a non-OK status outside the chat 429 contract.
const networkErrorText = "Network error. Check your connection and try again."

// commandNames feeds tab completion. It mirrors the server registry; an
// unknown name still round-trips and renders the server's error.
var commandNames = []string{"about", "chat", "clear", "contact", "cv", "exit", "help", "msg", "projects", "stats"}

type Model struct {
	history model.HistoryModel
	input   model.InputModel
	busy    model.BusyModel
	state   State
	mode    store.Mode
	client  *client.Client
	browse  func(string) error

	sessionID string

	// Responses render strictly in submission order. nextSeq is assigned
	// when a request leaves, renderSeq is the next one allowed onto the
	// transcript, and completions that arrive early wait in pending.
	nextSeq   int
	renderSeq int
	pending   map[int]msg.SubmitResult

	keys        KeyMap
	width       int
	height      int
	confirmQuit bool
}

func New(c *client.Client) Model {
	m := Model{
		history: model.NewHistory(80, 22),
		input:   model.NewInput(commandNames),
		busy:    model.NewBusy(),
		state:   StateIdle,
		mode:    store.ModeCommand,
		client:  c,
		browse:  openURL,
		pending: make(map[int]msg.SubmitResult),
		keys:    DefaultKeyMap(),
		width:   80,
		height:  24,
	}
	m.history.AddBanner(welcomeBanner())
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.checkHealth(), m.input.Focus(), tea.WindowSize())
}

func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := rawMsg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.history.SetSize(v.Width, m.historyHeight())
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(v)
	case msg.HealthResult:
		return m.handleHealth(v)
	case msg.SubmitResult:
		return m.handleResult(v)
	case msg.BrowserOpened:
		if v.Err != nil {
			m.history.AddNotice("Couldn't open your browser. Grab the file at " + v.URL)
		}
		return m, nil
	}

	// Everything else is animation plumbing: spinner frames, cursor blinks.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.busy, cmd = m.busy.Update(rawMsg)
	cmds = append(cmds, cmd)
	m.input, cmd = m.input.Update(rawMsg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	sections := []string{
		m.history.View(),
		m.busy.View(),
		m.input.View(),
	}
	if m.confirmQuit {
		sections = append(sections, style.Hint.Render("Press Ctrl+C again to quit, or any other key to stay."))
	}
	return strings.Join(sections, "\n")
}

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmQuit {
		if key.Matches(k, m.keys.Quit) {
			return m, tea.Quit
		}
		m.confirmQuit = false
		return m, nil
	}

	switch {
	case key.Matches(k, m.keys.Quit):
		if m.input.Value() == "" {
			m.confirmQuit = true
			return m, nil
		}
		m.input.Reset()
		return m, nil
	case key.Matches(k, m.keys.QuitEOF):
		if m.input.Value() == "" {
			return m, tea.Quit
		}
		return m, nil
	case key.Matches(k, m.keys.Escape), key.Matches(k, m.keys.ClearInput):
		m.input.Reset()
		return m, nil
	case key.Matches(k, m.keys.ClearScreen):
		m.history.Clear()
		return m, nil
	case key.Matches(k, m.keys.PageUp), key.Matches(k, m.keys.PageDown):
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(k)
		return m, cmd
	case key.Matches(k, m.keys.Submit):
		return m.submitInput(m.input.Value())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(k)
	return m, cmd
}

// submitInput echoes the line and routes it. The in-chat exit words flip
// mode locally without a round trip; everything else becomes a sequenced
// request. Submitting while a request is in flight is allowed, the sequence
// gate keeps the transcript in order.
func (m Model) submitInput(text string) (tea.Model, tea.Cmd) {
	m.input.Submit(text)
	m.history.AddInput(m.input.Prompt(), text)

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return m, nil
	}

	if m.mode == store.ModeChat && chatstate.IsExitWord(trimmed) {
		if next, err := chatstate.Apply(m.mode, chatstate.EventUserExit); err == nil {
			m.mode = next
		}
		m.history.AddResponse(terminal.ChatEnd(constant.ChatEndText))
		m.input.SetMode(m.mode)
		return m, nil
	}

	seq := m.nextSeq
	m.nextSeq++

	startTick := m.state != StateBusy
	m.state = StateBusy
	var send tea.Cmd
	if m.mode == store.ModeChat {
		m.busy.Start(model.BusyChatLabel)
		send = m.sendChat(seq, trimmed)
	} else {
		m.busy.Start(model.BusyCommandLabel)
		send = m.sendCommand(seq, trimmed)
	}
	if startTick {
		return m, tea.Batch(send, m.busy.Tick())
	}
	return m, send
}

// handleResult parks the completion, then renders every consecutive result
// starting at renderSeq. A completion that arrives ahead of an older request
// waits its turn, so the transcript always reads in submission order.
func (m Model) handleResult(r msg.SubmitResult) (tea.Model, tea.Cmd) {
	m.pending[r.Seq] = r

	var cmds []tea.Cmd
	for {
		next, ok := m.pending[m.renderSeq]
		if !ok {
			break
		}
		delete(m.pending, m.renderSeq)
		m.renderSeq++
		var cmd tea.Cmd
		m, cmd = m.renderResult(next)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if m.renderSeq == m.nextSeq {
		m.busy.Stop()
		m.state = StateIdle
	}
	return m, tea.Batch(cmds...)
}

// renderResult appends one response to the transcript and applies its side
// effects: mode flips go through the shared transition table, downloads
// open the browser, clear wipes the transcript. A transport failure renders
// the network error line and never touches chat mode.
func (m Model) renderResult(r msg.SubmitResult) (Model, tea.Cmd) {
	if r.Err != nil {
		m.history.AddResponse(terminal.Error(networkErrorText))
		return m, nil
	}

	res := r.Res
	if res.SessionID != "" {
		m.sessionID = res.SessionID
	}

	switch res.Kind {
	case terminal.KindClear:
		m.history.Clear()
		return m, nil
	case terminal.KindDownload:
		m.history.AddResponse(res)
		return m, m.openDownload(res.URL)
	case terminal.KindChatStart:
		if next, err := chatstate.Apply(m.mode, chatstate.EventStartChat); err == nil {
			m.mode = next
		}
		m.history.AddResponse(res)
		m.input.SetMode(m.mode)
		return m, nil
	case terminal.KindChatEnd:
		if next, err := chatstate.Apply(m.mode, chatstate.EventServerEnded); err == nil {
			m.mode = next
		}
		m.history.AddResponse(res)
		m.input.SetMode(m.mode)
		return m, nil
	default:
		m.history.AddResponse(res)
		return m, nil
	}
}

func (m Model) handleHealth(h msg.HealthResult) (tea.Model, tea.Cmd) {
	if h.Err != nil {
		m.history.AddResponse(terminal.Error(fmt.Sprintf(
			"Can't reach the portfolio server at %s. Start it and try again.", m.client.BaseURL)))
		return m, nil
	}
	m.history.AddNotice(fmt.Sprintf("Connected to %s (server up %s)", m.client.BaseURL, h.Uptime))
	return m, nil
}

func (m Model) checkHealth() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		health, err := c.Health()
		if err != nil {
			return msg.HealthResult{Err: err}
		}
		return msg.HealthResult{Status: health.Status, Uptime: health.Uptime}
	}
}

func (m Model) sendCommand(seq int, command string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		res, err := c.Command(command)
		if err != nil {
			return msg.SubmitResult{Seq: seq, Err: err}
		}
		return msg.SubmitResult{Seq: seq, Res: *res}
	}
}

func (m Model) sendChat(seq int, message string) tea.Cmd {
	c := m.client
	sid := m.sessionID
	return func() tea.Msg {
		res, err := c.Chat(message, sid)
		if err != nil {
			return msg.SubmitResult{Seq: seq, Err: err}
		}
		return msg.SubmitResult{Seq: seq, Res: *res}
	}
}

func (m Model) openDownload(rawURL string) tea.Cmd {
	target := m.client.AbsoluteURL(rawURL)
	open := m.browse
	return func() tea.Msg {
		return msg.BrowserOpened{URL: target, Err: open(target)}
	}
}

// historyHeight reserves the busy line and the prompt line.
func (m Model) historyHeight() int {
	h := m.height - 2
	if h < 3 {
		h = 3
	}
	return h
}

func welcomeBanner() string {
	return style.BannerTitle.Render("ben@portfolio") + "\n" +
		style.BannerDetail.Render("Welcome to Ben's interactive portfolio. Type 'help' to see what you can do, or 'chat' to ask the assistant anything.")
}
