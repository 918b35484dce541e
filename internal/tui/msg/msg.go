// Package msg defines the tea.Msg types dispatched within the terminal TUI.
// It depends only on the wire contract package so client, model, and app can
// all import it without cycles.
package msg

import "portfolio-terminal/pkg/terminal"

// HealthResult from the startup health check.
type HealthResult struct {
	Status string
	Uptime string
	Err    error
}

// SubmitResult is the completion of one command or chat request. Seq carries
// the order the request was initiated in; the app renders results strictly in
// Seq order even when completions arrive shuffled.
type SubmitResult struct {
	Seq int
	Res terminal.Response
	Err error
}

// BrowserOpened reports the outcome of launching the system browser for a
// download URL.
type BrowserOpened struct {
	URL string
	Err error
}
