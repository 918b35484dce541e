// Package render prepares server text for the terminal: control-byte
// escaping, URL/email linkification, and markdown for assistant replies.
package render

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// ansiRe matches CSI sequences, OSC sequences (BEL or ST terminated), and
// two-byte escapes.
var ansiRe = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(\x07|\x1b\\)|\x1b[@-_]`)

// linkRe matches http(s) URLs and user@host emails in one pass, URLs first,
// so an address embedded in a URL is consumed by the URL branch and wrapped
// exactly once.
var linkRe = regexp.MustCompile(`https?://[^\s<>"']+|[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// EscapeControl strips ANSI escape sequences and control bytes (keeping
// newlines and tabs) so nothing the server or the user echoes back can move
// the cursor or restyle the screen. Stripping is idempotent: the output
// contains no control bytes for a second pass to find.
func EscapeControl(s string) string {
	s = ansiRe.ReplaceAllString(s, "")
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' || (r >= 0x20 && r != 0x7f) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Linkify wraps URLs and email addresses in OSC 8 hyperlinks. Call it after
// EscapeControl; each match gets exactly one anchor. Trailing sentence
// punctuation stays outside the anchor.
func Linkify(s string) string {
	return linkRe.ReplaceAllStringFunc(s, func(match string) string {
		if strings.HasPrefix(match, "http://") || strings.HasPrefix(match, "https://") {
			trimmed := strings.TrimRight(match, ".,;:!?")
			return termenv.Hyperlink(trimmed, trimmed) + match[len(trimmed):]
		}
		return termenv.Hyperlink("mailto:"+match, match)
	})
}

var renderer *glamour.TermRenderer

func init() {
	var err error
	renderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback: return raw text if glamour fails to init.
		renderer = nil
	}
}

// Markdown converts an assistant reply to styled ANSI output. Falls back to
// raw text if the renderer is unavailable.
func Markdown(md string) string {
	if renderer == nil || strings.TrimSpace(md) == "" {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	// glamour adds trailing newlines; trim for inline display.
	return strings.TrimRight(out, "\n")
}
