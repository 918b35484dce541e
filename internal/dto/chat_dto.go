package dto

import (
	"time"
)

// ChatRequest is the POST /chat body. SessionID is null on the first
// message of a conversation; the server allocates one and echoes it back.
// Message carries no validate tag: the input guards own the empty case so
// the visitor sees a terminal-styled message, not a 400.
type ChatRequest struct {
	Message   string  `json:"message"`
	SessionID *string `json:"session_id"`
}

// --- Limit Exceeded Error Types ---

// LimitExceededError is a custom error that carries usage details
type LimitExceededError struct {
	Limit      int       `json:"limit"`
	Used       int       `json:"used"`
	ResetAfter time.Time `json:"reset_after"`
}

func (e *LimitExceededError) Error() string {
	return "daily AI usage limit exceeded"
}
