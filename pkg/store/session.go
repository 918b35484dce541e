package store

import "time"

// Mode is the terminal mode a session is in. Input is parsed as commands in
// command mode and forwarded to the assistant in chat mode.
type Mode string

const (
	ModeCommand Mode = "command"
	ModeChat    Mode = "chat"
)

func (m Mode) String() string {
	return string(m)
}

// Message roles for conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single (role, content) turn in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session represents the active visitor session state. It is created lazily
// on the first chat interaction and evicted by the store's TTL policy.
type Session struct {
	ID        string    `json:"id"`
	Mode      Mode      `json:"mode"`
	History   []Message `json:"history"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession returns a fresh command-mode session with empty history.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		Mode:      ModeCommand,
		History:   []Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AppendExchange records one user/assistant round trip.
func (s *Session) AppendExchange(userMsg, assistantMsg string) {
	s.History = append(s.History,
		Message{Role: RoleUser, Content: userMsg},
		Message{Role: RoleAssistant, Content: assistantMsg},
	)
	s.UpdatedAt = time.Now()
}
