package history

import (
	"portfolio-terminal/pkg/llm"
	"portfolio-terminal/pkg/store"
)

// Trim keeps the most recent maxTurns user/assistant pairs. Older messages
// fall off the front so the prompt stays bounded.
func Trim(messages []store.Message, maxTurns int) []store.Message {
	maxMessages := maxTurns * 2
	if maxMessages <= 0 || len(messages) <= maxMessages {
		return messages
	}
	return messages[len(messages)-maxMessages:]
}

// ToLLM converts stored history into provider messages.
func ToLLM(messages []store.Message) []llm.Message {
	out := make([]llm.Message, 0, len(messages))
	for _, msg := range messages {
		role := msg.Role
		if role == "model" {
			role = store.RoleAssistant
		}
		out = append(out, llm.Message{
			Role:    role,
			Content: msg.Content,
		})
	}
	return out
}
