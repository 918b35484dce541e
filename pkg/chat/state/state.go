package state

import (
	"fmt"
	"log"
	"strings"
	"time"

	"portfolio-terminal/pkg/store"
)

// Event identifies what caused a mode transition. Every mode flip, whether
// user-driven or server-driven, goes through Apply with one of these.
type Event string

const (
	EventStartChat   Event = "start-chat"
	EventUserExit    Event = "user-exit"
	EventServerEnded Event = "server-ended"
)

// Apply is the authoritative transition function between terminal modes.
// It returns the next mode, or an error when the event is not legal from
// the current mode.
func Apply(mode store.Mode, event Event) (store.Mode, error) {
	switch event {
	case EventStartChat:
		return store.ModeChat, nil
	case EventUserExit:
		if mode != store.ModeChat {
			return mode, fmt.Errorf("no active chat to exit")
		}
		return store.ModeCommand, nil
	case EventServerEnded:
		return store.ModeCommand, nil
	default:
		return mode, fmt.Errorf("unknown transition event: %s", event)
	}
}

// IsExitWord reports whether the input is one of the in-chat exit words,
// matched case-insensitively after trimming.
func IsExitWord(input string) bool {
	word := strings.ToLower(strings.TrimSpace(input))
	return word == "exit" || word == "end"
}

// Manager applies transitions to sessions and logs the flips.
type Manager struct {
	logger *log.Logger
}

// NewManager creates a new state manager.
func NewManager(logger *log.Logger) *Manager {
	return &Manager{logger: logger}
}

// Transition moves the session to the mode Apply dictates for the event.
func (m *Manager) Transition(session *store.Session, event Event) error {
	next, err := Apply(session.Mode, event)
	if err != nil {
		return err
	}
	if next != session.Mode {
		m.logger.Printf("[STATE] session %s: %s -> %s (%s)", session.ID, session.Mode, next, event)
	}
	session.Mode = next
	session.UpdatedAt = time.Now()
	return nil
}
