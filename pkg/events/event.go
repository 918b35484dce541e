package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "COMMAND_EXECUTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// ActivityTopic is the in-process pub/sub topic all activity events flow
// through.
const ActivityTopic = "terminal-activity"

// Activity event type codes.
const (
	EventCommandExecuted = "COMMAND_EXECUTED"
	EventChatMessage     = "CHAT_MESSAGE"
	EventChatRejected    = "CHAT_REJECTED"
	EventSessionStarted  = "SESSION_STARTED"
	EventSessionEnded    = "SESSION_ENDED"
)

// NewCommandExecuted is emitted after every command dispatch.
func NewCommandExecuted(command string, kind string) Event {
	return BaseEvent{
		Type: EventCommandExecuted,
		Data: map[string]interface{}{
			"command": command,
			"kind":    kind,
		},
		OccurredAt: time.Now(),
	}
}

// NewChatMessage is emitted after a successful chat exchange.
func NewChatMessage(sessionID string) Event {
	return BaseEvent{
		Type: EventChatMessage,
		Data: map[string]interface{}{
			"session_id": sessionID,
		},
		OccurredAt: time.Now(),
	}
}

// NewChatRejected is emitted when a chat request is turned away by guards
// or rate limits.
func NewChatRejected(sessionID, reason string) Event {
	return BaseEvent{
		Type: EventChatRejected,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"reason":     reason,
		},
		OccurredAt: time.Now(),
	}
}

// NewSessionStarted is emitted when a visitor enters chat mode.
func NewSessionStarted(sessionID string) Event {
	return BaseEvent{
		Type: EventSessionStarted,
		Data: map[string]interface{}{
			"session_id": sessionID,
		},
		OccurredAt: time.Now(),
	}
}

// NewSessionEnded is emitted when chat mode ends, with who ended it.
func NewSessionEnded(sessionID, endedBy string) Event {
	return BaseEvent{
		Type: EventSessionEnded,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"ended_by":   endedBy,
		},
		OccurredAt: time.Now(),
	}
}
