package dto

import (
	"time"
)

// --- Auth ---

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// --- Usage Stats ---

type UsageStatsResponse struct {
	CommandsServed  int64            `json:"commands_served"`
	CommandCounts   map[string]int64 `json:"command_counts"`
	ChatMessages    int64            `json:"chat_messages"`
	ChatRejections  int64            `json:"chat_rejections"`
	SessionsStarted int64            `json:"sessions_started"`
	ActiveSessions  int64            `json:"active_sessions"`
	UptimeSeconds   int64            `json:"uptime_seconds"`
}

// --- System Log DTOs ---

// Note: LogListResponse uses string for Id because log IDs are MD5 hashes, not UUIDs

type LogListResponse struct {
	Id        string    `json:"id"` // MD5 hash, not UUID
	Level     string    `json:"level"`
	Module    string    `json:"module"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type LogDetailResponse struct {
	LogListResponse
	Details map[string]interface{} `json:"details"`
}
