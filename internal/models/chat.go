package models

import "time"

type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

type ChatMessage struct {
	Role      ChatRole `json:"role"`
	Text      string   `json:"text"`
	Timestamp int64    `json:"timestamp"` // unix millis
}

// NewChatMessage stamps a transcript entry with at.
func NewChatMessage(role ChatRole, text string, at time.Time) ChatMessage {
	return ChatMessage{Role: role, Text: text, Timestamp: at.UnixMilli()}
}
