package model

import "time"

// MessageID uniquely identifies a chat message
type MessageID string

// MaxChatMessageLength caps the content of a single chat message
const MaxChatMessageLength = 280

// ChatMessage is a day-phase discussion message
type ChatMessage struct {
	ID       MessageID
	RoomID   RoomID
	PlayerID PlayerID
	Nickname string
	Phase    int
	Content  string

	CreatedAt time.Time
}
