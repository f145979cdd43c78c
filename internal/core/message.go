package core

import (
	"time"

	"github.com/roomrelay/server/internal/utils"
)

// Message is an in-flight chat message. It is never persisted; it exists
// only as a broadcast payload.
type Message struct {
	ID        string
	Text      string
	From      string
	Timestamp time.Time
}

// NewMessage stamps a message with a fresh id and the current UTC time.
func NewMessage(from, text string) *Message {
	return &Message{
		ID:        utils.NewID(),
		Text:      text,
		From:      from,
		Timestamp: time.Now().UTC(),
	}
}
