package models

import (
	"time"

	"github.com/lithammer/shortuuid/v4"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser   Role = "user"
	RoleModel  Role = "model"
	RoleSystem Role = "system"
)

// PlaceholderTitle is the title a chat carries until its first model
// response completes.
const PlaceholderTitle = "New Session"

// titleMaxRunes is the prefix length used when deriving a chat title from
// the first user message.
const titleMaxRunes = 40

// Message is a single conversation turn.
// Content of a model message is append-mutable while its stream is in
// flight and frozen afterwards; user message content never changes.
type Message struct {
	ID        string `bson:"id" json:"id"`
	Role      Role   `bson:"role" json:"role"`
	Content   string `bson:"content" json:"content"`
	Timestamp int64  `bson:"timestamp" json:"timestamp"`
}

// Chat is one conversation thread.
// Collection: chats (one document per chat, scoped by user_code)
type Chat struct {
	ID        string    `bson:"chat_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Messages  []Message `bson:"messages" json:"messages"`
	CreatedAt int64     `bson:"created_at" json:"createdAt"`
}

// NewChat returns an empty chat with the placeholder title.
func NewChat() Chat {
	return Chat{
		ID:        shortuuid.New(),
		Title:     PlaceholderTitle,
		Messages:  []Message{},
		CreatedAt: time.Now().UnixMilli(),
	}
}

// NewMessage returns a message stamped with the current time.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        shortuuid.New(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UnixMilli(),
	}
}

// HasPlaceholderTitle reports whether the chat title has not yet been
// derived from its first user message.
func (c Chat) HasPlaceholderTitle() bool {
	return c.Title == PlaceholderTitle
}

// FirstUserMessage returns the first user turn, if any.
func (c Chat) FirstUserMessage() (Message, bool) {
	for _, m := range c.Messages {
		if m.Role == RoleUser {
			return m, true
		}
	}
	return Message{}, false
}

// DeriveTitle builds a chat title from the first user message: the first
// 40 runes, with an ellipsis appended when the message is longer.
func DeriveTitle(firstUserContent string) string {
	rs := []rune(firstUserContent)
	if len(rs) <= titleMaxRunes {
		return firstUserContent
	}
	return string(rs[:titleMaxRunes]) + "…"
}
