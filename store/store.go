// Package store holds the canonical in-memory chat collection for one
// authenticated session. Every mutation replaces the affected chat (and the
// collection slice) with a fresh value, so concurrent readers always observe
// a complete snapshot and never a half-applied state.
package store

import (
	"sync"

	"cruze/models"
)

// Store owns the ordered chat collection (newest first) and the active-chat
// pointer. Local operations cannot fail; operations addressing an absent
// chat or message id are no-ops.
type Store struct {
	mu       sync.RWMutex
	chats    []models.Chat
	activeID string
}

func New() *Store {
	return &Store{}
}

// ReplaceAll installs the collection loaded from the remote store. If no
// chat is active yet, the most recent one becomes active.
func (s *Store) ReplaceAll(chats []models.Chat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats = append([]models.Chat(nil), chats...)
	if s.activeID == "" && len(s.chats) > 0 {
		s.activeID = s.chats[0].ID
	}
}

// CreateChat inserts a fresh chat with the placeholder title at the front
// of the collection, marks it active and returns it. The caller sees the
// chat before any remote write is attempted.
func (s *Store) CreateChat() models.Chat {
	c := models.NewChat()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats = append([]models.Chat{c}, s.chats...)
	s.activeID = c.ID
	return c
}

// SelectChat moves the active pointer. Unknown ids are ignored.
func (s *Store) SelectChat(chatID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.chats {
		if c.ID == chatID {
			s.activeID = chatID
			return true
		}
	}
	return false
}

// AppendUserMessage appends a user turn to the named chat and returns the
// created message.
func (s *Store) AppendUserMessage(chatID, content string) (models.Message, bool) {
	m := models.NewMessage(models.RoleUser, content)
	ok := s.mutateChat(chatID, func(c models.Chat) models.Chat {
		c.Messages = appendMessage(c.Messages, m)
		return c
	})
	return m, ok
}

// BeginAssistantMessage appends an empty model message and returns its id.
// The id is the sole target for subsequent folds.
func (s *Store) BeginAssistantMessage(chatID string) (string, bool) {
	m := models.NewMessage(models.RoleModel, "")
	ok := s.mutateChat(chatID, func(c models.Chat) models.Chat {
		c.Messages = appendMessage(c.Messages, m)
		return c
	})
	return m.ID, ok
}

// FoldAssistantChunk concatenates delta onto the addressed message. No other
// message in any chat is touched.
func (s *Store) FoldAssistantChunk(chatID, messageID, delta string) bool {
	return s.mutateMessage(chatID, messageID, func(m models.Message) models.Message {
		m.Content += delta
		return m
	})
}

// FinalizeAssistantMessage sets the message content to the authoritative
// final text (recomputed by the caller, not trusted from accumulated folds)
// and, when newTitle is non-empty, rewrites the chat title.
func (s *Store) FinalizeAssistantMessage(chatID, messageID, finalContent, newTitle string) bool {
	return s.mutateChat(chatID, func(c models.Chat) models.Chat {
		msgs := make([]models.Message, len(c.Messages))
		copy(msgs, c.Messages)
		for i := range msgs {
			if msgs[i].ID == messageID {
				msgs[i].Content = finalContent
			}
		}
		c.Messages = msgs
		if newTitle != "" {
			c.Title = newTitle
		}
		return c
	})
}

// DeleteChat removes the chat. When the active chat is deleted the next
// remaining chat in collection order becomes active, or none.
func (s *Store) DeleteChat(chatID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, c := range s.chats {
		if c.ID == chatID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	next := make([]models.Chat, 0, len(s.chats)-1)
	next = append(next, s.chats[:idx]...)
	next = append(next, s.chats[idx+1:]...)
	s.chats = next
	if s.activeID == chatID {
		if len(next) > 0 {
			s.activeID = next[0].ID
		} else {
			s.activeID = ""
		}
	}
	return true
}

// Chats returns a snapshot of the collection in display order.
func (s *Store) Chats() []models.Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Chat(nil), s.chats...)
}

// Chat returns the chat with the given id.
func (s *Store) Chat(chatID string) (models.Chat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.chats {
		if c.ID == chatID {
			return c, true
		}
	}
	return models.Chat{}, false
}

// ActiveID returns the active chat id, or "" when none is active.
func (s *Store) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// mutateChat replaces the addressed chat with fn's result inside a new
// collection slice.
func (s *Store) mutateChat(chatID string, fn func(models.Chat) models.Chat) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.chats {
		if c.ID != chatID {
			continue
		}
		next := make([]models.Chat, len(s.chats))
		copy(next, s.chats)
		next[i] = fn(c)
		s.chats = next
		return true
	}
	return false
}

// mutateMessage replaces one message of the addressed chat with fn's result.
func (s *Store) mutateMessage(chatID, messageID string, fn func(models.Message) models.Message) bool {
	found := false
	s.mutateChat(chatID, func(c models.Chat) models.Chat {
		msgs := make([]models.Message, len(c.Messages))
		copy(msgs, c.Messages)
		for i := range msgs {
			if msgs[i].ID == messageID {
				msgs[i] = fn(msgs[i])
				found = true
			}
		}
		c.Messages = msgs
		return c
	})
	return found
}

func appendMessage(msgs []models.Message, m models.Message) []models.Message {
	next := make([]models.Message, 0, len(msgs)+1)
	next = append(next, msgs...)
	next = append(next, m)
	return next
}
