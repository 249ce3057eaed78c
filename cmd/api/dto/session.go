package dto

import "cruze/models"

// SessionSummaryDTO is one entry of the session list.
type SessionSummaryDTO struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	CreatedAt    int64  `json:"createdAt"`
	MessageCount int    `json:"messageCount"`
}

// ListSessionsResponseDTO is the session-list payload together with the
// state the presentation layer needs: active pointer, pending flag and the
// sticky permission-error flag.
type ListSessionsResponseDTO struct {
	Sessions        []SessionSummaryDTO `json:"sessions"`
	ActiveID        string              `json:"activeId"`
	Pending         bool                `json:"pending"`
	PermissionError bool                `json:"permissionError"`
}

// SessionDTO is a full chat including messages.
type SessionDTO struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Messages  []models.Message `json:"messages"`
	CreatedAt int64            `json:"createdAt"`
}

// SendMessageRequestDTO starts one assistant turn. SessionID may be empty:
// the active session is used, or a fresh one is created.
type SendMessageRequestDTO struct {
	SessionID string `json:"session_id"`
	Content   string `json:"content" binding:"required"`
}

func SessionFromModel(c models.Chat) SessionDTO {
	return SessionDTO{
		ID:        c.ID,
		Title:     c.Title,
		Messages:  c.Messages,
		CreatedAt: c.CreatedAt,
	}
}

func SummaryFromModel(c models.Chat) SessionSummaryDTO {
	return SessionSummaryDTO{
		ID:           c.ID,
		Title:        c.Title,
		CreatedAt:    c.CreatedAt,
		MessageCount: len(c.Messages),
	}
}
