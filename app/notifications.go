package app

import (
	"time"

	"github.com/lithammer/shortuuid/v4"
)

// User-facing notification texts. Transient toasts auto-expire; permission
// notifications stay until dismissed and offer a manual retry-load.
const (
	msgPermissionLoad = "Permission Denied: Check database security rules."
	msgGenericLoad    = "Failed to sync with cloud. Check your connection."
	msgSyncFailed     = "Cloud sync failed."
	msgDeleteFailed   = "Failed to delete chat."
	msgPermissionSend = "Permission Denied: Update database security rules."
	msgGenericSend    = "Cruze encountered an error."
)

// Fixed error-bubble contents written into the conversation when an
// assistant turn fails, so the failure stays visible on reload.
const (
	securityErrorContent = "⚠️ **Security Error**: Access denied. Please ensure the chat database security rules allow this account."
	systemErrorContent   = "⚠️ **System Error**: Request failed. Please try again in a moment."
)

// transientTTL is how long an auto-dismissing notification stays visible.
const transientTTL = 10 * time.Second

// Notification is a user-facing error surface entry.
type Notification struct {
	ID         string    `json:"id"`
	Message    string    `json:"message"`
	Persistent bool      `json:"persistent"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (n Notification) expired(now time.Time) bool {
	return !n.Persistent && now.Sub(n.CreatedAt) > transientTTL
}

func newNotification(message string, persistent bool) Notification {
	return Notification{
		ID:         shortuuid.New(),
		Message:    message,
		Persistent: persistent,
		CreatedAt:  time.Now(),
	}
}
