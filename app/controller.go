// Package app composes the session store, sync gateway and inference
// provider into the per-user chat controller. Local mutations are applied
// optimistically; remote writes are best-effort and never roll local state
// back on failure.
package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"cruze/gateway"
	"cruze/internal/logger"
	"cruze/llm"
	"cruze/models"
	"cruze/store"
)

// ErrResponsePending is returned when a send arrives while any response is
// still streaming. The lock is global, not per chat, mirroring the observed
// behavior of the front-end this service backs.
var ErrResponsePending = errors.New("a response is already pending")

// writeTimeout bounds fire-and-forget remote writes detached from the
// request context.
const writeTimeout = 10 * time.Second

// Controller owns one authenticated user's chat state.
type Controller struct {
	userCode string
	store    *store.Store
	gw       gateway.Gateway
	provider llm.Provider

	loadOnce sync.Once

	mu              sync.Mutex
	pending         bool
	permissionError bool
	notifications   []Notification
}

func NewController(userCode string, gw gateway.Gateway, provider llm.Provider) *Controller {
	return &Controller{
		userCode: userCode,
		store:    store.New(),
		gw:       gw,
		provider: provider,
	}
}

// EnsureLoaded performs the initial remote load, at most once per
// controller lifetime. Failures keep local state untouched.
func (c *Controller) EnsureLoaded(ctx context.Context) {
	c.loadOnce.Do(func() {
		c.load(ctx)
	})
}

// RetryLoad re-runs the remote load on user request. A successful load
// clears the sticky permission-error flag.
func (c *Controller) RetryLoad(ctx context.Context) error {
	return c.load(ctx)
}

func (c *Controller) load(ctx context.Context) error {
	chats, err := c.gw.Load(ctx, c.userCode)
	if err != nil {
		if gateway.IsPermissionDenied(err) {
			c.setPermissionError(true)
			c.notify(msgPermissionLoad, true)
		} else {
			c.notify(msgGenericLoad, false)
		}
		logger.ErrorWithFields("failed to load chats", logger.Fields{
			"user_code": c.userCode,
			"error":     err.Error(),
		})
		return err
	}
	c.setPermissionError(false)
	c.store.ReplaceAll(chats)
	logger.InfoWithFields("chats loaded", logger.Fields{
		"user_code": c.userCode,
		"count":     len(chats),
	})
	return nil
}

// NewChat creates an empty session with the placeholder title. The chat is
// visible locally before the remote write resolves.
func (c *Controller) NewChat() models.Chat {
	chat := c.store.CreateChat()
	c.asyncWrite(msgSyncFailed, func(ctx context.Context) error {
		return c.gw.Create(ctx, c.userCode, chat)
	})
	return chat
}

// SelectChat moves the active pointer. Streams already in flight keep
// targeting their original chat regardless of the selection.
func (c *Controller) SelectChat(chatID string) bool {
	return c.store.SelectChat(chatID)
}

// DeleteChat removes the chat locally and issues the remote delete.
func (c *Controller) DeleteChat(chatID string) bool {
	if !c.store.DeleteChat(chatID) {
		return false
	}
	c.asyncWrite(msgDeleteFailed, func(ctx context.Context) error {
		return c.gw.Remove(ctx, c.userCode, chatID)
	})
	return true
}

// SendMessage appends a user turn (creating a chat when none is addressed)
// and drives one assistant response to completion, folding stream chunks
// into the store and forwarding them to onChunk when set. It blocks until
// the turn is finalized and persisted.
func (c *Controller) SendMessage(ctx context.Context, chatID, content string, onChunk func(string)) (models.Chat, error) {
	if !c.beginPending() {
		return models.Chat{}, ErrResponsePending
	}
	defer c.endPending()

	if chatID == "" {
		chatID = c.store.ActiveID()
	}
	if _, ok := c.store.Chat(chatID); !ok {
		chat := c.store.CreateChat()
		chatID = chat.ID
		c.asyncWrite(msgSyncFailed, func(ctx context.Context) error {
			return c.gw.Create(ctx, c.userCode, chat)
		})
	} else {
		c.store.SelectChat(chatID)
	}

	c.store.AppendUserMessage(chatID, content)

	chat, _ := c.store.Chat(chatID)
	c.processResponse(ctx, chatID, chat.Messages, onChunk)

	final, _ := c.store.Chat(chatID)
	return final, nil
}

// ExportTranscript renders all chats as a flat text transcript.
func (c *Controller) ExportTranscript() string {
	return exportTranscript(c.store.Chats())
}

// Chats returns the session collection snapshot for display.
func (c *Controller) Chats() []models.Chat {
	return c.store.Chats()
}

// Chat returns one chat by id.
func (c *Controller) Chat(chatID string) (models.Chat, bool) {
	return c.store.Chat(chatID)
}

// ActiveID returns the active chat id, or "".
func (c *Controller) ActiveID() string {
	return c.store.ActiveID()
}

// Pending reports whether an assistant response is streaming.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// PermissionError reports the sticky permission-error flag.
func (c *Controller) PermissionError() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.permissionError
}

// Notifications returns the notifications still alive. Expired transient
// entries are dropped.
func (c *Controller) Notifications() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	alive := c.notifications[:0]
	for _, n := range c.notifications {
		if !n.expired(now) {
			alive = append(alive, n)
		}
	}
	c.notifications = alive
	return append([]Notification(nil), alive...)
}

// Dismiss removes one notification by id.
func (c *Controller) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.notifications {
		if n.ID == id {
			c.notifications = append(c.notifications[:i], c.notifications[i+1:]...)
			return
		}
	}
}

func (c *Controller) beginPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending {
		return false
	}
	c.pending = true
	return true
}

func (c *Controller) endPending() {
	c.mu.Lock()
	c.pending = false
	c.mu.Unlock()
}

func (c *Controller) setPermissionError(v bool) {
	c.mu.Lock()
	c.permissionError = v
	c.mu.Unlock()
}

func (c *Controller) notify(message string, persistent bool) {
	c.mu.Lock()
	c.notifications = append(c.notifications, newNotification(message, persistent))
	c.mu.Unlock()
}

// asyncWrite runs a remote write detached from the caller. Failures surface
// as notifications only; the optimistic local mutation stands.
func (c *Controller) asyncWrite(failMsg string, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			if gateway.IsPermissionDenied(err) {
				c.setPermissionError(true)
				c.notify(msgPermissionLoad, true)
			} else {
				c.notify(failMsg, false)
			}
			logger.ErrorWithFields("remote write failed", logger.Fields{
				"user_code": c.userCode,
				"error":     err.Error(),
			})
		}
	}()
}
