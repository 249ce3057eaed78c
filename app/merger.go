package app

import (
	"context"
	"strings"

	"cruze/gateway"
	"cruze/internal/logger"
	"cruze/llm"
	"cruze/models"
)

// processResponse drives one assistant turn: open the stream, fold each
// increment into the store, derive the title on the chat's first completed
// turn, then finalize with the recomputed full text and persist the message
// list in a single write. Chunks are never written to the remote store
// individually.
//
// On any failure the pending assistant message is replaced with a fixed
// error bubble, which is itself finalized and persisted so the failure
// survives a reload.
func (c *Controller) processResponse(ctx context.Context, chatID string, history []models.Message, onChunk func(string)) {
	msgID, ok := c.store.BeginAssistantMessage(chatID)
	if !ok {
		return
	}

	var full strings.Builder
	var streamErr error

	ch, err := c.provider.StreamChat(ctx, history)
	if err != nil {
		streamErr = err
	} else {
		for resp := range ch {
			if resp.Err != nil {
				streamErr = resp.Err
				break
			}
			if resp.Done {
				break
			}
			c.store.FoldAssistantChunk(chatID, msgID, resp.Content)
			full.WriteString(resp.Content)
			if onChunk != nil {
				onChunk(resp.Content)
			}
		}
	}

	if streamErr != nil {
		c.failTurn(ctx, chatID, msgID, streamErr)
		return
	}

	// Title is derived exactly once, when the first model response of the
	// chat completes.
	newTitle := ""
	if chat, ok := c.store.Chat(chatID); ok && chat.HasPlaceholderTitle() {
		if first, ok := chat.FirstUserMessage(); ok {
			newTitle = models.DeriveTitle(first.Content)
			if err := c.gw.UpdateTitle(ctx, c.userCode, chatID, newTitle); err != nil {
				c.failTurn(ctx, chatID, msgID, err)
				return
			}
		}
	}

	// Finalize with the full recomputed text rather than the accumulated
	// store state, so content cannot drift from what was streamed.
	c.store.FinalizeAssistantMessage(chatID, msgID, full.String(), newTitle)

	chat, ok := c.store.Chat(chatID)
	if !ok {
		return
	}
	if err := c.gw.UpdateMessages(ctx, c.userCode, chatID, chat.Messages); err != nil {
		c.failTurn(ctx, chatID, msgID, err)
		return
	}

	logger.InfoWithFields("assistant turn completed", logger.Fields{
		"user_code": c.userCode,
		"chat_id":   chatID,
		"chars":     full.Len(),
	})
}

// failTurn replaces the pending assistant message with the fixed error
// content, surfaces a notification, and still persists the message list so
// the error bubble is durable. No retry is attempted.
func (c *Controller) failTurn(ctx context.Context, chatID, msgID string, cause error) {
	perm := llm.IsPermissionError(cause) || gateway.IsPermissionDenied(cause)

	content := systemErrorContent
	if perm {
		content = securityErrorContent
		c.setPermissionError(true)
		c.notify(msgPermissionSend, true)
	} else {
		c.notify(msgGenericSend, false)
	}

	logger.ErrorWithFields("assistant turn failed", logger.Fields{
		"user_code":  c.userCode,
		"chat_id":    chatID,
		"permission": perm,
		"error":      cause.Error(),
	})

	c.store.FinalizeAssistantMessage(chatID, msgID, content, "")

	chat, ok := c.store.Chat(chatID)
	if !ok {
		return
	}
	// Best effort; a second failure here is already reported above.
	if err := c.gw.UpdateMessages(ctx, c.userCode, chatID, chat.Messages); err != nil {
		logger.ErrorWithFields("failed to persist error bubble", logger.Fields{
			"user_code": c.userCode,
			"chat_id":   chatID,
			"error":     err.Error(),
		})
	}
}
