package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cruze/app"
	"cruze/cmd/api/dto"
)

// ListSessionsHandler returns the user's session list, newest first, plus
// the active pointer and the pending/permission flags.
func ListSessionsHandler(mgr *app.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl := controllerFor(c, mgr)

		chats := ctrl.Chats()
		sessions := make([]dto.SessionSummaryDTO, 0, len(chats))
		for _, chat := range chats {
			sessions = append(sessions, dto.SummaryFromModel(chat))
		}

		c.JSON(http.StatusOK, dto.ListSessionsResponseDTO{
			Sessions:        sessions,
			ActiveID:        ctrl.ActiveID(),
			Pending:         ctrl.Pending(),
			PermissionError: ctrl.PermissionError(),
		})
	}
}

// CreateSessionHandler creates an empty session ("+ New Session").
func CreateSessionHandler(mgr *app.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl := controllerFor(c, mgr)
		chat := ctrl.NewChat()
		c.JSON(http.StatusOK, dto.SessionFromModel(chat))
	}
}

// GetSessionHandler returns one session including its messages.
func GetSessionHandler(mgr *app.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl := controllerFor(c, mgr)

		chat, ok := ctrl.Chat(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "session not found"})
			return
		}
		c.JSON(http.StatusOK, dto.SessionFromModel(chat))
	}
}

// ActivateSessionHandler moves the active-session pointer.
func ActivateSessionHandler(mgr *app.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl := controllerFor(c, mgr)

		if !ctrl.SelectChat(c.Param("id")) {
			c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "session not found"})
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "activated"})
	}
}

// DeleteSessionHandler deletes a session. The local delete applies
// immediately; the remote delete is best-effort.
func DeleteSessionHandler(mgr *app.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl := controllerFor(c, mgr)

		if !ctrl.DeleteChat(c.Param("id")) {
			c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "session not found"})
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "deleted"})
	}
}
