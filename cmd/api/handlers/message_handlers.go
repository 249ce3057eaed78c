package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cruze/app"
	"cruze/cmd/api/dto"
	"cruze/cmd/api/trace"
	"cruze/internal/logger"
)

// SendMessageHandler appends a user turn and streams the assistant response
// back as server-sent events: zero or more "chunk" events followed by one
// "done" event carrying the final session state. While any response is
// pending for the user, new sends are rejected with 409.
func SendMessageHandler(mgr *app.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl := controllerFor(c, mgr)

		var req dto.SendMessageRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "content is required"})
			return
		}

		sseStarted := false
		startSSE := func() {
			if sseStarted {
				return
			}
			sseStarted = true
			h := c.Writer.Header()
			h.Set("Content-Type", "text/event-stream")
			h.Set("Cache-Control", "no-cache")
			h.Set("Connection", "keep-alive")
			c.Writer.Flush()
		}

		requestID, spanID := trace.NextSpanID(c.Request.Context())
		logger.InfoWithFields("dispatching inference request", logger.Fields{
			"request_id": requestID,
			"span_id":    spanID,
			"session_id": req.SessionID,
		})

		chat, err := ctrl.SendMessage(c.Request.Context(), req.SessionID, req.Content, func(chunk string) {
			startSSE()
			c.SSEvent("chunk", chunk)
			c.Writer.Flush()
		})
		if err != nil {
			if errors.Is(err, app.ErrResponsePending) {
				c.JSON(http.StatusConflict, dto.ErrorResponseDTO{Error: "a response is already pending"})
				return
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}

		// failed turns emit no chunks; the error bubble arrives with done
		startSSE()
		c.SSEvent("done", dto.SessionFromModel(chat))
		c.Writer.Flush()
	}
}
