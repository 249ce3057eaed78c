package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cruze/app"
	"cruze/cmd/api/dto"
)

// ListNotificationsHandler returns the live notifications. Transient ones
// drop out of the list once their display window passes.
func ListNotificationsHandler(mgr *app.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl := controllerFor(c, mgr)
		c.JSON(http.StatusOK, gin.H{"notifications": ctrl.Notifications()})
	}
}

// DismissNotificationHandler removes one notification by id.
func DismissNotificationHandler(mgr *app.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl := controllerFor(c, mgr)

		var req dto.DismissNotificationRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "id is required"})
			return
		}
		ctrl.Dismiss(req.ID)
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "dismissed"})
	}
}

// RetrySyncHandler re-runs the initial remote load after a failure. A
// success clears the sticky permission-error flag.
func RetrySyncHandler(mgr *app.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl := controllerFor(c, mgr)

		if err := ctrl.RetryLoad(c.Request.Context()); err != nil {
			c.JSON(http.StatusBadGateway, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "synced"})
	}
}
