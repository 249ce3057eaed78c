package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cruze/app"
)

// ExportHandler renders every session as a plain-text transcript download.
func ExportHandler(mgr *app.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl := controllerFor(c, mgr)

		c.Header("Content-Disposition", `attachment; filename="cruze-transcript.txt"`)
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(ctrl.ExportTranscript()))
	}
}
