package handlers

import (
	"github.com/gin-gonic/gin"

	"cruze/app"
	"cruze/cmd/api/middleware"
)

// controllerFor returns the authenticated user's controller with its
// initial remote load performed. The load runs at most once per sign-in.
func controllerFor(c *gin.Context, mgr *app.Manager) *app.Controller {
	ctrl := mgr.Controller(middleware.UserCode(c))
	ctrl.EnsureLoaded(c.Request.Context())
	return ctrl
}
