package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"cruze/app"
	"cruze/cmd/api/auth"
	"cruze/cmd/api/handlers"
	"cruze/cmd/api/middleware"
	"cruze/db"
)

func New(mgr *app.Manager, jwtManager *auth.JWTManager) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestTrace())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := db.Client().Ping(ctx, readpref.Primary()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// v1 routes
	api := r.Group("/api/v1")
	api.Use(middleware.RequireAuth(jwtManager))
	{
		api.GET("/sessions", handlers.ListSessionsHandler(mgr))
		api.POST("/sessions", handlers.CreateSessionHandler(mgr))
		api.GET("/sessions/:id", handlers.GetSessionHandler(mgr))
		api.POST("/sessions/:id/activate", handlers.ActivateSessionHandler(mgr))
		api.DELETE("/sessions/:id", handlers.DeleteSessionHandler(mgr))

		api.POST("/messages", handlers.SendMessageHandler(mgr))

		api.GET("/export", handlers.ExportHandler(mgr))

		api.GET("/notifications", handlers.ListNotificationsHandler(mgr))
		api.POST("/notifications/dismiss", handlers.DismissNotificationHandler(mgr))

		api.POST("/sync/retry", handlers.RetrySyncHandler(mgr))
	}

	return r
}
