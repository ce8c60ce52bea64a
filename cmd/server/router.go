package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/thereayou/bookswap/internal/handlers"
	"github.com/thereayou/bookswap/internal/middleware"
	"github.com/thereayou/bookswap/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	jwtMgr *auth.JWTManager,
	rdb *redis.Client,
	authH *handlers.AuthHandler,
	memberH *handlers.MemberHandler,
	convH *handlers.ConversationHandler,
	msgH *handlers.HTTPMessageHandler,
	notifH *handlers.NotificationHandler,
	exchangeH *handlers.ExchangeHandler,
	wsH *handlers.WebSocketHandler,
) {
	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
		authGroup.POST("/logout", authH.Logout)
	}

	// API endpoints
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtMgr, rdb))
	{
		api.GET("/members/me", memberH.GetMe)
		api.GET("/members/:id", memberH.GetMember)

		api.POST("/conversations/resolve", convH.Resolve)
		api.GET("/conversations", convH.List)
		api.GET("/conversations/:id/messages", convH.Messages)
		api.POST("/conversations/:id/read", convH.MarkRead)

		api.POST("/messages", msgH.SendMessage)
		api.DELETE("/messages/:id", msgH.DeleteMessage)
		api.PUT("/messages/:id/reactions", msgH.React)
		api.DELETE("/messages/:id/reactions", msgH.Unreact)

		api.GET("/notifications", notifH.List)
		api.GET("/notifications/unread-count", notifH.UnreadCount)
		api.POST("/notifications", notifH.Create)
		api.POST("/notifications/bulk", notifH.CreateBulk)
		api.POST("/notifications/:id/read", notifH.MarkRead)
		api.POST("/notifications/read-all", notifH.MarkAllRead)
		api.DELETE("/notifications/:id", notifH.Archive)

		api.POST("/exchanges/:id/events", exchangeH.HandleEvent)
	}

	// WebSocket
	r.GET("/ws", middleware.WSAuthMiddleware(jwtMgr, rdb), wsH.HandleWebSocket)
}
