package handlers

import (
	"github.com/google/uuid"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/thereayou/bookswap/internal/middleware"
	ws "github.com/thereayou/bookswap/internal/websocket"
)

// WebSocketHandler управляет WebSocket соединениями
type WebSocketHandler struct {
	hub  *ws.Hub
	core *MessageHandler

	upgrader websocket.Upgrader
}

// NewWebSocketHandler создает новый WebSocket handler
func NewWebSocketHandler(hub *ws.Hub, core *MessageHandler) *WebSocketHandler {
	return &WebSocketHandler{
		hub:  hub,
		core: core,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: Проверить origin в prod
				return true
			},
		},
	}
}

// HandleWebSocket регистрирует сокет участника в реестре присутствия.
// Разрыв соединения убирает только регистрацию, durable-состояние не трогает.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	memberID, exists := c.Get(middleware.MemberIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, memberID.(uuid.UUID))

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h.core)
}
