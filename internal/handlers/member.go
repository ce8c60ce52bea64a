package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/bookswap/internal/database"
	"github.com/thereayou/bookswap/internal/middleware"
	"github.com/thereayou/bookswap/internal/websocket"
)

type MemberHandler struct {
	db  *database.Database
	hub *websocket.Hub
}

func NewMemberHandler(db *database.Database, hub *websocket.Hub) *MemberHandler {
	return &MemberHandler{db: db, hub: hub}
}

// GetMe возвращает профиль текущего участника
func (h *MemberHandler) GetMe(c *gin.Context) {
	memberID := c.MustGet(middleware.MemberIDKey).(uuid.UUID)

	member, err := h.db.GetMember(memberID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           member.ID,
		"username":     member.Username,
		"email":        member.Email,
		"avatar_url":   member.AvatarURL,
		"created_at":   member.CreatedAt,
		"last_seen_at": member.LastSeenAt,
	})
}

// GetMember возвращает публичный профиль участника с признаком присутствия
func (h *MemberHandler) GetMember(c *gin.Context) {
	memberID := c.Param("id")

	member, err := h.db.GetMember(memberID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           member.ID,
		"username":     member.Username,
		"avatar_url":   member.AvatarURL,
		"last_seen_at": member.LastSeenAt,
		"is_online":    h.hub.IsOnline(member.ID),
	})
}
