package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/bookswap/internal/handlers/dto"
	"github.com/thereayou/bookswap/internal/middleware"
)

// HTTPMessageHandler — REST-обертка над конвейером сообщений,
// альтернатива отправке по WebSocket
type HTTPMessageHandler struct {
	core *MessageHandler
}

func NewHTTPMessageHandler(core *MessageHandler) *HTTPMessageHandler {
	return &HTTPMessageHandler{core: core}
}

// SendMessage отправляет сообщение в диалог или по заявке на обмен
func (h *HTTPMessageHandler) SendMessage(c *gin.Context) {
	memberID := c.MustGet(middleware.MemberIDKey).(uuid.UUID)

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.core.Send(c.Request.Context(), memberID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// DeleteMessage удаляет свое сообщение (soft-delete)
func (h *HTTPMessageHandler) DeleteMessage(c *gin.Context) {
	memberID := c.MustGet(middleware.MemberIDKey).(uuid.UUID)

	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	if err := h.core.Delete(memberID, messageID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "message deleted successfully"})
}

// React ставит или заменяет реакцию на сообщение
func (h *HTTPMessageHandler) React(c *gin.Context) {
	memberID := c.MustGet(middleware.MemberIDKey).(uuid.UUID)

	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	var req dto.ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	aggregate, err := h.core.React(memberID, messageID, req.Emoji)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, aggregate)
}

// Unreact снимает свою реакцию с сообщения
func (h *HTTPMessageHandler) Unreact(c *gin.Context) {
	memberID := c.MustGet(middleware.MemberIDKey).(uuid.UUID)

	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	aggregate, err := h.core.Unreact(memberID, messageID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, aggregate)
}
