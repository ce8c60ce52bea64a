package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/bookswap/internal/database"
	"github.com/thereayou/bookswap/internal/handlers/dto"
	"github.com/thereayou/bookswap/internal/middleware"
	"github.com/thereayou/bookswap/internal/models"
	"github.com/thereayou/bookswap/internal/services"
	"gorm.io/gorm"
)

type ConversationHandler struct {
	db        *database.Database
	core      *MessageHandler
	exchanges services.ExchangeDirectory
}

func NewConversationHandler(db *database.Database, core *MessageHandler, exchanges services.ExchangeDirectory) *ConversationHandler {
	return &ConversationHandler{db: db, core: core, exchanges: exchanges}
}

// Resolve находит или создает диалог: по заявке на обмен или по паре
// участников. Параллельные вызовы для одной пары возвращают один и тот же id.
func (h *ConversationHandler) Resolve(c *gin.Context) {
	memberID := c.MustGet(middleware.MemberIDKey).(uuid.UUID)

	var req dto.ResolveConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var conv *models.Conversation

	if req.ExchangeRequestID != nil {
		exchange, err := h.exchanges.GetExchange(c.Request.Context(), req.ExchangeRequestID.String())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "exchange request not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load exchange request"})
			return
		}

		if !exchange.Involves(memberID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "you are not a party of this exchange request"})
			return
		}

		exchangeID := exchange.ID
		conv, err = h.db.ResolveConversation(exchange.RequesterID, exchange.OwnerID, &exchangeID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve conversation"})
			return
		}
	} else {
		if req.PeerID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "peer_id or exchange_request_id is required"})
			return
		}

		if *req.PeerID == memberID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot start a conversation with yourself"})
			return
		}

		if _, err := h.db.GetMember(req.PeerID.String()); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}

		var err error
		conv, err = h.db.ResolveConversation(memberID, *req.PeerID, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve conversation"})
			return
		}
	}

	c.JSON(http.StatusOK, buildConversationResponse(conv, memberID))
}

// List получает диалоги участника, свежие сверху
func (h *ConversationHandler) List(c *gin.Context) {
	memberID := c.MustGet(middleware.MemberIDKey).(uuid.UUID)

	page, pageSize := database.NormalizePage(
		queryInt(c, "page", 1),
		queryInt(c, "page_size", 20),
	)

	conversations, err := h.db.GetMemberConversations(memberID, pageSize, (page-1)*pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get conversations"})
		return
	}

	responses := make([]dto.ConversationResponse, len(conversations))
	for i := range conversations {
		responses[i] = *buildConversationResponse(&conversations[i], memberID)
	}

	c.JSON(http.StatusOK, gin.H{"conversations": responses})
}

// Messages отдает историю диалога в каноническом порядке (created_at, id)
func (h *ConversationHandler) Messages(c *gin.Context) {
	memberID := c.MustGet(middleware.MemberIDKey).(uuid.UUID)
	conversationID := c.Param("id")

	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	var beforeID *uuid.UUID
	if before := c.Query("before"); before != "" {
		if id, err := uuid.Parse(before); err == nil {
			beforeID = &id
		}
	}

	messages, err := h.core.History(memberID, conversationID, limit, beforeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"has_more": len(messages) == limit,
	})
}

// MarkRead помечает сообщения диалога прочитанными и рассылает квитанции
func (h *ConversationHandler) MarkRead(c *gin.Context) {
	memberID := c.MustGet(middleware.MemberIDKey).(uuid.UUID)

	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}

	var req dto.MarkReadRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	receipt, err := h.core.MarkRead(memberID, conversationID, req.MessageIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}

func queryInt(c *gin.Context, name string, fallback int) int {
	if raw := c.Query(name); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			return parsed
		}
	}
	return fallback
}

func buildConversationResponse(conv *models.Conversation, viewerID uuid.UUID) *dto.ConversationResponse {
	response := &dto.ConversationResponse{
		ID:                conv.ID,
		ExchangeRequestID: conv.ExchangeRequestID,
		PeerID:            conv.OtherParticipant(viewerID),
		LastMessage:       conv.LastMessage,
		LastMessageAt:     conv.LastMessageAt,
		Unread:            conv.UnreadFor(viewerID),
		CreatedAt:         conv.CreatedAt,
	}

	// Профиль собеседника, если участники были предзагружены
	peer := conv.ParticipantA
	if conv.ParticipantAID == viewerID {
		peer = conv.ParticipantB
	}
	if peer.ID != uuid.Nil {
		response.Peer = &dto.MemberInfo{
			ID:        peer.ID,
			Username:  peer.Username,
			AvatarURL: peer.AvatarURL,
		}
	}

	return response
}
