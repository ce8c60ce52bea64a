package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/bookswap/internal/database"
	"github.com/thereayou/bookswap/internal/middleware"
	"github.com/thereayou/bookswap/internal/models"
	"gorm.io/gorm"
)

// ExchangeHandler — хук жизненного цикла заявки на обмен: смена статуса
// проводит системное сообщение через общий конвейер и уведомляет
// вторую сторону
type ExchangeHandler struct {
	db            *database.Database
	core          *MessageHandler
	notifications *NotificationHandler
}

func NewExchangeHandler(db *database.Database, core *MessageHandler, notifications *NotificationHandler) *ExchangeHandler {
	return &ExchangeHandler{db: db, core: core, notifications: notifications}
}

var exchangeEvents = map[string]struct {
	status           string
	notificationType string
	systemText       string
}{
	"accepted": {"accepted", models.NotificationExchangeAccepted, "Exchange request accepted"},
	"declined": {"declined", models.NotificationExchangeDeclined, "Exchange request declined"},
}

// HandleEvent принимает событие обмена от его участника
func (h *ExchangeHandler) HandleEvent(c *gin.Context) {
	memberID := c.MustGet(middleware.MemberIDKey).(uuid.UUID)
	exchangeID := c.Param("id")

	var req struct {
		Event string `json:"event" binding:"required,oneof=accepted declined"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exchange, err := h.db.GetExchangeRequest(exchangeID)
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

	event := exchangeEvents[req.Event]

	if err := h.db.UpdateExchangeStatus(exchangeID, event.status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update exchange status"})
		return
	}

	conv, err := h.db.ResolveConversation(exchange.RequesterID, exchange.OwnerID, &exchange.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve conversation"})
		return
	}

	// Системное сообщение идет тем же конвейером, что и пользовательские
	message, err := h.core.SendSystem(conv, memberID, event.systemText)
	if err != nil {
		respondError(c, err)
		return
	}

	payload, _ := json.Marshal(gin.H{
		"exchange_request_id": exchange.ID,
		"actor_id":            memberID,
		"status":              event.status,
	})

	notification := &models.Notification{
		MemberID:  exchange.OtherParty(memberID),
		Type:      event.notificationType,
		Payload:   payload,
		CreatedAt: time.Now(),
	}

	if err := h.notifications.NotifyMember(notification); err != nil {
		// Сообщение уже закоммичено, сбой уведомления не откатывает его
		log.Printf("Failed to notify %s about exchange %s: %v", notification.MemberID, exchange.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  event.status,
		"message": message,
	})
}
