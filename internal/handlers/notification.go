package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/bookswap/internal/database"
	"github.com/thereayou/bookswap/internal/handlers/dto"
	"github.com/thereayou/bookswap/internal/middleware"
	"github.com/thereayou/bookswap/internal/models"
	"github.com/thereayou/bookswap/internal/websocket"
	"gorm.io/gorm"
)

// NotificationHandler — персист + push уведомлений. Push строго после
// записи и best-effort: без живых сокетов уведомление просто ждет в базе.
type NotificationHandler struct {
	db  *database.Database
	hub *websocket.Hub
}

func NewNotificationHandler(db *database.Database, hub *websocket.Hub) *NotificationHandler {
	return &NotificationHandler{db: db, hub: hub}
}

// Create создает уведомление и пушит его адресату
func (h *NotificationHandler) Create(c *gin.Context) {
	var req dto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notification := &models.Notification{
		MemberID:  req.MemberID,
		Type:      req.Type,
		Payload:   req.Payload,
		CreatedAt: time.Now(),
	}

	if err := h.db.CreateNotification(notification); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create notification"})
		return
	}

	h.push(notification)

	c.JSON(http.StatusCreated, buildNotificationResponse(notification))
}

// CreateBulk массово создает уведомления, например рассылку о смене
// статуса обмена нескольким участникам
func (h *NotificationHandler) CreateBulk(c *gin.Context) {
	var req dto.CreateNotificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	notifications := make([]models.Notification, len(req.Items))
	for i, item := range req.Items {
		notifications[i] = models.Notification{
			MemberID:  item.MemberID,
			Type:      item.Type,
			Payload:   item.Payload,
			CreatedAt: now,
		}
	}

	created, err := h.db.CreateNotifications(notifications)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create notifications"})
		return
	}

	for i := range notifications {
		h.push(&notifications[i])
	}

	c.JSON(http.StatusCreated, gin.H{"created": created})
}

// NotifyMember — программное создание уведомления из других обработчиков
func (h *NotificationHandler) NotifyMember(notification *models.Notification) error {
	if err := h.db.CreateNotification(notification); err != nil {
		return err
	}
	h.push(notification)
	return nil
}

func (h *NotificationHandler) push(notification *models.Notification) {
	h.hub.PushToMember(notification.MemberID, websocket.EventNotificationNew, buildNotificationResponse(notification))

	if unread, err := h.db.CountUnreadNotifications(notification.MemberID); err == nil {
		h.hub.PushToMember(notification.MemberID, websocket.EventUnreadCount, dto.UnreadCountUpdate{Unread: unread})
	}
}

// List отдает страницу уведомлений, новые сверху. page_size ограничен
// потолком на сервере независимо от запрошенного значения.
func (h *NotificationHandler) List(c *gin.Context) {
	memberID := c.MustGet(middleware.MemberIDKey).(uuid.UUID)

	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", 20)
	unreadOnly := c.Query("unread") == "true"
	typeFilter := c.Query("type")

	notifications, total, err := h.db.GetMemberNotifications(memberID, page, pageSize, unreadOnly, typeFilter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get notifications"})
		return
	}

	responses := make([]dto.NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = *buildNotificationResponse(&notifications[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": responses,
		"total":         total,
	})
}

// UnreadCount возвращает число непрочитанных уведомлений
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	memberID := c.MustGet(middleware.MemberIDKey).(uuid.UUID)

	count, err := h.db.CountUnreadNotifications(memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// MarkRead помечает уведомление прочитанным. Чужое уведомление — 404,
// уже прочитанное — no-op.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	memberID := c.MustGet(middleware.MemberIDKey).(uuid.UUID)

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	notification, err := h.db.MarkNotificationRead(notificationID, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark notification read"})
		return
	}

	c.JSON(http.StatusOK, buildNotificationResponse(notification))
}

// MarkAllRead помечает прочитанными все уведомления участника
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	memberID := c.MustGet(middleware.MemberIDKey).(uuid.UUID)

	updated, err := h.db.MarkAllNotificationsRead(memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark notifications read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// Archive — soft-delete уведомления владельцем
func (h *NotificationHandler) Archive(c *gin.Context) {
	memberID := c.MustGet(middleware.MemberIDKey).(uuid.UUID)

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.db.ArchiveNotification(notificationID, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to archive notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification archived"})
}

func buildNotificationResponse(notification *models.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        notification.ID,
		MemberID:  notification.MemberID,
		Type:      notification.Type,
		Payload:   notification.Payload,
		IsRead:    notification.IsRead,
		ReadAt:    notification.ReadAt,
		CreatedAt: notification.CreatedAt,
	}
}
