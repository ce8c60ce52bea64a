package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/bookswap/internal/models"
	"gorm.io/gorm"
)

// Потолок размера страницы, действует независимо от запрошенного значения
const (
	defaultNotificationPageSize = 20
	maxNotificationPageSize     = 100
)

// NormalizePage приводит параметры пагинации к допустимым границам
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultNotificationPageSize
	}
	if pageSize > maxNotificationPageSize {
		pageSize = maxNotificationPageSize
	}
	return page, pageSize
}

func (d *Database) CreateNotification(notification *models.Notification) error {
	return d.db.Create(notification).Error
}

// CreateNotifications массово создает уведомления, возвращает число созданных
func (d *Database) CreateNotifications(notifications []models.Notification) (int64, error) {
	if len(notifications) == 0 {
		return 0, nil
	}
	result := d.db.Create(&notifications)
	return result.RowsAffected, result.Error
}

// GetMemberNotifications получает страницу уведомлений участника, новые сверху.
// Архивированные (soft-delete) не попадают в выборку.
func (d *Database) GetMemberNotifications(memberID uuid.UUID, page, pageSize int, unreadOnly bool, typeFilter string) ([]models.Notification, int64, error) {
	page, pageSize = NormalizePage(page, pageSize)

	query := d.db.Model(&models.Notification{}).Where("member_id = ?", memberID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if typeFilter != "" {
		query = query.Where("type = ?", typeFilter)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	err := query.
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&notifications).Error

	if err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

func (d *Database) CountUnreadNotifications(memberID uuid.UUID) (int64, error) {
	var count int64
	err := d.db.Model(&models.Notification{}).
		Where("member_id = ? AND is_read = ?", memberID, false).
		Count(&count).Error
	return count, err
}

// MarkNotificationRead помечает уведомление прочитанным с проверкой владельца.
// Уже прочитанное — no-op, чужое — gorm.ErrRecordNotFound.
func (d *Database) MarkNotificationRead(id, memberID uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	if err := d.db.First(&notification, "id = ? AND member_id = ?", id, memberID).Error; err != nil {
		return nil, err
	}

	if notification.IsRead {
		return &notification, nil
	}

	now := time.Now()
	notification.IsRead = true
	notification.ReadAt = &now

	if err := d.db.Model(&models.Notification{}).
		Where("id = ?", notification.ID).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error; err != nil {
		return nil, err
	}

	return &notification, nil
}

func (d *Database) MarkAllNotificationsRead(memberID uuid.UUID) (int64, error) {
	result := d.db.Model(&models.Notification{}).
		Where("member_id = ? AND is_read = ?", memberID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": time.Now()})
	return result.RowsAffected, result.Error
}

// ArchiveNotification — soft-delete с проверкой владельца
func (d *Database) ArchiveNotification(id, memberID uuid.UUID) error {
	result := d.db.Delete(&models.Notification{}, "id = ? AND member_id = ?", id, memberID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
