package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Типы уведомлений
const (
	NotificationExchangeRequest  = "EXCHANGE_REQUEST"
	NotificationExchangeAccepted = "EXCHANGE_ACCEPTED"
	NotificationExchangeDeclined = "EXCHANGE_DECLINED"
	NotificationNewMessage       = "NEW_MESSAGE"
)

type Notification struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	MemberID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type      string          `gorm:"size:50;not null;index"`
	Payload   json.RawMessage `gorm:"type:jsonb"`
	IsRead    bool            `gorm:"not null;default:false;index"`
	ReadAt    *time.Time
	CreatedAt time.Time      `gorm:"index"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
