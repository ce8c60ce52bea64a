package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreateNotificationRequest struct {
	MemberID uuid.UUID       `json:"member_id" binding:"required"`
	Type     string          `json:"type" binding:"required"`
	Payload  json.RawMessage `json:"payload"`
}

type CreateNotificationsRequest struct {
	Items []CreateNotificationRequest `json:"items" binding:"required,min=1,dive"`
}

type NotificationResponse struct {
	ID        uuid.UUID       `json:"id"`
	MemberID  uuid.UUID       `json:"member_id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	IsRead    bool            `json:"is_read"`
	ReadAt    *time.Time      `json:"read_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
