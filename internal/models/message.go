package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_conversation"`
	SenderID       uuid.UUID `gorm:"type:uuid;not null"`
	Content        string    `gorm:"type:text"`
	Type           string    `gorm:"default:'text';check:type IN ('text','system')"`

	// Описание вложения, сам файл хранится снаружи
	AttachmentURL  string
	AttachmentType string
	AttachmentName string
	AttachmentSize int64

	CreatedAt time.Time `gorm:"index:idx_messages_conversation"`
	ReadAt    *time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Связи
	Sender       Member       `gorm:"foreignKey:SenderID"`
	Conversation Conversation `gorm:"foreignKey:ConversationID"`
}

func (m *Message) HasAttachment() bool {
	return m.AttachmentURL != ""
}
