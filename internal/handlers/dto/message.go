package dto

import (
	"github.com/google/uuid"
	"time"
)

// AttachmentPayload — описание вложения, файл загружен заранее отдельным сервисом
type AttachmentPayload struct {
	URL  string `json:"url" binding:"required"`
	Type string `json:"type" binding:"required"`
	Name string `json:"name" binding:"required"`
	Size int64  `json:"size" binding:"required,gt=0"`
}

// SendMessageRequest — union-формат: либо conversation_id, либо exchange_request_id,
// либо content, либо attachment. Разбирается один раз на входе в конвейер.
type SendMessageRequest struct {
	ConversationID    *uuid.UUID         `json:"conversation_id"`
	ExchangeRequestID *uuid.UUID         `json:"exchange_request_id"`
	Content           string             `json:"content"`
	Attachment        *AttachmentPayload `json:"attachment"`
}

// MessageResponse — полное состояние сообщения, одинаковое в live-потоке и в истории
type MessageResponse struct {
	ID             uuid.UUID          `json:"id"`
	ConversationID uuid.UUID          `json:"conversation_id"`
	SenderID       uuid.UUID          `json:"sender_id"`
	Content        string             `json:"content"`
	Type           string             `json:"type"`
	Attachment     *AttachmentPayload `json:"attachment,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	ReadAt         *time.Time         `json:"read_at,omitempty"`
	Sender         *MemberInfo        `json:"sender,omitempty"`
}

type MemberInfo struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url,omitempty"`
}

// MarkReadRequest — без message_ids читается весь диалог
type MarkReadRequest struct {
	ConversationID *uuid.UUID  `json:"conversation_id"`
	MessageIDs     []uuid.UUID `json:"message_ids"`
}

// ReadReceipt — полезная нагрузка события message:read
type ReadReceipt struct {
	ConversationID uuid.UUID   `json:"conversation_id"`
	ReaderID       uuid.UUID   `json:"reader_id"`
	MessageIDs     []uuid.UUID `json:"message_ids"`
}

// UnreadCountUpdate — полезная нагрузка события unread_count:update
type UnreadCountUpdate struct {
	ConversationID *uuid.UUID `json:"conversation_id,omitempty"`
	Unread         int64      `json:"unread"`
}

// DeletedMessage — полезная нагрузка события message:deleted
type DeletedMessage struct {
	MessageID      uuid.UUID `json:"message_id"`
	ConversationID uuid.UUID `json:"conversation_id"`
}
