package websocket

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType определяет типы событий в сокете
type EventType string

const (
	// Системные типы
	TypeConnect    EventType = "connect"
	TypeDisconnect EventType = "disconnect"
	TypePing       EventType = "ping"
	TypePong       EventType = "pong"
	TypeError      EventType = "error"

	// Входящие операции от клиента
	TypeSendMessage EventType = "message:send"
	TypeMarkRead    EventType = "message:mark_read"

	// Исходящие события, всегда полное состояние сущности, не дельта
	EventMessageNew      EventType = "message:new"
	EventMessageRead     EventType = "message:read"
	EventMessageDeleted  EventType = "message:deleted"
	EventReactionUpdate  EventType = "reaction:update"
	EventNotificationNew EventType = "notification:new"
	EventUnreadCount     EventType = "unread_count:update"
)

// Envelope — кадр протокола поверх сокета
type Envelope struct {
	Type      EventType       `json:"type"`
	MemberID  uuid.UUID       `json:"member_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}
