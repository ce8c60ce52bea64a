package models

import (
	"github.com/google/uuid"
	"time"
)

// Conversation — диалог ровно двух участников, опционально привязанный к заявке на обмен.
// Пара участников нормализована (A < B), уникальна и неизменна после создания.
type Conversation struct {
	ID                uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ParticipantAID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_conversation_pair"`
	ParticipantBID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_conversation_pair"`
	ExchangeRequestID *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	LastMessage       string
	LastMessageAt     *time.Time
	UnreadA           int `gorm:"not null;default:0"`
	UnreadB           int `gorm:"not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Связи
	ParticipantA Member `gorm:"foreignKey:ParticipantAID"`
	ParticipantB Member `gorm:"foreignKey:ParticipantBID"`
}

// NormalizePair приводит пару к каноническому порядку независимо от порядка аргументов
func NormalizePair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() > b.String() {
		return b, a
	}
	return a, b
}

func (c *Conversation) HasParticipant(memberID uuid.UUID) bool {
	return c.ParticipantAID == memberID || c.ParticipantBID == memberID
}

func (c *Conversation) OtherParticipant(memberID uuid.UUID) uuid.UUID {
	if c.ParticipantAID == memberID {
		return c.ParticipantBID
	}
	return c.ParticipantAID
}

func (c *Conversation) UnreadFor(memberID uuid.UUID) int {
	if c.ParticipantAID == memberID {
		return c.UnreadA
	}
	return c.UnreadB
}

// UnreadColumn возвращает имя счетчика непрочитанных для участника
func (c *Conversation) UnreadColumn(memberID uuid.UUID) string {
	if c.ParticipantAID == memberID {
		return "unread_a"
	}
	return "unread_b"
}
