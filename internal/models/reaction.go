package models

import (
	"github.com/google/uuid"
	"time"
)

// Reaction — не больше одной реакции на пару (сообщение, участник),
// повторная реакция другим эмодзи заменяет предыдущую
type Reaction struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	MessageID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reaction_message_member"`
	MemberID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reaction_message_member"`
	Emoji     string    `gorm:"not null"`
	CreatedAt time.Time
}
