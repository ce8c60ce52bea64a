package models

import (
	"github.com/google/uuid"
	"time"
)

// ExchangeRequest — read-модель заявки на обмен, нужна резолверу диалогов.
// Полный CRUD заявок живет в другом сервисе.
type ExchangeRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RequesterID uuid.UUID `gorm:"type:uuid;not null;index"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Status      string    `gorm:"default:'pending'"`
	CreatedAt   time.Time
}

func (e *ExchangeRequest) Involves(memberID uuid.UUID) bool {
	return e.RequesterID == memberID || e.OwnerID == memberID
}

func (e *ExchangeRequest) OtherParty(memberID uuid.UUID) uuid.UUID {
	if e.RequesterID == memberID {
		return e.OwnerID
	}
	return e.RequesterID
}
