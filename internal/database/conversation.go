package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/bookswap/internal/models"
	"gorm.io/gorm"
)

func (d *Database) GetConversation(id string) (*models.Conversation, error) {
	var conv models.Conversation
	if err := d.db.First(&conv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (d *Database) GetConversationByExchange(exchangeID uuid.UUID) (*models.Conversation, error) {
	var conv models.Conversation
	if err := d.db.First(&conv, "exchange_request_id = ?", exchangeID).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

// ResolveConversation находит или создает диалог для пары участников.
// Создание защищено уникальными индексами: проигравший гонку перечитывает
// строку победителя вместо ошибки.
func (d *Database) ResolveConversation(a, b uuid.UUID, exchangeID *uuid.UUID) (*models.Conversation, error) {
	if exchangeID != nil {
		conv, err := d.GetConversationByExchange(*exchangeID)
		if err == nil {
			return conv, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	pa, pb := models.NormalizePair(a, b)

	var conv models.Conversation
	err := d.db.First(&conv, "participant_a_id = ? AND participant_b_id = ?", pa, pb).Error
	if err == nil {
		if exchangeID != nil && conv.ExchangeRequestID == nil {
			// Одноразовая привязка заявки, уже привязанную не перезаписываем
			if err := d.db.Model(&models.Conversation{}).
				Where("id = ? AND exchange_request_id IS NULL", conv.ID).
				Update("exchange_request_id", exchangeID).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, err
			}
			return d.GetConversation(conv.ID.String())
		}
		return &conv, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	conv = models.Conversation{
		ParticipantAID:    pa,
		ParticipantBID:    pb,
		ExchangeRequestID: exchangeID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := d.db.Create(&conv).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Кто-то успел раньше, возвращаем его диалог
			if exchangeID != nil {
				if winner, lookupErr := d.GetConversationByExchange(*exchangeID); lookupErr == nil {
					return winner, nil
				}
			}
			var winner models.Conversation
			if lookupErr := d.db.First(&winner, "participant_a_id = ? AND participant_b_id = ?", pa, pb).Error; lookupErr == nil {
				return &winner, nil
			}
		}
		return nil, err
	}

	return &conv, nil
}

// GetMemberConversations получает диалоги участника, свежие сверху
func (d *Database) GetMemberConversations(memberID uuid.UUID, limit, offset int) ([]models.Conversation, error) {
	var conversations []models.Conversation

	err := d.db.
		Where("participant_a_id = ? OR participant_b_id = ?", memberID, memberID).
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Preload("ParticipantA").
		Preload("ParticipantB").
		Find(&conversations).Error

	if err != nil {
		return nil, err
	}

	return conversations, nil
}
