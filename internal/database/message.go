package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/bookswap/internal/models"
	"gorm.io/gorm"
)

// Длина сниппета последнего сообщения в списке диалогов
const snippetLength = 120

// MessageSnippet строит сниппет для денормализованной колонки диалога
func MessageSnippet(msg *models.Message) string {
	text := msg.Content
	if text == "" && msg.HasAttachment() {
		text = msg.AttachmentName
	}
	runes := []rune(text)
	if len(runes) > snippetLength {
		return string(runes[:snippetLength])
	}
	return text
}

// CreateMessage сохраняет сообщение и атомарно обновляет сниппет диалога
// и счетчик непрочитанных получателя
func (d *Database) CreateMessage(msg *models.Message, conv *models.Conversation) error {
	recipientColumn := conv.UnreadColumn(conv.OtherParticipant(msg.SenderID))

	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}

		return tx.Model(&models.Conversation{}).
			Where("id = ?", conv.ID).
			Updates(map[string]interface{}{
				"last_message":    MessageSnippet(msg),
				"last_message_at": msg.CreatedAt,
				"updated_at":      msg.CreatedAt,
				recipientColumn:   gorm.Expr(recipientColumn+" + ?", 1),
			}).Error
	})
}

func (d *Database) GetMessage(id string) (*models.Message, error) {
	var message models.Message
	if err := d.db.First(&message, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// GetMessageAny находит сообщение вместе с уже удаленными
func (d *Database) GetMessageAny(id string) (*models.Message, error) {
	var message models.Message
	if err := d.db.Unscoped().First(&message, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (d *Database) SoftDeleteMessage(id string) error {
	return d.db.Delete(&models.Message{}, "id = ?", id).Error
}

// GetConversationMessages получает окно истории диалога с пагинацией.
// Канонический порядок — (created_at, id) по возрастанию, живой поток
// и история дают одну и ту же последовательность.
func (d *Database) GetConversationMessages(conversationID string, limit int, beforeID *uuid.UUID) ([]models.Message, error) {
	var messages []models.Message

	query := d.db.Where("conversation_id = ?", conversationID)

	if beforeID != nil {
		var beforeMsg models.Message
		if err := d.db.First(&beforeMsg, "id = ?", beforeID).Error; err == nil {
			query = query.Where(
				"created_at < ? OR (created_at = ? AND id < ?)",
				beforeMsg.CreatedAt, beforeMsg.CreatedAt, beforeMsg.ID,
			)
		}
	}

	err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Preload("Sender").
		Find(&messages).Error

	if err != nil {
		return nil, err
	}

	// Разворачиваем порядок, чтобы старые сообщения были первыми
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// MarkConversationRead помечает прочитанными все адресованные участнику
// сообщения диалога и обнуляет его счетчик. Возвращает затронутые id.
func (d *Database) MarkConversationRead(conv *models.Conversation, memberID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Message{}).
			Where("conversation_id = ? AND sender_id <> ? AND read_at IS NULL", conv.ID, memberID).
			Pluck("id", &ids).Error; err != nil {
			return err
		}

		if len(ids) > 0 {
			if err := tx.Model(&models.Message{}).
				Where("id IN ?", ids).
				Update("read_at", time.Now()).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Conversation{}).
			Where("id = ?", conv.ID).
			Update(conv.UnreadColumn(memberID), 0).Error
	})

	if err != nil {
		return nil, err
	}

	return ids, nil
}

// MarkMessagesRead помечает прочитанными только перечисленные сообщения,
// счетчик уменьшается ровно на число ранее непрочитанных среди них.
// Повторная пометка — no-op.
func (d *Database) MarkMessagesRead(conv *models.Conversation, memberID uuid.UUID, messageIDs []uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Message{}).
			Where("id IN ? AND conversation_id = ? AND sender_id <> ? AND read_at IS NULL", messageIDs, conv.ID, memberID).
			Pluck("id", &ids).Error; err != nil {
			return err
		}

		if len(ids) == 0 {
			return nil
		}

		if err := tx.Model(&models.Message{}).
			Where("id IN ?", ids).
			Update("read_at", time.Now()).Error; err != nil {
			return err
		}

		column := conv.UnreadColumn(memberID)
		return tx.Model(&models.Conversation{}).
			Where("id = ?", conv.ID).
			Update(column, gorm.Expr("GREATEST("+column+" - ?, 0)", len(ids))).Error
	})

	if err != nil {
		return nil, err
	}

	return ids, nil
}
