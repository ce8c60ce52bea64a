package database

import (
	"github.com/google/uuid"
	"github.com/thereayou/bookswap/internal/models"
	"gorm.io/gorm/clause"
)

// UpsertReaction сохраняет реакцию, заменяя предыдущую реакцию
// того же участника на то же сообщение
func (d *Database) UpsertReaction(reaction *models.Reaction) error {
	return d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "message_id"}, {Name: "member_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"emoji", "created_at"}),
	}).Create(reaction).Error
}

func (d *Database) DeleteReaction(messageID, memberID uuid.UUID) error {
	return d.db.
		Where("message_id = ? AND member_id = ?", messageID, memberID).
		Delete(&models.Reaction{}).Error
}

// GetMessageReactions получает реакции сообщения в стабильном порядке
func (d *Database) GetMessageReactions(messageID uuid.UUID) ([]models.Reaction, error) {
	var reactions []models.Reaction

	err := d.db.
		Where("message_id = ?", messageID).
		Order("created_at ASC, id ASC").
		Find(&reactions).Error

	if err != nil {
		return nil, err
	}

	return reactions, nil
}
