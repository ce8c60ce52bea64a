package database

import (
	"github.com/thereayou/bookswap/internal/models"
	"time"
)

func (d *Database) SaveMember(member *models.Member) error {
	if err := d.db.Create(member).Error; err != nil {
		return err
	}
	return nil
}

func (d *Database) UpdateMember(member *models.Member) error {
	return d.db.Save(member).Error
}

func (d *Database) GetMember(id string) (*models.Member, error) {
	member := models.Member{}
	if err := d.db.First(&member, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (d *Database) FindMemberByEmail(email string) (*models.Member, error) {
	member := models.Member{}
	if err := d.db.Where("email = ?", email).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (d *Database) UpdateLastSeen(id string) error {
	return d.db.Model(&models.Member{}).Where("id = ?", id).Update("last_seen_at", time.Now()).Error
}
