package database

import (
	"github.com/thereayou/bookswap/internal/models"
)

func (d *Database) GetExchangeRequest(id string) (*models.ExchangeRequest, error) {
	var exchange models.ExchangeRequest
	if err := d.db.First(&exchange, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &exchange, nil
}

func (d *Database) UpdateExchangeStatus(id, status string) error {
	return d.db.Model(&models.ExchangeRequest{}).Where("id = ?", id).Update("status", status).Error
}
