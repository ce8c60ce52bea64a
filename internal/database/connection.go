package database

import (
	"errors"
	"github.com/thereayou/bookswap/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"os"
)

func (d *Database) Connect() error {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return errors.New("DATABASE_URL is not set")
	}

	var err error
	// TranslateError нужен, чтобы гонка на уникальных индексах
	// приходила как gorm.ErrDuplicatedKey
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}

	err = db.AutoMigrate(
		&models.Member{},
		&models.ExchangeRequest{},
		&models.Conversation{},
		&models.Message{},
		&models.Reaction{},
		&models.Notification{},
	)
	if err != nil {
		return err
	}

	d.db = db

	return nil
}
