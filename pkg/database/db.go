package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the postgres connection for the given DSN.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	return db, nil
}
