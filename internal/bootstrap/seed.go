package bootstrap

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"smartblog/internal/config"
	"smartblog/internal/entity"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Tag{},
		&entity.Post{},
		&entity.Comment{},
		&entity.Rating{},
	)
}

// SeedSuperuser creates the configured superuser account once. The
// account is created already confirmed so it can log in immediately.
func SeedSuperuser(db *gorm.DB, cfg *config.Config) error {
	if cfg.SuperuserEmail == "" || cfg.SuperuserUsername == "" || cfg.SuperuserPassword == "" {
		log.Println("Superuser credentials not configured, skipping seed")
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).
		Where("email = ?", cfg.SuperuserEmail).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Superuser already exists, skipping seed")
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(cfg.SuperuserPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	superuser := entity.User{
		Username:     cfg.SuperuserUsername,
		Email:        cfg.SuperuserEmail,
		PasswordHash: string(hashedPasswordBytes),
		Role:         entity.RoleSuperuser,
		Confirmed:    true,
	}

	if err := db.Create(&superuser).Error; err != nil {
		return err
	}

	log.Println("Superuser seeded successfully")
	return nil
}
