package configs

import (
	"log"

	"sazonpos/entity"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the first admin account when the users table is empty.
func SeedAdmin(database *gorm.DB, username, password string) error {
	var count int64
	if err := database.Model(&entity.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Username: username,
		Password: string(hash),
		Role:     entity.RoleAdmin,
	}
	if err := database.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("✅ default admin %q created, change its password", username)
	return nil
}
