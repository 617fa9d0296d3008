package seed

import (
	"errors"

	"github.com/Kyz7/beritablog/internal/models"
	"github.com/Kyz7/beritablog/internal/utils"

	"gorm.io/gorm"
)

// SeedAdmin makes sure an admin with the given username exists. It never
// touches the password of an existing account. An empty username or
// password skips seeding.
func SeedAdmin(db *gorm.DB, name, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}

	var existing models.Admin
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return false, err
	}

	admin := models.Admin{
		Nama:     name,
		Username: username,
		Password: hashed,
	}
	if err := db.Create(&admin).Error; err != nil {
		return false, err
	}
	return true, nil
}
