package db

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/equipment-lending/internal/models"
	"github.com/BruksfildServices01/equipment-lending/internal/validators"
)

// SeedAdmin creates the admin account on first start. An existing account
// with the same email is left untouched, so a changed ADMIN_PASSWORD does
// not overwrite a password set later.
func SeedAdmin(db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if password == "" {
		slog.Warn("ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}
	if !validators.IsEmail(email) {
		return fmt.Errorf("seed admin: invalid email %q", email)
	}

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("seed admin: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed admin: hash password: %w", err)
	}

	user := models.User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: string(hashed),
		Role:         "admin",
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	slog.Info("admin account created", "email", email)
	return nil
}
