package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/FitWiseApp/projeto-monorepo/internal/domain"

	"gorm.io/gorm"
)

// Seed promotes the bootstrap admin account if one is configured. The
// account must already exist and be verified; roles are never granted to
// an address nobody has proven ownership of.
func Seed(db *gorm.DB, bootstrapAdminEmail string) error {
	email := strings.TrimSpace(strings.ToLower(bootstrapAdminEmail))
	if email == "" {
		return nil
	}

	var user domain.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("lookup bootstrap admin: %w", err)
	}
	if !user.IsVerified || user.Role == domain.RoleAdmin {
		return nil
	}
	if err := db.Model(&user).Update("role", domain.RoleAdmin).Error; err != nil {
		return fmt.Errorf("promote bootstrap admin: %w", err)
	}
	return nil
}
