package entity

import (
	"gorm.io/gorm"
)

// Role is the closed set of staff roles.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "caja"
	RoleKitchen Role = "cocina"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCashier, RoleKitchen:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"` // bcrypt hash
	Role     Role   `gorm:"type:varchar(16);not null" json:"role"`

	Sessions []Session `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
