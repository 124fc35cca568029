package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the storefront.
type User struct {
	ID    string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name  string `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	// Bcrypt hash. No json tag for security.
	Password string `json:"-" gorm:"type:varchar(255)"`
	// Role set, e.g. ["USER"] or ["USER","ADMIN"]. Stored as a JSON column.
	Permissions []string `json:"permissions" gorm:"serializer:json;type:text"`
	// Password-reset state. Set by a reset request, cleared when the reset
	// completes. Never serialized to clients.
	ResetToken       *string    `json:"-" gorm:"type:varchar(64);index"`
	ResetTokenExpiry *time.Time `json:"-"`
	gorm.Model       `json:"-"`
}
