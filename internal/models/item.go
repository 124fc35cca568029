package models

import "gorm.io/gorm"

// Item represents a product listed for sale.
// Price is in minor currency units (e.g. cents) to avoid floating-point
// rounding in payment amounts.
type Item struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string `json:"title" gorm:"type:varchar(255)" validate:"required,min=3,max=255"`
	Description string `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	Image       string `json:"image" gorm:"type:varchar(512)" validate:"omitempty,url"`
	// Owning user. Only the owner or an admin may update or delete the item.
	UserID     string `json:"user_id" gorm:"index;type:varchar(36)"`
	gorm.Model `json:"-"`
}
