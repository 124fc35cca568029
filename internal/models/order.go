package models

import "gorm.io/gorm"

// OrderItem is a point-in-time copy of an Item's descriptive fields at
// order time. It keeps a non-owning reference to the original Item, which
// may later change or be deleted without affecting the order record.
type OrderItem struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string `json:"title" gorm:"type:varchar(255)"`
	Description string `json:"description" gorm:"type:text"`
	Price       int64  `json:"price"` // minor units, price at order time
	Image       string `json:"image" gorm:"type:varchar(512)"`
	Quantity    int    `json:"quantity"`
	ItemID      string `json:"item_id" gorm:"type:varchar(36)"`
	OrderID     string `json:"order_id" gorm:"index;type:varchar(36)"`
	UserID      string `json:"user_id" gorm:"type:varchar(36)"`
	gorm.Model  `json:"-"`
}

// Order is a completed checkout. Immutable after creation.
type Order struct {
	ID string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	// Total charged, in minor units, as confirmed by the payment processor.
	Total int64 `json:"total"`
	// Payment processor's charge identifier.
	Charge     string      `json:"charge" gorm:"type:varchar(64)"`
	UserID     string      `json:"user_id" gorm:"index;type:varchar(36)"`
	Items      []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	gorm.Model `json:"-"`
}
