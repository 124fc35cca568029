package models

import "time"

// CartItem is one line of a user's shopping cart. The composite unique
// index on (user_id, item_id) is what makes the add-to-cart upsert a
// single conditional write instead of a racy check-then-insert.
// Cart rows are hard-deleted: a soft-deleted row would keep occupying
// the unique index and block re-adding the item.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_cart_user_item;type:varchar(36)"`
	ItemID    string    `json:"item_id" gorm:"uniqueIndex:idx_cart_user_item;type:varchar(36)"`
	Quantity  int       `json:"quantity" gorm:"default:1" validate:"gte=1"`
	Item      Item      `json:"item" gorm:"foreignKey:ItemID"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
