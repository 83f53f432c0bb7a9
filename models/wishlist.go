package models

import "time"

// Wishlist links a user to a product at most once, enforced by the
// composite unique index.
type Wishlist struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"-"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"-"`
	Product   Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product"`
	CreatedAt time.Time `json:"created_at"`
}
