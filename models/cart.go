package models

import "time"

// Cart belongs either to a registered user or to a guest identified by an
// opaque session key. The unique indexes enforce one active cart per
// identity at the storage layer.
type Cart struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     *uint      `gorm:"uniqueIndex" json:"user_id,omitempty"`
	SessionKey *string    `gorm:"uniqueIndex" json:"session_key,omitempty"`
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    uint    `gorm:"not null;index" json:"cart_id"`
	ProductID uint    `gorm:"not null" json:"-"`
	Product   Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product"`
	Quantity  int     `gorm:"not null;default:1" json:"quantity"`
}
