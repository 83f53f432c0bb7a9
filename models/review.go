package models

import "time"

// Review holds a 1-5 rating. The composite unique index lets the store
// reject a second review from the same user for the same product.
type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_review_product_user" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_product_user" json:"-"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Rating    int       `gorm:"not null;default:5" json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
