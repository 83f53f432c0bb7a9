package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerID    uint   `gorm:"not null;index" json:"-"`
	Seller      User   `gorm:"foreignKey:SellerID" json:"-"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	// Price is the list price before discount, stored as an exact decimal.
	Price           decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Stock           int             `gorm:"not null;default:0" json:"stock"`
	CategoryID      *uint           `json:"-"`
	Category        *Category       `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
	BrandID         *uint           `json:"-"`
	Brand           *Brand          `gorm:"constraint:OnDelete:SET NULL" json:"brand,omitempty"`
	DiscountPercent int             `gorm:"not null;default:0" json:"discount_percent"`
	Featured        bool            `gorm:"not null;default:false" json:"featured"`
	IsApproved      bool            `gorm:"not null;default:true" json:"is_approved"`
	Tags            []Tag           `gorm:"many2many:product_tags" json:"tags"`
	Images          []ProductImage  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	Reviews         []Review        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"reviews"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductImage rows are removed together with their product.
type ProductImage struct {
	ID        uint `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint `gorm:"not null;index" json:"-"`
	// Image is a path relative to the media root.
	Image string `gorm:"not null" json:"image"`
}
