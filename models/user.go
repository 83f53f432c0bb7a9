package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PasswordHash string `gorm:"not null" json:"-"`
	IsActive     bool   `json:"is_active"`
	IsStaff      bool   `json:"is_staff"`
	// Provider is set for social-login accounts, e.g. "google".
	Provider  string    `json:"-"`
	Profile   Profile   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile extends User with shop-specific fields, one row per user.
type Profile struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID    uint       `gorm:"uniqueIndex;not null" json:"-"`
	Mobile    string     `json:"mobile"`
	Birthdate *time.Time `json:"birthdate"`
	Address   string     `json:"address"`
	City      string     `json:"city"`
	Country   string     `json:"country"`
	// Avatar is a path relative to the media root.
	Avatar   string `json:"avatar"`
	IsSeller bool   `json:"is_seller"`
}
