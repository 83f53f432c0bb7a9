package accountcontroller

import (
	"time"

	productcontroller "github.com/shopora/ecommerce-api/controllers/product"
	"github.com/shopora/ecommerce-api/models"
)

type ProfileResponse struct {
	Mobile    string  `json:"mobile"`
	Birthdate *string `json:"birthdate"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Avatar    string  `json:"avatar"`
	IsSeller  bool    `json:"is_seller"`
}

type UserDetailResponse struct {
	ID        uint            `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	IsActive  bool            `json:"is_active"`
	IsStaff   bool            `json:"is_staff"`
	Profile   ProfileResponse `json:"profile"`
	CreatedAt time.Time       `json:"created_at"`
}

func SerializeUser(u *models.User, mediaPrefix string) UserDetailResponse {
	return UserDetailResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsActive:  u.IsActive,
		IsStaff:   u.IsStaff,
		Profile:   SerializeProfile(&u.Profile, mediaPrefix),
		CreatedAt: u.CreatedAt,
	}
}

func SerializeProfile(p *models.Profile, mediaPrefix string) ProfileResponse {
	var birthdate *string
	if p.Birthdate != nil {
		formatted := p.Birthdate.Format("2006-01-02")
		birthdate = &formatted
	}
	return ProfileResponse{
		Mobile:    p.Mobile,
		Birthdate: birthdate,
		Address:   p.Address,
		City:      p.City,
		Country:   p.Country,
		Avatar:    productcontroller.MediaURL(mediaPrefix, p.Avatar),
		IsSeller:  p.IsSeller,
	}
}
