package productcontroller

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopora/ecommerce-api/models"
	"github.com/shopora/ecommerce-api/pricing"
)

// ProductResponse is the wire shape for a product: taxonomy flattened to
// slugs, images as public URLs and the discount already applied into
// final_price.
type ProductResponse struct {
	ID              uint             `json:"id"`
	Seller          string           `json:"seller"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Price           decimal.Decimal  `json:"price"`
	Stock           int              `json:"stock"`
	Category        *string          `json:"category"`
	Brand           *string          `json:"brand"`
	DiscountPercent int              `json:"discount_percent"`
	Featured        bool             `json:"featured"`
	CreatedAt       time.Time        `json:"created_at"`
	Tags            []string         `json:"tags"`
	Images          []ImageResponse  `json:"images"`
	Reviews         []ReviewResponse `json:"reviews"`
	FinalPrice      decimal.Decimal  `json:"final_price"`
}

type ImageResponse struct {
	ID    uint   `json:"id"`
	Image string `json:"image"`
}

type ReviewResponse struct {
	ID        uint         `json:"id"`
	User      UserResponse `json:"user"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment"`
	CreatedAt time.Time    `json:"created_at"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// MediaURL joins a stored relative path with the public media prefix.
// Absolute URLs, e.g. social-login avatars, pass through untouched.
func MediaURL(prefix, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return prefix + "/" + path
}

// Serialize builds the response for a product loaded with its associations.
func Serialize(p *models.Product, mediaPrefix string) ProductResponse {
	resp := ProductResponse{
		ID:              p.ID,
		Seller:          p.Seller.Username,
		Title:           p.Title,
		Description:     p.Description,
		Price:           p.Price,
		Stock:           p.Stock,
		DiscountPercent: p.DiscountPercent,
		Featured:        p.Featured,
		CreatedAt:       p.CreatedAt,
		Tags:            make([]string, 0, len(p.Tags)),
		Images:          make([]ImageResponse, 0, len(p.Images)),
		Reviews:         make([]ReviewResponse, 0, len(p.Reviews)),
		FinalPrice:      pricing.Effective(p.Price, p.DiscountPercent),
	}
	if p.Category != nil {
		resp.Category = &p.Category.Slug
	}
	if p.Brand != nil {
		resp.Brand = &p.Brand.Slug
	}
	for _, t := range p.Tags {
		resp.Tags = append(resp.Tags, t.Slug)
	}
	for _, img := range p.Images {
		resp.Images = append(resp.Images, ImageResponse{ID: img.ID, Image: MediaURL(mediaPrefix, img.Image)})
	}
	for _, r := range p.Reviews {
		resp.Reviews = append(resp.Reviews, SerializeReview(&r, mediaPrefix))
	}
	return resp
}

// SerializeMany maps a product slice into responses.
func SerializeMany(products []models.Product, mediaPrefix string) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, Serialize(&products[i], mediaPrefix))
	}
	return out
}

// SerializeReview builds the nested review shape.
func SerializeReview(r *models.Review, mediaPrefix string) ReviewResponse {
	return ReviewResponse{
		ID: r.ID,
		User: UserResponse{
			ID:       r.User.ID,
			Username: r.User.Username,
			Avatar:   MediaURL(mediaPrefix, r.User.Profile.Avatar),
		},
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
