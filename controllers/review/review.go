// Package reviewcontroller serves the review list nested under a product.
package reviewcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/ecommerce-api/config"
	productcontroller "github.com/shopora/ecommerce-api/controllers/product"
	"github.com/shopora/ecommerce-api/middleware"
	"github.com/shopora/ecommerce-api/models"
)

type createReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// GET /api/catalog/products/:id/reviews
func ListReviews(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reviews []models.Review
		if err := db.Preload("User.Profile").
			Where("product_id = ?", c.Param("id")).
			Order("created_at DESC").
			Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}
		out := make([]productcontroller.ReviewResponse, 0, len(reviews))
		for i := range reviews {
			out = append(out, productcontroller.SerializeReview(&reviews[i], cfg.Media.URL))
		}
		c.JSON(http.StatusOK, out)
	}
}

// POST /api/catalog/products/:id/reviews
// One review per (product, user); the unique index rejects the second.
func CreateReview(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.MustCurrentUser(c)
		if !ok {
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var req createReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		review := models.Review{
			ProductID: product.ID,
			UserID:    user.ID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		}
		if err := db.Create(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "You have already reviewed this product"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
			}
			return
		}

		review.User = *user
		c.JSON(http.StatusCreated, productcontroller.SerializeReview(&review, cfg.Media.URL))
	}
}
