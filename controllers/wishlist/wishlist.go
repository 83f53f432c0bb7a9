// Package wishlistcontroller manages the authenticated user's wishlist.
package wishlistcontroller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/ecommerce-api/config"
	productcontroller "github.com/shopora/ecommerce-api/controllers/product"
	"github.com/shopora/ecommerce-api/middleware"
	"github.com/shopora/ecommerce-api/models"
)

type addWishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

type wishlistResponse struct {
	ID        uint                              `json:"id"`
	Product   productcontroller.ProductResponse `json:"product"`
	CreatedAt time.Time                         `json:"created_at"`
}

// GET /api/catalog/wishlist
func ListWishlist(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.MustCurrentUser(c)
		if !ok {
			return
		}
		var entries []models.Wishlist
		if err := db.
			Preload("Product.Seller").
			Preload("Product.Category").
			Preload("Product.Brand").
			Preload("Product.Tags").
			Preload("Product.Images").
			Preload("Product.Reviews.User.Profile").
			Where("user_id = ?", user.ID).
			Order("created_at DESC").
			Find(&entries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}

		out := make([]wishlistResponse, 0, len(entries))
		for i := range entries {
			out = append(out, wishlistResponse{
				ID:        entries[i].ID,
				Product:   productcontroller.Serialize(&entries[i].Product, cfg.Media.URL),
				CreatedAt: entries[i].CreatedAt,
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

// POST /api/catalog/wishlist
// A product can be wishlisted once per user; duplicates are a 400.
func AddToWishlist(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.MustCurrentUser(c)
		if !ok {
			return
		}
		var req addWishlistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, req.ProductID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
			return
		}

		item := models.Wishlist{UserID: user.ID, ProductID: product.ID}
		if err := db.Create(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product is already in your wishlist"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to wishlist"})
			}
			return
		}

		item.Product = product
		c.JSON(http.StatusCreated, wishlistResponse{
			ID:        item.ID,
			Product:   productcontroller.Serialize(&item.Product, cfg.Media.URL),
			CreatedAt: item.CreatedAt,
		})
	}
}

// DELETE /api/catalog/wishlist/:id
func RemoveFromWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.MustCurrentUser(c)
		if !ok {
			return
		}
		result := db.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).Delete(&models.Wishlist{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove from wishlist"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist entry not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist"})
	}
}
