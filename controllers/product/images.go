package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/ecommerce-api/config"
	"github.com/shopora/ecommerce-api/middleware"
	"github.com/shopora/ecommerce-api/models"
	"github.com/shopora/ecommerce-api/uploads"
)

// GET /api/catalog/products/:id/images
func ListProductImages(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var images []models.ProductImage
		if err := db.Where("product_id = ?", c.Param("id")).Find(&images).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch images"})
			return
		}
		out := make([]ImageResponse, 0, len(images))
		for _, img := range images {
			out = append(out, ImageResponse{ID: img.ID, Image: MediaURL(cfg.Media.URL, img.Image)})
		}
		c.JSON(http.StatusOK, out)
	}
}

// POST /api/catalog/products/:id/images
// Multipart upload, multiple files under "images"; owner or staff only.
func AddProductImages(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, ok := ownedProduct(c, db)
		if !ok {
			return
		}

		form, err := c.MultipartForm()
		if err != nil || len(form.File["images"]) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "At least one file under 'images' is required"})
			return
		}

		var created []ImageResponse
		for _, file := range form.File["images"] {
			path, err := uploads.Save(c, file, cfg.Media.Root, "products")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
				return
			}
			img := models.ProductImage{ProductID: product.ID, Image: path}
			if err := db.Create(&img).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
				return
			}
			created = append(created, ImageResponse{ID: img.ID, Image: MediaURL(cfg.Media.URL, img.Image)})
		}
		c.JSON(http.StatusCreated, created)
	}
}

// DELETE /api/catalog/products/:id/images/:image_id
func DeleteProductImage(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, ok := ownedProduct(c, db)
		if !ok {
			return
		}

		var image models.ProductImage
		if err := db.Where("id = ? AND product_id = ?", c.Param("image_id"), product.ID).
			First(&image).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
			return
		}
		if err := db.Delete(&image).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
			return
		}
		uploads.Remove(cfg.Media.Root, image.Image)
		c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
	}
}

// ownedProduct loads the product in the URL and checks the caller may
// modify it.
func ownedProduct(c *gin.Context, db *gorm.DB) (*models.Product, bool) {
	user, ok := middleware.MustCurrentUser(c)
	if !ok {
		return nil, false
	}
	var product models.Product
	if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		}
		return nil, false
	}
	if product.SellerID != user.ID && !user.IsStaff {
		c.JSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to modify this product"})
		return nil, false
	}
	return &product, true
}
