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

// DELETE /api/catalog/products/:id
// Owner or staff only. Images and reviews cascade; tag links are cleared
// explicitly; the stored image files are removed best-effort afterwards.
func DeleteProduct(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.MustCurrentUser(c)
		if !ok {
			return
		}

		var product models.Product
		if err := db.Preload("Images").First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			}
			return
		}
		if product.SellerID != user.ID && !user.IsStaff {
			c.JSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to delete this product"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&product).Association("Tags").Clear(); err != nil {
				return err
			}
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
				return err
			}
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.Review{}).Error; err != nil {
				return err
			}
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.Wishlist{}).Error; err != nil {
				return err
			}
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&product).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}

		for _, img := range product.Images {
			uploads.Remove(cfg.Media.Root, img.Image)
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
