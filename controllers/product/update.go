package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopora/ecommerce-api/config"
	"github.com/shopora/ecommerce-api/middleware"
	"github.com/shopora/ecommerce-api/models"
	"github.com/shopora/ecommerce-api/uploads"
)

// PUT /api/catalog/products/:id
// Partial multipart update; new files under "images" are appended without
// touching existing ones. Only the seller who listed the product (or staff)
// may edit it.
func UpdateProduct(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.MustCurrentUser(c)
		if !ok {
			return
		}

		var product models.Product
		if err := db.Preload("Tags").First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			}
			return
		}
		if product.SellerID != user.ID && !user.IsStaff {
			c.JSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to edit this product"})
			return
		}

		if v := c.PostForm("title"); v != "" {
			product.Title = v
		}
		if v := c.PostForm("description"); v != "" {
			product.Description = v
		}
		if v := c.PostForm("price"); v != "" {
			price, err := decimal.NewFromString(v)
			if err != nil || price.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
				return
			}
			product.Price = price
		}
		if v := c.PostForm("stock"); v != "" {
			stock, err := strconv.Atoi(v)
			if err != nil || stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
				return
			}
			product.Stock = stock
		}
		if v := c.PostForm("discount_percent"); v != "" {
			dp, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discount_percent"})
				return
			}
			product.DiscountPercent = dp
		}
		if v := c.PostForm("featured"); v != "" {
			product.Featured = v == "true" || v == "1"
		}
		if v := c.PostForm("category"); v != "" {
			var category models.Category
			if err := db.Where("slug = ?", v).First(&category).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
				return
			}
			product.CategoryID = &category.ID
		}
		if v := c.PostForm("brand"); v != "" {
			var brand models.Brand
			if err := db.Where("slug = ?", v).First(&brand).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown brand"})
				return
			}
			product.BrandID = &brand.ID
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if v := c.PostForm("tags"); v != "" {
				tags, err := resolveTags(tx, v)
				if err != nil {
					return err
				}
				if err := tx.Model(&product).Association("Tags").Replace(tags); err != nil {
					return err
				}
			}

			form, _ := c.MultipartForm()
			if form != nil {
				for _, file := range form.File["images"] {
					path, err := uploads.Save(c, file, cfg.Media.Root, "products")
					if err != nil {
						return err
					}
					if err := tx.Create(&models.ProductImage{ProductID: product.ID, Image: path}).Error; err != nil {
						return err
					}
				}
			}

			return tx.Save(&product).Error
		})
		if err != nil {
			if errors.Is(err, errUnknownTag) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		var updated models.Product
		if err := preloadAll(db).First(&updated, product.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load updated product"})
			return
		}
		c.JSON(http.StatusOK, Serialize(&updated, cfg.Media.URL))
	}
}
