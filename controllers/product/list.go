package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/ecommerce-api/config"
	"github.com/shopora/ecommerce-api/middleware"
	"github.com/shopora/ecommerce-api/models"
	"github.com/shopora/ecommerce-api/pagination"
)

// preloadAll attaches every association a product response renders.
func preloadAll(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Seller").
		Preload("Category").
		Preload("Brand").
		Preload("Tags").
		Preload("Images").
		Preload("Reviews.User.Profile")
}

// GET /api/catalog/products
// Filters: ?category=<slug> ?brand=<slug> ?tags=<slug,slug> ?search=<text> ?page=N
func GetProducts(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{})

		if v := c.Query("category"); v != "" {
			query = query.
				Joins("JOIN categories ON categories.id = products.category_id").
				Where("categories.slug = ?", v)
		}
		if v := c.Query("brand"); v != "" {
			query = query.
				Joins("JOIN brands ON brands.id = products.brand_id").
				Where("brands.slug = ?", v)
		}
		if v := c.Query("tags"); v != "" {
			slugs := strings.Split(v, ",")
			for i := range slugs {
				slugs[i] = strings.TrimSpace(slugs[i])
			}
			query = query.
				Joins("JOIN product_tags ON product_tags.product_id = products.id").
				Joins("JOIN tags ON tags.id = product_tags.tag_id").
				Where("tags.slug IN ?", slugs).
				Group("products.id")
		}
		if v := c.Query("search"); v != "" {
			pattern := "%" + strings.ToLower(v) + "%"
			query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		page := pagination.FromRequest(c)
		var products []models.Product
		if err := pagination.Apply(preloadAll(query), page, cfg.PageSize).
			Order("products.created_at DESC").
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, pagination.Envelope(count, page, cfg.PageSize, SerializeMany(products, cfg.Media.URL)))
	}
}

// GET /api/catalog/products/featured
func GetFeaturedProducts(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := preloadAll(db.Where("featured = ?", true)).
			Order("created_at DESC").
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch featured products"})
			return
		}
		c.JSON(http.StatusOK, SerializeMany(products, cfg.Media.URL))
	}
}

// GET /api/catalog/products/seller lists the caller's own products. The policy
// table already guarantees a seller profile.
func GetSellerProducts(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.MustCurrentUser(c)
		if !ok {
			return
		}
		var products []models.Product
		if err := preloadAll(db.Where("seller_id = ?", user.ID)).
			Order("created_at DESC").
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch seller products"})
			return
		}
		c.JSON(http.StatusOK, SerializeMany(products, cfg.Media.URL))
	}
}
