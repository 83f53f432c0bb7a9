package productcontroller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopora/ecommerce-api/config"
	"github.com/shopora/ecommerce-api/middleware"
	"github.com/shopora/ecommerce-api/models"
	"github.com/shopora/ecommerce-api/uploads"
)

// POST /api/catalog/products
// Multipart form: title, description, price, stock, discount_percent,
// featured, category (slug), brand (slug), tags (comma-separated slugs) and
// any number of files under "images". The seller is always the caller.
func CreateProduct(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.MustCurrentUser(c)
		if !ok {
			return
		}

		title := c.PostForm("title")
		priceStr := c.PostForm("price")
		if title == "" || priceStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title and price are required"})
			return
		}
		price, err := decimal.NewFromString(priceStr)
		if err != nil || price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		product := models.Product{
			SellerID:    user.ID,
			Title:       title,
			Description: c.PostForm("description"),
			Price:       price,
			IsApproved:  true,
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

		if slugField := c.PostForm("category"); slugField != "" {
			var category models.Category
			if err := db.Where("slug = ?", slugField).First(&category).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
				return
			}
			product.CategoryID = &category.ID
		}
		if slugField := c.PostForm("brand"); slugField != "" {
			var brand models.Brand
			if err := db.Where("slug = ?", slugField).First(&brand).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown brand"})
				return
			}
			product.BrandID = &brand.ID
		}
		if tagsField := c.PostForm("tags"); tagsField != "" {
			tags, err := resolveTags(db, tagsField)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			product.Tags = tags
		}

		// Each uploaded file becomes its own image record.
		form, _ := c.MultipartForm()
		if form != nil {
			for _, file := range form.File["images"] {
				path, err := uploads.Save(c, file, cfg.Media.Root, "products")
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
					return
				}
				product.Images = append(product.Images, models.ProductImage{Image: path})
			}
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		var created models.Product
		if err := preloadAll(db).First(&created, product.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load created product"})
			return
		}
		c.JSON(http.StatusCreated, Serialize(&created, cfg.Media.URL))
	}
}

func resolveTags(db *gorm.DB, field string) ([]models.Tag, error) {
	slugs := strings.Split(field, ",")
	for i := range slugs {
		slugs[i] = strings.TrimSpace(slugs[i])
	}
	var tags []models.Tag
	if err := db.Where("slug IN ?", slugs).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(slugs) {
		return nil, errUnknownTag
	}
	return tags, nil
}

var errUnknownTag = errors.New("Unknown tag")
