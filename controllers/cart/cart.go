// Package cartcontroller manages user and guest carts. A cart is owned
// either by a user id or by an opaque session key; every lookup is scoped to
// the requester's identity, so foreign carts behave as if they do not exist.
package cartcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopora/ecommerce-api/config"
	"github.com/shopora/ecommerce-api/middleware"
	"github.com/shopora/ecommerce-api/models"
)

type createCartRequest struct {
	SessionKey string `json:"session_key"`
}

// GET /api/orders/carts
// Lists the requester's carts (at most one under the storage constraints).
func ListCarts(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var carts []models.Cart
		query, ok := scopedQuery(c, db)
		if !ok {
			c.JSON(http.StatusOK, []CartResponse{})
			return
		}
		if err := preloadItems(query).Find(&carts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch carts"})
			return
		}
		out := make([]CartResponse, 0, len(carts))
		for i := range carts {
			out = append(out, SerializeCart(&carts[i], cfg.Media.URL))
		}
		c.JSON(http.StatusOK, out)
	}
}

// POST /api/orders/carts
func CreateCart(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createCartRequest
		_ = c.ShouldBindJSON(&req)

		cart := models.Cart{}
		if user := middleware.CurrentUser(c); user != nil {
			cart.UserID = &user.ID
		} else if req.SessionKey != "" {
			cart.SessionKey = &req.SessionKey
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session_key is required for guest carts"})
			return
		}

		if err := db.Create(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "A cart already exists for this identity"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cart"})
			}
			return
		}
		c.JSON(http.StatusCreated, SerializeCart(&cart, cfg.Media.URL))
	}
}

// GET /api/orders/carts/my
// Get-or-create the requester's cart. A request with neither a user nor a
// session key gets an empty cart shape, not an error.
func MyCart(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := ResolveCart(c, db, true)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve cart"})
			return
		}
		if cart == nil {
			c.JSON(http.StatusOK, emptyCart())
			return
		}
		c.JSON(http.StatusOK, SerializeCart(cart, cfg.Media.URL))
	}
}

// POST /api/orders/carts/session
// Mints an opaque session key for a guest browser.
func CreateSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"session_key": uuid.NewString()})
	}
}

// DELETE /api/orders/carts/:id
func DeleteCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, ok := cartForRequest(c, db)
		if !ok {
			return
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(cart).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart deleted"})
	}
}

// ResolveCart implements cart resolution: an authenticated user's cart, else
// the cart for the supplied session key, else nothing. With create set, a
// missing cart is created on the fly.
func ResolveCart(c *gin.Context, db *gorm.DB, create bool) (*models.Cart, error) {
	var cart models.Cart

	if user := middleware.CurrentUser(c); user != nil {
		err := preloadItems(db).Where("user_id = ?", user.ID).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) && create {
			cart = models.Cart{UserID: &user.ID}
			return &cart, db.Create(&cart).Error
		}
		if err != nil {
			return nil, err
		}
		return &cart, nil
	}

	if key := c.Query("session_key"); key != "" {
		err := preloadItems(db).Where("session_key = ?", key).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) && create {
			cart = models.Cart{SessionKey: &key}
			return &cart, db.Create(&cart).Error
		}
		if err != nil {
			return nil, err
		}
		return &cart, nil
	}

	return nil, nil
}

// scopedQuery narrows a cart query to the requester's identity. The second
// return is false when the request carries no identity at all.
func scopedQuery(c *gin.Context, db *gorm.DB) (*gorm.DB, bool) {
	if user := middleware.CurrentUser(c); user != nil {
		return db.Where("user_id = ?", user.ID), true
	}
	if key := c.Query("session_key"); key != "" {
		return db.Where("session_key = ?", key), true
	}
	return nil, false
}

// cartForRequest loads the cart in the URL, bounded by the requester's
// scope; a foreign cart id reads as not found.
func cartForRequest(c *gin.Context, db *gorm.DB) (*models.Cart, bool) {
	query, ok := scopedQuery(c, db)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return nil, false
	}
	var cart models.Cart
	if err := preloadItems(query).First(&cart, "carts.id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		}
		return nil, false
	}
	return &cart, true
}

func preloadItems(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Items.Product.Seller").
		Preload("Items.Product.Category").
		Preload("Items.Product.Brand").
		Preload("Items.Product.Tags").
		Preload("Items.Product.Images").
		Preload("Items.Product.Reviews.User.Profile")
}
