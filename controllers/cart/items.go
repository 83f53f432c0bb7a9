package cartcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/shopora/ecommerce-api/config"
	"github.com/shopora/ecommerce-api/models"
	"github.com/shopora/ecommerce-api/pricing"
)

type addItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type adjustItemRequest struct {
	Action   string `json:"action" binding:"required,oneof=increase decrease"`
	Quantity int    `json:"quantity"`
}

// GET /api/orders/carts/:id/items
func ListCartItems(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, ok := cartForRequest(c, db)
		if !ok {
			return
		}
		out := make([]CartItemResponse, 0, len(cart.Items))
		for i := range cart.Items {
			item := &cart.Items[i]
			out = append(out, CartItemResponse{
				ID:        item.ID,
				Product:   serializeProduct(item, cfg),
				Quantity:  item.Quantity,
				LineTotal: pricing.LineTotal(item.Product.Price, item.Product.DiscountPercent, item.Quantity),
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

// POST /api/orders/carts/:id/items
// Adding a product already in the cart bumps its quantity instead of
// creating a second row.
func AddCartItem(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, ok := cartForRequest(c, db)
		if !ok {
			return
		}
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
			return
		}
		if req.Quantity <= 0 {
			req.Quantity = 1
		}

		var product models.Product
		if err := db.First(&product, req.ProductID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
			return
		}

		var item models.CartItem
		err := db.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&item).Error
		switch {
		case err == nil:
			item.Quantity += req.Quantity
			if err := db.Save(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
				return
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: req.Quantity}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add cart item"})
				return
			}
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add cart item"})
			return
		}

		c.JSON(http.StatusCreated, itemResponse(db, &item, cfg))
	}
}

// PATCH /api/orders/carts/:id/items/:item_id
func UpdateCartItem(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, ok := cartForRequest(c, db)
		if !ok {
			return
		}
		var req updateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be at least 1"})
			return
		}
		item, ok := itemForCart(c, db, cart)
		if !ok {
			return
		}
		item.Quantity = req.Quantity
		if err := db.Save(item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		c.JSON(http.StatusOK, itemResponse(db, item, cfg))
	}
}

// POST /api/orders/carts/:id/items/:item_id/adjust
// Applies a relative quantity change. Decreasing never drops below 1;
// removal is an explicit DELETE.
func AdjustCartItem(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, ok := cartForRequest(c, db)
		if !ok {
			return
		}
		var req adjustItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "action must be increase or decrease"})
			return
		}
		if req.Quantity <= 0 {
			req.Quantity = 1
		}
		item, ok := itemForCart(c, db, cart)
		if !ok {
			return
		}
		switch req.Action {
		case "increase":
			item.Quantity += req.Quantity
		case "decrease":
			item.Quantity -= req.Quantity
			if item.Quantity < 1 {
				item.Quantity = 1
			}
		}
		if err := db.Save(item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		c.JSON(http.StatusOK, itemResponse(db, item, cfg))
	}
}

// DELETE /api/orders/carts/:id/items/:item_id
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, ok := cartForRequest(c, db)
		if !ok {
			return
		}
		result := db.Where("cart_id = ? AND id = ?", cart.ID, c.Param("item_id")).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
	}
}

func itemForCart(c *gin.Context, db *gorm.DB, cart *models.Cart) (*models.CartItem, bool) {
	var item models.CartItem
	err := db.Where("cart_id = ? AND id = ?", cart.ID, c.Param("item_id")).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
		}
		return nil, false
	}
	return &item, true
}

// itemResponse reloads the item with its product graph for serialization.
func itemResponse(db *gorm.DB, item *models.CartItem, cfg *config.Config) CartItemResponse {
	loaded := *item
	err := db.
		Preload("Product.Seller").
		Preload("Product.Category").
		Preload("Product.Brand").
		Preload("Product.Tags").
		Preload("Product.Images").
		Preload("Product.Reviews.User.Profile").
		First(&loaded, item.ID).Error
	if err != nil {
		log.Error().Err(err).Uint("cart_item_id", item.ID).Msg("failed to reload cart item")
	}
	return CartItemResponse{
		ID:        loaded.ID,
		Product:   serializeProduct(&loaded, cfg),
		Quantity:  loaded.Quantity,
		LineTotal: pricing.LineTotal(loaded.Product.Price, loaded.Product.DiscountPercent, loaded.Quantity),
	}
}
