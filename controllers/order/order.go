// Package ordercontroller handles order placement and fulfilment views.
// Placement runs in a single transaction so the order, its price snapshots
// and the cart cleanup commit or roll back together.
package ordercontroller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopora/ecommerce-api/middleware"
	"github.com/shopora/ecommerce-api/models"
	"github.com/shopora/ecommerce-api/pricing"
)

type orderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type placeOrderRequest struct {
	ShippingAddress string             `json:"shipping_address" binding:"required,min=10"`
	PaymentMethod   string             `json:"payment_method"`
	SessionKey      string             `json:"session_key"`
	Email           string             `json:"email" binding:"omitempty,email"`
	Items           []orderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ConfirmationMailer delivers the order confirmation. Satisfied by
// *email.Mailer.
type ConfirmationMailer interface {
	SendOrderConfirmation(to string, order *models.Order)
}

// POST /api/orders/orders
// Creates the order, snapshots every unit price, then empties the
// requester's cart. Runs as one transaction.
func PlaceOrder(db *gorm.DB, mailer ConfirmationMailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req placeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": placementError(err)})
			return
		}

		method, err := models.ParsePaymentMethod(req.PaymentMethod)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment method"})
			return
		}

		user := middleware.CurrentUser(c)
		sessionKey := req.SessionKey
		if sessionKey == "" {
			sessionKey = c.Query("session_key")
		}
		if user == nil && sessionKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
			return
		}

		var order models.Order
		err = db.Transaction(func(tx *gorm.DB) error {
			order = models.Order{
				ShippingAddress: req.ShippingAddress,
				PaymentMethod:   method,
				Status:          models.OrderStatusPending,
				Total:           decimal.Zero,
			}
			if user != nil {
				order.UserID = &user.ID
			} else {
				order.SessionKey = sessionKey
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}

			total := decimal.Zero
			for _, line := range req.Items {
				var product models.Product
				if err := tx.First(&product, line.ProductID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("product %d does not exist", line.ProductID)
					}
					return err
				}
				unit := pricing.Effective(product.Price, product.DiscountPercent)
				item := models.OrderItem{
					OrderID:   order.ID,
					ProductID: product.ID,
					Price:     unit,
					Quantity:  line.Quantity,
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
				total = total.Add(unit.Mul(decimal.NewFromInt(int64(line.Quantity))))
			}

			order.Total = total.Round(2)
			if err := tx.Model(&order).Update("total", order.Total).Error; err != nil {
				return err
			}

			return clearCart(tx, user, sessionKey)
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := db.Preload("Items").First(&order, order.ID).Error; err != nil {
			log.Error().Err(err).Uint("order_id", order.ID).Msg("failed to reload order")
		}

		// Guests supply the confirmation address in the payload.
		recipient := req.Email
		if user != nil {
			recipient = user.Email
		}
		if recipient != "" && mailer != nil {
			mailer.SendOrderConfirmation(recipient, &order)
		}

		c.JSON(http.StatusCreated, order)
	}
}

// GET /api/orders/orders
func ListOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.MustCurrentUser(c)
		if !ok {
			return
		}
		var orders []models.Order
		err := db.Preload("Items").
			Where("user_id = ?", user.ID).
			Order("created_at DESC").
			Find(&orders).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/orders/:id
func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.MustCurrentUser(c)
		if !ok {
			return
		}
		var order models.Order
		err := db.Preload("Items").
			Where("user_id = ?", user.ID).
			First(&order, "orders.id = ?", c.Param("id")).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			}
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /api/orders/orders/seller
// Orders that contain at least one of the seller's products.
func GetSellerOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.MustCurrentUser(c)
		if !ok {
			return
		}
		var orders []models.Order
		err := db.
			Joins("JOIN order_items ON order_items.order_id = orders.id").
			Joins("JOIN products ON products.id = order_items.product_id").
			Where("products.seller_id = ?", user.ID).
			Group("orders.id").
			Preload("Items").
			Order("orders.created_at DESC").
			Find(&orders).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PATCH /api/orders/orders/:id/status
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
			return
		}
		status, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
			return
		}
		result := db.Model(&models.Order{}).
			Where("id = ?", c.Param("id")).
			Update("status", status)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "status": status})
	}
}

// clearCart empties the cart the order was placed from, scoped to the same
// identity the order was attached to.
func clearCart(tx *gorm.DB, user *models.User, sessionKey string) error {
	var cart models.Cart
	var err error
	if user != nil {
		err = tx.Where("user_id = ?", user.ID).First(&cart).Error
	} else {
		err = tx.Where("session_key = ?", sessionKey).First(&cart).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
}

func placementError(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "ShippingAddress"):
		return "shipping_address must be at least 10 characters"
	case strings.Contains(msg, "Items"):
		return "items must contain at least one product"
	case strings.Contains(msg, "Email"):
		return "email must be a valid address"
	default:
		return "Invalid order payload"
	}
}
