package cartcontroller

import (
	"github.com/shopspring/decimal"

	"github.com/shopora/ecommerce-api/config"
	productcontroller "github.com/shopora/ecommerce-api/controllers/product"
	"github.com/shopora/ecommerce-api/models"
	"github.com/shopora/ecommerce-api/pricing"
)

type CartItemResponse struct {
	ID        uint                              `json:"id"`
	Product   productcontroller.ProductResponse `json:"product"`
	Quantity  int                               `json:"quantity"`
	LineTotal decimal.Decimal                   `json:"line_total"`
}

type CartResponse struct {
	ID         uint               `json:"id"`
	UserID     *uint              `json:"user_id"`
	SessionKey *string            `json:"session_key"`
	Items      []CartItemResponse `json:"items"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
}

func SerializeCart(cart *models.Cart, mediaURL string) CartResponse {
	items := make([]CartItemResponse, 0, len(cart.Items))
	lines := make([]pricing.Line, 0, len(cart.Items))
	for i := range cart.Items {
		item := &cart.Items[i]
		line := pricing.Line{
			Price:           item.Product.Price,
			DiscountPercent: item.Product.DiscountPercent,
			Quantity:        item.Quantity,
		}
		lines = append(lines, line)
		items = append(items, CartItemResponse{
			ID:        item.ID,
			Product:   productcontroller.Serialize(&item.Product, mediaURL),
			Quantity:  item.Quantity,
			LineTotal: pricing.LineTotal(line.Price, line.DiscountPercent, line.Quantity),
		})
	}
	return CartResponse{
		ID:         cart.ID,
		UserID:     cart.UserID,
		SessionKey: cart.SessionKey,
		Items:      items,
		Subtotal:   pricing.Subtotal(lines),
	}
}

func serializeProduct(item *models.CartItem, cfg *config.Config) productcontroller.ProductResponse {
	return productcontroller.Serialize(&item.Product, cfg.Media.URL)
}

// emptyCart is the shape returned to a requester with no identity.
func emptyCart() CartResponse {
	return CartResponse{Items: []CartItemResponse{}, Subtotal: decimal.Zero}
}
