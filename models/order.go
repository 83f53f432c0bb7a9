package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string
type PaymentMethod string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"

	PaymentMethodCOD    PaymentMethod = "COD"
	PaymentMethodCard   PaymentMethod = "CARD"
	PaymentMethodPayPal PaymentMethod = "PAYPAL"
)

// ParseOrderStatus maps a client string onto the status enum.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.ToUpper(s)) {
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusProcessing:
		return OrderStatusProcessing, nil
	case OrderStatusShipped:
		return OrderStatusShipped, nil
	case OrderStatusDelivered:
		return OrderStatusDelivered, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// ParsePaymentMethod maps a client string onto the payment method enum.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	if s == "" {
		return PaymentMethodCOD, nil
	}
	switch PaymentMethod(strings.ToUpper(s)) {
	case PaymentMethodCOD:
		return PaymentMethodCOD, nil
	case PaymentMethodCard:
		return PaymentMethodCard, nil
	case PaymentMethodPayPal:
		return PaymentMethodPayPal, nil
	default:
		return "", errors.New("invalid payment method")
	}
}

// Order totals are computed once at creation and never recomputed.
type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          *uint           `gorm:"index" json:"user_id,omitempty"`
	SessionKey      string          `json:"session_key,omitempty"`
	ShippingAddress string          `gorm:"not null" json:"shipping_address"`
	PaymentMethod   PaymentMethod   `gorm:"type:VARCHAR(20);default:'COD'" json:"payment_method"`
	Status          OrderStatus     `gorm:"type:VARCHAR(20);default:'PENDING'" json:"status"`
	Total           decimal.Decimal `gorm:"type:numeric(10,2)" json:"total"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
}

// OrderItem freezes the product's effective unit price at order time.
// The product reference is delete-protected so historical orders keep
// resolving.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"-"`
	ProductID uint            `gorm:"not null" json:"product_id"`
	Product   Product         `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"-"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Quantity  int             `gorm:"not null;default:1" json:"quantity"`
}
