package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/ecommerce-api/config"
	cartcontroller "github.com/shopora/ecommerce-api/controllers/cart"
	ordercontroller "github.com/shopora/ecommerce-api/controllers/order"
	"github.com/shopora/ecommerce-api/email"
	"github.com/shopora/ecommerce-api/middleware"
)

func registerOrders(g *gin.RouterGroup, db *gorm.DB, cfg *config.Config, mailer *email.Mailer) {
	carts := g.Group("/carts")
	{
		carts.GET("", cartcontroller.ListCarts(db, cfg))
		carts.POST("", cartcontroller.CreateCart(db, cfg))
		carts.GET("/my", cartcontroller.MyCart(db, cfg))
		carts.POST("/session", cartcontroller.CreateSession())
		carts.DELETE("/:id", cartcontroller.DeleteCart(db))

		carts.GET("/:id/items", cartcontroller.ListCartItems(db, cfg))
		carts.POST("/:id/items", cartcontroller.AddCartItem(db, cfg))
		carts.PATCH("/:id/items/:item_id", cartcontroller.UpdateCartItem(db, cfg))
		carts.POST("/:id/items/:item_id/adjust", cartcontroller.AdjustCartItem(db, cfg))
		carts.DELETE("/:id/items/:item_id", cartcontroller.RemoveCartItem(db))
	}

	orders := g.Group("/orders")
	{
		orders.POST("",
			middleware.Require("orders", "create"),
			ordercontroller.PlaceOrder(db, mailer))
		orders.GET("",
			middleware.Require("orders", "list"),
			ordercontroller.ListOrders(db))
		orders.GET("/seller",
			middleware.Require("orders", "seller"),
			ordercontroller.GetSellerOrders(db))
		orders.GET("/:id",
			middleware.Require("orders", "detail"),
			ordercontroller.GetOrder(db))
		orders.PATCH("/:id/status",
			middleware.Require("orders", "status"),
			ordercontroller.UpdateOrderStatus(db))
	}
}
