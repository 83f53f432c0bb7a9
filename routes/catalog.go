package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/ecommerce-api/config"
	productcontroller "github.com/shopora/ecommerce-api/controllers/product"
	reviewcontroller "github.com/shopora/ecommerce-api/controllers/review"
	taxonomycontroller "github.com/shopora/ecommerce-api/controllers/taxonomy"
	wishlistcontroller "github.com/shopora/ecommerce-api/controllers/wishlist"
	"github.com/shopora/ecommerce-api/middleware"
)

func registerCatalog(g *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	products := g.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(db, cfg))
		products.GET("/featured", productcontroller.GetFeaturedProducts(db, cfg))
		products.GET("/seller",
			middleware.Require("products", "seller"),
			productcontroller.GetSellerProducts(db, cfg))
		products.GET("/:id", productcontroller.GetProductByID(db, cfg))
		products.POST("",
			middleware.Require("products", "create"),
			productcontroller.CreateProduct(db, cfg))
		products.PUT("/:id",
			middleware.Require("products", "update"),
			productcontroller.UpdateProduct(db, cfg))
		products.DELETE("/:id",
			middleware.Require("products", "delete"),
			productcontroller.DeleteProduct(db, cfg))

		products.GET("/:id/images", productcontroller.ListProductImages(db, cfg))
		products.POST("/:id/images",
			middleware.Require("images", "create"),
			productcontroller.AddProductImages(db, cfg))
		products.DELETE("/:id/images/:image_id",
			middleware.Require("images", "delete"),
			productcontroller.DeleteProductImage(db, cfg))

		products.GET("/:id/reviews", reviewcontroller.ListReviews(db, cfg))
		products.POST("/:id/reviews",
			middleware.Require("reviews", "create"),
			reviewcontroller.CreateReview(db, cfg))
	}

	registerTaxonomy(g.Group("/categories"), db, taxonomycontroller.Categories, "categories")
	registerTaxonomy(g.Group("/brands"), db, taxonomycontroller.Brands, "brands")
	registerTaxonomy(g.Group("/tags"), db, taxonomycontroller.Tags, "tags")

	wishlist := g.Group("/wishlist", middleware.Require("wishlist", "*"))
	{
		wishlist.GET("", wishlistcontroller.ListWishlist(db, cfg))
		wishlist.POST("", wishlistcontroller.AddToWishlist(db, cfg))
		wishlist.DELETE("/:id", wishlistcontroller.RemoveFromWishlist(db))
	}
}
