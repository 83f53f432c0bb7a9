// Package routes wires the HTTP surface: /api/catalog, /api/orders and
// /api/auth. Authentication runs on every group; per-route policy decides
// who gets through.
package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/ecommerce-api/config"
	"github.com/shopora/ecommerce-api/email"
	"github.com/shopora/ecommerce-api/middleware"
)

func Setup(r *gin.Engine, db *gorm.DB, cfg *config.Config, mailer *email.Mailer) {
	api := r.Group("/api")
	api.Use(middleware.Authenticate(db, cfg.Auth.JWTSecret))

	registerCatalog(api.Group("/catalog"), db, cfg)
	registerOrders(api.Group("/orders"), db, cfg, mailer)
	registerAuth(api.Group("/auth"), db, cfg, mailer)
}
