package main

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shopora/ecommerce-api/config"
	"github.com/shopora/ecommerce-api/email"
	"github.com/shopora/ecommerce-api/models"
	"github.com/shopora/ecommerce-api/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("configuration error:", err)
		return
	}
	config.SetupLogger(cfg.Logger)

	db := initDatabase(cfg)
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate failed")
	}

	mailer := email.New(cfg.SMTP, cfg.Server.Domain)
	if !mailer.Enabled() {
		log.Warn().Msg("SMTP not configured, emails will be skipped")
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static(cfg.Media.URL, cfg.Media.Root)
	routes.Setup(r, db, cfg, mailer)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("server starting")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func initDatabase(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	return db
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Category{},
		&models.Brand{},
		&models.Tag{},
		&models.Product{},
		&models.ProductImage{},
		&models.Review{},
		&models.Wishlist{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
}
