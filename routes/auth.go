package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/ecommerce-api/config"
	accountcontroller "github.com/shopora/ecommerce-api/controllers/account"
	"github.com/shopora/ecommerce-api/email"
	"github.com/shopora/ecommerce-api/middleware"
)

func registerAuth(g *gin.RouterGroup, db *gorm.DB, cfg *config.Config, mailer *email.Mailer) {
	g.POST("/register", accountcontroller.Register(db, cfg, mailer))
	g.GET("/activate/:uid/:token", accountcontroller.ActivateAccount(db, cfg, mailer))
	g.POST("/resend-activation", accountcontroller.ResendActivation(db, cfg, mailer))
	g.POST("/validate-password", accountcontroller.ValidatePassword())

	g.POST("/login", accountcontroller.Login(db, cfg))
	g.POST("/token", accountcontroller.Login(db, cfg))
	g.POST("/token/refresh", accountcontroller.RefreshToken(db, cfg))
	g.POST("/social/google", accountcontroller.GoogleLogin(db, cfg))

	g.POST("/password-reset", accountcontroller.PasswordReset(db, cfg, mailer))
	g.POST("/password-reset/confirm", accountcontroller.PasswordResetConfirm(db, cfg))

	me := g.Group("/me", middleware.Require("account", "me"))
	{
		me.GET("", accountcontroller.Me(cfg))
		me.PUT("", accountcontroller.UpdateMe(db, cfg))
		me.GET("/profile", accountcontroller.GetProfile(cfg))
		me.PUT("/profile", accountcontroller.UpdateProfile(db, cfg))
	}
}
