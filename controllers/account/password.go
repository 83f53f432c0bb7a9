package accountcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/shopora/ecommerce-api/auth"
	"github.com/shopora/ecommerce-api/config"
	"github.com/shopora/ecommerce-api/email"
	"github.com/shopora/ecommerce-api/models"
)

type resetConfirmRequest struct {
	UID        string `json:"uid" binding:"required"`
	Token      string `json:"token" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RePassword string `json:"re_password" binding:"required"`
}

// POST /api/auth/password-reset
// Answers 200 whether or not the address matches an account.
func PasswordReset(db *gorm.DB, cfg *config.Config, mailer *email.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req emailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
			return
		}
		var user models.User
		err := db.Where("email = ? AND is_active = ?", req.Email, true).First(&user).Error
		if err == nil && mailer != nil {
			uid := auth.EncodeUID(user.ID)
			token := auth.ResetToken(cfg.Auth.JWTSecret, &user)
			mailer.SendPasswordReset(&user, uid, token)
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Msg("password reset lookup failed")
		}
		c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset link was sent."})
	}
}

// POST /api/auth/password-reset/confirm
// The token is bound to the current password hash, so changing the password
// invalidates every outstanding link.
func PasswordResetConfirm(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req resetConfirmRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "uid, token and password are required"})
			return
		}
		if req.Password != req.RePassword {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
			return
		}
		if reasons := auth.ValidatePassword(req.Password); len(reasons) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": reasons})
			return
		}

		user, ok := userFromUID(db, req.UID)
		if !ok || !auth.CheckResetToken(cfg.Auth.JWTSecret, user, req.Token, cfg.Auth.ResetTTL) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reset link."})
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
			return
		}
		if err := db.Model(user).Update("password_hash", hash).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password has been reset"})
	}
}
