// Package accountcontroller covers registration, activation, login, token
// refresh, password reset and the authenticated profile endpoints.
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

type registerRequest struct {
	Username   string `json:"username" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Password   string `json:"password" binding:"required"`
	RePassword string `json:"re_password" binding:"required"`
	IsSeller   bool   `json:"is_seller"`
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type passwordRequest struct {
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/register
// New accounts start inactive; the activation link goes out by email.
func Register(db *gorm.DB, cfg *config.Config, mailer *email.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username, email and password are required"})
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

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
			return
		}

		user := models.User{
			Username:     req.Username,
			Email:        req.Email,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			PasswordHash: hash,
			IsActive:     false,
			Profile:      models.Profile{IsSeller: req.IsSeller},
		}
		if err := db.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "A user with that username or email already exists"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
			}
			return
		}

		sendActivation(cfg, mailer, &user)
		c.JSON(http.StatusCreated, gin.H{
			"message": "Account created. Check your email to activate it.",
			"user":    SerializeUser(&user, cfg.Media.URL),
		})
	}
}

// GET /api/auth/activate/:uid/:token
// The token is bound to the account's inactive state, so a link can only
// be used once.
func ActivateAccount(db *gorm.DB, cfg *config.Config, mailer *email.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := userFromUID(db, c.Param("uid"))
		if !ok || !auth.CheckActivationToken(cfg.Auth.JWTSecret, user, c.Param("token"), cfg.Auth.ActivationTTL) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activation link."})
			return
		}

		if err := db.Model(user).Update("is_active", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to activate account"})
			return
		}
		user.IsActive = true

		pair, err := auth.IssuePair(cfg.Auth, user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue tokens"})
			return
		}
		if mailer != nil {
			mailer.SendWelcome(user)
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Account activated",
			"access":  pair.Access,
			"refresh": pair.Refresh,
		})
	}
}

// POST /api/auth/resend-activation
// Always answers 200 so the endpoint cannot be used to probe for accounts.
func ResendActivation(db *gorm.DB, cfg *config.Config, mailer *email.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req emailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
			return
		}
		var user models.User
		err := db.Where("email = ? AND is_active = ?", req.Email, false).First(&user).Error
		if err == nil {
			sendActivation(cfg, mailer, &user)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Msg("resend activation lookup failed")
		}
		c.JSON(http.StatusOK, gin.H{"message": "If the account exists and is inactive, a new link was sent."})
	}
}

// POST /api/auth/validate-password
// Pre-flight check used by registration forms.
func ValidatePassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req passwordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
			return
		}
		if reasons := auth.ValidatePassword(req.Password); len(reasons) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"valid": false, "errors": reasons})
			return
		}
		c.JSON(http.StatusOK, gin.H{"valid": true})
	}
}

func sendActivation(cfg *config.Config, mailer *email.Mailer, user *models.User) {
	if mailer == nil {
		return
	}
	uid := auth.EncodeUID(user.ID)
	token := auth.ActivationToken(cfg.Auth.JWTSecret, user)
	mailer.SendActivation(user, uid, token)
}

func userFromUID(db *gorm.DB, uid string) (*models.User, bool) {
	id, err := auth.DecodeUID(uid)
	if err != nil {
		return nil, false
	}
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, false
	}
	return &user, true
}
